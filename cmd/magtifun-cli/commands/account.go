package commands

import (
	"github.com/ABGEO/magtifun.abgeo.dev/cmd/magtifun-cli/globals"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(accountCmd)
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Prints the account profile.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		identity, err := currentIdentity(ctx)
		if err != nil {
			return err
		}
		account, err := g.Client.GetAccount(ctx, identity)
		if err != nil {
			return checkSession(ctx, identity, err)
		}

		if g.JSON {
			return writeJSON(cmd.OutOrStdout(), account)
		}
		t := newTable(cmd.OutOrStdout())
		t.AppendRows([]table.Row{
			{"First name", account.FirstName},
			{"Last name", account.LastName},
			{"Username", account.Username},
			{"Phone", account.Phone},
			{"City", account.City},
			{"Birthdate", formatDate(account.Birthdate)},
			{"Gender", account.Gender},
		})
		t.Render()
		return nil
	},
}
