package commands

import (
	"github.com/ABGEO/magtifun.abgeo.dev/cmd/magtifun-cli/globals"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(profilesCmd)
}

type profileRow struct {
	Profile  string `json:"profile"`
	Username string `json:"username"`
	SavedAt  string `json:"saved_at"`
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Lists the profiles with a stored session.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		entries, err := g.Keychain.List(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([]profileRow, len(entries))
		for i, entry := range entries {
			rows[i] = profileRow{
				Profile:  entry.Profile,
				Username: entry.Username,
				SavedAt:  entry.SavedAt.Format(dateLayout),
			}
		}
		if g.JSON {
			return writeJSON(cmd.OutOrStdout(), rows)
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Profile", "Username", "Saved at"})
		for _, row := range rows {
			t.AppendRow(table.Row{row.Profile, row.Username, row.SavedAt})
		}
		t.Render()
		return nil
	},
}
