package commands

import (
	"fmt"

	"github.com/ABGEO/magtifun.abgeo.dev/cmd/magtifun-cli/globals"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Checks that the stored session is still accepted by the site.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		identity, err := currentIdentity(ctx)
		if err != nil {
			return err
		}
		valid, err := g.Client.IsValid(ctx, identity.Token())
		if err != nil {
			return err
		}

		if !valid {
			err = g.Keychain.Delete(ctx, g.Profile)
			if err != nil {
				return err
			}
		}
		if g.JSON {
			return writeJSON(cmd.OutOrStdout(), map[string]bool{"valid": valid})
		}
		if valid {
			fmt.Fprintf(cmd.OutOrStdout(), "profile %q is logged in\n", g.Profile)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "profile %q session expired, removed it\n", g.Profile)
		}
		return nil
	},
}
