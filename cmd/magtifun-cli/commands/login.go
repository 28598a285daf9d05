package commands

import (
	"fmt"
	"os"

	"github.com/ABGEO/magtifun.abgeo.dev/cmd/magtifun-cli/globals"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/keychain"

	"github.com/spf13/cobra"
)

const passwordEnv = "MAGTIFUN_PASSWORD"

var loginPassword string

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", fmt.Sprintf("The account password, read from $%s when omitted.", passwordEnv))
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Logs in and stores the session under the selected profile.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		password := loginPassword
		if password == "" {
			password = os.Getenv(passwordEnv)
		}
		if password == "" {
			return fmt.Errorf("a password is required, pass --password or set $%s", passwordEnv)
		}

		identity, err := g.Client.Login(ctx, args[0], password)
		if err != nil {
			return err
		}

		err = g.Keychain.Save(ctx, keychain.Entry{
			Profile:  g.Profile,
			Username: args[0],
			Token:    string(identity.Token()),
		})
		if err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (profile %q)\n", args[0], g.Profile)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forgets the session of the selected profile.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())
		err := g.Keychain.Delete(cmd.Context(), g.Profile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged out of profile %q\n", g.Profile)
		return nil
	},
}
