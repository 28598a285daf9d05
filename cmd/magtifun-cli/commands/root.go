package commands

import (
	"context"
	"fmt"

	"github.com/ABGEO/magtifun.abgeo.dev/cmd/magtifun-cli/globals"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/keychain"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	profileName string
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "magtifun-cli",
	Short: "magtifun-cli sends SMS and reads account details from magtifun.ge.",

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		telemetry.InitSlog(config.Debug)

		client, err := newClient(config)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		db, err := config.Keychain.OpenDB()
		if err != nil {
			return fmt.Errorf("failed to open keychain: %w", err)
		}
		k, err := keychain.Open(db)
		if err != nil {
			db.Close()
			return fmt.Errorf("failed to open keychain: %w", err)
		}

		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Client:   client,
			Keychain: k,
			Profile:  profileName,
			JSON:     jsonOutput,
		}))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return globals.Get(cmd.Context()).Keychain.Close()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "magtifun.json5", "Path to the config file, a sibling .local.json5 overrides it.")
	flags.StringVarP(&profileName, "profile", "p", "default", "The keychain profile to act as.")
	flags.BoolVar(&jsonOutput, "json", false, "Print results as JSON instead of tables.")
}

// ExecuteContext runs the command line and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}
