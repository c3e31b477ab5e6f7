package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/hackfinder/cmd/hackfinder/cmd/cron"
	"github.com/agentstation/hackfinder/cmd/hackfinder/cmd/list"
	"github.com/agentstation/hackfinder/cmd/hackfinder/cmd/update"
	"github.com/agentstation/hackfinder/cmd/hackfinder/cmd/validate"
	"github.com/agentstation/hackfinder/cmd/hackfinder/cmd/version"
	"github.com/agentstation/hackfinder/internal/cmd/output"
	"github.com/agentstation/hackfinder/pkg/logging"
)

// Execute runs the hackfinder CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
// Run without a subcommand it performs an update.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "hackfinder",
		Short:   "Hackathon listing updater",
		Version: a.version,
		Long: `Hackfinder keeps a curated list of upcoming hackathons up to date.

Each run fetches listings from Devpost, MLH, Lu.ma and dev.events, merges
them into hackathons.json, regenerates the tables between the TABLE_START
and TABLE_END markers of README.md, and moves hackathons that ended more
than 90 days ago to ARCHIVE.md.

Running hackfinder without a command performs an update.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return update.Run(cmd.Context(), a, cmd.OutOrStdout(), &update.Flags{})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	rootCmd.PersistentFlags().String("config", "", "config file (default is ./.hackfinder.yaml or $HOME/.hackfinder.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml, wide")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "directory holding hackathons.json, README.md and ARCHIVE.md")

	rootCmd.SetVersionTemplate("hackfinder {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfigFile(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	format := mustGetString(cmd, "format")
	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		format,
		mustGetString(cmd, "log-level"),
		mustGetString(cmd, "data-dir"),
	)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(update.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(cron.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
