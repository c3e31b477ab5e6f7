// Package cron provides the cron command, which schedules daily updates.
package cron

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/hackfinder/internal/cmd/application"
	"github.com/agentstation/hackfinder/internal/cmd/emoji"
	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/logging"
)

type options struct {
	crontab    Crontab
	executable func() (string, error)
}

// Option configures the cron command.
type Option func(*options)

// WithCrontab replaces the system crontab.
func WithCrontab(tab Crontab) Option {
	return func(o *options) {
		o.crontab = tab
	}
}

// WithExecutable sets the binary path written to the entry.
func WithExecutable(path string) Option {
	return func(o *options) {
		o.executable = func() (string, error) { return path, nil }
	}
}

// NewCommand creates the cron command using app context.
func NewCommand(app application.Application, opts ...Option) *cobra.Command {
	o := &options{
		crontab:    &SystemCrontab{},
		executable: executable,
	}
	for _, opt := range opts {
		opt(o)
	}

	cmd := &cobra.Command{
		Use:     "cron",
		GroupID: "management",
		Short:   "Schedule a daily update with cron",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newShowCommand(app, o))
	cmd.AddCommand(newInstallCommand(app, o))

	return cmd
}

func newShowCommand(app application.Application, o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the crontab entry and whether it is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := entryFor(app, o)
			if err != nil {
				return err
			}

			current, err := o.crontab.Read(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, constants.CronComment)
			fmt.Fprintln(w, entry)
			if Installed(current, entry) {
				fmt.Fprintf(w, "\n%s Installed\n", emoji.Success)
			} else {
				fmt.Fprintln(w, "\nNot installed. Run 'hackfinder cron install'.")
			}
			return nil
		},
	}
}

func newInstallCommand(app application.Application, o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install a crontab entry running hackfinder update daily at midnight",
		Long: `Install appends a crontab entry that runs 'hackfinder update' in the data
directory every day at midnight, logging to hackfinder.log. Installing twice
leaves the crontab unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.FromContext(cmd.Context())

			entry, err := entryFor(app, o)
			if err != nil {
				return err
			}

			changed, err := Install(cmd.Context(), o.crontab, entry)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !changed {
				logger.Info().Str("entry", entry).Msg("Cron job already exists, skipping")
				_, err = fmt.Fprintln(w, "Cron job already installed.")
				return err
			}

			logger.Info().Str("entry", entry).Msg("Cron job installed")
			_, err = fmt.Fprintln(w, "Cron job installed. Hackathon data will be updated daily at midnight.")
			return err
		},
	}
}

func entryFor(app application.Application, o *options) (string, error) {
	exe, err := o.executable()
	if err != nil {
		return "", err
	}
	dir, err := filepath.Abs(app.DataDir())
	if err != nil {
		return "", errors.WrapIO("resolve", app.DataDir(), err)
	}
	return Entry(exe, dir), nil
}

// executable returns the absolute path of the running binary.
func executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.WrapIO("locate", "executable", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}
