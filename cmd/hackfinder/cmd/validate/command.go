// Package validate provides the validate command implementation.
package validate

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/hackfinder/internal/cmd/application"
	"github.com/agentstation/hackfinder/internal/cmd/emoji"
	"github.com/agentstation/hackfinder/internal/store"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/logging"
	"github.com/agentstation/hackfinder/pkg/reconciler"
)

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Validate the hackathons.json state file",
		Args:    cobra.NoArgs,
		Long: `Validate checks every record of hackathons.json: required fields, date
order, duplicate identities, normalization and sort order. Errors make the
command exit non-zero; warnings are reported only.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			finder, err := app.Finder()
			if err != nil {
				return err
			}

			snapshot, err := finder.Hackathons(ctx)
			if err != nil {
				return err
			}

			result := reconciler.Validate(snapshot.Records)
			printResult(cmd.OutOrStdout(), snapshot, result)

			if !result.IsValid() || len(snapshot.Diagnostics) > 0 {
				return fmt.Errorf("%w: %d errors, %d undecodable entries",
					errors.ErrInvalidInput, len(result.Errors), len(snapshot.Diagnostics))
			}
			return nil
		},
	}
}

func printResult(w io.Writer, snapshot *store.Snapshot, result *reconciler.ValidationResult) {
	for _, err := range snapshot.Diagnostics {
		fmt.Fprintf(w, "%s %v\n", emoji.Error, err)
	}
	for _, err := range result.Errors {
		fmt.Fprintf(w, "%s %v\n", emoji.Error, err)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "%s %s\n", emoji.Warning, warning)
	}

	if result.IsValid() && len(snapshot.Diagnostics) == 0 {
		fmt.Fprintf(w, "%s %s\n", emoji.Success, result)
		return
	}
	fmt.Fprintln(w, result)
}
