// Package update provides the update command implementation.
package update

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/hackfinder/internal/cmd/application"
)

// NewCommand creates the update command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "update",
		GroupID: "core",
		Short:   "Fetch listings and regenerate the hackathon documents",
		Args:    cobra.NoArgs,
		Long: `Update runs one update cycle:

• Load hackathons.json from the data directory
• Fetch listings from every enabled source (a failing source is skipped)
• Merge the listings into the stored hackathons
• Archive hackathons that ended more than the archive window ago
• Write hackathons.json, the README tables and ARCHIVE.md

When every source fails nothing is written and the command exits non-zero.`,
		Example: `  hackfinder update                      # Update in the current directory
  hackfinder update -d ./site            # Update another data directory
  hackfinder update --dry-run            # Preview changes without writing
  hackfinder update --archive-days 30    # Archive a month after the end date
  hackfinder update --california-only=false -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.CaliforniaOnlySet = cmd.Flags().Changed("california-only")
			flags.ArchiveDaysSet = cmd.Flags().Changed("archive-days")
			return Run(cmd.Context(), app, cmd.OutOrStdout(), flags)
		},
	}

	flags = addUpdateFlags(cmd)

	return cmd
}
