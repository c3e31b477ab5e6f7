// Package list provides the list command implementation.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/hackfinder/internal/cmd/application"
	"github.com/agentstation/hackfinder/internal/cmd/output"
	"github.com/agentstation/hackfinder/internal/matcher"
	"github.com/agentstation/hackfinder/pkg/logging"
)

// NewCommand creates the list command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		archived bool
		all      bool
		match    string
	)

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List hackathons from the state file",
		Args:    cobra.NoArgs,
		Long: `List shows the hackathons stored in hackathons.json, classified as the
next update would classify them. Nothing is fetched or written.`,
		Example: `  hackfinder list                 # Active hackathons
  hackfinder list --archived      # Archived hackathons
  hackfinder list --all -o wide   # Include hackathons outside California
  hackfinder list --match 'cal*'  # Glob or regex over name, location, platform and tags
  hackfinder list -o yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			finder, err := app.Finder()
			if err != nil {
				return err
			}

			active, archivedGroups, err := finder.Groups(ctx)
			if err != nil {
				return err
			}

			groups := active
			if archived {
				groups = archivedGroups
			}

			if match != "" {
				m, err := matcher.New(matcher.Auto, match)
				if err != nil {
					return err
				}
				groups = m.FilterGroups(groups)
			}

			format := output.DetectFormat(app.OutputFormat())
			listing := output.NewListing(groups, all)
			table := output.HackathonsToTableData(listing, format == output.FormatWide)

			if format.IsTable() && len(table.Rows) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No hackathons found.")
				return err
			}
			return output.Write(cmd.OutOrStdout(), format, listing, table)
		},
	}

	cmd.Flags().BoolVar(&archived, "archived", false, "list archived hackathons instead of active ones")
	cmd.Flags().BoolVar(&all, "all", false, "include in-person hackathons outside the California policy")
	cmd.Flags().StringVarP(&match, "match", "m", "", "only hackathons matching a glob or regular expression")

	return cmd
}
