package update

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/hackfinder"
	"github.com/agentstation/hackfinder/internal/cmd/emoji"
	"github.com/agentstation/hackfinder/internal/cmd/output"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/reconciler"
)

// Report is the structured form of an update result.
type Report struct {
	RunID       string                      `json:"run_id"`
	DryRun      bool                        `json:"dry_run"`
	Summary     string                      `json:"summary"`
	Stats       reconciler.ResultStatistics `json:"stats"`
	Added       []hackathons.Hackathon      `json:"added"`
	Updated     []hackathons.Hackathon      `json:"updated"`
	Archived    []hackathons.Hackathon      `json:"archived"`
	Removed     []hackathons.Hackathon      `json:"removed,omitempty"`
	Sources     []output.SourceRow          `json:"sources"`
	Diagnostics []string                    `json:"diagnostics,omitempty"`
}

// NewReport converts an update result.
func NewReport(result *hackfinder.UpdateResult) Report {
	report := Report{
		RunID:    result.RunID,
		DryRun:   result.DryRun,
		Summary:  result.Summary(),
		Stats:    result.Metadata.Stats,
		Added:    []hackathons.Hackathon{},
		Updated:  []hackathons.Hackathon{},
		Archived: []hackathons.Hackathon{},
		Sources:  sourceRows(result.Sources),
	}

	if cs := result.Changeset; cs != nil {
		report.Added = append(report.Added, cs.Added...)
		for _, u := range cs.Updated {
			report.Updated = append(report.Updated, u.New)
		}
		report.Archived = append(report.Archived, cs.Archived...)
		report.Removed = cs.Removed
	}

	for _, err := range result.StateDiagnostics {
		report.Diagnostics = append(report.Diagnostics, err.Error())
	}
	for _, err := range result.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, err.Error())
	}
	return report
}

func sourceRows(results []hackfinder.SourceResult) []output.SourceRow {
	rows := make([]output.SourceRow, 0, len(results))
	for _, r := range results {
		row := output.SourceRow{ID: r.ID, Name: r.Name, Count: r.Count, Duration: r.Duration}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}

// Print writes the result in the requested format. Table formats print the
// changeset, the per-source table and the summary line.
func Print(w io.Writer, format string, result *hackfinder.UpdateResult) error {
	f := output.Format(strings.ToLower(format))
	if !f.IsTable() {
		return output.NewFormatter(f).Format(w, NewReport(result))
	}

	if result.Changeset != nil && result.Changeset.HasChanges() {
		result.Changeset.Fprint(w)
		fmt.Fprintln(w)
	}

	if len(result.Sources) > 0 {
		if err := output.NewFormatter(output.FormatTable).Format(w, output.SourcesToTableData(sourceRows(result.Sources))); err != nil {
			return err
		}
	}

	for _, err := range result.StateDiagnostics {
		fmt.Fprintf(w, "%s %v\n", emoji.Warning, err)
	}
	if n := len(result.Diagnostics); n > 0 {
		fmt.Fprintf(w, "%s %d fetched listings skipped (see log for details)\n", emoji.Warning, n)
	}
	if result.Outputs.Readme == nil {
		fmt.Fprintf(w, "%s README left untouched: TABLE_START/TABLE_END markers not found\n", emoji.Warning)
	}

	_, err := fmt.Fprintln(w, result.Summary())
	return err
}
