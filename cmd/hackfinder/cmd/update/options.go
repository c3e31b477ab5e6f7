package update

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/hackfinder"
)

// Flags holds the update command flags.
type Flags struct {
	DryRun            bool
	ArchiveDays       int
	ArchiveDaysSet    bool
	CaliforniaOnly    bool
	CaliforniaOnlySet bool
}

func addUpdateFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "render every output without writing files")
	cmd.Flags().IntVar(&flags.ArchiveDays, "archive-days", 90, "days after its end date a hackathon is archived")
	cmd.Flags().BoolVar(&flags.CaliforniaOnly, "california-only", true, "list only California hackathons in the in-person table")
	return flags
}

// Options converts the flags that were set into finder options. Flags left
// at their defaults defer to the configuration.
func (f *Flags) Options() []hackfinder.Option {
	var opts []hackfinder.Option
	if f.DryRun {
		opts = append(opts, hackfinder.WithDryRun(true))
	}
	if f.ArchiveDaysSet {
		opts = append(opts, hackfinder.WithArchiveAfter(time.Duration(f.ArchiveDays)*24*time.Hour))
	}
	if f.CaliforniaOnlySet {
		opts = append(opts, hackfinder.WithCaliforniaOnly(f.CaliforniaOnly))
	}
	return opts
}
