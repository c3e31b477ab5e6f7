package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/hackfinder/pkg/differ"
	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// Result represents the outcome of a reconciliation.
type Result struct {
	// Core data
	State     []hackathons.Hackathon // full record set to persist, sorted
	Active    Groups
	Archived  Groups
	Changeset *differ.Changeset

	// Diagnostics lists one error per skipped fetched record.
	Diagnostics []error

	// Metadata
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	// Now is the reference time records were classified against
	Now time.Time

	// ArchiveAfter is the archive window in effect
	ArchiveAfter time.Duration

	// Policy is the grouping policy in effect
	Policy Policy

	// Statistics about the reconciliation
	Stats ResultStatistics
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	Prior    int
	Fetched  int
	Skipped  int
	Total    int
	Active   int
	Archived int
	Other    int
}

// HasChanges returns true if any changes were detected.
func (r *Result) HasChanges() bool {
	return r.Changeset != nil && r.Changeset.HasChanges()
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	summary := fmt.Sprintf("%d hackathons (%d active, %d archived, %d outside policy)",
		s.Total, s.Active, s.Archived, s.Other)
	if s.Skipped > 0 {
		summary += fmt.Sprintf(", %d fetched records skipped", s.Skipped)
	}
	if r.HasChanges() {
		return summary + ". " + r.Changeset.String()
	}
	return summary + ". No changes detected"
}
