// Package differ provides functionality for comparing hackathon record sets and detecting changes.
package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates a field gained a value.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates a field value changed.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates a field lost its value.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Path     string     // Field path (e.g., "prize_info")
	OldValue string     // Previous value (string representation)
	NewValue string     // New value (string representation)
	Type     ChangeType // Type of change
}

// Update represents an update to a known hackathon.
type Update struct {
	Key      hackathons.Key       // Identity of the hackathon being updated
	Existing hackathons.Hackathon // Stored record
	New      hackathons.Hackathon // Merged record
	Changes  []FieldChange        // Detailed list of field changes
}

// Changeset represents all changes between two record sets.
type Changeset struct {
	Added    []hackathons.Hackathon // Records not previously known
	Updated  []Update               // Known records whose fields changed
	Removed  []hackathons.Hackathon // Known records missing from the new set
	Archived []hackathons.Hackathon // Records that moved to the archive in this run
	Summary  ChangesetSummary       // Summary statistics
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	Added        int
	Updated      int
	Removed      int
	Archived     int
	TotalChanges int
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return c.Summary.TotalChanges == 0
}

// MarkArchived records hackathons that crossed the archive cutoff and
// refreshes the summary.
func (c *Changeset) MarkArchived(records ...hackathons.Hackathon) {
	c.Archived = append(c.Archived, records...)
	hackathons.Sort(c.Archived)
	c.Summary = calculateSummary(c)
}

// calculateSummary computes the summary for a changeset.
func calculateSummary(c *Changeset) ChangesetSummary {
	added := len(c.Added)
	updated := len(c.Updated)
	removed := len(c.Removed)
	archived := len(c.Archived)

	return ChangesetSummary{
		Added:        added,
		Updated:      updated,
		Removed:      removed,
		Archived:     archived,
		TotalChanges: added + updated + removed + archived,
	}
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	parts := []string{}
	if c.Summary.Added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", c.Summary.Added))
	}
	if c.Summary.Updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", c.Summary.Updated))
	}
	if c.Summary.Removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", c.Summary.Removed))
	}
	if c.Summary.Archived > 0 {
		parts = append(parts, fmt.Sprintf("%d archived", c.Summary.Archived))
	}

	return fmt.Sprintf("Hackathons: %s (Total: %d changes)", strings.Join(parts, ", "), c.Summary.TotalChanges)
}

// Fprint writes a detailed, human-readable view of the changeset to w.
func (c *Changeset) Fprint(w io.Writer) {
	fmt.Fprintln(w, c.String())
	if c.IsEmpty() {
		return
	}
	fmt.Fprintln(w, strings.Repeat("─", 80))

	if len(c.Added) > 0 {
		fmt.Fprintf(w, "\n➕ Added (%d):\n", len(c.Added))
		for _, h := range c.Added {
			fprintRecord(w, h)
		}
	}

	if len(c.Updated) > 0 {
		fmt.Fprintf(w, "\n🔄 Updated (%d):\n", len(c.Updated))
		for _, update := range c.Updated {
			fmt.Fprintf(w, "  • %s (%s):\n", update.New.Name, update.New.StartDate)
			for _, change := range update.Changes {
				fmt.Fprintf(w, "    - %s: %s → %s\n", change.Path, change.OldValue, change.NewValue)
			}
		}
	}

	if len(c.Archived) > 0 {
		fmt.Fprintf(w, "\n📦 Archived (%d):\n", len(c.Archived))
		for _, h := range c.Archived {
			fprintRecord(w, h)
		}
	}

	if len(c.Removed) > 0 {
		fmt.Fprintf(w, "\n⚠️  Removed (%d):\n", len(c.Removed))
		for _, h := range c.Removed {
			fprintRecord(w, h)
		}
	}
}

func fprintRecord(w io.Writer, h hackathons.Hackathon) {
	fmt.Fprintf(w, "  • %s (%s)", h.Name, h.StartDate)
	if h.Location != "" {
		fmt.Fprintf(w, " - %s", h.Location)
	}
	fmt.Fprintln(w)
}
