package differ

import (
	"slices"
	"strings"

	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// Differ handles change detection between hackathon record sets.
type Differ interface {
	// Hackathons compares two record sets keyed by hackathon identity
	// and returns changes.
	Hackathons(existing, updated []hackathons.Hackathon) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	ignoreFields map[string]bool
	maxValueLen  int
}

// New creates a new Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreFields: make(map[string]bool),
		maxValueLen:  50,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Hackathons compares two record sets and returns changes.
func (diff *differ) Hackathons(existing, updated []hackathons.Hackathon) *Changeset {
	changeset := &Changeset{
		Added:   []hackathons.Hackathon{},
		Updated: []Update{},
		Removed: []hackathons.Hackathon{},
	}

	// Create maps for efficient lookup
	existingMap := make(map[hackathons.Key]hackathons.Hackathon, len(existing))
	for _, h := range existing {
		existingMap[h.Key()] = h
	}

	newMap := make(map[hackathons.Key]hackathons.Hackathon, len(updated))
	for _, h := range updated {
		newMap[h.Key()] = h
	}

	for _, h := range updated {
		if prev, exists := existingMap[h.Key()]; exists {
			if update := diff.hackathon(prev, h); update != nil {
				changeset.Updated = append(changeset.Updated, *update)
			}
		} else {
			changeset.Added = append(changeset.Added, h)
		}
	}

	for _, h := range existing {
		if _, exists := newMap[h.Key()]; !exists {
			changeset.Removed = append(changeset.Removed, h)
		}
	}

	// Sort for consistent output
	sortChangeset(changeset)
	changeset.Summary = calculateSummary(changeset)

	return changeset
}

// hackathon compares two versions of the same hackathon.
func (diff *differ) hackathon(existing, updated hackathons.Hackathon) *Update {
	changes := []FieldChange{}

	compare := func(path, oldValue, newValue string) {
		if oldValue == newValue || diff.ignoreFields[path] {
			return
		}
		changeType := ChangeTypeUpdate
		switch {
		case oldValue == "":
			changeType = ChangeTypeAdd
		case newValue == "":
			changeType = ChangeTypeRemove
		}
		changes = append(changes, FieldChange{
			Path:     path,
			OldValue: truncateString(oldValue, diff.maxValueLen),
			NewValue: truncateString(newValue, diff.maxValueLen),
			Type:     changeType,
		})
	}

	compare("name", existing.Name, updated.Name)
	compare("url", existing.URL, updated.URL)
	compare("end_date", existing.EndDate.String(), updated.EndDate.String())
	compare("deadline", existing.Deadline.String(), updated.Deadline.String())
	compare("location", existing.Location, updated.Location)
	compare("platform", existing.Platform, updated.Platform)
	compare("prize_info", existing.PrizeInfo, updated.PrizeInfo)
	compare("notes", existing.Notes, updated.Notes)
	if !slices.Equal(existing.Tags, updated.Tags) {
		compare("tags", strings.Join(existing.Tags, ", "), strings.Join(updated.Tags, ", "))
	}

	// If no changes, return nil
	if len(changes) == 0 {
		return nil
	}

	return &Update{
		Key:      existing.Key(),
		Existing: existing,
		New:      updated,
		Changes:  changes,
	}
}

// sortChangeset sorts all slices in the changeset.
func sortChangeset(changeset *Changeset) {
	hackathons.Sort(changeset.Added)
	hackathons.Sort(changeset.Removed)
	slices.SortStableFunc(changeset.Updated, func(a, b Update) int {
		return hackathons.Compare(a.New, b.New)
	})
}

// truncateString shortens long values for display.
func truncateString(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
