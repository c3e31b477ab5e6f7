// Package hackathons defines the hackathon listing record shared by the
// sources, the reconciler and the document generators.
package hackathons

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/hackfinder/pkg/errors"
)

// OnlineLocation is the location sentinel for virtual events.
const OnlineLocation = "Online"

// Hackathon is one listing. It is the element type of the persisted state file.
type Hackathon struct {
	Name      string   `json:"name"`
	URL       string   `json:"url"`
	StartDate Date     `json:"start_date"`
	EndDate   Date     `json:"end_date"`
	Deadline  Date     `json:"deadline,omitzero"`
	Location  string   `json:"location"`
	Platform  string   `json:"platform"`
	PrizeInfo string   `json:"prize_info,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// Key identifies a hackathon across fetch runs.
type Key struct {
	Name  string
	Start Date
}

// String returns the key as name@date.
func (k Key) String() string {
	return fmt.Sprintf("%s@%s", k.Name, k.Start)
}

// Key returns the identity of the hackathon: its case-folded name and start date.
func (h Hackathon) Key() Key {
	return Key{Name: FoldName(h.Name), Start: h.StartDate}
}

// FoldName returns the comparison form of a hackathon name.
func FoldName(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// HasDates reports whether the start date is known.
func (h Hackathon) HasDates() bool {
	return !h.StartDate.IsZero()
}

// Normalize returns a copy with whitespace trimmed, the online sentinel
// canonicalised, tags sorted and de-duplicated, and a missing end date set to
// the start date unless an application deadline stands in for it.
func (h Hackathon) Normalize() Hackathon {
	h.Name = strings.Join(strings.Fields(h.Name), " ")
	h.URL = strings.TrimSpace(h.URL)
	h.Location = strings.TrimSpace(h.Location)
	h.Platform = strings.TrimSpace(h.Platform)
	h.PrizeInfo = strings.TrimSpace(h.PrizeInfo)
	h.Notes = strings.TrimSpace(h.Notes)
	if IsOnline(h.Location) {
		h.Location = OnlineLocation
	}
	h.Tags = NormalizeTags(h.Tags)
	if h.EndDate.IsZero() && h.Deadline.IsZero() && !h.StartDate.IsZero() {
		h.EndDate = h.StartDate
	}
	return h
}

// Validate checks the record invariants.
func (h Hackathon) Validate() error {
	switch {
	case strings.TrimSpace(h.Name) == "":
		return errors.NewValidationError(h.URL, "name", h.Name, "name is required")
	case strings.TrimSpace(h.URL) == "":
		return errors.NewValidationError(h.Name, "url", h.URL, "url is required")
	case h.StartDate.IsZero():
		return errors.NewValidationError(h.Name, "start_date", nil, "start date is missing or malformed")
	case h.EndDate.IsZero() && h.Deadline.IsZero():
		return errors.NewValidationError(h.Name, "end_date", nil, "end date is missing or malformed")
	case !h.EndDate.IsZero() && h.StartDate.After(h.EndDate):
		return errors.NewValidationError(h.Name, "end_date", h.EndDate.String(),
			fmt.Sprintf("end date is before start date %s", h.StartDate))
	}
	return nil
}

// Clone returns a deep copy of the hackathon.
func (h Hackathon) Clone() Hackathon {
	h.Tags = slices.Clone(h.Tags)
	return h
}

// Equal reports whether two records carry identical values.
func (h Hackathon) Equal(other Hackathon) bool {
	return h.Name == other.Name &&
		h.URL == other.URL &&
		h.StartDate == other.StartDate &&
		h.EndDate == other.EndDate &&
		h.Deadline == other.Deadline &&
		h.Location == other.Location &&
		h.Platform == other.Platform &&
		h.PrizeInfo == other.PrizeInfo &&
		slices.Equal(h.Tags, other.Tags) &&
		h.Notes == other.Notes
}

// Compare orders hackathons by start date, then name, then URL.
func Compare(a, b Hackathon) int {
	return cmp.Or(
		a.StartDate.Compare(b.StartDate),
		strings.Compare(a.Name, b.Name),
		strings.Compare(a.URL, b.URL),
	)
}

// Sort sorts hackathons in place using Compare.
func Sort(hs []Hackathon) {
	slices.SortStableFunc(hs, Compare)
}

// NormalizeTags trims, de-duplicates and sorts tags. Duplicates are detected
// case-insensitively; the first spelling wins.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		folded := cases.Fold().String(tag)
		if seen[folded] {
			continue
		}
		seen[folded] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return out
}
