package reconciler

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// Policy selects which physical hackathons are rendered.
type Policy struct {
	// CaliforniaOnly restricts the physical table to California locations.
	// Other physical hackathons are kept in Groups.Other.
	CaliforniaOnly bool
}

// Groups partitions the hackathons of one bucket.
type Groups struct {
	Physical []hackathons.Hackathon // in person, rendered with their location
	Online   []hackathons.Hackathon // location "Online", rendered with their platform
	Other    []hackathons.Hackathon // in person but outside the policy; persisted only
}

// Len returns the number of hackathons across all groups.
func (g Groups) Len() int {
	return len(g.Physical) + len(g.Online) + len(g.Other)
}

// Group partitions records by policy. Physical and other hackathons are
// ordered by start date, name and URL; online hackathons by platform first.
func Group(records []hackathons.Hackathon, policy Policy) Groups {
	var g Groups
	for _, h := range records {
		switch {
		case h.IsOnline():
			g.Online = append(g.Online, h)
		case !policy.CaliforniaOnly || h.IsCalifornia():
			g.Physical = append(g.Physical, h)
		default:
			g.Other = append(g.Other, h)
		}
	}

	hackathons.Sort(g.Physical)
	hackathons.Sort(g.Other)
	slices.SortStableFunc(g.Online, compareOnline)
	return g
}

func compareOnline(a, b hackathons.Hackathon) int {
	fold := cases.Fold()
	return cmp.Or(
		strings.Compare(fold.String(a.Platform), fold.String(b.Platform)),
		hackathons.Compare(a, b),
	)
}
