// Package cmdtest provides fixtures shared by the command tests.
package cmdtest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder"
	"github.com/agentstation/hackfinder/internal/cmd/application"
	"github.com/agentstation/hackfinder/internal/sources"
	"github.com/agentstation/hackfinder/internal/store"
	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// Now is the fixed clock of command tests.
var Now = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

// Source returns fixed records or a fixed error.
type Source struct {
	SourceID string
	Records  []hackathons.Hackathon
	Err      error
}

var _ sources.Source = (*Source)(nil)

// ID implements sources.Source.
func (s *Source) ID() string { return s.SourceID }

// Name implements sources.Source.
func (s *Source) Name() string { return strings.ToUpper(s.SourceID) }

// Fetch implements sources.Source.
func (s *Source) Fetch(context.Context) ([]hackathons.Hackathon, error) {
	return s.Records, s.Err
}

// Listings returns an in-person California hackathon, an online one, an
// archived one and one outside California, relative to Now.
func Listings() []hackathons.Hackathon {
	return []hackathons.Hackathon{
		{
			Name:      "TreeHacks 2025",
			URL:       "https://treehacks.com",
			StartDate: hackathons.MustParseDate("2025-02-14"),
			EndDate:   hackathons.MustParseDate("2025-02-16"),
			Location:  "Stanford, CA",
			Platform:  "Devpost",
		},
		{
			Name:      "Global AI Jam",
			URL:       "https://global-ai-jam.devpost.com",
			StartDate: hackathons.MustParseDate("2025-01-30"),
			EndDate:   hackathons.MustParseDate("2025-02-02"),
			Location:  hackathons.OnlineLocation,
			Platform:  "Devpost",
		},
		{
			Name:      "Cal Hacks 10.0",
			URL:       "https://calhacks.io",
			StartDate: hackathons.MustParseDate("2023-10-27"),
			EndDate:   hackathons.MustParseDate("2023-10-29"),
			Location:  "San Francisco, CA",
			Platform:  "MLH",
		},
		{
			Name:      "Hack Chicago",
			URL:       "https://hackchicago.io",
			StartDate: hackathons.MustParseDate("2025-03-01"),
			EndDate:   hackathons.MustParseDate("2025-03-02"),
			Location:  "Chicago, IL",
			Platform:  "MLH",
		},
	}
}

// Mock returns an application whose finders work in dir at Now and fetch
// from srcs.
func Mock(t testing.TB, dir string, srcs ...sources.Source) *application.Mock {
	t.Helper()
	return &application.Mock{
		FinderFunc: func(opts ...hackfinder.Option) (hackfinder.Finder, error) {
			base := []hackfinder.Option{
				hackfinder.WithDataDir(dir),
				hackfinder.WithSources(srcs...),
				hackfinder.WithClock(func() time.Time { return Now }),
			}
			return hackfinder.New(append(base, opts...)...)
		},
		DataDirFunc: func() string { return dir },
	}
}

// SeedState writes records as the state file of dir.
func SeedState(t testing.TB, dir string, records []hackathons.Hackathon) {
	t.Helper()
	s := store.New(filepath.Join(dir, constants.StateFile))
	require.NoError(t, s.Save(context.Background(), records))
}
