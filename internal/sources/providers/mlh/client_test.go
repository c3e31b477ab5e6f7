package mlh

import (
	"context"
	"flag"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder/internal/sources"
	"github.com/agentstation/hackfinder/internal/sources/providers/testhelper"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// TestMain handles flag parsing for the -update flag.
func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

func TestParse(t *testing.T) {
	records, err := Parse(testhelper.LoadTestdata(t, "events.html"), "MLH")
	require.NoError(t, err)
	require.Len(t, records, 4, "cards without a name are ignored")

	tests := []struct {
		name     string
		url      string
		start    string
		end      string
		location string
		notes    string
	}{
		{name: "TreeHacks 2025", url: "https://treehacks.com/?utm_source=mlh", start: "2025-02-14", end: "2025-02-16", location: "Stanford, CA"},
		{name: "HackMIT", url: "https://hackmit.org/", start: "2025-03-01", end: "2025-03-02", location: "Cambridge, MA", notes: "Hybrid: In-Person & Digital"},
		{name: "Global Hack Week", url: "https://global.hackathon.dev/", start: "2025-04-04", end: "2025-04-10", location: hackathons.OnlineLocation},
		{name: "Hacklahoma", url: "https://hacklahoma.org/", location: "Norman"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := records[i]
			assert.Equal(t, tt.name, got.Name)
			assert.Equal(t, tt.url, got.URL)
			assert.Equal(t, tt.start, got.StartDate.String())
			assert.Equal(t, tt.end, got.EndDate.String())
			assert.Equal(t, tt.location, got.Location)
			assert.Equal(t, tt.notes, got.Notes)
			assert.Equal(t, "MLH", got.Platform)
		})
	}
}

func TestParseEmptyPage(t *testing.T) {
	records, err := Parse([]byte("<html><body><p>No events yet</p></body></html>"), "MLH")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetch(t *testing.T) {
	server, requests := testhelper.Serve(t, "events.html", "text/html; charset=utf-8")

	src := New(sources.Config{ID: "mlh", Name: "Major League Hacking", Kind: sources.KindMLH, URL: server.URL + "/seasons/2025/events", Platform: "MLH"})
	assert.Equal(t, "mlh", src.ID())
	assert.Equal(t, "Major League Hacking", src.Name())

	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 4)

	require.Len(t, *requests, 1)
	assert.Equal(t, "/seasons/2025/events", (*requests)[0].URL.Path)
	assert.Contains(t, (*requests)[0].Header.Get("Accept"), "text/html")
}

func TestFetchRateLimited(t *testing.T) {
	server := testhelper.ServeStatus(t, http.StatusTooManyRequests)

	_, err := New(sources.Config{ID: "mlh", URL: server.URL}).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))
}
