package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/reconciler"
)

func testGroups() reconciler.Groups {
	return reconciler.Groups{
		Physical: []hackathons.Hackathon{{
			Name:      "TreeHacks 2025",
			URL:       "https://treehacks.com",
			StartDate: hackathons.MustParseDate("2025-02-14"),
			EndDate:   hackathons.MustParseDate("2025-02-16"),
			Location:  "Stanford, CA",
			Platform:  "Devpost",
			PrizeInfo: "$50,000",
			Tags:      []string{"ai", "health"},
		}},
		Online: []hackathons.Hackathon{{
			Name:      "Global AI Jam",
			URL:       "https://ai-jam.example.com",
			StartDate: hackathons.MustParseDate("2025-03-01"),
			EndDate:   hackathons.MustParseDate("2025-03-02"),
			Location:  hackathons.OnlineLocation,
			Platform:  "MLH",
		}},
		Other: []hackathons.Hackathon{{
			Name:      "Hack Chicago",
			URL:       "https://hackchicago.io",
			StartDate: hackathons.MustParseDate("2025-04-05"),
			EndDate:   hackathons.MustParseDate("2025-04-06"),
			Location:  "Chicago, IL",
			Platform:  "MLH",
		}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"wide", FormatWide, false},
		{"", "", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestHackathonsToTableData(t *testing.T) {
	t.Run("narrow", func(t *testing.T) {
		data := HackathonsToTableData(NewListing(testGroups(), false), false)
		assert.Equal(t, []string{"Group", "Name", "Dates", "Location", "Platform"}, data.Headers)
		require.Len(t, data.Rows, 2)
		assert.Equal(t, []string{GroupInPerson, "TreeHacks 2025", "February 14-16, 2025", "Stanford, CA", "Devpost"}, data.Rows[0])
		assert.Equal(t, GroupOnline, data.Rows[1][0])
	})

	t.Run("wide with other", func(t *testing.T) {
		data := HackathonsToTableData(NewListing(testGroups(), true), true)
		assert.Len(t, data.Headers, 9)
		require.Len(t, data.Rows, 3)
		assert.Equal(t, []string{"-", "$50,000", "ai, health", "https://treehacks.com"}, data.Rows[0][5:])
		assert.Equal(t, GroupOther, data.Rows[2][0])
	})
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := HackathonsToTableData(NewListing(testGroups(), false), false)
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "TreeHacks 2025")
	assert.Contains(t, out, "Global AI Jam")
	assert.NotContains(t, out, "Hack Chicago")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, NewListing(testGroups(), false)))

	var decoded Listing
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testGroups().Physical, decoded.Physical)
	assert.Nil(t, decoded.Other)
}

func TestYAMLFormatterUsesDateStrings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, NewListing(testGroups(), false)))

	out := buf.String()
	assert.Contains(t, out, "physical:")
	assert.Contains(t, out, "2025-02-14")
	assert.Contains(t, out, "TreeHacks 2025")
}

func TestNewListingNeverNil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, NewListing(reconciler.Groups{}, false), Data{}))
	assert.JSONEq(t, `{"physical":[],"online":[]}`, buf.String())
}

func TestSourcesToTableData(t *testing.T) {
	data := SourcesToTableData([]SourceRow{
		{ID: "devpost", Name: "Devpost", Count: 12, Duration: 1500 * time.Millisecond},
		{ID: "luma", Name: "Lu.ma", Error: "API key required"},
	})

	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"devpost", "Devpost", "12", "1.5s", "ok"}, data.Rows[0])
	assert.Equal(t, "API key required", data.Rows[1][4])
}
