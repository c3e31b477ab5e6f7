package output

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/hackfinder/internal/docs"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/reconciler"
)

// Group labels used in tables.
const (
	GroupInPerson = "In-Person"
	GroupOnline   = "Online"
	GroupOther    = "Other"
)

// Listing is the structured form of grouped hackathons.
type Listing struct {
	Physical []hackathons.Hackathon `json:"physical" yaml:"physical"`
	Online   []hackathons.Hackathon `json:"online" yaml:"online"`
	Other    []hackathons.Hackathon `json:"other,omitempty" yaml:"other,omitempty"`
}

// NewListing converts reconciler groups, keeping Other only when requested.
func NewListing(g reconciler.Groups, withOther bool) Listing {
	l := Listing{
		Physical: nonNil(g.Physical),
		Online:   nonNil(g.Online),
	}
	if withOther {
		l.Other = g.Other
	}
	return l
}

func nonNil(hs []hackathons.Hackathon) []hackathons.Hackathon {
	if hs == nil {
		return []hackathons.Hackathon{}
	}
	return hs
}

// HackathonsToTableData converts a listing to table rows, physical first.
func HackathonsToTableData(l Listing, wide bool) Data {
	headers := []string{"Group", "Name", "Dates", "Location", "Platform"}
	if wide {
		headers = append(headers, "Deadline", "Prize", "Tags", "URL")
	}

	var rows [][]string
	add := func(group string, hs []hackathons.Hackathon) {
		for _, h := range hs {
			row := []string{group, h.Name, docs.FormatDateRange(h.StartDate, h.EndDate), h.Location, h.Platform}
			if wide {
				row = append(row, dash(h.Deadline.String()), dash(h.PrizeInfo), dash(strings.Join(h.Tags, ", ")), h.URL)
			}
			rows = append(rows, row)
		}
	}
	add(GroupInPerson, l.Physical)
	add(GroupOnline, l.Online)
	add(GroupOther, l.Other)

	return Data{Headers: headers, Rows: rows}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// SourceRow is the printable outcome of one source fetch.
type SourceRow struct {
	ID       string        `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Count    int           `json:"count" yaml:"count"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// SourcesToTableData converts source outcomes to table rows.
func SourcesToTableData(rows []SourceRow) Data {
	data := Data{
		Headers:         []string{"Source", "Name", "Hackathons", "Duration", "Status"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft},
	}
	for _, r := range rows {
		status := "ok"
		if r.Error != "" {
			status = r.Error
		}
		data.Rows = append(data.Rows, []string{
			r.ID,
			r.Name,
			strconv.Itoa(r.Count),
			r.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	return data
}

// Write formats data for the given format. Table formats use tableData.
func Write(w io.Writer, format Format, data any, tableData Data) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, tableData)
	}
	return NewFormatter(format).Format(w, data)
}
