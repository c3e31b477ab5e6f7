package docs

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// TableKind selects the third column of a hackathon table.
type TableKind int

const (
	// PhysicalTable lists the location of each hackathon.
	PhysicalTable TableKind = iota
	// OnlineTable lists the platform of each hackathon.
	OnlineTable
)

// writeTable writes a four column hackathon table. An empty table gets a
// single placeholder row.
func writeTable(w io.Writer, kind TableKind, records []hackathons.Hackathon, placeholder string) {
	third := "Location"
	if kind == OnlineTable {
		third = "Platform"
	}
	fmt.Fprintf(w, "| Hackathon | Date | %s | Notes |\n", third)
	fmt.Fprintln(w, "| --- | --- | --- | --- |")

	if len(records) == 0 {
		fmt.Fprintf(w, "| %s | | | |\n", escapeCell(placeholder))
		return
	}

	for _, h := range records {
		where := h.Location
		if kind == OnlineTable {
			where = h.Platform
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
			md.Link(escapeCell(h.Name), escapeURL(h.URL)),
			FormatDateRange(h.StartDate, h.EndDate),
			escapeCell(where),
			escapeCell(h.Notes),
		)
	}
}

// escapeCell makes text safe inside a single table cell.
func escapeCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// escapeURL keeps a link target from closing the link or the cell early.
func escapeURL(s string) string {
	return strings.NewReplacer(
		" ", "%20",
		"|", "%7C",
		"(", "%28",
		")", "%29",
	).Replace(strings.TrimSpace(s))
}
