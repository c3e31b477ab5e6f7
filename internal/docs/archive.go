package docs

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/reconciler"
)

const lastUpdatedPrefix = "Last updated: "

// lastUpdatedLine matches the footer of an archive document. Older documents
// wrapped it in italics.
var lastUpdatedLine = regexp.MustCompile(`(?m)^\*?` + lastUpdatedPrefix + `(\d{4}-\d{2}-\d{2})\*?[ \t]*$`)

// Archive renders the complete archive document for the archived bucket.
// The document carries the same markers as the README so that it can be
// spliced by hand-maintained copies, and ends with the date of now.
func (r *Renderer) Archive(archived reconciler.Groups, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Archived Hackathons").
		PlainText("").
		PlainText(fmt.Sprintf("Hackathons that ended more than %d days ago. Upcoming events are listed in %s.",
			int(r.archiveAfter/(24*time.Hour)), md.Link("README.md", "./README.md"))).
		PlainText("").
		PlainText(markerLine(constants.TableStartMarker)).
		PlainText("").
		PlainText(strings.TrimSuffix(r.Tables(archived), "\n")).
		PlainText("").
		PlainText(markerLine(constants.TableEndMarker)).
		PlainText("").
		PlainText("---").
		PlainText(lastUpdatedPrefix + now.Format("2006-01-02"))

	if err := doc.Build(); err != nil {
		return nil, errors.WrapIO("render", constants.ArchiveFile, err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func markerLine(marker string) string {
	return "<!-- Please leave a one line gap between this and the table " + marker + " (DO NOT CHANGE THIS LINE) -->"
}

// LastUpdated returns the date of the last footer line of an archive
// document, which is the day the document was last written.
func LastUpdated(doc []byte) (time.Time, bool) {
	matches := lastUpdatedLine.FindAllSubmatch(doc, -1)
	if len(matches) == 0 {
		return time.Time{}, false
	}
	d, err := hackathons.ParseDate(string(matches[len(matches)-1][1]))
	if err != nil {
		return time.Time{}, false
	}
	return d.Time(), true
}
