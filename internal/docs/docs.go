// Package docs renders hackathon tables into the README and the archive
// document. Rendering is deterministic: identical groups produce identical bytes.
package docs

import (
	_ "embed"
	"strings"
	"time"

	"github.com/agentstation/hackfinder/pkg/reconciler"
)

//go:embed templates/README.md
var readmeTemplate []byte

// ReadmeTemplate returns the document a missing README is created from.
func ReadmeTemplate() []byte {
	return append([]byte(nil), readmeTemplate...)
}

// Renderer renders grouped hackathons under a location policy.
type Renderer struct {
	policy       reconciler.Policy
	archiveAfter time.Duration
}

// NewRenderer creates a renderer for the policy and archive window a
// reconciliation ran with.
func NewRenderer(meta reconciler.ResultMetadata) *Renderer {
	return &Renderer{policy: meta.Policy, archiveAfter: meta.ArchiveAfter}
}

// physicalTitle returns the heading and placeholder noun for the physical table.
func (r *Renderer) physicalTitle() (heading, noun string) {
	if r.policy.CaliforniaOnly {
		return "California Hackathons", "California"
	}
	return "In-Person Hackathons", "in-person"
}

// Tables renders the physical and online sections of one bucket, followed by
// an Other section when physical hackathons fall outside the location policy.
func (r *Renderer) Tables(g reconciler.Groups) string {
	heading, noun := r.physicalTitle()

	var b strings.Builder
	b.WriteString("## " + heading + "\n\n")
	writeTable(&b, PhysicalTable, g.Physical, "No "+noun+" hackathons found")
	b.WriteString("\n## Online Hackathons\n\n")
	writeTable(&b, OnlineTable, g.Online, "No online hackathons found")
	if len(g.Other) > 0 {
		b.WriteString("\n## Other Hackathons\n\n")
		writeTable(&b, PhysicalTable, g.Other, "No other hackathons found")
	}
	return b.String()
}

// Readme splices the active tables into an existing README. A nil document
// is replaced by the embedded template.
func (r *Renderer) Readme(existing []byte, active reconciler.Groups) ([]byte, error) {
	if existing == nil {
		existing = ReadmeTemplate()
	}
	return Splice(existing, r.Tables(active), "README.md")
}
