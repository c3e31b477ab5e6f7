package docs

import (
	"bytes"

	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/errors"
)

// Splice replaces the lines between the first line containing TABLE_START and
// the next line containing TABLE_END with content, framed by one blank line on
// each side. Every byte outside that region, the marker lines included, is
// preserved. A document without both markers in order is a ParseError and is
// not modified.
func Splice(doc []byte, content string, name string) ([]byte, error) {
	lines := bytes.SplitAfter(doc, []byte("\n"))

	start := -1
	for i, line := range lines {
		if bytes.Contains(line, []byte(constants.TableStartMarker)) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, errors.NewParseError("markdown", name, constants.TableStartMarker+" marker not found", nil)
	}

	end := -1
	for i := start + 1; i < len(lines); i++ {
		if bytes.Contains(lines[i], []byte(constants.TableEndMarker)) {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, errors.NewParseError("markdown", name, constants.TableEndMarker+" marker not found after "+constants.TableStartMarker, nil)
	}

	var out bytes.Buffer
	out.Grow(len(doc) + len(content))
	for _, line := range lines[:start+1] {
		out.Write(line)
	}
	out.WriteString("\n")
	out.WriteString(content)
	if content != "" && content[len(content)-1] != '\n' {
		out.WriteString("\n")
	}
	out.WriteString("\n")
	for _, line := range lines[end:] {
		out.Write(line)
	}
	return out.Bytes(), nil
}
