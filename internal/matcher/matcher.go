// Package matcher selects hackathons by a glob or regular expression pattern
// matched against their name, location, platform and tags.
package matcher

import (
	"regexp"
	"slices"
	"strings"

	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/reconciler"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto attempts to detect the pattern type.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher matches hackathons case-insensitively. A glob without wildcards
// matches as a substring; regular expressions are unanchored.
type Matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
}

// New compiles pattern. Auto detects regular expressions by their
// metacharacters and treats everything else as a glob.
func New(patternType PatternType, pattern string) (*Matcher, error) {
	if patternType == Auto {
		patternType = detectPatternType(pattern)
	}

	var expr string
	switch patternType {
	case Glob:
		if !IsGlobPattern(pattern) {
			pattern = "*" + pattern + "*"
		}
		expr = GlobToRegex(pattern)
	case Regex:
		expr = pattern
	default:
		return nil, errors.NewValidationError("", "pattern_type", patternType.String(), "unsupported pattern type")
	}

	compiled, err := regexp.Compile("(?i)" + strings.TrimPrefix(expr, "(?i)"))
	if err != nil {
		return nil, errors.NewValidationError("", "pattern", pattern, "invalid "+patternType.String()+" pattern: "+err.Error())
	}

	return &Matcher{pattern: pattern, patternType: patternType, compiled: compiled}, nil
}

// Pattern returns the pattern being matched.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Type returns the pattern type being used.
func (m *Matcher) Type() PatternType {
	return m.patternType
}

// Match checks if the input matches the pattern.
func (m *Matcher) Match(input string) bool {
	return m.compiled.MatchString(input)
}

// MatchHackathon reports whether any searchable field of h matches.
func (m *Matcher) MatchHackathon(h hackathons.Hackathon) bool {
	if m.Match(h.Name) || m.Match(h.Location) || m.Match(h.Platform) {
		return true
	}
	return slices.ContainsFunc(h.Tags, m.Match)
}

// Filter returns the matching hackathons in their original order.
func (m *Matcher) Filter(hs []hackathons.Hackathon) []hackathons.Hackathon {
	var out []hackathons.Hackathon
	for _, h := range hs {
		if m.MatchHackathon(h) {
			out = append(out, h)
		}
	}
	return out
}

// FilterGroups filters every group.
func (m *Matcher) FilterGroups(g reconciler.Groups) reconciler.Groups {
	return reconciler.Groups{
		Physical: m.Filter(g.Physical),
		Online:   m.Filter(g.Online),
		Other:    m.Filter(g.Other),
	}
}

// detectPatternType attempts to detect if a pattern is glob or regex.
func detectPatternType(pattern string) PatternType {
	regexIndicators := []string{
		"^", "$", "\\d", "\\w", "\\s", "\\D", "\\W", "\\S",
		"(?:", "(?i)", ".*", ".+",
		"{", "}", "+", "|", "(", ")",
	}

	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}

// IsGlobPattern checks if a string contains glob metacharacters.
func IsGlobPattern(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[]")
}

// GlobToRegex converts a glob pattern to an anchored regex pattern.
func GlobToRegex(glob string) string {
	var regex strings.Builder
	regex.WriteString("^")

	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '*':
			regex.WriteString(".*")
		case '?':
			regex.WriteString(".")
		case '[':
			j := i + 1
			if j < len(glob) && (glob[j] == '!' || glob[j] == '^') {
				regex.WriteString("[^")
				j++
			} else {
				regex.WriteString("[")
			}

			for ; j < len(glob) && glob[j] != ']'; j++ {
				if glob[j] == '\\' {
					regex.WriteByte(glob[j])
					j++
					if j < len(glob) {
						regex.WriteByte(glob[j])
					}
				} else {
					regex.WriteByte(glob[j])
				}
			}

			if j < len(glob) {
				regex.WriteString("]")
				i = j
			}
		case '\\':
			if i+1 < len(glob) {
				i++
				regex.WriteString(regexp.QuoteMeta(string(glob[i])))
			}
		default:
			regex.WriteString(regexp.QuoteMeta(string(glob[i])))
		}
	}

	regex.WriteString("$")
	return regex.String()
}
