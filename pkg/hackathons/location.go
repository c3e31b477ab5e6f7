package hackathons

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// onlineAliases are location strings treated as the online sentinel.
var onlineAliases = map[string]bool{
	"online":  true,
	"virtual": true,
	"remote":  true,
	"digital": true,
}

// californiaPlaces is the allow-list of place names that count as California
// when the location does not spell out the state.
var californiaPlaces = []string{
	"california",
	"san francisco",
	"palo alto",
	"stanford",
	"berkeley",
	"oakland",
	"san jose",
	"santa clara",
	"mountain view",
	"menlo park",
	"cupertino",
	"sunnyvale",
	"los angeles",
	"santa monica",
	"pasadena",
	"irvine",
	"san diego",
	"la jolla",
	"santa cruz",
	"santa barbara",
	"uc davis",
	"sacramento",
	"uc riverside",
	"merced",
	"bay area",
	"silicon valley",
}

// IsOnline reports whether a location denotes a virtual event.
func IsOnline(location string) bool {
	return onlineAliases[cases.Fold().String(strings.TrimSpace(location))]
}

// IsCalifornia reports whether a physical location is in California, using a
// ", CA" suffix check and an allow-list of place names matched as whole words.
func IsCalifornia(location string) bool {
	folded := cases.Fold().String(strings.TrimSpace(location))
	if folded == "" || onlineAliases[folded] {
		return false
	}
	if strings.HasSuffix(folded, ", ca") || strings.Contains(folded, ", ca ") || strings.Contains(folded, ", ca,") {
		return true
	}
	for _, place := range californiaPlaces {
		if containsWord(folded, place) {
			return true
		}
	}
	return false
}

// containsWord reports whether phrase occurs in s bounded by non-alphanumeric
// characters or the ends of s, so that "merced" does not match "mercedes".
func containsWord(s, phrase string) bool {
	for offset := 0; offset <= len(s)-len(phrase); {
		i := strings.Index(s[offset:], phrase)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(phrase)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(s) || !isWordRune(after)) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsOnline reports whether the hackathon is a virtual event.
func (h Hackathon) IsOnline() bool {
	return IsOnline(h.Location)
}

// IsCalifornia reports whether the hackathon takes place in California.
func (h Hackathon) IsCalifornia() bool {
	return IsCalifornia(h.Location)
}
