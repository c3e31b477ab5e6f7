package docs

import (
	"fmt"

	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// FormatDateRange renders the dates of a hackathon for a table cell:
//
//	February 14, 2025
//	February 14-16, 2025
//	February 28 - March 2, 2025
//	December 30, 2024 - January 2, 2025
func FormatDateRange(start, end hackathons.Date) string {
	switch {
	case start.IsZero():
		return "TBD"
	case end.IsZero() || end == start:
		return fmt.Sprintf("%s %d, %d", start.Month(), start.Day(), start.Year())
	case start.Year() != end.Year():
		return fmt.Sprintf("%s %d, %d - %s %d, %d",
			start.Month(), start.Day(), start.Year(), end.Month(), end.Day(), end.Year())
	case start.Month() != end.Month():
		return fmt.Sprintf("%s %d - %s %d, %d", start.Month(), start.Day(), end.Month(), end.Day(), end.Year())
	default:
		return fmt.Sprintf("%s %d-%d, %d", start.Month(), start.Day(), end.Day(), end.Year())
	}
}
