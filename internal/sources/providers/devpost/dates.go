package devpost

import (
	"strings"
	"time"

	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
)

const (
	fullLayout  = "Jan 2, 2006"
	monthLayout = "Jan 2"
)

// ParseDateRange reads the submission period Devpost displays. It accepts
// "Feb 14 - 16, 2025", "Jan 30 - Feb 02, 2025", "Dec 28, 2024 - Jan 05, 2025"
// and single dates such as "Mar 01, 2025".
func ParseDateRange(s string) (start, end hackathons.Date, err error) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return start, end, errors.NewValidationError("devpost", "submission_period_dates", s, "empty date range")
	}

	left, right, isRange := strings.Cut(s, " - ")
	if !isRange {
		t, perr := time.Parse(fullLayout, s)
		if perr != nil {
			return start, end, invalidRange(s)
		}
		d := hackathons.DateOf(t)
		return d, d, nil
	}

	endTime, perr := time.Parse(fullLayout, right)
	if perr != nil {
		// "14 - 16, 2025": the end shares the start month.
		month, _, ok := strings.Cut(left, " ")
		if !ok {
			return start, end, invalidRange(s)
		}
		endTime, perr = time.Parse(fullLayout, month+" "+right)
		if perr != nil {
			return start, end, invalidRange(s)
		}
	}

	startTime, perr := time.Parse(fullLayout, left)
	if perr != nil {
		startTime, perr = time.Parse(monthLayout, left)
		if perr != nil {
			return start, end, invalidRange(s)
		}
		startTime = time.Date(endTime.Year(), startTime.Month(), startTime.Day(), 0, 0, 0, 0, time.UTC)
		if startTime.After(endTime) {
			startTime = startTime.AddDate(-1, 0, 0)
		}
	}

	start, end = hackathons.DateOf(startTime), hackathons.DateOf(endTime)
	if end.Before(start) {
		return hackathons.Date{}, hackathons.Date{}, invalidRange(s)
	}
	return start, end, nil
}

func invalidRange(s string) error {
	return errors.NewValidationError("devpost", "submission_period_dates", s, "unrecognized date range")
}
