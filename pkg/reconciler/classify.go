package reconciler

import (
	"time"

	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// Bucket is the rendering destination of a hackathon in one run.
type Bucket string

const (
	// BucketActive hackathons are listed in the README.
	BucketActive Bucket = "active"
	// BucketArchived hackathons are listed in the archive document.
	BucketArchived Bucket = "archived"
)

// Classify buckets a hackathon relative to now. It is archived once more than
// archiveAfter has elapsed since its end date, counted in calendar days of
// now's location; exactly archiveAfter is still active. A hackathon without an
// end date is archived as soon as its application deadline has passed, since
// nothing remains to apply for. Hackathons without any reference date stay
// active.
func Classify(h hackathons.Hackathon, now time.Time, archiveAfter time.Duration) Bucket {
	today := hackathons.DateOf(now)
	if h.EndDate.IsZero() {
		if !h.Deadline.IsZero() && h.Deadline.Before(today) {
			return BucketArchived
		}
		return BucketActive
	}
	if today.DaysSince(h.EndDate) > windowDays(archiveAfter) {
		return BucketArchived
	}
	return BucketActive
}

// windowDays converts the archive window to whole days.
func windowDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}
