// Package constants provides shared constants used throughout the hackfinder codebase.
// This includes timeouts, file names, the archive policy window and the sentinel
// markers that bound generated tables in markdown documents.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to listing APIs
	DefaultHTTPTimeout = 30 * time.Second

	// SourceFetchTimeout is the timeout for fetching listings from a single source
	SourceFetchTimeout = 2 * time.Minute

	// UpdateTimeout is the timeout for a complete update run
	UpdateTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Output file names written by an update run.
const (
	// StateFile is the persisted record set
	StateFile = "hackathons.json"

	// ReadmeFile holds the active tables
	ReadmeFile = "README.md"

	// ArchiveFile holds the archived tables
	ArchiveFile = "ARCHIVE.md"

	// BackupSuffix is appended to a state file that could not be decoded
	BackupSuffix = ".bak"
)

// Archive policy.
const (
	// ArchiveAfter is how long after its end date a hackathon stays on the README
	ArchiveAfter = 90 * 24 * time.Hour
)

// Sentinel markers bounding the generated region of a markdown document.
const (
	// TableStartMarker opens the generated region
	TableStartMarker = "TABLE_START"

	// TableEndMarker closes the generated region
	TableEndMarker = "TABLE_END"
)

// Schedule constants for the cron installer.
const (
	// DailySchedule runs the updater every day at midnight
	DailySchedule = "0 0 * * *"

	// CronComment tags the installed crontab entry
	CronComment = "# Run hackathon updater daily at midnight"
)
