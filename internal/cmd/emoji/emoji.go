// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols used in command output.
const (
	// Success marks a passed check or completed operation.
	Success = "✅"

	// Error marks a failed check.
	Error = "❌"

	// Warning marks a problem that does not fail the command.
	Warning = "⚠️ "
)
