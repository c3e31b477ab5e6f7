package reconciler

import (
	"fmt"
	"slices"

	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// ValidationResult represents the result of validating a persisted record set.
type ValidationResult struct {
	Checked  int
	Errors   []error
	Warnings []string
}

// IsValid returns true if validation passed.
func (v *ValidationResult) IsValid() bool {
	return len(v.Errors) == 0
}

// HasWarnings returns true if there are warnings.
func (v *ValidationResult) HasWarnings() bool {
	return len(v.Warnings) > 0
}

// String returns a string representation of the validation result.
func (v *ValidationResult) String() string {
	if v.IsValid() {
		if v.HasWarnings() {
			return fmt.Sprintf("Validation passed for %d hackathons with %d warnings", v.Checked, len(v.Warnings))
		}
		return fmt.Sprintf("Validation passed for %d hackathons", v.Checked)
	}
	return fmt.Sprintf("Validation failed with %d errors in %d hackathons", len(v.Errors), v.Checked)
}

// Validate checks persisted records against the record invariants. Duplicate
// identities are errors; records that would change under normalisation and an
// unsorted record set are warnings.
func Validate(records []hackathons.Hackathon) *ValidationResult {
	result := &ValidationResult{Checked: len(records)}
	seen := make(map[hackathons.Key]bool, len(records))

	for i, h := range records {
		if err := h.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if seen[h.Key()] {
			result.Errors = append(result.Errors, fmt.Errorf("record %d: duplicate hackathon %s", i, h.Key()))
			continue
		}
		seen[h.Key()] = true
		if !h.Normalize().Equal(h) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("record %d (%s): not normalized", i, h.Name))
		}
	}

	if !slices.IsSortedFunc(records, hackathons.Compare) {
		result.Warnings = append(result.Warnings, "records are not sorted by start date and name")
	}
	return result
}
