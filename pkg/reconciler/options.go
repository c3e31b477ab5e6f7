package reconciler

import (
	"time"

	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/differ"
	"github.com/agentstation/hackfinder/pkg/errors"
)

// Options configures a reconciler.
type options struct {
	archiveAfter time.Duration
	policy       Policy
	previousRun  time.Time // Time of the run that produced the prior state
	differ       differ.Differ
}

func defaultOptions() *options {
	return &options{
		archiveAfter: constants.ArchiveAfter,
		policy:       Policy{CaliforniaOnly: true},
		differ:       differ.New(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithArchiveAfter sets how long after its reference date a hackathon stays active.
func WithArchiveAfter(d time.Duration) Option {
	return func(o *options) error {
		if d < 24*time.Hour {
			return &errors.ValidationError{
				Field:   "archive_after",
				Value:   d.String(),
				Message: "must be at least one day",
			}
		}
		o.archiveAfter = d
		return nil
	}
}

// WithCaliforniaOnly toggles the California policy for physical hackathons.
func WithCaliforniaOnly(enabled bool) Option {
	return func(o *options) error {
		o.policy.CaliforniaOnly = enabled
		return nil
	}
}

// WithPreviousRun sets the time of the run that produced the prior state.
// Hackathons active at that time and archived now are reported as newly
// archived in the changeset. Without it none are reported.
func WithPreviousRun(t time.Time) Option {
	return func(o *options) error {
		o.previousRun = t
		return nil
	}
}

// WithDiffer sets the differ used to build the changeset.
func WithDiffer(d differ.Differ) Option {
	return func(o *options) error {
		if d == nil {
			return &errors.ValidationError{
				Field:   "differ",
				Message: "cannot be nil",
			}
		}
		o.differ = d
		return nil
	}
}
