// Package reconciler merges freshly fetched hackathon listings into the
// persisted record set and decides which hackathons are active and which
// belong in the archive. Every operation is a pure function of its inputs and
// the injected reference time.
package reconciler

import (
	"context"
	"time"

	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/logging"
)

// Reconciler is the main interface for reconciling fetched listings with prior state.
type Reconciler interface {
	// Reconcile merges fetched into prior and classifies the result relative to now.
	// Malformed fetched records are skipped and reported in Result.Diagnostics.
	Reconcile(ctx context.Context, prior, fetched []hackathons.Hackathon, now time.Time) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	options *options
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{options: options}, nil
}

// Reconcile performs merge, classification and grouping.
func (r *reconciler) Reconcile(ctx context.Context, prior, fetched []hackathons.Hackathon, now time.Time) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)

	// Step 1: Merge fetched records into the prior state
	state, diagnostics := Merge(prior, fetched)
	for _, diag := range diagnostics {
		logger.Warn().Err(diag).Msg("Skipping malformed hackathon record")
	}

	// Step 2: Split into buckets
	active, archived, newlyArchived := r.classify(state, now)

	// Step 3: Group each bucket
	result := &Result{
		State:       state,
		Active:      Group(active, r.options.policy),
		Archived:    Group(archived, r.options.policy),
		Diagnostics: diagnostics,
		Metadata: ResultMetadata{
			Now:          now,
			ArchiveAfter: r.options.archiveAfter,
			Policy:       r.options.policy,
		},
	}
	for _, h := range result.Active.Other {
		logger.Debug().
			Str("hackathon", h.Name).
			Str("location", h.Location).
			Msg("Hackathon outside location policy, persisted but not rendered")
	}

	// Step 4: Compute changeset against the prior state
	result.Changeset = r.options.differ.Hackathons(prior, state)
	result.Changeset.MarkArchived(newlyArchived...)

	result.Metadata.Stats = ResultStatistics{
		Prior:    len(prior),
		Fetched:  len(fetched),
		Skipped:  len(diagnostics),
		Total:    len(state),
		Active:   len(active),
		Archived: len(archived),
		Other:    len(result.Active.Other) + len(result.Archived.Other),
	}

	logger.Info().
		Int("total", len(state)).
		Int("active", len(active)).
		Int("archived", len(archived)).
		Int("skipped", len(diagnostics)).
		Msg("Reconciled hackathons")

	return result, nil
}

// classify splits state into buckets and reports the hackathons that crossed
// the archive cutoff since the previous run. Without a previous run none are
// reported.
func (r *reconciler) classify(state []hackathons.Hackathon, now time.Time) (active, archived, newlyArchived []hackathons.Hackathon) {
	for _, h := range state {
		if Classify(h, now, r.options.archiveAfter) == BucketActive {
			active = append(active, h)
			continue
		}
		archived = append(archived, h)
		if !r.options.previousRun.IsZero() && Classify(h, r.options.previousRun, r.options.archiveAfter) == BucketActive {
			newlyArchived = append(newlyArchived, h)
		}
	}
	return active, archived, newlyArchived
}
