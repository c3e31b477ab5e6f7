package hackfinder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/hackfinder/internal/docs"
	"github.com/agentstation/hackfinder/pkg/logging"
	"github.com/agentstation/hackfinder/pkg/reconciler"
)

// Compile-time interface check to ensure proper implementation.
var _ Updater = (*finder)(nil)

// Updater runs update cycles.
type Updater interface {
	// Update fetches every source, reconciles the results with the state
	// file and regenerates the outputs.
	Update(ctx context.Context) (*UpdateResult, error)
}

// UpdateResult describes a completed update run.
type UpdateResult struct {
	// RunID identifies the run in logs.
	RunID string

	// Result is the reconciled state and its changeset.
	*reconciler.Result

	// Sources reports each attempted source.
	Sources []SourceResult

	// StateDiagnostics lists state file content that could not be decoded.
	StateDiagnostics []error

	// Outputs are the rendered documents. Readme is nil when the README
	// could not be spliced and was left untouched.
	Outputs Outputs

	// DryRun reports that nothing was written.
	DryRun bool
}

// Summary returns a one-line description of the run.
func (r *UpdateResult) Summary() string {
	failed := 0
	for _, s := range r.Sources {
		if s.Err != nil {
			failed++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s from %d sources", r.Result.Summary(), len(r.Sources))
	if failed > 0 {
		fmt.Fprintf(&b, " (%d failed)", failed)
	}
	if r.DryRun {
		b.WriteString(" [dry run]")
	}
	return b.String()
}

// Update runs one update cycle: load state, fetch, reconcile, render and
// write. When every attempted source fails nothing is written and the error
// wraps ErrAllSourcesFailed.
func (f *finder) Update(ctx context.Context) (*UpdateResult, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.FromContext(ctx)

	// Step 1: Load persisted state
	snapshot, err := f.store.Load(logging.WithOperation(ctx, "load"))
	if err != nil {
		return nil, err
	}
	previousRun, err := f.previousRun(ctx)
	if err != nil {
		return nil, err
	}

	// Step 2: Fetch listings from every source
	fetchCtx := logging.WithOperation(ctx, "fetch")
	srcs, err := f.buildSources(fetchCtx)
	if err != nil {
		return nil, err
	}
	fetched, sourceResults, err := f.fetch(fetchCtx, srcs)
	if err != nil {
		logger.Error().Err(err).Msg("Update aborted, no files written")
		return nil, err
	}

	// Step 3: Reconcile with the previous run as the archival baseline
	r, err := f.newReconciler(previousRun)
	if err != nil {
		return nil, err
	}
	now := f.options.now()
	result, err := r.Reconcile(logging.WithOperation(ctx, "reconcile"), snapshot.Records, fetched, now)
	if err != nil {
		return nil, err
	}

	// Step 4: Render documents
	outputs, err := f.render(logging.WithOperation(ctx, "render"), result)
	if err != nil {
		return nil, err
	}

	update := &UpdateResult{
		RunID:            runID,
		Result:           result,
		Sources:          sourceResults,
		StateDiagnostics: snapshot.Diagnostics,
		Outputs:          outputs,
		DryRun:           f.options.dryRun,
	}

	// Step 5: Write outputs unless dry run
	if f.options.dryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed - no files written")
	} else if err := f.write(logging.WithOperation(ctx, "write"), result, outputs); err != nil {
		return nil, err
	}

	// Step 6: Notify hooks
	f.hooks.trigger(result.Changeset)

	logger.Info().Msg(update.Summary())
	return update, nil
}

// previousRun returns the day the archive document was last written, which
// is the baseline for reporting newly archived hackathons. It is zero when
// there is no archive document yet.
func (f *finder) previousRun(ctx context.Context) (time.Time, error) {
	archive, err := readOptional(f.options.path(f.options.archiveFile))
	if err != nil {
		return time.Time{}, err
	}
	last, ok := docs.LastUpdated(archive)
	if !ok {
		logging.FromContext(ctx).Debug().
			Str("path", f.options.archiveFile).
			Msg("No previous run recorded, nothing is reported as newly archived")
		return time.Time{}, nil
	}
	return last, nil
}

// render produces the README and archive documents for a result.
func (f *finder) render(ctx context.Context, result *reconciler.Result) (Outputs, error) {
	renderer := docs.NewRenderer(result.Metadata)

	existing, err := readOptional(f.options.path(f.options.readmeFile))
	if err != nil {
		return Outputs{}, err
	}

	readme, err := renderer.Readme(existing, result.Active)
	if err != nil {
		// Missing markers leave the README as the maintainer wrote it.
		logging.FromContext(ctx).Warn().Err(err).Str("path", f.options.readmeFile).Msg("README left untouched")
		readme = nil
	}

	archive, err := renderer.Archive(result.Archived, result.Metadata.Now)
	if err != nil {
		return Outputs{}, err
	}

	return Outputs{Readme: readme, Archive: archive}, nil
}
