package hackfinder

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/hackfinder/internal/sources"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/logging"
)

// SourceResult reports how one source fared during a run.
type SourceResult struct {
	ID       string
	Name     string
	Count    int
	Duration time.Duration
	Err      error
}

// buildSources returns the explicitly configured sources or builds them from
// the source configuration.
func (f *finder) buildSources(ctx context.Context) ([]sources.Source, error) {
	if f.options.sources != nil {
		return f.options.sources, nil
	}

	configs := f.options.sourceConfigs
	if configs == nil {
		var err error
		if configs, err = sources.DefaultConfigs(); err != nil {
			return nil, err
		}
	}
	return sources.Build(ctx, configs, f.options.transport...), nil
}

// fetch reads every source in turn, each under its own timeout. A failing
// source is recorded and skipped; one that ran out of time wraps ErrTimeout.
// When every attempted source fails the returned error wraps
// ErrAllSourcesFailed.
func (f *finder) fetch(ctx context.Context, srcs []sources.Source) ([]hackathons.Hackathon, []SourceResult, error) {
	logger := logging.FromContext(ctx)

	var (
		fetched []hackathons.Hackathon
		results = make([]SourceResult, 0, len(srcs))
		errs    []error
	)
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return nil, results, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
		}

		logger.Info().Str("source", src.ID()).Msg("Fetching")

		start := time.Now()
		srcCtx, cancel := context.WithTimeout(logging.WithSource(ctx, src.ID()), f.options.fetchTimeout)
		records, err := src.Fetch(srcCtx)
		if err != nil && ctx.Err() == nil && errors.Is(srcCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", errors.ErrTimeout, f.options.fetchTimeout, err)
		}
		cancel()

		result := SourceResult{ID: src.ID(), Name: src.Name(), Count: len(records), Duration: time.Since(start), Err: err}
		results = append(results, result)

		if err != nil {
			logger.Warn().Err(err).Str("source", src.ID()).Msg("Source fetch failed")
			errs = append(errs, err)
			continue
		}

		logger.Info().
			Str("source", src.ID()).
			Int("hackathons", len(records)).
			Dur("duration", result.Duration).
			Msg("Fetched")
		fetched = append(fetched, records...)
	}

	if len(srcs) > 0 && len(errs) == len(srcs) {
		return nil, results, errors.Join(append([]error{errors.ErrAllSourcesFailed}, errs...)...)
	}
	return fetched, results, nil
}
