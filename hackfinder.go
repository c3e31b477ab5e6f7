// Package hackfinder keeps a curated list of upcoming hackathons up to date.
// An update run fetches listings from the configured sources, reconciles them
// with the persisted state, and regenerates the README tables, the archive
// document and the state file.
//
// Example usage:
//
//	hf, err := hackfinder.New(
//	    hackfinder.WithDataDir("."),
//	    hackfinder.WithArchiveAfter(90 * 24 * time.Hour),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	hf.OnHackathonArchived(func(h hackathons.Hackathon) {
//	    log.Printf("archived: %s", h.Name)
//	})
//
//	result, err := hf.Update(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package hackfinder

import (
	"context"
	"path/filepath"
	"time"

	"github.com/agentstation/hackfinder/internal/store"
	"github.com/agentstation/hackfinder/pkg/reconciler"

	// Register every listing source
	_ "github.com/agentstation/hackfinder/internal/sources/providers"
)

// Compile-time interface check to ensure proper implementation.
var _ Finder = (*finder)(nil)

// Finder runs update cycles against one data directory.
type Finder interface {
	// Updater fetches, reconciles and writes
	Updater

	// State provides read access to the persisted records
	State

	// Hooks provides access to event callback registration
	Hooks
}

// State reads the persisted hackathons without fetching.
type State interface {
	// Hackathons loads the state file.
	Hackathons(ctx context.Context) (*store.Snapshot, error)

	// Groups loads the state file and classifies it as an update run would.
	Groups(ctx context.Context) (active, archived reconciler.Groups, err error)
}

// finder is the internal implementation of the Finder interface.
type finder struct {
	options *options
	store   *store.Store
	hooks   *hooks
}

// New creates a Finder with the given options.
func New(opts ...Option) (Finder, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &finder{
		options: options,
		store:   store.New(options.path(options.stateFile)),
		hooks:   newHooks(),
	}, nil
}

// Hackathons loads the state file.
func (f *finder) Hackathons(ctx context.Context) (*store.Snapshot, error) {
	return f.store.Load(ctx)
}

// Groups loads the state file and classifies the records at the current time.
func (f *finder) Groups(ctx context.Context) (active, archived reconciler.Groups, err error) {
	snapshot, err := f.store.Load(ctx)
	if err != nil {
		return active, archived, err
	}

	r, err := f.newReconciler(time.Time{})
	if err != nil {
		return active, archived, err
	}
	result, err := r.Reconcile(ctx, snapshot.Records, nil, f.options.now())
	if err != nil {
		return active, archived, err
	}
	return result.Active, result.Archived, nil
}

// newReconciler creates a reconciler with the configured window and policy.
func (f *finder) newReconciler(previousRun time.Time) (reconciler.Reconciler, error) {
	return reconciler.New(
		reconciler.WithArchiveAfter(f.options.archiveAfter),
		reconciler.WithCaliforniaOnly(f.options.californiaOnly),
		reconciler.WithPreviousRun(previousRun),
	)
}

// path resolves a file name against the data directory.
func (o *options) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.dataDir, name)
}

// now returns the current time from the configured clock.
func (o *options) now() time.Time {
	return o.clock()
}
