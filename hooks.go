package hackfinder

import (
	"sync"

	"github.com/agentstation/hackfinder/pkg/differ"
	"github.com/agentstation/hackfinder/pkg/hackathons"
)

// Hook function types for hackathon events
type (
	// HackathonAddedHook is called when a listing is seen for the first time
	HackathonAddedHook func(h hackathons.Hackathon)

	// HackathonUpdatedHook is called when a known listing changes
	HackathonUpdatedHook func(old, new hackathons.Hackathon)

	// HackathonArchivedHook is called when a listing moves to the archive
	HackathonArchivedHook func(h hackathons.Hackathon)
)

// Hooks registers callbacks for changes made by update runs. Callbacks run
// after the outputs were written, and also on dry runs.
type Hooks interface {
	OnHackathonAdded(fn HackathonAddedHook)
	OnHackathonUpdated(fn HackathonUpdatedHook)
	OnHackathonArchived(fn HackathonArchivedHook)
}

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*finder)(nil)

// hooks manages event callbacks for state changes
type hooks struct {
	mu                  sync.RWMutex
	onHackathonAdded    []HackathonAddedHook
	onHackathonUpdated  []HackathonUpdatedHook
	onHackathonArchived []HackathonArchivedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnHackathonAdded registers a callback for added listings.
func (f *finder) OnHackathonAdded(fn HackathonAddedHook) {
	f.hooks.mu.Lock()
	defer f.hooks.mu.Unlock()
	f.hooks.onHackathonAdded = append(f.hooks.onHackathonAdded, fn)
}

// OnHackathonUpdated registers a callback for updated listings.
func (f *finder) OnHackathonUpdated(fn HackathonUpdatedHook) {
	f.hooks.mu.Lock()
	defer f.hooks.mu.Unlock()
	f.hooks.onHackathonUpdated = append(f.hooks.onHackathonUpdated, fn)
}

// OnHackathonArchived registers a callback for newly archived listings.
func (f *finder) OnHackathonArchived(fn HackathonArchivedHook) {
	f.hooks.mu.Lock()
	defer f.hooks.mu.Unlock()
	f.hooks.onHackathonArchived = append(f.hooks.onHackathonArchived, fn)
}

// trigger calls the registered hooks for every entry of the changeset.
func (h *hooks) trigger(changeset *differ.Changeset) {
	if changeset == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, added := range changeset.Added {
		for _, hook := range h.onHackathonAdded {
			hook(added)
		}
	}
	for _, update := range changeset.Updated {
		for _, hook := range h.onHackathonUpdated {
			hook(update.Existing, update.New)
		}
	}
	for _, archived := range changeset.Archived {
		for _, hook := range h.onHackathonArchived {
			hook(archived)
		}
	}
}
