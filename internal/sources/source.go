// Package sources defines the listing sources an update run fetches
// hackathons from, and the registry their implementations join.
package sources

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/agentstation/hackfinder/internal/transport"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/logging"
)

// Source fetches hackathon listings from one site.
type Source interface {
	// ID returns the configured source id.
	ID() string

	// Name returns a human-readable name.
	Name() string

	// Fetch returns the listings currently published by the source.
	// Records may lack dates when the site does not publish them.
	Fetch(ctx context.Context) ([]hackathons.Hackathon, error)
}

// Factory builds a source from its configuration.
type Factory func(cfg Config, opts ...transport.Option) Source

var (
	mu        sync.RWMutex
	factories = make(map[Kind]Factory)
)

// Register adds a factory for a kind.
// This is called by source packages in their init() functions.
func Register(kind Kind, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = factory
}

// HasKind checks if a kind has a registered factory.
func HasKind(kind Kind) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, exists := factories[kind]
	return exists
}

// Kinds returns the registered kinds in sorted order.
func Kinds() []Kind {
	mu.RLock()
	defer mu.RUnlock()

	kinds := make([]Kind, 0, len(factories))
	for kind := range factories {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// New builds the source described by cfg. The API key is loaded from the
// environment when not already set.
func New(cfg Config, opts ...transport.Option) (Source, error) {
	mu.RLock()
	factory, exists := factories[cfg.Kind]
	mu.RUnlock()

	if !exists {
		return nil, &errors.ConfigError{
			Component: "sources",
			Message:   fmt.Sprintf("no source registered for kind %q", cfg.Kind),
			Err:       errors.NewNotFoundError("source kind", string(cfg.Kind)),
		}
	}

	cfg.LoadAPIKey()
	if cfg.APIKeyRequired && !cfg.HasAPIKey() {
		return nil, &errors.ConfigError{
			Component: cfg.ID,
			Message:   fmt.Sprintf("environment variable %s is not set", cfg.APIKey.Name),
			Err:       errors.ErrAPIKeyRequired,
		}
	}

	return factory(cfg, opts...), nil
}

// Build creates every enabled source. Sources that cannot be built, such as
// those missing a required API key, are skipped with a warning.
func Build(ctx context.Context, configs []Config, opts ...transport.Option) []Source {
	logger := logging.FromContext(ctx)

	built := make([]Source, 0, len(configs))
	for _, cfg := range configs {
		if !cfg.Enabled {
			logger.Debug().Str("source", cfg.ID).Msg("Source disabled")
			continue
		}

		src, err := New(cfg, opts...)
		if err != nil {
			logger.Warn().Err(err).Str("source", cfg.ID).Msg("Skipping source")
			continue
		}
		built = append(built, src)
	}
	return built
}
