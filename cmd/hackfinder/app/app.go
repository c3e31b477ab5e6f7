// Package app provides the application context and dependency management
// for the hackfinder CLI. It centralizes configuration, logging and the
// lazily created finder.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/hackfinder"
	"github.com/agentstation/hackfinder/internal/cmd/application"
	"github.com/agentstation/hackfinder/internal/sources"
	"github.com/agentstation/hackfinder/pkg/errors"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the hackfinder application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Finder instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	finder hackfinder.Finder
}

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// DataDir returns the directory holding the state file and documents.
func (a *App) DataDir() string {
	return a.config.DataDir
}

// Finder returns the finder. Without options it returns the cached default
// instance, creating it on first use. With options it returns a new instance
// configured from the application config plus opts.
func (a *App) Finder(opts ...hackfinder.Option) (hackfinder.Finder, error) {
	if len(opts) > 0 {
		return a.newFinder(opts...)
	}

	a.mu.RLock()
	if a.finder != nil {
		f := a.finder
		a.mu.RUnlock()
		return f, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.finder != nil {
		return a.finder, nil
	}

	f, err := a.newFinder()
	if err != nil {
		return nil, err
	}
	a.finder = f
	return f, nil
}

func (a *App) newFinder(extra ...hackfinder.Option) (hackfinder.Finder, error) {
	opts, err := a.finderOptions()
	if err != nil {
		return nil, err
	}

	f, err := hackfinder.New(append(opts, extra...)...)
	if err != nil {
		return nil, errors.NewConfigError("finder", "invalid configuration", err)
	}
	return f, nil
}

// finderOptions constructs finder options from the app configuration.
func (a *App) finderOptions() ([]hackfinder.Option, error) {
	configs, err := a.sourceConfigs()
	if err != nil {
		return nil, err
	}

	return []hackfinder.Option{
		hackfinder.WithDataDir(a.config.DataDir),
		hackfinder.WithArchiveAfter(a.config.ArchiveAfter),
		hackfinder.WithCaliforniaOnly(a.config.CaliforniaOnly),
		hackfinder.WithFetchTimeout(a.config.FetchTimeout),
		hackfinder.WithSourceConfigs(configs),
	}, nil
}

// sourceConfigs loads the configured sources file, or the embedded one, and
// applies API keys from the config file.
func (a *App) sourceConfigs() ([]sources.Config, error) {
	var (
		configs []sources.Config
		err     error
	)
	if a.config.SourcesFile != "" {
		configs, err = sources.LoadConfigs(a.config.SourcesFile)
	} else {
		configs, err = sources.DefaultConfigs()
	}
	if err != nil {
		return nil, err
	}

	for i := range configs {
		key := configs[i].APIKey
		if key == nil || configs[i].APIKeyValue != "" {
			continue
		}
		configs[i].APIKeyValue = a.config.APIKeys[key.Name]
	}
	return configs, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewConfigError("app", "config must not be nil", errors.ErrInvalidInput)
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithFinder sets a custom finder instance (useful for testing).
func WithFinder(f hackfinder.Finder) Option {
	return func(a *App) error {
		a.finder = f
		return nil
	}
}
