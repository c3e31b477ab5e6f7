package hackfinder

import (
	"time"

	"github.com/agentstation/hackfinder/internal/sources"
	"github.com/agentstation/hackfinder/internal/transport"
	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/errors"
)

// Option is a function that configures a Finder.
type Option func(*options) error

// options holds the configuration of a Finder.
type options struct {
	dataDir     string
	stateFile   string
	readmeFile  string
	archiveFile string

	// sources overrides building sources from sourceConfigs
	sources       []sources.Source
	sourceConfigs []sources.Config
	transport     []transport.Option
	fetchTimeout  time.Duration

	clock          func() time.Time
	archiveAfter   time.Duration
	californiaOnly bool
	dryRun         bool
}

func defaultOptions() *options {
	return &options{
		dataDir:        ".",
		stateFile:      constants.StateFile,
		readmeFile:     constants.ReadmeFile,
		archiveFile:    constants.ArchiveFile,
		fetchTimeout:   constants.SourceFetchTimeout,
		clock:          time.Now,
		archiveAfter:   constants.ArchiveAfter,
		californiaOnly: true,
	}
}

func newOptions(opts ...Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithDataDir sets the directory the state file and documents live in.
func WithDataDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return errors.NewValidationError("", "data_dir", dir, "must not be empty")
		}
		o.dataDir = dir
		return nil
	}
}

// WithStateFile sets the state file name, relative to the data directory
// unless absolute.
func WithStateFile(name string) Option {
	return func(o *options) error {
		if name == "" {
			return errors.NewValidationError("", "state_file", name, "must not be empty")
		}
		o.stateFile = name
		return nil
	}
}

// WithReadmeFile sets the README file name.
func WithReadmeFile(name string) Option {
	return func(o *options) error {
		if name == "" {
			return errors.NewValidationError("", "readme_file", name, "must not be empty")
		}
		o.readmeFile = name
		return nil
	}
}

// WithArchiveFile sets the archive document file name.
func WithArchiveFile(name string) Option {
	return func(o *options) error {
		if name == "" {
			return errors.NewValidationError("", "archive_file", name, "must not be empty")
		}
		o.archiveFile = name
		return nil
	}
}

// WithSources fetches from the given sources instead of the configured ones.
func WithSources(srcs ...sources.Source) Option {
	return func(o *options) error {
		o.sources = append([]sources.Source{}, srcs...)
		return nil
	}
}

// WithSourceConfigs builds sources from the given configuration instead of
// the embedded sources.yaml.
func WithSourceConfigs(configs []sources.Config) Option {
	return func(o *options) error {
		o.sourceConfigs = configs
		return nil
	}
}

// WithTransportOptions configures the HTTP client of built sources.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) error {
		o.transport = append(o.transport, opts...)
		return nil
	}
}

// WithFetchTimeout bounds each source fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.NewValidationError("", "fetch_timeout", d, "must be positive")
		}
		o.fetchTimeout = d
		return nil
	}
}

// WithClock sets the function returning the current time.
func WithClock(clock func() time.Time) Option {
	return func(o *options) error {
		if clock == nil {
			return errors.NewValidationError("", "clock", nil, "must not be nil")
		}
		o.clock = clock
		return nil
	}
}

// WithArchiveAfter sets how long after its end a hackathon is archived.
// The reconciler validates the window when an update runs.
func WithArchiveAfter(d time.Duration) Option {
	return func(o *options) error {
		o.archiveAfter = d
		return nil
	}
}

// WithCaliforniaOnly restricts the physical table to California events.
func WithCaliforniaOnly(enabled bool) Option {
	return func(o *options) error {
		o.californiaOnly = enabled
		return nil
	}
}

// WithDryRun renders every output without writing files.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}
