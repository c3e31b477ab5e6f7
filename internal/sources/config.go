package sources

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/hackfinder/internal/transport"
	"github.com/agentstation/hackfinder/pkg/errors"
)

//go:embed sources.yaml
var defaultConfig []byte

// Kind selects the parser used for a source.
type Kind string

// Supported source kinds.
const (
	KindDevpost   Kind = "devpost"
	KindMLH       Kind = "mlh"
	KindLuma      Kind = "luma"
	KindDevEvents Kind = "devevents"
)

// String returns the kind as a string.
func (k Kind) String() string {
	return string(k)
}

// APIKey describes where a source's key comes from and how it is sent.
type APIKey struct {
	// Name is the environment variable holding the key.
	Name       string `yaml:"name" json:"name"`
	Header     string `yaml:"header,omitempty" json:"header,omitempty"`
	Scheme     string `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	QueryParam string `yaml:"query_param,omitempty" json:"query_param,omitempty"`
}

// Config is one entry of sources.yaml.
type Config struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	Kind           Kind    `yaml:"kind" json:"kind"`
	URL            string  `yaml:"url" json:"url"`
	Platform       string  `yaml:"platform" json:"platform"`
	Enabled        bool    `yaml:"enabled" json:"enabled"`
	APIKey         *APIKey `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	APIKeyRequired bool    `yaml:"api_key_required,omitempty" json:"api_key_required,omitempty"`

	// APIKeyValue is the loaded key. It is never serialized.
	APIKeyValue string `yaml:"-" json:"-"`
}

// DefaultConfigs returns the embedded source configuration.
func DefaultConfigs() ([]Config, error) {
	return ParseConfigs(defaultConfig)
}

// LoadConfigs reads a source configuration file.
func LoadConfigs(path string) ([]Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator's configuration
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseConfigs(data)
}

// ParseConfigs decodes and validates a YAML list of sources.
func ParseConfigs(data []byte) ([]Config, error) {
	var configs []Config
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, errors.WrapParse("yaml", "sources.yaml", err)
	}

	seen := make(map[string]bool, len(configs))
	for i := range configs {
		if err := configs[i].Validate(); err != nil {
			return nil, err
		}
		if seen[configs[i].ID] {
			return nil, &errors.ConfigError{
				Component: "sources",
				Message:   fmt.Sprintf("duplicate source id %q", configs[i].ID),
			}
		}
		seen[configs[i].ID] = true
	}
	return configs, nil
}

// Validate checks that the entry names a source that can be built.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.NewValidationError("source", "id", c.ID, "id is required")
	}
	if c.Kind == "" {
		return errors.NewValidationError(c.ID, "kind", c.Kind, "kind is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NewValidationError(c.ID, "url", c.URL, "must be an absolute URL")
	}
	if c.APIKeyRequired && (c.APIKey == nil || c.APIKey.Name == "") {
		return errors.NewValidationError(c.ID, "api_key", nil, "a required key needs an environment variable name")
	}
	return nil
}

// DisplayName returns the name, falling back to the id.
func (c *Config) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// LoadAPIKey reads the key from its environment variable. A set key
// value is kept.
func (c *Config) LoadAPIKey() {
	if c.APIKeyValue != "" || c.APIKey == nil || c.APIKey.Name == "" {
		return
	}
	c.APIKeyValue = os.Getenv(c.APIKey.Name)
}

// HasAPIKey reports whether a key value is loaded.
func (c *Config) HasAPIKey() bool {
	return c.APIKeyValue != ""
}

// Authenticator returns how the key is attached to requests.
func (c *Config) Authenticator() transport.Authenticator {
	if c.APIKey == nil {
		return transport.NewAuthenticator("", "", "")
	}
	return transport.NewAuthenticator(c.APIKey.Header, c.APIKey.Scheme, c.APIKey.QueryParam)
}

// Transport returns an HTTP client for the source with its key applied.
func (c *Config) Transport(opts ...transport.Option) *transport.Client {
	all := append([]transport.Option{transport.WithAPIKey(c.APIKeyValue)}, opts...)
	return transport.New(c.ID, c.Authenticator(), all...)
}
