package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder/internal/transport"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/logging"
)

const fakeKind Kind = "fake"

type fakeSource struct {
	cfg Config
}

func (f *fakeSource) ID() string   { return f.cfg.ID }
func (f *fakeSource) Name() string { return f.cfg.DisplayName() }
func (f *fakeSource) Fetch(context.Context) ([]hackathons.Hackathon, error) {
	return nil, nil
}

func init() {
	Register(fakeKind, func(cfg Config, _ ...transport.Option) Source {
		return &fakeSource{cfg: cfg}
	})
}

func TestDefaultConfigs(t *testing.T) {
	configs, err := DefaultConfigs()
	require.NoError(t, err)

	ids := make([]string, 0, len(configs))
	for _, cfg := range configs {
		ids = append(ids, cfg.ID)
		assert.True(t, cfg.Enabled, cfg.ID)
		assert.NotEmpty(t, cfg.Platform, cfg.ID)
	}
	assert.Equal(t, []string{"devpost", "mlh", "luma", "devevents"}, ids)

	luma := configs[2]
	assert.Equal(t, KindLuma, luma.Kind)
	assert.True(t, luma.APIKeyRequired)
	require.NotNil(t, luma.APIKey)
	assert.Equal(t, "LUMA_API_KEY", luma.APIKey.Name)
	assert.Equal(t, "x-luma-api-key", luma.APIKey.Header)
	assert.Empty(t, luma.APIKeyValue)
}

func TestParseConfigsErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "- id: [unterminated"},
		{name: "missing id", yaml: "- kind: mlh\n  url: https://mlh.io"},
		{name: "missing kind", yaml: "- id: mlh\n  url: https://mlh.io"},
		{name: "relative url", yaml: "- id: mlh\n  kind: mlh\n  url: /events"},
		{name: "required key without env", yaml: "- id: luma\n  kind: luma\n  url: https://api.lu.ma\n  api_key_required: true"},
		{name: "duplicate ids", yaml: "- id: mlh\n  kind: mlh\n  url: https://mlh.io\n- id: mlh\n  kind: mlh\n  url: https://mlh.io"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfigs([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := "- id: campus\n  name: Campus Feed\n  kind: fake\n  url: https://campus.example.edu/hackathons\n  platform: Campus\n  enabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	configs, err := LoadConfigs(path)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "Campus Feed", configs[0].DisplayName())

	_, err = LoadConfigs(filepath.Join(t.TempDir(), "missing.yaml"))
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadAPIKey(t *testing.T) {
	t.Setenv("HACKFINDER_TEST_KEY", "from-env")

	cfg := Config{ID: "x", APIKey: &APIKey{Name: "HACKFINDER_TEST_KEY"}}
	cfg.LoadAPIKey()
	assert.Equal(t, "from-env", cfg.APIKeyValue)

	preset := Config{ID: "x", APIKey: &APIKey{Name: "HACKFINDER_TEST_KEY"}, APIKeyValue: "explicit"}
	preset.LoadAPIKey()
	assert.Equal(t, "explicit", preset.APIKeyValue)

	none := Config{ID: "x"}
	none.LoadAPIKey()
	assert.False(t, none.HasAPIKey())
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Config{ID: "x", Kind: "gopher-events"})
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "sources", cfgErr.Component)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, cfgErr.Err.Error(), "source kind with ID gopher-events not found")
}

func TestBuild(t *testing.T) {
	t.Setenv("HACKFINDER_MISSING_KEY", "")
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	configs := []Config{
		{ID: "one", Kind: fakeKind, URL: "https://one.example.com", Enabled: true},
		{ID: "off", Kind: fakeKind, URL: "https://off.example.com", Enabled: false},
		{ID: "unknown", Kind: "gopher-events", URL: "https://unknown.example.com", Enabled: true},
		{ID: "locked", Kind: fakeKind, URL: "https://locked.example.com", Enabled: true,
			APIKey: &APIKey{Name: "HACKFINDER_MISSING_KEY"}, APIKeyRequired: true},
	}

	built := Build(ctx, configs)
	require.Len(t, built, 1)
	assert.Equal(t, "one", built[0].ID())

	tl.AssertContains(t, "Skipping source")
	tl.AssertContains(t, "HACKFINDER_MISSING_KEY")
}

func TestKinds(t *testing.T) {
	assert.True(t, HasKind(fakeKind))
	assert.Contains(t, Kinds(), fakeKind)
	assert.False(t, HasKind("gopher-events"))
}

func TestConfigAuthenticator(t *testing.T) {
	cfg := Config{ID: "luma", APIKey: &APIKey{Name: "LUMA_API_KEY", Header: "x-luma-api-key"}}
	_, ok := cfg.Authenticator().(*transport.HeaderAuth)
	assert.True(t, ok)

	bare := Config{ID: "mlh"}
	_, ok = bare.Authenticator().(*transport.BearerAuth)
	assert.True(t, ok)
}
