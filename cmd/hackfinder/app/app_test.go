package app

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder"
	"github.com/agentstation/hackfinder/internal/cmd/cmdtest"
	"github.com/agentstation/hackfinder/pkg/constants"
)

func testConfig(dir string) *Config {
	return &Config{
		DataDir:        dir,
		ArchiveAfter:   constants.ArchiveAfter,
		CaliforniaOnly: true,
		FetchTimeout:   time.Second,
		APIKeys:        map[string]string{},
		LogOutput:      "discard",
	}
}

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	logger := zerolog.Nop()
	base := []Option{WithConfig(testConfig(t.TempDir())), WithLogger(&logger)}
	app, err := New("1.0.0", "abc123", "2025-01-01", "test", append(base, opts...)...)
	require.NoError(t, err)
	return app
}

func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2025-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

func TestApp_WithConfigRejectsNil(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := New("dev", "", "", "", WithConfig(nil))
	require.Error(t, err)
}

func TestApp_Finder_Singleton(t *testing.T) {
	app := newTestApp(t)

	f1, err := app.Finder()
	require.NoError(t, err)
	f2, err := app.Finder()
	require.NoError(t, err)
	assert.Same(t, f1, f2)

	f3, err := app.Finder(hackfinder.WithDryRun(true))
	require.NoError(t, err)
	assert.NotSame(t, f1, f3, "finders with options are not cached")
}

func TestApp_Finder_ThreadSafe(t *testing.T) {
	app := newTestApp(t)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]hackfinder.Finder, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			f, err := app.Finder()
			assert.NoError(t, err)
			results[idx] = f
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestApp_Finder_InvalidConfig(t *testing.T) {
	app := newTestApp(t)
	app.config.FetchTimeout = 0

	_, err := app.Finder()
	require.Error(t, err)
}

func TestApp_SourceConfigsApplyAPIKeys(t *testing.T) {
	app := newTestApp(t)
	app.config.APIKeys["LUMA_API_KEY"] = "from-config"

	configs, err := app.sourceConfigs()
	require.NoError(t, err)

	found := false
	for _, cfg := range configs {
		if cfg.ID == "luma" {
			found = true
			assert.Equal(t, "from-config", cfg.APIKeyValue)
		}
	}
	assert.True(t, found, "embedded sources include luma")
}

func TestApp_SourcesFileMissing(t *testing.T) {
	app := newTestApp(t)
	app.config.SourcesFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := app.Finder()
	require.Error(t, err)
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExecute_DefaultRunsUpdate(t *testing.T) {
	dir := t.TempDir()
	src := &cmdtest.Source{SourceID: "devpost", Records: cmdtest.Listings()}
	f, err := hackfinder.New(
		hackfinder.WithDataDir(dir),
		hackfinder.WithSources(src),
		hackfinder.WithClock(func() time.Time { return cmdtest.Now }),
	)
	require.NoError(t, err)

	app := newTestApp(t, WithFinder(f))
	out, err := execute(t, app, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "from 1 sources")
	assert.FileExists(t, filepath.Join(dir, constants.StateFile))
	assert.FileExists(t, filepath.Join(dir, constants.ReadmeFile))
	assert.FileExists(t, filepath.Join(dir, constants.ArchiveFile))
}

func TestExecute_Version(t *testing.T) {
	out, err := execute(t, newTestApp(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hackfinder version 1.0.0")
	assert.Contains(t, out, "commit: abc123")
}

func TestExecute_FlagsUpdateConfig(t *testing.T) {
	app := newTestApp(t)
	dir := t.TempDir()

	_, err := execute(t, app, "version", "-d", dir, "-o", "yaml", "-q")
	require.NoError(t, err)

	assert.Equal(t, dir, app.DataDir())
	assert.Equal(t, "yaml", app.OutputFormat())
	assert.True(t, app.Config().Quiet)
}

func TestExecute_InvalidFormat(t *testing.T) {
	_, err := execute(t, newTestApp(t), "version", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestExecute_UnknownArgument(t *testing.T) {
	_, err := execute(t, newTestApp(t), "bogus")
	require.Error(t, err)
}
