package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Default().Info().Msg("info message")
	logging.Default().Warn().Str("source", "devpost").Msg("warning message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, `"source":"devpost"`)
}

func TestConfiguration(t *testing.T) {
	configs := []struct {
		name   string
		config *logging.Config
		check  func(t *testing.T, output string)
	}{
		{
			name:   "debug level",
			config: &logging.Config{Level: "debug", Format: "json", Output: "discard"},
			check: func(t *testing.T, output string) {
				assert.Contains(t, output, `"level":"debug"`)
			},
		},
		{
			name:   "error level only",
			config: &logging.Config{Level: "error", Format: "json", Output: "discard"},
			check: func(t *testing.T, output string) {
				assert.NotContains(t, output, `"level":"info"`)
				assert.Contains(t, output, `"level":"error"`)
			},
		},
	}

	for _, tc := range configs {
		t.Run(tc.name, func(t *testing.T) {
			original := zerolog.GlobalLevel()
			t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(tc.config).Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			tc.check(t, buf.String())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.True(t, cfg.NoColor)

	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })
	logger := logging.NewLoggerFromConfig(nil)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestFileOutput(t *testing.T) {
	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

	path := filepath.Join(t.TempDir(), "hackathon_updater.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{Level: "info", Format: "json", Output: path})
	logger.Info().Msg("first run")
	logger.Info().Msg("second run")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(content), "\n"))
	assert.Contains(t, string(content), "second run")
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRunID(ctx, "run-123")
	ctx = logging.WithSource(ctx, "mlh")
	ctx = logging.WithOperation(ctx, "fetch")
	ctx = logging.WithField(ctx, "records", 4)

	logging.FromContext(ctx).Info().Msg("fetched")

	tl.AssertContains(t, `"run_id":"run-123"`)
	tl.AssertContains(t, `"source":"mlh"`)
	tl.AssertContains(t, `"operation":"fetch"`)
	tl.AssertContains(t, `"records":4`)
	assert.Len(t, tl.Lines(), 1)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Default().Warn().Msg("captured")
	tl.AssertContains(t, "captured")
}
