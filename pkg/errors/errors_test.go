package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/hackfinder/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("source", "devpost")
	assert.Equal(t, "source with ID devpost not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))

	wrapped := errors.Join(errors.New("failed"), err)
	assert.True(t, pkgerrors.IsNotFound(wrapped))
}

func TestValidationError(t *testing.T) {
	t.Run("with record and field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("TreeHacks 2025", "end_date", "2025-02-10", "end date is before start date")
		assert.Equal(t, `validation failed for "TreeHacks 2025": field end_date: end date is before start date`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without record", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "archive window must be positive"}
		assert.Equal(t, "validation failed: archive window must be positive", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestFetchError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		unavailable bool
		rateLimited bool
		keyRequired bool
	}{
		{name: "server error", status: 502, unavailable: true},
		{name: "network error", status: 0, unavailable: true},
		{name: "rate limited", status: 429, rateLimited: true},
		{name: "unauthorized", status: 401, keyRequired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewFetchError("devpost", tt.status, "boom")
			assert.Contains(t, err.Error(), "devpost")
			assert.Equal(t, tt.unavailable, pkgerrors.IsSourceUnavailable(err))
			assert.Equal(t, tt.rateLimited, pkgerrors.IsRateLimited(err))
			assert.Equal(t, tt.keyRequired, errors.Is(err, pkgerrors.ErrAPIKeyRequired))
		})
	}

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("connection refused")
		err := pkgerrors.WrapFetch("mlh", "https://mlh.io/seasons/2025/events", base)
		var fetchErr *pkgerrors.FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, "mlh", fetchErr.Source)
		assert.Equal(t, base, errors.Unwrap(err))
		assert.Nil(t, pkgerrors.WrapFetch("mlh", "", nil))
	})
}

func TestPersistenceError(t *testing.T) {
	base := errors.New("unexpected end of JSON input")
	err := pkgerrors.NewPersistenceError("hackathons.json", "malformed JSON", base)
	assert.Equal(t, "persisted state hackathons.json: malformed JSON", err.Error())
	assert.True(t, pkgerrors.IsCorruptState(err))
	assert.True(t, pkgerrors.IsCorruptState(fmt.Errorf("load: %w", err)))
	assert.Equal(t, base, err.Unwrap())
}

func TestIOError(t *testing.T) {
	base := errors.New("disk full")
	err := pkgerrors.WrapIO("write", "/data/README.md", base)
	var ioErr *pkgerrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Operation)
	assert.Equal(t, "/data/README.md", ioErr.Path)
	assert.Contains(t, err.Error(), "disk full")
	assert.Nil(t, pkgerrors.WrapIO("write", "x", nil))
}

func TestParseError(t *testing.T) {
	err := pkgerrors.NewParseError("markdown", "README.md", "TABLE_START marker not found", nil)
	assert.Equal(t, "parse error in markdown file README.md: TABLE_START marker not found", err.Error())

	err = pkgerrors.NewParseError("date", "", "unrecognised range", nil)
	assert.Equal(t, "date parse error: unrecognised range", err.Error())
}

func TestProcessError(t *testing.T) {
	base := errors.New("exit status 1")
	err := pkgerrors.NewProcessError("install crontab", "crontab -", "no crontab for user", base)
	assert.Contains(t, err.Error(), "install crontab")
	assert.Contains(t, err.Error(), "no crontab for user")
	assert.Equal(t, base, err.Unwrap())
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("sources", "unknown kind \"rss\"", nil)
	assert.Equal(t, `configuration error in sources: unknown kind "rss"`, err.Error())
}
