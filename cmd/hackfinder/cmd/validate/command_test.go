package validate

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder/internal/cmd/cmdtest"
	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/errors"
)

func execute(t *testing.T, dir string) (string, error) {
	t.Helper()
	cmd := NewCommand(cmdtest.Mock(t, dir))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(nil)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeState(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.StateFile), []byte(content), constants.FilePermissions))
}

func TestValidateValidState(t *testing.T) {
	dir := t.TempDir()
	cmdtest.SeedState(t, dir, cmdtest.Listings())

	out, err := execute(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed for 4 hackathons")
}

func TestValidateDuplicateRecords(t *testing.T) {
	dir := t.TempDir()
	writeState(t, dir, `[
  {"name": "TreeHacks 2025", "url": "https://treehacks.com", "start_date": "2025-02-14", "end_date": "2025-02-16", "location": "Stanford, CA", "platform": "Devpost"},
  {"name": "treehacks 2025", "url": "https://treehacks.org", "start_date": "2025-02-14", "end_date": "2025-02-16", "location": "Stanford, CA", "platform": "MLH"}
]`)

	out, err := execute(t, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	assert.Contains(t, out, "duplicate hackathon")
}

func TestValidateMalformedState(t *testing.T) {
	dir := t.TempDir()
	writeState(t, dir, `{not json`)

	out, err := execute(t, dir)
	require.Error(t, err)
	assert.Contains(t, out, "malformed JSON")
	assert.NoFileExists(t, filepath.Join(dir, constants.StateFile+constants.BackupSuffix), "validate never writes")
}

func TestValidateMissingStateIsEmpty(t *testing.T) {
	out, err := execute(t, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed for 0 hackathons")
}
