package cron

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder/internal/cmd/application"
	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/errors"
)

// memCrontab keeps the crontab in memory.
type memCrontab struct {
	content string
	writes  int
	readErr error
}

func (m *memCrontab) Read(context.Context) (string, error) { return m.content, m.readErr }

func (m *memCrontab) Write(_ context.Context, content string) error {
	m.content = content
	m.writes++
	return nil
}

func TestEntry(t *testing.T) {
	got := Entry("/usr/local/bin/hackfinder", "/srv/hack's")
	assert.Equal(t,
		`0 0 * * * cd '/srv/hack'\''s' && LOG_OUTPUT=hackfinder.log '/usr/local/bin/hackfinder' update`,
		got)
}

func TestInstallIsIdempotent(t *testing.T) {
	tab := &memCrontab{content: "30 5 * * * /usr/bin/backup"}
	entry := Entry("/bin/hackfinder", "/data")

	changed, err := Install(context.Background(), tab, entry)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = Install(context.Background(), tab, entry)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.Equal(t, 1, tab.writes)
	assert.Equal(t,
		"30 5 * * * /usr/bin/backup\n"+constants.CronComment+"\n"+entry+"\n",
		tab.content)
}

func TestInstallReadError(t *testing.T) {
	tab := &memCrontab{readErr: errors.NewProcessError("read crontab", "crontab -l", "", errors.New("boom"))}

	_, err := Install(context.Background(), tab, "entry")
	require.Error(t, err)
	assert.Zero(t, tab.writes)
}

func TestInstalled(t *testing.T) {
	entry := Entry("/bin/hackfinder", "/data")
	assert.True(t, Installed("# header\n  "+entry+"  \n", entry))
	assert.False(t, Installed("# "+entry+"\n", entry))
	assert.False(t, Installed("", entry))
}

func execute(t *testing.T, tab Crontab, args ...string) string {
	t.Helper()
	app := &application.Mock{DataDirFunc: func() string { return "/data" }}
	cmd := NewCommand(app, WithCrontab(tab), WithExecutable("/bin/hackfinder"))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestCommands(t *testing.T) {
	tab := &memCrontab{}
	entry := Entry("/bin/hackfinder", "/data")

	out := execute(t, tab, "show")
	assert.Contains(t, out, entry)
	assert.Contains(t, out, "Not installed")

	out = execute(t, tab, "install")
	assert.Contains(t, out, "Cron job installed")

	out = execute(t, tab, "install")
	assert.Contains(t, out, "already installed")

	out = execute(t, tab, "show")
	assert.Contains(t, out, "Installed")
	assert.Equal(t, 1, tab.writes)
}

// fakeCrontabBin writes a shell script standing in for crontab(1).
func fakeCrontabBin(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	path := filepath.Join(t.TempDir(), "crontab")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestSystemCrontab(t *testing.T) {
	t.Run("no crontab reads empty", func(t *testing.T) {
		tab := &SystemCrontab{Bin: fakeCrontabBin(t, `echo "no crontab for tester" >&2; exit 1`)}
		content, err := tab.Read(context.Background())
		require.NoError(t, err)
		assert.Empty(t, content)
	})

	t.Run("read failure is a process error", func(t *testing.T) {
		tab := &SystemCrontab{Bin: fakeCrontabBin(t, `echo "permission denied" >&2; exit 2`)}
		_, err := tab.Read(context.Background())
		var procErr *errors.ProcessError
		require.True(t, errors.As(err, &procErr))
		assert.Contains(t, procErr.Output, "permission denied")
	})

	t.Run("write pipes content to stdin", func(t *testing.T) {
		dump := filepath.Join(t.TempDir(), "installed")
		tab := &SystemCrontab{Bin: fakeCrontabBin(t, `cat > "`+dump+`"`)}
		require.NoError(t, tab.Write(context.Background(), "0 0 * * * true\n"))

		data, err := os.ReadFile(dump)
		require.NoError(t, err)
		assert.Equal(t, "0 0 * * * true\n", string(data))
	})

	t.Run("write failure carries output", func(t *testing.T) {
		tab := &SystemCrontab{Bin: fakeCrontabBin(t, `echo "bad minute" ; exit 1`)}
		err := tab.Write(context.Background(), "x")
		var procErr *errors.ProcessError
		require.True(t, errors.As(err, &procErr))
		assert.True(t, strings.Contains(procErr.Output, "bad minute"))
	})
}
