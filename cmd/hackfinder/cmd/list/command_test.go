package list

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder/internal/cmd/application"
	"github.com/agentstation/hackfinder/internal/cmd/cmdtest"
	"github.com/agentstation/hackfinder/internal/cmd/output"
)

func execute(t *testing.T, app application.Application, args ...string) string {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	cmdtest.SeedState(t, dir, cmdtest.Listings())
	app := cmdtest.Mock(t, dir)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name:    "active",
			want:    []string{"TreeHacks 2025", "Global AI Jam", "February 14-16, 2025"},
			notWant: []string{"Cal Hacks 10.0", "Hack Chicago"},
		},
		{
			name:    "archived",
			args:    []string{"--archived"},
			want:    []string{"Cal Hacks 10.0"},
			notWant: []string{"TreeHacks 2025"},
		},
		{
			name:    "match",
			args:    []string{"--match", "stanford"},
			want:    []string{"TreeHacks 2025"},
			notWant: []string{"Global AI Jam"},
		},
		{
			name: "all",
			args: []string{"--all"},
			want: []string{"TreeHacks 2025", "Hack Chicago", output.GroupOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := execute(t, app, tt.args...)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestListEmptyState(t *testing.T) {
	out := execute(t, cmdtest.Mock(t, t.TempDir()))
	assert.Contains(t, out, "No hackathons found.")
}

func TestListJSON(t *testing.T) {
	dir := t.TempDir()
	cmdtest.SeedState(t, dir, cmdtest.Listings())
	app := cmdtest.Mock(t, dir)
	app.OutputFormatFunc = func() string { return "json" }

	var listing output.Listing
	require.NoError(t, json.Unmarshal([]byte(execute(t, app)), &listing))

	require.Len(t, listing.Physical, 1)
	assert.Equal(t, "TreeHacks 2025", listing.Physical[0].Name)
	require.Len(t, listing.Online, 1)
	assert.Empty(t, listing.Other)
}
