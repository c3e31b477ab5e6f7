package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/reconciler"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		wantType    PatternType
		wantErr     bool
	}{
		{name: "glob", pattern: "*hacks*", patternType: Glob, wantType: Glob},
		{name: "regex", pattern: "^tree.*", patternType: Regex, wantType: Regex},
		{name: "invalid regex", pattern: "[unclosed", patternType: Regex, wantErr: true},
		{name: "auto detects glob", pattern: "cal*", patternType: Auto, wantType: Glob},
		{name: "auto detects regex", pattern: `hacks?\s+\d+$`, patternType: Auto, wantType: Regex},
		{name: "auto plain word is glob", pattern: "stanford", patternType: Auto, wantType: Glob},
		{name: "unsupported type", pattern: "x", patternType: PatternType(42), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"hacks", "TreeHacks 2025", true},
		{"HACKS", "treehacks", true},
		{"tree*", "TreeHacks 2025", true},
		{"tree*", "Big TreeHacks", false},
		{"*20?5", "TreeHacks 2025", true},
		{"[ct]*", "Cal Hacks", true},
		{"[!ct]*", "Cal Hacks", false},
		{`^cal hacks \d+`, "Cal Hacks 10.0", true},
		{`hacks$`, "Cal Hacks 10.0", false},
		{"a.b", "axb", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			m, err := New(Auto, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestGlobToRegex(t *testing.T) {
	assert.Equal(t, `^.*\.md$`, GlobToRegex("*.md"))
	assert.Equal(t, `^a.c$`, GlobToRegex("a?c"))
	assert.Equal(t, `^[^ab]x$`, GlobToRegex("[!ab]x"))
	assert.Equal(t, `^\*$`, GlobToRegex(`\*`))
}

func TestFilterGroups(t *testing.T) {
	groups := reconciler.Groups{
		Physical: []hackathons.Hackathon{
			{Name: "TreeHacks 2025", Location: "Stanford, CA", Platform: "Devpost"},
			{Name: "LA Hacks", Location: "Los Angeles, CA", Platform: "MLH", Tags: []string{"ai"}},
		},
		Online: []hackathons.Hackathon{
			{Name: "Global AI Jam", Location: hackathons.OnlineLocation, Platform: "Lu.ma"},
		},
		Other: []hackathons.Hackathon{
			{Name: "Hack Chicago", Location: "Chicago, IL", Platform: "MLH"},
		},
	}

	t.Run("by location", func(t *testing.T) {
		m, err := New(Auto, "stanford")
		require.NoError(t, err)
		got := m.FilterGroups(groups)
		require.Len(t, got.Physical, 1)
		assert.Equal(t, "TreeHacks 2025", got.Physical[0].Name)
		assert.Empty(t, got.Online)
		assert.Empty(t, got.Other)
	})

	t.Run("by platform", func(t *testing.T) {
		m, err := New(Glob, "mlh")
		require.NoError(t, err)
		got := m.FilterGroups(groups)
		assert.Len(t, got.Physical, 1)
		assert.Len(t, got.Other, 1)
	})

	t.Run("by tag", func(t *testing.T) {
		m, err := New(Regex, "^ai$")
		require.NoError(t, err)
		got := m.FilterGroups(groups)
		require.Len(t, got.Physical, 1)
		assert.Equal(t, "LA Hacks", got.Physical[0].Name)
		assert.Empty(t, got.Online)
	})
}
