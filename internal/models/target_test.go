package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget_SupportedActions(t *testing.T) {
	tests := []struct {
		kind TargetKind
		want []Action
	}{
		{KindBinary, []Action{ActionBuild, ActionRun}},
		{KindExample, []Action{ActionBuild, ActionRun}},
		{KindLibrary, []Action{ActionBuild}},
		{KindTest, []Action{ActionBuild, ActionTest}},
		{KindBenchmark, []Action{ActionBuild, ActionBench}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			target := NewTarget("x", []TargetKind{tt.kind}, "src/x.rs", "pkg", "/ws/pkg", "2021")
			assert.Equal(t, tt.want, target.SupportedActions())
		})
	}
}

func TestTarget_NoRecognizedKindSupportsNothing(t *testing.T) {
	target := NewTarget("build-script-build", []TargetKind{"custom-build"}, "build.rs", "pkg", "/ws/pkg", "2021")

	require.Empty(t, target.Kinds)
	assert.Empty(t, target.SupportedActions())
	for _, a := range Actions {
		assert.False(t, target.Supports(a), "action %s", a)
	}
	_, ok := target.KindFor(ActionBuild)
	assert.False(t, ok)
}

func TestTarget_KindForPrefersActionKind(t *testing.T) {
	target := NewTarget("multi", []TargetKind{KindLibrary, KindExample}, "src/lib.rs", "pkg", "/ws/pkg", "")

	kind, ok := target.KindFor(ActionRun)
	require.True(t, ok)
	assert.Equal(t, KindExample, kind)

	kind, ok = target.KindFor(ActionBuild)
	require.True(t, ok)
	assert.Equal(t, KindLibrary, kind)
}

func TestTargetKind_Flag(t *testing.T) {
	flag, named := KindLibrary.Flag()
	assert.Equal(t, "--lib", flag)
	assert.False(t, named)

	flag, named = KindBenchmark.Flag()
	assert.Equal(t, "--bench", flag)
	assert.True(t, named)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("bench")
	require.NoError(t, err)
	assert.Equal(t, ActionBench, a)

	_, err = ParseAction("publish")
	require.Error(t, err)
}
