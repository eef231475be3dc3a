package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want Profile
	}{
		{"dev", Dev},
		{"DEV", Dev},
		{" Release ", Release},
		{"debug", Dev},
		{"Debug", Dev},
		{"", None},
		{"   ", None},
		{"none", None},
		{"bench", Bench},
		{"Profiling", Profile("profiling")},
		{"release-lto", Profile("release-lto")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"dev", "Debug", "RELEASE", "", "custom-Opt", "test", "  bench", "ci"}
	for _, raw := range inputs {
		p := Normalize(raw)
		assert.Equal(t, p, Normalize(p.Name()), "input %q", raw)
	}
}

func TestRegistry_RegisterCustomIgnoresWellKnown(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"dev", "release", "test", "bench", "none", "Release", "debug"} {
		assert.False(t, r.RegisterCustom(name), "name %s", name)
	}
	require.Empty(t, r.Custom())

	assert.True(t, r.RegisterCustom("profiling"))
	assert.False(t, r.RegisterCustom("Profiling"))
	assert.Len(t, r.Custom(), 1)
}

func TestRegistry_AllOrder(t *testing.T) {
	r := NewRegistry()
	r.RegisterCustom("zeta")
	r.RegisterCustom("alpha")

	assert.Equal(t, []Profile{None, Dev, Release, Test, Bench, "zeta", "alpha"}, r.All())
	assert.True(t, r.Contains("alpha"))
	assert.True(t, r.Contains(Dev))
	assert.False(t, r.Contains("missing"))
}

func TestRegistry_ResetAndReplace(t *testing.T) {
	r := NewRegistry()
	r.RegisterCustom("one")
	r.Replace([]string{"two", "release", "two"})

	assert.Equal(t, []Profile{"two"}, r.Custom())

	r.Reset()
	assert.Empty(t, r.Custom())
	assert.Equal(t, WellKnown, r.All())
}

func TestDisplayNameAndDescription(t *testing.T) {
	assert.Equal(t, "Release", DisplayName(Release))
	assert.Equal(t, "Profiling", DisplayName(Normalize("profiling")))
	assert.Equal(t, "Optimized build (--release)", Description(Release))
	assert.Equal(t, "Custom profile (--profile ci)", Description("ci"))
}
