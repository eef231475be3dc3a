package selection

import (
	"testing"

	"github.com/jakoblorz/cargo-ws/internal/events"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	targets []*models.Target
}

func (f *fakeIndex) HasPackage(name string) bool {
	for _, t := range f.targets {
		if t.PackageName == name {
			return true
		}
	}
	return false
}

func (f *fakeIndex) FindTargets(pkg, name string) []*models.Target {
	var out []*models.Target
	for _, t := range f.targets {
		if t.Name == name && (pkg == "" || t.PackageName == pkg) {
			out = append(out, t)
		}
	}
	return out
}

func target(pkg, name string, kinds ...models.TargetKind) *models.Target {
	return models.NewTarget(name, kinds, "src/"+name+".rs", pkg, "/ws/"+pkg, "2021")
}

func newIndex() *fakeIndex {
	return &fakeIndex{targets: []*models.Target{
		target("pkg-a", "app-a", models.KindBinary),
		target("pkg-a", "pkg_a", models.KindLibrary),
		target("pkg-a", "bench-a", models.KindBenchmark),
		target("pkg-b", "app-b", models.KindBinary),
		target("pkg-b", "bench-b", models.KindBenchmark),
		target("pkg-b", "demo", models.KindExample),
	}}
}

func recordTopics(n *events.Notifier) *[]events.Topic {
	var got []events.Topic
	for _, topic := range events.Topics {
		n.Subscribe(topic, func(t events.Topic) { got = append(got, t) })
	}
	return &got
}

func TestState_Defaults(t *testing.T) {
	s := New(newIndex(), nil)

	snap := s.Snapshot()
	assert.Equal(t, profile.Dev, snap.Profile)
	assert.Empty(t, snap.Package)
	assert.Empty(t, snap.BuildTarget)
	assert.Empty(t, snap.RunTarget)
	assert.Empty(t, snap.BenchmarkTarget)
	assert.True(t, snap.Features.Empty())
	assert.Empty(t, snap.Platform)
}

func TestState_SetPackage(t *testing.T) {
	tests := []struct {
		name    string
		pkg     string
		wantErr error
	}{
		{name: "known package", pkg: "pkg-a"},
		{name: "all packages", pkg: ""},
		{name: "unknown package", pkg: "nope", wantErr: ErrUnknownPackage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(newIndex(), nil)
			err := s.SetPackage(tt.pkg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, s.Package())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pkg, s.Package())
		})
	}
}

func TestState_PackageChangeClearsForeignRunAndBench(t *testing.T) {
	s := New(newIndex(), nil)
	require.NoError(t, s.SetPackage("pkg-a"))
	require.NoError(t, s.SetRunTarget("app-a"))
	require.NoError(t, s.SetBenchmarkTarget("bench-a"))

	require.NoError(t, s.SetPackage("pkg-b"))

	assert.Empty(t, s.EffectiveRunTarget())
	assert.Empty(t, s.EffectiveBenchmarkTarget())
}

func TestState_SwitchToAllPackagesClearsRunAndBench(t *testing.T) {
	n := events.NewNotifier()
	s := New(newIndex(), n)
	require.NoError(t, s.SetPackage("pkg-b"))
	require.NoError(t, s.SetRunTarget("demo"))
	require.NoError(t, s.SetBenchmarkTarget("bench-b"))

	got := recordTopics(n)
	require.NoError(t, s.SetPackage(""))

	assert.Empty(t, s.EffectiveRunTarget())
	assert.Empty(t, s.EffectiveBenchmarkTarget())
	assert.Equal(t, []events.Topic{events.PackageChanged, events.SelectionChanged}, *got)
}

func TestState_RunTargetRequiresPackage(t *testing.T) {
	s := New(newIndex(), nil)

	err := s.SetRunTarget("app-a")
	require.ErrorIs(t, err, ErrNoPackageSelected)

	err = s.SetBenchmarkTarget("bench-a")
	require.ErrorIs(t, err, ErrNoPackageSelected)
}

func TestState_SetRunTargetValidation(t *testing.T) {
	s := New(newIndex(), nil)
	require.NoError(t, s.SetPackage("pkg-a"))

	require.ErrorIs(t, s.SetRunTarget("app-b"), ErrUnknownTarget)
	require.ErrorIs(t, s.SetRunTarget("pkg_a"), ErrUnsupportedAction)
	require.ErrorIs(t, s.SetBenchmarkTarget("app-a"), ErrUnsupportedAction)

	require.NoError(t, s.SetRunTarget("app-a"))
	assert.Equal(t, "app-a", s.EffectiveRunTarget())

	require.NoError(t, s.SetRunTarget(""))
	assert.Empty(t, s.EffectiveRunTarget())
}

func TestState_BuildTargetScopedToPackage(t *testing.T) {
	s := New(newIndex(), nil)

	// any package while all are selected
	require.NoError(t, s.SetBuildTarget("app-b"))
	assert.Equal(t, "app-b", s.EffectiveBuildTarget())

	require.NoError(t, s.SetPackage("pkg-a"))
	assert.Empty(t, s.EffectiveBuildTarget(), "build target outside the package reads as none")

	require.ErrorIs(t, s.SetBuildTarget("app-b"), ErrUnknownTarget)
	require.NoError(t, s.SetBuildTarget("pkg_a"))
	assert.Equal(t, "pkg_a", s.EffectiveBuildTarget())
}

func TestState_SetProfile(t *testing.T) {
	n := events.NewNotifier()
	s := New(newIndex(), n)
	got := recordTopics(n)

	assert.True(t, s.SetProfile(profile.Release))
	assert.False(t, s.SetProfile("RELEASE"), "normalized duplicate is not a change")
	assert.True(t, s.SetProfile("debug"))
	assert.Equal(t, profile.Dev, s.Profile())

	assert.Equal(t, []events.Topic{events.ProfileChanged, events.ProfileChanged}, *got)
}

func TestState_ToggleFeature(t *testing.T) {
	s := New(newIndex(), nil)

	s.ToggleFeature("serde")
	s.ToggleFeature("tracing")
	assert.Equal(t, []string{"serde", "tracing"}, s.Features().Names())

	s.ToggleFeature("serde")
	assert.Equal(t, []string{"tracing"}, s.Features().Names())

	s.ToggleFeature(AllFeatures)
	assert.True(t, s.Features().All())
	assert.Empty(t, s.Features().Names())

	s.ToggleFeature("std")
	assert.False(t, s.Features().All())
	assert.Equal(t, []string{"std"}, s.Features().Names())

	s.SetAllFeatures(true)
	s.SetAllFeatures(false)
	assert.True(t, s.Features().Empty())
}

func TestState_NoEventWithoutChange(t *testing.T) {
	n := events.NewNotifier()
	s := New(newIndex(), n)
	require.NoError(t, s.SetPackage("pkg-a"))
	s.SetPlatform("wasm32-unknown-unknown")

	got := recordTopics(n)
	require.NoError(t, s.SetPackage("pkg-a"))
	assert.False(t, s.SetPlatform("wasm32-unknown-unknown"))
	s.SetFeatures(FeatureSet{})

	assert.Empty(t, *got)
}

func TestState_Reconcile(t *testing.T) {
	idx := newIndex()
	n := events.NewNotifier()
	s := New(idx, n)
	require.NoError(t, s.SetPackage("pkg-b"))
	require.NoError(t, s.SetRunTarget("app-b"))
	require.NoError(t, s.SetBuildTarget("demo"))

	// pkg-b disappears from the registry
	idx.targets = idx.targets[:3]
	assert.Empty(t, s.Package(), "vanished package reads as all before reconciling")
	assert.Empty(t, s.EffectiveRunTarget())

	got := recordTopics(n)
	s.Reconcile()

	assert.Equal(t, []events.Topic{events.PackageChanged, events.SelectionChanged}, *got)
	snap := s.Snapshot()
	assert.Empty(t, snap.Package)
	assert.Empty(t, snap.RunTarget)
	assert.Empty(t, snap.BuildTarget)

	*got = nil
	s.Reconcile()
	assert.Empty(t, *got, "reconciling a consistent state publishes nothing")
}

func TestNewFeatureSet(t *testing.T) {
	fs := NewFeatureSet("a", "b", "a", "")
	assert.Equal(t, []string{"a", "b"}, fs.Names())
	assert.True(t, fs.Contains("b"))

	all := NewFeatureSet("a", AllFeatures)
	assert.True(t, all.All())
}
