package manifest_test

import (
	"errors"
	"testing"

	"github.com/jakoblorz/cargo-ws/internal/filesystem"
	"github.com/jakoblorz/cargo-ws/internal/manifest"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_MultiCrateWorkspace(t *testing.T) {
	fs := testutil.MultiCrate()

	m, err := manifest.NewReader(fs).Read(testutil.MultiCrateRoot)
	require.NoError(t, err)

	require.True(t, m.IsWorkspace)
	require.NotNil(t, m.Primary)
	assert.Equal(t, "test-rust-project", m.Primary.Package.Name)
	assert.Equal(t, "0.1.0", m.Primary.Package.Version)
	assert.True(t, m.Primary.Package.VersionValid)
	assert.Equal(t, "2021", m.Primary.Package.Edition)

	var names []string
	for _, pm := range m.Members {
		names = append(names, pm.Package.Name)
		assert.True(t, pm.Package.Member)
	}
	assert.Equal(t, []string{"core", "cli", "web-server", "utils", "test-cdylib", "test-proc-macro"}, names)

	assert.Equal(t, []string{"release-with-debug", "custom-opt", "ci"}, m.CustomProfiles)
	assert.Equal(t, testutil.MultiCrateRoot+"/.cargo/config.toml", m.ConfigPath)
}

func TestRead_Features(t *testing.T) {
	fs := testutil.MultiCrate()

	m, err := manifest.NewReader(fs).Read(testutil.MultiCrateRoot)
	require.NoError(t, err)

	core, ok := m.Package("core")
	require.True(t, ok)
	// serde is hidden behind dep:serde, tracing becomes an implicit feature.
	assert.Equal(t, []string{"default", "serde", "std", "tracing"}, core.Package.Features)

	assert.ElementsMatch(t, []string{"default", "serde", "std", "tracing", "tls"}, m.Features(""))
	assert.Equal(t, []string{"tls"}, m.Features("web-server"))
}

func TestRead_DeclaredTargets(t *testing.T) {
	fs := testutil.MultiCrate()

	m, err := manifest.NewReader(fs).Read(testutil.MultiCrateRoot)
	require.NoError(t, err)

	assert.Equal(t, []manifest.TargetDecl{
		{Name: "fibonacci", Kind: models.KindBenchmark},
	}, m.Primary.Declared)

	cdylib, ok := m.Package("test-cdylib")
	require.True(t, ok)
	assert.Equal(t, []manifest.TargetDecl{
		{Name: "test_cdylib", Kind: models.KindLibrary},
	}, cdylib.Declared)
}

func TestRead_SingleCrate(t *testing.T) {
	fs := testutil.SingleCrate()

	m, err := manifest.NewReader(fs).Read(testutil.SingleCrateRoot)
	require.NoError(t, err)

	assert.False(t, m.IsWorkspace)
	assert.Empty(t, m.Members)
	require.NotNil(t, m.Primary)
	assert.Equal(t, "single-crate-core", m.Primary.Package.Name)
	assert.Empty(t, m.CustomProfiles)
	assert.Len(t, m.Packages(), 1)
}

func TestRead_NotProjectRoot(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/workspace/empty")

	_, err := manifest.NewReader(fs).Read("/workspace/empty")
	require.ErrorIs(t, err, manifest.ErrNotProjectRoot)
}

func TestRead_MalformedManifest(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/Cargo.toml", []byte("[package\nname = "))

	_, err := manifest.NewReader(fs).Read("/workspace")
	require.Error(t, err)

	var parseErr *manifest.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "/workspace/Cargo.toml", parseErr.Path)
}

func TestRead_MalformedConfig(t *testing.T) {
	fs := testutil.SingleCrate()
	fs.AddFile(testutil.SingleCrateRoot+"/.cargo/config.toml", []byte("[profile.x\n"))

	_, err := manifest.NewReader(fs).Read(testutil.SingleCrateRoot)

	var parseErr *manifest.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, testutil.SingleCrateRoot+"/.cargo/config.toml", parseErr.Path)
}

func TestRead_MissingMemberManifest(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/Cargo.toml", []byte("[workspace]\nmembers = [\"gone\"]\n"))

	_, err := manifest.NewReader(fs).Read("/workspace")

	var parseErr *manifest.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "/workspace/gone", parseErr.Path)
}

func TestRead_GlobMembersAndExclude(t *testing.T) {
	fs := testutil.NewProjectBuilder("/ws").
		RootPackage("").
		Build()
	fs.AddFile("/ws/Cargo.toml", []byte("[workspace]\nmembers = [\"crates/*\"]\nexclude = [\"crates/skip\"]\n"))
	fs.AddFile("/ws/crates/b/Cargo.toml", []byte("[package]\nname = \"b\"\nversion = \"1.0\"\n"))
	fs.AddFile("/ws/crates/a/Cargo.toml", []byte("[package]\nname = \"a\"\nversion = \"1.2.3-beta.1\"\n"))
	fs.AddFile("/ws/crates/skip/Cargo.toml", []byte("[package]\nname = \"skip\"\n"))
	fs.AddDir("/ws/crates/not-a-package")

	m, err := manifest.NewReader(fs).Read("/ws")
	require.NoError(t, err)

	assert.Nil(t, m.Primary)
	assert.Equal(t, []string{"/ws/crates/a", "/ws/crates/b"}, m.MemberPaths)

	a, _ := m.Package("a")
	b, _ := m.Package("b")
	assert.True(t, a.Package.VersionValid)
	assert.False(t, b.Package.VersionValid)
}

func TestRead_ConfigDefaultPlatform(t *testing.T) {
	fs := testutil.SingleCrate()
	fs.AddFile(testutil.SingleCrateRoot+"/.cargo/config.toml", []byte("[build]\ntarget = \"wasm32-unknown-unknown\"\n\n[profile.Profiling]\ninherits = \"release\"\n"))

	m, err := manifest.NewReader(fs).Read(testutil.SingleCrateRoot)
	require.NoError(t, err)

	assert.Equal(t, "wasm32-unknown-unknown", m.DefaultPlatform)
	assert.Equal(t, []string{"profiling"}, m.CustomProfiles)
}

func TestRead_WellKnownProfilesAreNotCustom(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/Cargo.toml", []byte(`[package]
name = "app"
version = "0.1.0"

[profile.release]
lto = true

[profile.dev]
opt-level = 1

[profile.fast]
inherits = "release"
`))

	m, err := manifest.NewReader(fs).Read("/workspace")
	require.NoError(t, err)

	assert.Equal(t, []string{"fast"}, m.CustomProfiles)
	require.Len(t, m.Primary.Package.Profiles, 3)
	assert.Equal(t, "release", m.Primary.Package.Profiles[0].Name)
	assert.Equal(t, true, m.Primary.Package.Profiles[0].Settings["lto"])
}
