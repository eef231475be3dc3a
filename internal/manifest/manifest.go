package manifest

import (
	"github.com/jakoblorz/cargo-ws/internal/models"
)

// TargetDecl is a target written out explicitly in a manifest
// ([lib], [[bin]], [[example]], [[test]], [[bench]]).
type TargetDecl struct {
	Name string
	Path string
	Kind models.TargetKind
}

// AutoDiscovery mirrors the package.auto* switches. A false value turns off
// conventional discovery for that kind.
type AutoDiscovery struct {
	Bins     bool
	Examples bool
	Tests    bool
	Benches  bool
}

// PackageManifest is one decoded Cargo.toml package together with the target
// declarations the fallback scanner needs.
type PackageManifest struct {
	Package  *models.Package
	Declared []TargetDecl
	Auto     AutoDiscovery
}

// Manifest is the structured description of one project root.
type Manifest struct {
	// RootPath is the directory holding the root Cargo.toml
	RootPath string

	// ManifestPath is the root Cargo.toml path
	ManifestPath string

	// Primary is the root [package], nil for a virtual workspace
	Primary *PackageManifest

	// Members are the packages reached through [workspace] members, in
	// manifest order. The root package is not repeated here.
	Members []*PackageManifest

	// MemberPaths are the resolved member directories
	MemberPaths []string

	// IsWorkspace is true when the root manifest has a [workspace] table
	IsWorkspace bool

	// CustomProfiles are custom profile names from the root manifest, the
	// member manifests and the auxiliary cargo config, deduplicated, in
	// discovery order
	CustomProfiles []string

	// DefaultPlatform is [build] target from the cargo config, if any
	DefaultPlatform string

	// ConfigPath is the auxiliary config file that was read, if any
	ConfigPath string
}

// Packages returns the primary package followed by the members.
func (m *Manifest) Packages() []*PackageManifest {
	var out []*PackageManifest
	if m.Primary != nil {
		out = append(out, m.Primary)
	}
	return append(out, m.Members...)
}

// Package finds a package manifest by name.
func (m *Manifest) Package(name string) (*PackageManifest, bool) {
	for _, pm := range m.Packages() {
		if pm.Package.Name == name {
			return pm, true
		}
	}
	return nil, false
}

// Features returns the declared features of the named package, or the union
// over all packages when name is empty.
func (m *Manifest) Features(name string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pm := range m.Packages() {
		if name != "" && pm.Package.Name != name {
			continue
		}
		for _, f := range pm.Package.Features {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}
