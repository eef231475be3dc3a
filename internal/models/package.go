package models

// DeclaredProfile is a [profile.<name>] table as written in a manifest or in
// the auxiliary cargo config. Settings are kept as decoded TOML values.
type DeclaredProfile struct {
	Name     string
	Settings map[string]interface{}
}

// Package represents one Cargo package of the workspace.
type Package struct {
	// Name is the package identifier (unique within the workspace)
	Name string

	// RootPath is the absolute path to the package root
	RootPath string

	// ManifestPath is the path to the package's Cargo.toml
	ManifestPath string

	// Version is the raw package.version value
	Version string

	// VersionValid reports whether Version is a valid semantic version
	VersionValid bool

	// Edition is the package.edition value
	Edition string

	// Profiles are the [profile.*] tables declared by this manifest
	Profiles []DeclaredProfile

	// Features are declared feature names, including optional dependencies
	Features []string

	// Member is true when the package was reached through [workspace] members
	Member bool
}

// NewPackage creates a new Package instance
func NewPackage(name, rootPath, manifestPath string) *Package {
	return &Package{
		Name:         name,
		RootPath:     rootPath,
		ManifestPath: manifestPath,
	}
}
