package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/cargo-ws/internal/filesystem"
	"github.com/jakoblorz/cargo-ws/internal/manifest"
)

// Detect walks up from startDir and returns the project root: the outermost
// directory whose Cargo.toml declares [workspace], or the nearest directory
// holding a Cargo.toml when no ancestor is a workspace. It returns
// manifest.ErrNotProjectRoot when no Cargo.toml is found.
func Detect(fs filesystem.FileSystem, startDir string) (string, error) {
	candidates := findManifestsUp(fs, startDir)
	if len(candidates) == 0 {
		return "", manifest.ErrNotProjectRoot
	}

	root := filepath.Dir(candidates[0])
	for _, candidate := range candidates {
		data, err := fs.ReadFile(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", candidate, err)
		}
		if manifest.DeclaresWorkspace(data) {
			root = filepath.Dir(candidate)
		}
	}

	return root, nil
}

// findManifestsUp returns every Cargo.toml from startDir up to the
// filesystem root, nearest first.
func findManifestsUp(fs filesystem.FileSystem, startDir string) []string {
	dir := filepath.Clean(startDir)

	var found []string
	for {
		candidate := filepath.Join(dir, manifest.FileName)
		if fs.Exists(candidate) {
			found = append(found, candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return found
		}
		dir = parent
	}
}
