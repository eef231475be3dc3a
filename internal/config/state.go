package config

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/cargo-ws/internal/filesystem"
	"github.com/pelletier/go-toml/v2"
)

// StateFile is where the selection of a workspace is remembered between
// invocations, relative to the workspace root.
const StateFile = ".cargo-ws/selection.toml"

// SavedSelection is the persisted form of a selection.
type SavedSelection struct {
	Profile         string   `toml:"profile,omitempty"`
	Package         string   `toml:"package,omitempty"`
	BuildTarget     string   `toml:"build_target,omitempty"`
	RunTarget       string   `toml:"run_target,omitempty"`
	BenchmarkTarget string   `toml:"benchmark_target,omitempty"`
	Features        []string `toml:"features,omitempty"`
	AllFeatures     bool     `toml:"all_features,omitempty"`
	Platform        string   `toml:"platform,omitempty"`
}

// LoadSelection reads the saved selection of root. It returns nil without an
// error when nothing was saved.
func LoadSelection(fs filesystem.FileSystem, root string) (*SavedSelection, error) {
	path := filepath.Join(root, StateFile)
	if !fs.Exists(path) {
		return nil, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var saved SavedSelection
	if err := toml.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &saved, nil
}

// SaveSelection writes saved for root, creating the state directory.
func SaveSelection(fs filesystem.FileSystem, root string, saved SavedSelection) error {
	path := filepath.Join(root, StateFile)
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	data, err := toml.Marshal(saved)
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}

	if err := fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ClearSelection removes the saved selection of root, if any.
func ClearSelection(fs filesystem.FileSystem, root string) error {
	path := filepath.Join(root, StateFile)
	if !fs.Exists(path) {
		return nil
	}
	if err := fs.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
