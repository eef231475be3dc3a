package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/cargo-ws/internal/manifest"
	"github.com/jakoblorz/cargo-ws/internal/models"
)

// MetadataDiscoverer reads targets from `cargo metadata`.
type MetadataDiscoverer struct {
	runner Runner
	cargo  string
}

// NewMetadataDiscoverer creates a discoverer that invokes cargo through runner.
func NewMetadataDiscoverer(runner Runner) *MetadataDiscoverer {
	return &MetadataDiscoverer{runner: runner, cargo: "cargo"}
}

// WithCargo overrides the cargo executable.
func (d *MetadataDiscoverer) WithCargo(path string) *MetadataDiscoverer {
	d.cargo = path
	return d
}

type metadata struct {
	Packages []metadataPackage `json:"packages"`
}

type metadataPackage struct {
	Name         string           `json:"name"`
	ManifestPath string           `json:"manifest_path"`
	Edition      string           `json:"edition"`
	Targets      []metadataTarget `json:"targets"`
}

type metadataTarget struct {
	Name    string   `json:"name"`
	Kind    []string `json:"kind"`
	SrcPath string   `json:"src_path"`
	Edition string   `json:"edition"`
}

func (d *MetadataDiscoverer) Discover(ctx context.Context, m *manifest.Manifest) ([]*models.Target, error) {
	out, err := d.runner.Run(ctx, m.RootPath, d.cargo, "metadata", "--format-version", "1", "--no-deps")
	if err != nil {
		return nil, err
	}

	return ParseMetadata(out)
}

// ParseMetadata maps `cargo metadata --format-version 1` output onto targets,
// keeping the order cargo reported them in.
func ParseMetadata(data []byte) ([]*models.Target, error) {
	var md metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to parse cargo metadata output: %w", err)
	}

	var targets []*models.Target
	for _, pkg := range md.Packages {
		pkgPath := filepath.Dir(pkg.ManifestPath)
		for _, t := range pkg.Targets {
			edition := t.Edition
			if edition == "" {
				edition = pkg.Edition
			}
			targets = append(targets, models.NewTarget(t.Name, mapKinds(t.Kind), t.SrcPath, pkg.Name, pkgPath, edition))
		}
	}

	return targets, nil
}

// mapKinds translates cargo's target kinds. Every library flavour collapses
// onto the library kind; build scripts and unknown kinds are dropped.
func mapKinds(kinds []string) []models.TargetKind {
	var out []models.TargetKind
	seen := make(map[models.TargetKind]bool)
	for _, k := range kinds {
		var kind models.TargetKind
		switch k {
		case "bin":
			kind = models.KindBinary
		case "lib", "rlib", "dylib", "cdylib", "staticlib", "proc-macro":
			kind = models.KindLibrary
		case "example":
			kind = models.KindExample
		case "test":
			kind = models.KindTest
		case "bench":
			kind = models.KindBenchmark
		default:
			continue
		}
		if !seen[kind] {
			seen[kind] = true
			out = append(out, kind)
		}
	}
	return out
}
