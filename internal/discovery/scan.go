package discovery

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/cargo-ws/internal/filesystem"
	"github.com/jakoblorz/cargo-ws/internal/manifest"
	"github.com/jakoblorz/cargo-ws/internal/models"
)

// ScanDiscoverer derives targets from manifest declarations and cargo's
// conventional source layout without running cargo.
type ScanDiscoverer struct {
	fs filesystem.FileSystem
}

// NewScanDiscoverer creates a new ScanDiscoverer.
func NewScanDiscoverer(fs filesystem.FileSystem) *ScanDiscoverer {
	return &ScanDiscoverer{fs: fs}
}

type packageScan struct {
	fs      filesystem.FileSystem
	ignore  gitignore.GitIgnore
	root    string
	pm      *manifest.PackageManifest
	seen    map[string]bool
	targets []*models.Target
}

func (d *ScanDiscoverer) Discover(ctx context.Context, m *manifest.Manifest) ([]*models.Target, error) {
	ignore, err := d.loadGitIgnore(m.RootPath)
	if err != nil {
		return nil, err
	}

	var targets []*models.Target
	for _, pm := range m.Packages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s := &packageScan{
			fs:     d.fs,
			ignore: ignore,
			root:   m.RootPath,
			pm:     pm,
			seen:   make(map[string]bool),
		}
		if err := s.run(); err != nil {
			return nil, fmt.Errorf("failed to scan package %s: %w", pm.Package.Name, err)
		}
		targets = append(targets, s.targets...)
	}

	return targets, nil
}

func (d *ScanDiscoverer) loadGitIgnore(root string) (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(root, ".gitignore")
	if !d.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := d.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), root, nil), nil
}

func (s *packageScan) run() error {
	pkg := s.pm.Package
	libName := strings.ReplaceAll(pkg.Name, "-", "_")

	// Declarations first: they win over conventional files with the same name.
	for _, decl := range s.pm.Declared {
		path := decl.Path
		if path == "" {
			path = defaultPath(decl.Kind, decl.Name)
		}
		s.add(decl.Name, decl.Kind, filepath.Join(pkg.RootPath, path))
	}

	if !s.hasKind(models.KindLibrary) {
		if p := filepath.Join(pkg.RootPath, "src", "lib.rs"); s.exists(p) {
			s.add(libName, models.KindLibrary, p)
		}
	}

	if s.pm.Auto.Bins {
		if p := filepath.Join(pkg.RootPath, "src", "main.rs"); s.exists(p) {
			s.add(pkg.Name, models.KindBinary, p)
		}
		if err := s.scanDir(filepath.Join(pkg.RootPath, "src", "bin"), models.KindBinary); err != nil {
			return err
		}
	}

	dirs := []struct {
		enabled bool
		dir     string
		kind    models.TargetKind
	}{
		{s.pm.Auto.Examples, "examples", models.KindExample},
		{s.pm.Auto.Tests, "tests", models.KindTest},
		{s.pm.Auto.Benches, "benches", models.KindBenchmark},
	}
	for _, d := range dirs {
		if !d.enabled {
			continue
		}
		if err := s.scanDir(filepath.Join(pkg.RootPath, d.dir), d.kind); err != nil {
			return err
		}
	}

	return nil
}

// scanDir picks up <dir>/<name>.rs and <dir>/<name>/main.rs. Anything
// nested deeper belongs to those targets and is not a target itself.
func (s *packageScan) scanDir(dir string, kind models.TargetKind) error {
	if !s.exists(dir) {
		return nil
	}

	err := s.fs.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		depth := strings.Count(filepath.ToSlash(rel), "/")

		if entry.IsDir() {
			if depth > 0 || s.ignored(path, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.ignored(path, false) {
			return nil
		}

		switch {
		case depth == 0 && filepath.Ext(entry.Name()) == ".rs":
			s.add(strings.TrimSuffix(entry.Name(), ".rs"), kind, path)
		case depth == 1 && entry.Name() == "main.rs":
			s.add(filepath.Base(filepath.Dir(path)), kind, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return nil
}

func (s *packageScan) add(name string, kind models.TargetKind, path string) {
	key := string(kind) + "/" + name
	if s.seen[key] {
		return
	}
	s.seen[key] = true

	pkg := s.pm.Package
	s.targets = append(s.targets, models.NewTarget(name, []models.TargetKind{kind}, path, pkg.Name, pkg.RootPath, pkg.Edition))
}

func (s *packageScan) hasKind(kind models.TargetKind) bool {
	for _, t := range s.targets {
		if t.HasKind(kind) {
			return true
		}
	}
	return false
}

func (s *packageScan) exists(path string) bool {
	if !s.fs.Exists(path) {
		return false
	}
	info, err := s.fs.Stat(path)
	if err != nil {
		return false
	}
	return !s.ignored(path, info.IsDir())
}

// ignored applies the root .gitignore and always skips cargo's target dir.
func (s *packageScan) ignored(path string, isDir bool) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == "target" || strings.HasPrefix(rel, "target/") {
		return true
	}
	if s.ignore == nil {
		return false
	}
	match := s.ignore.Relative(rel, isDir)
	return match != nil && match.Ignore()
}

func defaultPath(kind models.TargetKind, name string) string {
	switch kind {
	case models.KindLibrary:
		return filepath.Join("src", "lib.rs")
	case models.KindBinary:
		return filepath.Join("src", "bin", name+".rs")
	case models.KindExample:
		return filepath.Join("examples", name+".rs")
	case models.KindTest:
		return filepath.Join("tests", name+".rs")
	case models.KindBenchmark:
		return filepath.Join("benches", name+".rs")
	}
	return ""
}
