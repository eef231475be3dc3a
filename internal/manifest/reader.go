package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakoblorz/cargo-ws/internal/filesystem"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"golang.org/x/mod/semver"
)

const (
	// FileName is the manifest file cargo looks for.
	FileName = "Cargo.toml"
)

// configCandidates are the auxiliary config files, most specific first.
var configCandidates = []string{
	filepath.Join(".cargo", "config.toml"),
	filepath.Join(".cargo", "config"),
}

// Reader parses Cargo manifests through a FileSystem.
type Reader struct {
	fs filesystem.FileSystem
}

// NewReader creates a new Reader.
func NewReader(fs filesystem.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read parses the manifest at root, its workspace members and the auxiliary
// cargo config. It returns ErrNotProjectRoot when root has no Cargo.toml and a
// *ParseError for any file that cannot be decoded.
func (r *Reader) Read(root string) (*Manifest, error) {
	root = filepath.Clean(root)
	manifestPath := filepath.Join(root, FileName)
	if !r.fs.Exists(manifestPath) {
		return nil, ErrNotProjectRoot
	}

	data, err := r.fs.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	var doc cargoToml
	if err := decode(data, &doc); err != nil {
		return nil, &ParseError{Path: manifestPath, Err: err}
	}

	if doc.Package == nil && doc.Workspace == nil {
		return nil, &ParseError{Path: manifestPath, Err: errors.New("manifest has neither [package] nor [workspace]")}
	}

	m := &Manifest{
		RootPath:     root,
		ManifestPath: manifestPath,
		IsWorkspace:  doc.Workspace != nil,
	}

	var inherited map[string]interface{}
	if doc.Workspace != nil {
		inherited = doc.Workspace.Package
	}

	profiles := newNameSet()

	if doc.Package != nil {
		pm, err := packageManifest(&doc, data, root, manifestPath, inherited)
		if err != nil {
			return nil, err
		}
		m.Primary = pm
		profiles.addAll(profileNames(pm.Package.Profiles))
	}

	if doc.Workspace != nil {
		paths, err := r.memberPaths(root, doc.Workspace)
		if err != nil {
			return nil, err
		}

		for _, memberPath := range paths {
			if memberPath == root {
				if m.Primary != nil {
					m.Primary.Package.Member = true
				}
				continue
			}

			pm, err := r.readMember(memberPath, inherited)
			if err != nil {
				return nil, err
			}
			m.MemberPaths = append(m.MemberPaths, memberPath)
			m.Members = append(m.Members, pm)
			profiles.addAll(profileNames(pm.Package.Profiles))
		}
	}

	if err := r.readConfig(root, m, profiles); err != nil {
		return nil, err
	}

	m.CustomProfiles = profiles.customOnly()
	return m, nil
}

func (r *Reader) readMember(memberPath string, inherited map[string]interface{}) (*PackageManifest, error) {
	manifestPath := filepath.Join(memberPath, FileName)
	if !r.fs.Exists(manifestPath) {
		return nil, &ParseError{Path: memberPath, Err: errors.New("workspace member has no Cargo.toml")}
	}

	data, err := r.fs.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	var doc cargoToml
	if err := decode(data, &doc); err != nil {
		return nil, &ParseError{Path: manifestPath, Err: err}
	}
	if doc.Package == nil {
		return nil, &ParseError{Path: manifestPath, Err: errors.New("workspace member has no [package]")}
	}

	pm, err := packageManifest(&doc, data, memberPath, manifestPath, inherited)
	if err != nil {
		return nil, err
	}
	pm.Package.Member = true
	return pm, nil
}

// memberPaths expands [workspace] members (glob patterns allowed) and drops
// excluded paths. Order follows the members list; glob matches are sorted.
func (r *Reader) memberPaths(root string, ws *workspaceSection) ([]string, error) {
	excluded := make(map[string]bool, len(ws.Exclude))
	for _, ex := range ws.Exclude {
		excluded[filepath.Join(root, ex)] = true
	}

	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		p = filepath.Clean(p)
		if seen[p] || excluded[p] {
			return
		}
		seen[p] = true
		paths = append(paths, p)
	}

	for _, member := range ws.Members {
		pattern := filepath.Join(root, member)
		if !strings.ContainsAny(member, "*?[") {
			add(pattern)
			continue
		}

		matches, err := r.fs.Glob(pattern)
		if err != nil {
			return nil, &ParseError{Path: filepath.Join(root, FileName), Err: fmt.Errorf("invalid member pattern %q: %w", member, err)}
		}
		for _, match := range matches {
			info, err := r.fs.Stat(match)
			if err != nil || !info.IsDir() {
				continue
			}
			// Globs only pick up directories that are actually packages.
			if !r.fs.Exists(filepath.Join(match, FileName)) {
				continue
			}
			add(match)
		}
	}

	return paths, nil
}

func (r *Reader) readConfig(root string, m *Manifest, profiles *nameSet) error {
	for _, candidate := range configCandidates {
		path := filepath.Join(root, candidate)
		if !r.fs.Exists(path) {
			continue
		}

		data, err := r.fs.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var cfg cargoConfig
		if err := decode(data, &cfg); err != nil {
			return &ParseError{Path: path, Err: err}
		}

		m.ConfigPath = path
		profiles.addAll(profileOrder(data, cfg.Profile))

		if cfg.Build != nil {
			switch t := cfg.Build.Target.(type) {
			case string:
				m.DefaultPlatform = t
			case []interface{}:
				if len(t) > 0 {
					if s, ok := t[0].(string); ok {
						m.DefaultPlatform = s
					}
				}
			}
		}
		return nil
	}
	return nil
}

func packageManifest(doc *cargoToml, data []byte, root, manifestPath string, inherited map[string]interface{}) (*PackageManifest, error) {
	name := strings.TrimSpace(doc.Package.Name)
	if name == "" {
		return nil, &ParseError{Path: manifestPath, Err: errors.New("package.name is empty")}
	}

	pkg := models.NewPackage(name, root, manifestPath)
	pkg.Version = stringValue(doc.Package.Version, "version", inherited)
	pkg.VersionValid = isCargoVersion(pkg.Version)
	pkg.Edition = stringValue(doc.Package.Edition, "edition", inherited)
	pkg.Features = featureNames(doc)

	for _, profileName := range profileOrder(data, doc.Profile) {
		pkg.Profiles = append(pkg.Profiles, models.DeclaredProfile{
			Name:     profileName,
			Settings: doc.Profile[profileName],
		})
	}

	return &PackageManifest{
		Package:  pkg,
		Declared: declaredTargets(doc, name),
		Auto: AutoDiscovery{
			Bins:     boolOr(doc.Package.AutoBins, true),
			Examples: boolOr(doc.Package.AutoExamples, true),
			Tests:    boolOr(doc.Package.AutoTests, true),
			Benches:  boolOr(doc.Package.AutoBenches, true),
		},
	}, nil
}

// featureNames returns [features] keys plus optional dependencies that are
// not hidden behind a "dep:" reference, sorted.
func featureNames(doc *cargoToml) []string {
	seen := make(map[string]bool)
	hidden := make(map[string]bool)

	var names []string
	for name, enables := range doc.Features {
		seen[name] = true
		names = append(names, name)
		for _, e := range enables {
			if strings.HasPrefix(e, "dep:") {
				hidden[strings.TrimPrefix(e, "dep:")] = true
			}
		}
	}

	for dep, spec := range doc.Dependencies {
		table, ok := spec.(map[string]interface{})
		if !ok {
			continue
		}
		if optional, _ := table["optional"].(bool); !optional {
			continue
		}
		if hidden[dep] || seen[dep] {
			continue
		}
		seen[dep] = true
		names = append(names, dep)
	}

	sort.Strings(names)
	return names
}

func declaredTargets(doc *cargoToml, packageName string) []TargetDecl {
	var decls []TargetDecl
	if doc.Lib != nil {
		name := doc.Lib.Name
		if name == "" {
			name = strings.ReplaceAll(packageName, "-", "_")
		}
		decls = append(decls, TargetDecl{Name: name, Path: doc.Lib.Path, Kind: models.KindLibrary})
	}

	groups := []struct {
		sections []targetSection
		kind     models.TargetKind
	}{
		{doc.Bin, models.KindBinary},
		{doc.Example, models.KindExample},
		{doc.Test, models.KindTest},
		{doc.Bench, models.KindBenchmark},
	}
	for _, g := range groups {
		for _, s := range g.sections {
			if strings.TrimSpace(s.Name) == "" {
				continue
			}
			decls = append(decls, TargetDecl{Name: s.Name, Path: s.Path, Kind: g.kind})
		}
	}
	return decls
}

// isCargoVersion accepts full MAJOR.MINOR.PATCH semantic versions only;
// x/mod/semver also accepts the vMAJOR and vMAJOR.MINOR shorthands.
func isCargoVersion(version string) bool {
	if version == "" {
		return false
	}
	v := "v" + version
	if !semver.IsValid(v) {
		return false
	}
	core := strings.SplitN(strings.SplitN(version, "+", 2)[0], "-", 2)[0]
	return strings.Count(core, ".") == 2
}

func profileNames(profiles []models.DeclaredProfile) []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
