package models

import "fmt"

// TargetKind is the role a buildable unit plays inside its package.
type TargetKind string

const (
	KindBinary    TargetKind = "bin"
	KindLibrary   TargetKind = "lib"
	KindTest      TargetKind = "test"
	KindExample   TargetKind = "example"
	KindBenchmark TargetKind = "bench"
)

// IsValid checks if the kind is one of the recognized target kinds
func (k TargetKind) IsValid() bool {
	switch k {
	case KindBinary, KindLibrary, KindTest, KindExample, KindBenchmark:
		return true
	default:
		return false
	}
}

// String returns the string representation of TargetKind
func (k TargetKind) String() string {
	return string(k)
}

// Flag returns the cargo designator for the kind. Only --lib takes no name.
func (k TargetKind) Flag() (flag string, takesName bool) {
	switch k {
	case KindBinary:
		return "--bin", true
	case KindLibrary:
		return "--lib", false
	case KindExample:
		return "--example", true
	case KindTest:
		return "--test", true
	case KindBenchmark:
		return "--bench", true
	default:
		return "", false
	}
}

// ParseTargetKind parses a string into a TargetKind
func ParseTargetKind(s string) (TargetKind, error) {
	k := TargetKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid target kind: %s (must be bin, lib, test, example, or bench)", s)
	}
	return k, nil
}

// Target is one buildable unit of a package. Targets belong to a single
// discovery pass and are replaced, never mutated, when the workspace refreshes.
type Target struct {
	// Name is the target name as cargo reports it
	Name string

	// Kinds holds every recognized kind; the first one dominates
	Kinds []TargetKind

	// SrcPath is the path of the target's root source file
	SrcPath string

	// PackageName is the name of the owning package
	PackageName string

	// PackagePath is the root directory of the owning package
	PackagePath string

	// Edition is the language edition marker, passed through untouched
	Edition string
}

// NewTarget creates a new Target. Unrecognized kinds are dropped.
func NewTarget(name string, kinds []TargetKind, srcPath, packageName, packagePath, edition string) *Target {
	recognized := make([]TargetKind, 0, len(kinds))
	for _, k := range kinds {
		if k.IsValid() {
			recognized = append(recognized, k)
		}
	}

	return &Target{
		Name:        name,
		Kinds:       recognized,
		SrcPath:     srcPath,
		PackageName: packageName,
		PackagePath: packagePath,
		Edition:     edition,
	}
}

// HasKind reports whether the target declares kind k.
func (t *Target) HasKind(k TargetKind) bool {
	for _, kind := range t.Kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// PrimaryKind returns the dominant kind, or "" for a target with none.
func (t *Target) PrimaryKind() TargetKind {
	if len(t.Kinds) == 0 {
		return ""
	}
	return t.Kinds[0]
}

func (t *Target) IsExecutable() bool {
	return t.HasKind(KindBinary) || t.HasKind(KindExample)
}

func (t *Target) IsTest() bool {
	return t.HasKind(KindTest)
}

func (t *Target) IsBenchmark() bool {
	return t.HasKind(KindBenchmark)
}

// Supports reports whether the target can be the subject of action a.
// build, check, doc and clean accept any target with a recognized kind.
func (t *Target) Supports(a Action) bool {
	if len(t.Kinds) == 0 {
		return false
	}

	switch a {
	case ActionBuild, ActionCheck, ActionDoc, ActionClean:
		return true
	case ActionRun:
		return t.IsExecutable()
	case ActionTest:
		return t.IsTest()
	case ActionBench:
		return t.IsBenchmark()
	default:
		return false
	}
}

// SupportedActions lists the target-selecting actions (build, run, test,
// bench) the target takes part in.
func (t *Target) SupportedActions() []Action {
	var actions []Action
	for _, a := range []Action{ActionBuild, ActionRun, ActionTest, ActionBench} {
		if t.Supports(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// KindFor picks the kind to designate when the target is used for action a.
// A target that is both a binary and an example runs as a binary.
func (t *Target) KindFor(a Action) (TargetKind, bool) {
	if len(t.Kinds) == 0 {
		return "", false
	}

	switch a {
	case ActionRun:
		for _, k := range []TargetKind{KindBinary, KindExample} {
			if t.HasKind(k) {
				return k, true
			}
		}
	case ActionTest:
		if t.IsTest() {
			return KindTest, true
		}
	case ActionBench:
		if t.IsBenchmark() {
			return KindBenchmark, true
		}
	}

	return t.PrimaryKind(), true
}
