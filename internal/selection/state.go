// Package selection holds the user's current choices (package, targets,
// profile, features, platform) and keeps them consistent with the target
// registry.
package selection

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jakoblorz/cargo-ws/internal/events"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
)

var (
	ErrUnknownPackage    = errors.New("unknown package")
	ErrUnknownTarget     = errors.New("unknown target")
	ErrNoPackageSelected = errors.New("no package selected")
	ErrUnsupportedAction = errors.New("target does not support action")
)

// TargetIndex is the read view of the target registry the state validates
// against. An empty package name means every package.
type TargetIndex interface {
	HasPackage(name string) bool
	FindTargets(packageName, targetName string) []*models.Target
}

// Snapshot is a copy of the state with stale references already normalized
// away.
type Snapshot struct {
	Profile         profile.Profile
	Package         string
	BuildTarget     string
	RunTarget       string
	BenchmarkTarget string
	Features        FeatureSet
	Platform        string
}

// State is the mutable selection of one workspace. Setters validate against
// the index and publish only when the stored value actually changes.
type State struct {
	mu       sync.Mutex
	index    TargetIndex
	notifier *events.Notifier

	profile  profile.Profile
	pkg      string
	build    string
	run      string
	bench    string
	features FeatureSet
	platform string
}

// New creates a State with the dev profile and nothing else selected.
func New(index TargetIndex, notifier *events.Notifier) *State {
	if notifier == nil {
		notifier = events.NewNotifier()
	}
	return &State{
		index:    index,
		notifier: notifier,
		profile:  profile.Dev,
	}
}

func (s *State) publish(topics []events.Topic) {
	for _, t := range topics {
		s.notifier.Publish(t)
	}
}

// Profile returns the selected profile.
func (s *State) Profile() profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Package returns the selected package, "" meaning all packages. A package
// that vanished from the registry reads as all.
func (s *State) Package() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectivePackage()
}

// EffectiveBuildTarget returns the selected build target or "" when none is selected
// or the stored name no longer resolves.
func (s *State) EffectiveBuildTarget() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveTarget(s.build, models.ActionBuild, false)
}

// EffectiveRunTarget returns the selected run target. It is always "" while all
// packages are selected.
func (s *State) EffectiveRunTarget() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveTarget(s.run, models.ActionRun, true)
}

// EffectiveBenchmarkTarget returns the selected benchmark target. It is always ""
// while all packages are selected.
func (s *State) EffectiveBenchmarkTarget() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effectiveTarget(s.bench, models.ActionBench, true)
}

// Features returns the selected feature set.
func (s *State) Features() FeatureSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.features
}

// Platform returns the selected target triple, "" for the host.
func (s *State) Platform() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform
}

// Snapshot returns every effective value at once.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Profile:         s.profile,
		Package:         s.effectivePackage(),
		BuildTarget:     s.effectiveTarget(s.build, models.ActionBuild, false),
		RunTarget:       s.effectiveTarget(s.run, models.ActionRun, true),
		BenchmarkTarget: s.effectiveTarget(s.bench, models.ActionBench, true),
		Features:        s.features,
		Platform:        s.platform,
	}
}

// SetProfile selects p. It reports whether the selection changed.
func (s *State) SetProfile(p profile.Profile) bool {
	p = profile.Normalize(p.Name())

	s.mu.Lock()
	if s.profile == p {
		s.mu.Unlock()
		return false
	}
	s.profile = p
	s.mu.Unlock()

	s.publish([]events.Topic{events.ProfileChanged})
	return true
}

// SetPackage selects a package; "" selects all packages. Run and benchmark
// selections that do not belong to the new package are cleared, and both are
// cleared when switching to all packages.
func (s *State) SetPackage(name string) error {
	name = strings.TrimSpace(name)
	if name != "" && !s.index.HasPackage(name) {
		return fmt.Errorf("%w: %s", ErrUnknownPackage, name)
	}

	s.mu.Lock()
	if s.pkg == name {
		s.mu.Unlock()
		return nil
	}
	s.pkg = name

	topics := []events.Topic{events.PackageChanged}
	if s.cascadeLocked() {
		topics = append(topics, events.SelectionChanged)
	}
	s.mu.Unlock()

	s.publish(topics)
	return nil
}

// cascadeLocked drops run/bench selections outside the current package.
func (s *State) cascadeLocked() bool {
	changed := false
	if s.run != "" && (s.pkg == "" || !s.inPackage(s.pkg, s.run, models.ActionRun)) {
		s.run = ""
		changed = true
	}
	if s.bench != "" && (s.pkg == "" || !s.inPackage(s.pkg, s.bench, models.ActionBench)) {
		s.bench = ""
		changed = true
	}
	return changed
}

// SetBuildTarget selects the target built by default; "" clears it. The
// target must exist in the selected package, or anywhere when all packages
// are selected.
func (s *State) SetBuildTarget(name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	if name != "" && len(s.index.FindTargets(s.pkg, name)) == 0 {
		pkg := s.pkg
		s.mu.Unlock()
		return unknownTarget(name, pkg)
	}
	changed := s.build != name
	s.build = name
	s.mu.Unlock()

	if changed {
		s.publish([]events.Topic{events.SelectionChanged})
	}
	return nil
}

// SetRunTarget selects the executable run by default; "" clears it.
func (s *State) SetRunTarget(name string) error {
	return s.setScoped(&s.run, name, models.ActionRun)
}

// SetBenchmarkTarget selects the benchmark run by default; "" clears it.
func (s *State) SetBenchmarkTarget(name string) error {
	return s.setScoped(&s.bench, name, models.ActionBench)
}

func (s *State) setScoped(field *string, name string, action models.Action) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	if name != "" {
		if s.pkg == "" {
			s.mu.Unlock()
			return fmt.Errorf("%w: cannot select %s target %s", ErrNoPackageSelected, action, name)
		}
		candidates := s.index.FindTargets(s.pkg, name)
		if len(candidates) == 0 {
			pkg := s.pkg
			s.mu.Unlock()
			return unknownTarget(name, pkg)
		}
		if !anySupports(candidates, action) {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s cannot %s", ErrUnsupportedAction, name, action)
		}
	}
	changed := *field != name
	*field = name
	s.mu.Unlock()

	if changed {
		s.publish([]events.Topic{events.SelectionChanged})
	}
	return nil
}

// ToggleFeature flips one feature. Toggling AllFeatures flips the sentinel;
// toggling a concrete feature while the sentinel is active replaces it.
func (s *State) ToggleFeature(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	s.mu.Lock()
	var next FeatureSet
	if name == AllFeatures {
		next = FeatureSet{all: !s.features.all}
	} else {
		next = s.features.toggle(name)
	}
	changed := s.setFeaturesLocked(next)
	s.mu.Unlock()

	if changed {
		s.publish([]events.Topic{events.SelectionChanged})
	}
}

// SetAllFeatures turns the all-features sentinel on or off. Turning it off
// leaves no features selected.
func (s *State) SetAllFeatures(enabled bool) {
	s.SetFeatures(FeatureSet{all: enabled})
}

// SetFeatures replaces the feature set.
func (s *State) SetFeatures(features FeatureSet) {
	s.mu.Lock()
	changed := s.setFeaturesLocked(features)
	s.mu.Unlock()

	if changed {
		s.publish([]events.Topic{events.SelectionChanged})
	}
}

func (s *State) setFeaturesLocked(next FeatureSet) bool {
	if s.features.equal(next) {
		return false
	}
	s.features = next
	return true
}

// SetPlatform selects a target triple; "" selects the host.
func (s *State) SetPlatform(triple string) bool {
	triple = strings.TrimSpace(triple)

	s.mu.Lock()
	if s.platform == triple {
		s.mu.Unlock()
		return false
	}
	s.platform = triple
	s.mu.Unlock()

	s.publish([]events.Topic{events.SelectionChanged})
	return true
}

// Reconcile drops references the current registry no longer backs. The
// workspace calls it after every refresh.
func (s *State) Reconcile() {
	s.mu.Lock()
	var topics []events.Topic

	if s.pkg != "" && !s.index.HasPackage(s.pkg) {
		s.pkg = ""
		topics = append(topics, events.PackageChanged)
	}

	changed := s.cascadeLocked()
	if s.build != "" && s.effectiveTarget(s.build, models.ActionBuild, false) == "" {
		s.build = ""
		changed = true
	}
	if changed {
		topics = append(topics, events.SelectionChanged)
	}
	s.mu.Unlock()

	s.publish(topics)
}

func (s *State) effectivePackage() string {
	if s.pkg != "" && !s.index.HasPackage(s.pkg) {
		return ""
	}
	return s.pkg
}

func (s *State) effectiveTarget(name string, action models.Action, needsPackage bool) string {
	if name == "" {
		return ""
	}
	pkg := s.effectivePackage()
	if needsPackage && pkg == "" {
		return ""
	}
	if !s.inPackage(pkg, name, action) {
		return ""
	}
	return name
}

func (s *State) inPackage(pkg, name string, action models.Action) bool {
	return anySupports(s.index.FindTargets(pkg, name), action)
}

func anySupports(targets []*models.Target, action models.Action) bool {
	for _, t := range targets {
		if t.Supports(action) {
			return true
		}
	}
	return false
}

func unknownTarget(name, pkg string) error {
	if pkg == "" {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, name)
	}
	return fmt.Errorf("%w: %s in package %s", ErrUnknownTarget, name, pkg)
}
