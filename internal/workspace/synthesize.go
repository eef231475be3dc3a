package workspace

import (
	"github.com/jakoblorz/cargo-ws/internal/invocation"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
)

// Overrides replace parts of the selection for a single synthesis. Zero
// values keep the selected value.
type Overrides struct {
	Profile  profile.Profile
	Package  string
	Features []string
	Platform string

	AllFeatures       bool
	NoDefaultFeatures bool

	// ProfileFlag forces --profile on or off; nil follows the settings.
	ProfileFlag *bool

	// UseSelectedTarget lets a nil explicit target fall back to the selected
	// build, run or benchmark target. Without it a nil target means every
	// target.
	UseSelectedTarget bool

	// Args are appended after the configured trailing arguments.
	Args []string
}

// SynthesizeArguments builds the cargo arguments for action from the current
// selection, the overrides and the settings.
func (w *Workspace) SynthesizeArguments(action models.Action, explicit *invocation.TargetRef, overrides Overrides) []string {
	return invocation.Arguments(w.Request(action, explicit, overrides))
}

// Request assembles the invocation request SynthesizeArguments renders.
func (w *Workspace) Request(action models.Action, explicit *invocation.TargetRef, overrides Overrides) invocation.Request {
	snap := w.selection.Snapshot()

	p := snap.Profile
	if overrides.Profile != "" {
		p = profile.Normalize(overrides.Profile.Name())
	}

	pkg := snap.Package
	if overrides.Package != "" {
		pkg = overrides.Package
	}

	features := snap.Features.Names()
	if overrides.Features != nil {
		features = overrides.Features
	}

	platform := snap.Platform
	if overrides.Platform != "" {
		platform = overrides.Platform
	}

	profileFlag := w.settings.UseProfileFlag
	if overrides.ProfileFlag != nil {
		profileFlag = *overrides.ProfileFlag
	}

	target := explicit
	if target == nil && overrides.UseSelectedTarget {
		target = selectedTarget(action, snap.BuildTarget, snap.RunTarget, snap.BenchmarkTarget)
	}

	return invocation.Request{
		Action:            action,
		Profile:           p,
		ProfileFlag:       profileFlag,
		Package:           pkg,
		MultiPackage:      w.IsMultiPackage(),
		Target:            target,
		Resolver:          w,
		Features:          w.declaredFeatures(pkg, features),
		AllFeatures:       overrides.AllFeatures || snap.Features.All(),
		NoDefaultFeatures: overrides.NoDefaultFeatures,
		Platform:          platform,
		ProfileArgs:       w.settings.ProfileArgsFor(p),
		CommandArgs:       w.settings.CommandArgsFor(action),
		ExtraArgs:         overrides.Args,
	}
}

func selectedTarget(action models.Action, build, run, bench string) *invocation.TargetRef {
	var name string
	switch action {
	case models.ActionRun:
		name = run
	case models.ActionBench:
		name = bench
	case models.ActionBuild, models.ActionCheck, models.ActionDoc:
		name = build
	}
	if name == "" {
		return nil
	}
	return &invocation.TargetRef{Name: name}
}

// declaredFeatures drops names the package (or, for all packages, any
// package) does not declare.
func (w *Workspace) declaredFeatures(pkg string, features []string) []string {
	m := w.Manifest()
	if m == nil || len(features) == 0 {
		return features
	}

	declared := make(map[string]bool)
	for _, f := range m.Features(pkg) {
		declared[f] = true
	}

	var out []string
	for _, f := range features {
		if declared[f] {
			out = append(out, f)
		} else {
			w.logger.Debug("dropping undeclared feature", "feature", f, "package", pkg)
		}
	}
	return out
}
