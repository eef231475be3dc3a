// Package pick is the interactive selection editor behind `cargo-ws pick`.
package pick

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/jakoblorz/cargo-ws/internal/selection"
	"github.com/jakoblorz/cargo-ws/internal/tui"
	"github.com/jakoblorz/cargo-ws/internal/tui/components"
	"github.com/jakoblorz/cargo-ws/internal/workspace"
)

// Choices is everything the flow asks for.
type Choices struct {
	Package         string
	Profile         profile.Profile
	BuildTarget     string
	RunTarget       string
	BenchmarkTarget string
	Features        []string
	Platform        string
}

// Flow walks the user through the selection using huh forms.
type Flow struct {
	workspace *workspace.Workspace
	profiles  []profile.Profile
	theme     *huh.Theme
}

// NewFlow constructs a Flow for ws offering profiles.
func NewFlow(ws *workspace.Workspace, profiles []profile.Profile) *Flow {
	return &Flow{
		workspace: ws,
		profiles:  profiles,
		theme:     tui.NewHuhTheme(),
	}
}

// Run asks every question, applies the answers and returns them. It returns
// nil when the user aborts; nothing is applied in that case.
func (f *Flow) Run() (*Choices, error) {
	choices, err := f.ask()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}
	if choices == nil {
		return nil, nil
	}

	if err := Apply(f.workspace.Selection(), *choices); err != nil {
		return nil, err
	}
	return choices, nil
}

func (f *Flow) ask() (*Choices, error) {
	snap := f.workspace.Selection().Snapshot()
	choices := &Choices{
		Package:         snap.Package,
		BuildTarget:     snap.BuildTarget,
		RunTarget:       snap.RunTarget,
		BenchmarkTarget: snap.BenchmarkTarget,
		Platform:        snap.Platform,
	}

	packages := f.workspace.Packages()
	if len(packages) == 1 {
		choices.Package = packages[0]
	} else if err := f.form(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Package").
			Options(PackageOptions(packages)...).
			Value(&choices.Package),
	)); err != nil {
		return nil, err
	}

	value, ok, err := components.RunRadio("Profile", ProfileOptions(f.profiles), snap.Profile.Name())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	choices.Profile = profile.Normalize(value)

	if err := f.form(f.targetGroup(choices)); err != nil {
		return nil, err
	}

	features := f.features(choices.Package)
	if len(features) > 0 {
		if err := f.form(huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Features").
				Options(FeatureOptions(features, snap.Features)...).
				Value(&choices.Features),
		)); err != nil {
			return nil, err
		}
	}

	if err := f.form(huh.NewGroup(
		huh.NewInput().
			Title("Platform").
			Description("Target triple passed to --target; empty builds for the host.").
			Placeholder("x86_64-unknown-linux-gnu").
			Value(&choices.Platform),
	)); err != nil {
		return nil, err
	}
	choices.Platform = strings.TrimSpace(choices.Platform)

	return choices, nil
}

func (f *Flow) targetGroup(choices *Choices) *huh.Group {
	var targets []*models.Target
	if choices.Package == "" {
		targets = f.workspace.Targets()
	} else {
		targets = f.workspace.TargetsForPackage(choices.Package)
	}

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Build target").
			Options(TargetOptions(targets, models.ActionBuild, "All targets")...).
			Value(&choices.BuildTarget),
	}
	if choices.Package != "" {
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Run target").
				Options(TargetOptions(targets, models.ActionRun, "Default binary")...).
				Value(&choices.RunTarget),
			huh.NewSelect[string]().
				Title("Benchmark target").
				Options(TargetOptions(targets, models.ActionBench, "All benchmarks")...).
				Value(&choices.BenchmarkTarget),
		)
	} else {
		choices.RunTarget = ""
		choices.BenchmarkTarget = ""
	}

	return huh.NewGroup(fields...)
}

func (f *Flow) features(pkg string) []string {
	m := f.workspace.Manifest()
	if m == nil {
		return nil
	}
	return m.Features(pkg)
}

func (f *Flow) form(groups ...*huh.Group) error {
	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.MultiSelect.Toggle.SetKeys(" ")
	keyMap.MultiSelect.Toggle.SetHelp("space", "toggle")

	form := huh.NewForm(groups...).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	return form.Run()
}

// Apply writes choices into sel. The package goes first so the target
// setters validate against it.
func Apply(sel *selection.State, c Choices) error {
	if err := sel.SetPackage(c.Package); err != nil {
		return err
	}
	if c.Profile != "" {
		sel.SetProfile(c.Profile)
	}
	if err := sel.SetBuildTarget(c.BuildTarget); err != nil {
		return fmt.Errorf("build target: %w", err)
	}
	if c.Package != "" {
		if err := sel.SetRunTarget(c.RunTarget); err != nil {
			return fmt.Errorf("run target: %w", err)
		}
		if err := sel.SetBenchmarkTarget(c.BenchmarkTarget); err != nil {
			return fmt.Errorf("benchmark target: %w", err)
		}
	}
	sel.SetFeatures(selection.NewFeatureSet(c.Features...))
	sel.SetPlatform(c.Platform)
	return nil
}
