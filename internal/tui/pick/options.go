package pick

import (
	"fmt"

	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/jakoblorz/cargo-ws/internal/selection"
	"github.com/jakoblorz/cargo-ws/internal/tui/components"
)

// PackageOptions lists "all packages" followed by every package.
func PackageOptions(packages []string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("All packages", "")}
	for _, name := range packages {
		opts = append(opts, huh.NewOption(name, name))
	}
	return opts
}

// ProfileOptions turns profiles into radio options with their descriptions.
func ProfileOptions(profiles []profile.Profile) []components.RadioOption {
	opts := make([]components.RadioOption, 0, len(profiles))
	for _, p := range profiles {
		opts = append(opts, components.RadioOption{
			Value:       p.Name(),
			Label:       profile.DisplayName(p),
			Description: profile.Description(p),
		})
	}
	return opts
}

// TargetOptions lists the targets supporting action, preceded by an empty
// choice labelled none.
func TargetOptions(targets []*models.Target, action models.Action, none string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption(none, "")}
	seen := make(map[string]bool)
	for _, t := range targets {
		if !t.Supports(action) || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", t.Name, t.PrimaryKind()), t.Name))
	}
	return opts
}

// FeatureOptions lists the all-features sentinel followed by features.
func FeatureOptions(features []string, current selection.FeatureSet) []huh.Option[string] {
	opts := []huh.Option[string]{
		huh.NewOption("all features", selection.AllFeatures).Selected(current.All()),
	}
	for _, f := range features {
		opts = append(opts, huh.NewOption(f, f).Selected(current.Contains(f)))
	}
	return opts
}
