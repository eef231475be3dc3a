package session

import (
	"github.com/jakoblorz/cargo-ws/internal/config"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/jakoblorz/cargo-ws/internal/selection"
	"github.com/jakoblorz/cargo-ws/internal/workspace"
)

// Restore applies the saved selection of ws. Saved references that no longer
// resolve are dropped, never reported.
func (s *Session) Restore(ws *workspace.Workspace) error {
	saved, err := config.LoadSelection(s.fs, ws.Root())
	if err != nil {
		return err
	}
	if saved == nil {
		return nil
	}

	logger := s.logger.With("root", ws.Root())
	sel := ws.Selection()

	if saved.Profile != "" {
		sel.SetProfile(profile.Normalize(saved.Profile))
	}
	if err := sel.SetPackage(saved.Package); err != nil {
		logger.Debug("dropping saved package", "error", err)
	}
	if err := sel.SetBuildTarget(saved.BuildTarget); err != nil {
		logger.Debug("dropping saved build target", "error", err)
	}
	if err := sel.SetRunTarget(saved.RunTarget); err != nil {
		logger.Debug("dropping saved run target", "error", err)
	}
	if err := sel.SetBenchmarkTarget(saved.BenchmarkTarget); err != nil {
		logger.Debug("dropping saved benchmark target", "error", err)
	}

	features := selection.NewFeatureSet(saved.Features...)
	if saved.AllFeatures {
		features = selection.NewFeatureSet(selection.AllFeatures)
	}
	sel.SetFeatures(features)
	sel.SetPlatform(saved.Platform)
	return nil
}

// Save persists the current selection of ws.
func (s *Session) Save(ws *workspace.Workspace) error {
	snap := ws.Selection().Snapshot()

	return config.SaveSelection(s.fs, ws.Root(), config.SavedSelection{
		Profile:         snap.Profile.Name(),
		Package:         snap.Package,
		BuildTarget:     snap.BuildTarget,
		RunTarget:       snap.RunTarget,
		BenchmarkTarget: snap.BenchmarkTarget,
		Features:        snap.Features.Names(),
		AllFeatures:     snap.Features.All(),
		Platform:        snap.Platform,
	})
}
