package cli

import (
	"fmt"

	"github.com/jakoblorz/cargo-ws/internal/config"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/jakoblorz/cargo-ws/internal/selection"
	"github.com/spf13/cobra"
)

// SelectCommand edits the persisted selection without prompting.
type SelectCommand struct {
	env *Env

	pkg         string
	profile     string
	build       string
	run         string
	bench       string
	toggle      []string
	features    []string
	allFeatures bool
	platform    string
	reset       bool
}

// NewSelectCommand creates the select command
func NewSelectCommand(env *Env) *cobra.Command {
	cmd := &SelectCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "select",
		Short: "Change the selection non-interactively",
		Long: `Change the persisted selection of the workspace.

Only the given flags are applied. An empty value clears the role, e.g.
--package "" selects all packages. Changing the package clears run and
benchmark targets that do not belong to it.`,
		Example: `  # Select the cli package and its tool binary
  cargo-ws select -p cli --run tool

  # Enable all features for the release profile
  cargo-ws select --profile release --all-features

  # Forget everything
  cargo-ws select --reset`,
		RunE: cmd.Run,
	}

	flags := cobraCmd.Flags()
	flags.StringVarP(&cmd.pkg, "package", "p", "", "Package to select (empty for all packages)")
	flags.StringVar(&cmd.profile, "profile", "", "Profile to select")
	flags.StringVar(&cmd.build, "build", "", "Build target to select")
	flags.StringVar(&cmd.run, "run", "", "Run target to select")
	flags.StringVar(&cmd.bench, "bench", "", "Benchmark target to select")
	flags.StringSliceVar(&cmd.toggle, "toggle-feature", nil, "Feature to toggle (repeatable)")
	flags.StringSliceVarP(&cmd.features, "features", "F", nil, "Replace the selected features")
	flags.BoolVar(&cmd.allFeatures, "all-features", false, "Select all features")
	flags.StringVar(&cmd.platform, "platform", "", "Target triple to select (empty for host)")
	flags.BoolVar(&cmd.reset, "reset", false, "Clear the persisted selection")

	return cobraCmd
}

// Run executes the select command
func (c *SelectCommand) Run(cmd *cobra.Command, args []string) error {
	s, ws, err := c.env.open(cmd)
	if err != nil {
		return err
	}
	defer s.CloseAll()

	if c.reset {
		if err := config.ClearSelection(s.FileSystem(), ws.Root()); err != nil {
			return fmt.Errorf("failed to clear selection: %w", err)
		}
		fmt.Fprintln(c.env.Stdout, "Selection cleared")
		return nil
	}

	sel := ws.Selection()
	changed := cmd.Flags().Changed

	if changed("package") {
		if err := sel.SetPackage(c.pkg); err != nil {
			return err
		}
	}
	if changed("profile") {
		sel.SetProfile(profile.Normalize(c.profile))
	}
	if changed("build") {
		if err := sel.SetBuildTarget(c.build); err != nil {
			return fmt.Errorf("build target: %w", err)
		}
	}
	if changed("run") {
		if err := sel.SetRunTarget(c.run); err != nil {
			return fmt.Errorf("run target: %w", err)
		}
	}
	if changed("bench") {
		if err := sel.SetBenchmarkTarget(c.bench); err != nil {
			return fmt.Errorf("benchmark target: %w", err)
		}
	}
	if changed("features") {
		sel.SetFeatures(selection.NewFeatureSet(c.features...))
	}
	for _, f := range c.toggle {
		sel.ToggleFeature(f)
	}
	if changed("all-features") {
		sel.SetAllFeatures(c.allFeatures)
	}
	if changed("platform") {
		sel.SetPlatform(c.platform)
	}

	if err := s.Save(ws); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}

	_, err = fmt.Fprintln(c.env.Stdout, renderStatus(ws, true))
	return err
}
