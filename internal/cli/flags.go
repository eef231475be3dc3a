package cli

import (
	"errors"
	"fmt"

	"github.com/jakoblorz/cargo-ws/internal/invocation"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/jakoblorz/cargo-ws/internal/selection"
	"github.com/jakoblorz/cargo-ws/internal/workspace"
	"github.com/spf13/cobra"
)

// overrideFlags are the one-shot selection overrides shared by args and exec.
type overrideFlags struct {
	pkg      string
	profile  string
	release  bool
	platform string

	bin     string
	lib     bool
	example string
	test    string
	bench   string
	name    string

	features          []string
	allFeatures       bool
	noDefaultFeatures bool

	selected    bool
	profileFlag bool
}

func (f *overrideFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.pkg, "package", "p", "", "Package to use instead of the selected one")
	flags.StringVar(&f.profile, "profile", "", "Profile to use instead of the selected one")
	flags.BoolVarP(&f.release, "release", "r", false, "Shorthand for --profile release")
	flags.StringVar(&f.platform, "platform", "", "Target triple passed to cargo as --target")

	flags.StringVar(&f.bin, "bin", "", "Binary target")
	flags.BoolVar(&f.lib, "lib", false, "Library target")
	flags.StringVar(&f.example, "example", "", "Example target")
	flags.StringVar(&f.test, "test", "", "Integration test target")
	flags.StringVar(&f.bench, "bench", "", "Benchmark target")
	flags.StringVar(&f.name, "name", "", "Target name; the kind is looked up in the workspace")

	flags.StringSliceVarP(&f.features, "features", "F", nil, "Features to enable instead of the selected ones")
	flags.BoolVar(&f.allFeatures, "all-features", false, "Enable all features")
	flags.BoolVar(&f.noDefaultFeatures, "no-default-features", false, "Disable default features")

	flags.BoolVar(&f.selected, "selected", false, "Fall back to the selected target when no target flag is given")
	flags.BoolVar(&f.profileFlag, "profile-flag", false, "Pass --profile for profiles other than release")
}

// target returns the explicit target, or nil when no target flag was given.
func (f *overrideFlags) target() (*invocation.TargetRef, error) {
	var refs []*invocation.TargetRef
	add := func(kind models.TargetKind, name string) {
		refs = append(refs, &invocation.TargetRef{Name: name, Kind: kind})
	}

	if f.bin != "" {
		add(models.KindBinary, f.bin)
	}
	if f.lib {
		add(models.KindLibrary, "")
	}
	if f.example != "" {
		add(models.KindExample, f.example)
	}
	if f.test != "" {
		add(models.KindTest, f.test)
	}
	if f.bench != "" {
		add(models.KindBenchmark, f.bench)
	}
	if f.name != "" {
		add("", f.name)
	}

	if len(refs) > 1 {
		return nil, errors.New("only one of --bin, --lib, --example, --test, --bench or --name may be given")
	}
	if len(refs) == 0 {
		return nil, nil
	}
	return refs[0], nil
}

func (f *overrideFlags) overrides(cmd *cobra.Command, ws *workspace.Workspace, args []string) (workspace.Overrides, error) {
	o := workspace.Overrides{
		Package:           f.pkg,
		Platform:          f.platform,
		AllFeatures:       f.allFeatures,
		NoDefaultFeatures: f.noDefaultFeatures,
		UseSelectedTarget: f.selected,
		Args:              args,
	}

	if f.pkg != "" && !ws.HasPackage(f.pkg) {
		return o, fmt.Errorf("%w: %s", selection.ErrUnknownPackage, f.pkg)
	}

	switch {
	case f.release && f.profile != "" && profile.Normalize(f.profile) != profile.Release:
		return o, fmt.Errorf("--release conflicts with --profile %s", f.profile)
	case f.release:
		o.Profile = profile.Release
	case f.profile != "":
		o.Profile = profile.Normalize(f.profile)
	}

	if cmd.Flags().Changed("features") {
		o.Features = append([]string{}, f.features...)
	}
	if cmd.Flags().Changed("profile-flag") {
		enabled := f.profileFlag
		o.ProfileFlag = &enabled
	}

	return o, nil
}

func parseActionArg(args []string) (models.Action, []string, error) {
	if len(args) == 0 {
		return "", nil, errors.New("missing action (one of build, run, test, bench, clean, check, doc)")
	}
	action, err := models.ParseAction(args[0])
	if err != nil {
		return "", nil, err
	}
	return action, args[1:], nil
}
