package invocation

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/stretchr/testify/assert"
)

type staticResolver []*models.Target

func (r staticResolver) FindTargets(pkg, name string) []*models.Target {
	var out []*models.Target
	for _, t := range r {
		if t.Name == name && (pkg == "" || t.PackageName == pkg) {
			out = append(out, t)
		}
	}
	return out
}

func newTarget(pkg, name string, kinds ...models.TargetKind) *models.Target {
	return models.NewTarget(name, kinds, "", pkg, "/ws/"+pkg, "2021")
}

var registry = staticResolver{
	newTarget("core", "core", models.KindLibrary),
	newTarget("worker", "my-app", models.KindBinary),
	newTarget("worker", "fibonacci", models.KindBenchmark),
	newTarget("worker", "integration", models.KindTest),
	newTarget("shared", "demo", models.KindLibrary),
	newTarget("examples", "demo", models.KindExample),
}

func TestArguments_Clean(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{
			name: "explicit target is ignored",
			req:  Request{Action: models.ActionClean, Target: &TargetRef{Name: "my-app", Kind: models.KindBinary}},
			want: []string{"clean"},
		},
		{
			name: "features and platform are ignored",
			req: Request{
				Action:      models.ActionClean,
				Features:    []string{"serde"},
				AllFeatures: true,
				Platform:    "wasm32-unknown-unknown",
			},
			want: []string{"clean"},
		},
		{
			name: "profile and package still apply",
			req: Request{
				Action:       models.ActionClean,
				Profile:      profile.Release,
				Package:      "core",
				MultiPackage: true,
				Target:       &TargetRef{Name: "core", Kind: models.KindLibrary},
			},
			want: []string{"clean", "--release", "--package", "core"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Arguments(tt.req))
		})
	}
}

func TestArguments_AllTargets(t *testing.T) {
	multi := Request{Action: models.ActionBuild, Package: "core", MultiPackage: true, Resolver: registry}
	assert.Equal(t, []string{"build", "--package", "core"}, Arguments(multi))

	single := Request{Action: models.ActionBuild, Package: "core", Resolver: registry}
	assert.Equal(t, []string{"build"}, Arguments(single))
}

// A missing target must never be replaced by whatever target happens to be
// selected elsewhere: no target means every target.
func TestArguments_NoFallbackToCurrentTarget(t *testing.T) {
	for _, action := range []models.Action{models.ActionBuild, models.ActionRun, models.ActionTest, models.ActionBench} {
		t.Run(string(action), func(t *testing.T) {
			args := Arguments(Request{
				Action:       action,
				Package:      "worker",
				MultiPackage: true,
				Resolver:     registry,
			})

			for _, flag := range []string{"--bin", "--lib", "--example", "--test", "--bench"} {
				assert.NotContains(t, args, flag)
			}
			assert.Equal(t, []string{string(action), "--package", "worker"}, args)
		})
	}
}

func TestArguments_ExplicitBinary(t *testing.T) {
	bin := &TargetRef{Name: "my-app", Kind: models.KindBinary}

	assert.Equal(t,
		[]string{"build", "--bin", "my-app"},
		Arguments(Request{Action: models.ActionBuild, Target: bin}))

	assert.Equal(t,
		[]string{"build", "--release", "--bin", "my-app"},
		Arguments(Request{Action: models.ActionBuild, Profile: profile.Release, Target: bin}))

	assert.Equal(t,
		[]string{"build", "--package", "worker", "--bin", "my-app"},
		Arguments(Request{Action: models.ActionBuild, Package: "worker", MultiPackage: true, Target: bin}))
}

func TestArguments_ExplicitKinds(t *testing.T) {
	tests := []struct {
		kind models.TargetKind
		want []string
	}{
		{models.KindBinary, []string{"build", "--bin", "x"}},
		{models.KindLibrary, []string{"build", "--lib"}},
		{models.KindExample, []string{"build", "--example", "x"}},
		{models.KindTest, []string{"build", "--test", "x"}},
		{models.KindBenchmark, []string{"build", "--bench", "x"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got := Arguments(Request{Action: models.ActionBuild, Target: &TargetRef{Name: "x", Kind: tt.kind}})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArguments_ResolveByName(t *testing.T) {
	tests := []struct {
		name   string
		action models.Action
		pkg    string
		target string
		want   []string
	}{
		{
			name:   "benchmark",
			action: models.ActionBench,
			target: "fibonacci",
			want:   []string{"bench", "--bench", "fibonacci"},
		},
		{
			name:   "test",
			action: models.ActionTest,
			target: "integration",
			want:   []string{"test", "--test", "integration"},
		},
		{
			name:   "prefers kind supporting the action",
			action: models.ActionRun,
			target: "demo",
			want:   []string{"run", "--example", "demo"},
		},
		{
			name:   "scoped to package",
			action: models.ActionBuild,
			pkg:    "shared",
			target: "demo",
			want:   []string{"build", "--lib"},
		},
		{
			name:   "unresolvable name emits no flag",
			action: models.ActionBuild,
			target: "missing",
			want:   []string{"build"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Arguments(Request{
				Action:   tt.action,
				Package:  tt.pkg,
				Target:   &TargetRef{Name: tt.target},
				Resolver: registry,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArguments_NameWithoutResolver(t *testing.T) {
	got := Arguments(Request{Action: models.ActionRun, Target: &TargetRef{Name: "my-app"}})
	assert.Equal(t, []string{"run"}, got)
}

func TestArguments_ProfileFlag(t *testing.T) {
	tests := []struct {
		name        string
		profile     profile.Profile
		profileFlag bool
		want        []string
	}{
		{"release without request", profile.Release, false, []string{"build", "--release"}},
		{"release with request", profile.Release, true, []string{"build", "--release"}},
		{"dev without request", profile.Dev, false, []string{"build"}},
		{"dev with request", profile.Dev, true, []string{"build", "--profile", "dev"}},
		{"custom without request", profile.Profile("ci"), false, []string{"build"}},
		{"custom with request", profile.Profile("ci"), true, []string{"build", "--profile", "ci"}},
		{"none with request", profile.None, true, []string{"build"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Arguments(Request{Action: models.ActionBuild, Profile: tt.profile, ProfileFlag: tt.profileFlag})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArguments_Features(t *testing.T) {
	assert.Equal(t,
		[]string{"build", "--features", "f1,f2"},
		Arguments(Request{Action: models.ActionBuild, Features: []string{"f1", "f2"}}))

	assert.Equal(t,
		[]string{"build", "--all-features"},
		Arguments(Request{Action: models.ActionBuild, AllFeatures: true}))

	assert.Equal(t,
		[]string{"build", "--features", "f1,f2", "--all-features", "--no-default-features"},
		Arguments(Request{
			Action:            models.ActionBuild,
			Features:          []string{"f1", "", "f2"},
			AllFeatures:       true,
			NoDefaultFeatures: true,
		}))
}

func TestArguments_TrailingOrder(t *testing.T) {
	got := Arguments(Request{
		Action:      models.ActionTest,
		Profile:     profile.Release,
		Platform:    "x86_64-unknown-linux-musl",
		ProfileArgs: []string{"--locked"},
		CommandArgs: []string{"--", "--nocapture"},
		ExtraArgs:   []string{"--test-threads=1"},
	})

	assert.Equal(t, []string{
		"test", "--release", "--target", "x86_64-unknown-linux-musl",
		"--locked", "--", "--nocapture", "--test-threads=1",
	}, got)
}

func TestArguments_Snapshots(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "run_example_in_workspace",
			req: Request{
				Action:       models.ActionRun,
				Profile:      profile.Dev,
				Package:      "examples",
				MultiPackage: true,
				Target:       &TargetRef{Name: "demo"},
				Resolver:     registry,
				Features:     []string{"tls"},
				ExtraArgs:    []string{"--", "--port", "8080"},
			},
		},
		{
			name: "bench_custom_profile",
			req: Request{
				Action:      models.ActionBench,
				Profile:     profile.Profile("release-with-debug"),
				ProfileFlag: true,
				Package:     "worker",
				Target:      &TargetRef{Name: "fibonacci", Kind: models.KindBenchmark},
			},
		},
		{
			name: "check_everything_for_wasm",
			req: Request{
				Action:            models.ActionCheck,
				Profile:           profile.Release,
				Package:           "core",
				MultiPackage:      true,
				AllFeatures:       true,
				NoDefaultFeatures: true,
				Platform:          "wasm32-unknown-unknown",
				ProfileArgs:       []string{"--locked"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snaps.MatchSnapshot(t, strings.Join(Arguments(tt.req), " "))
		})
	}
}
