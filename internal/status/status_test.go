package status

import (
	"testing"

	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/jakoblorz/cargo-ws/internal/selection"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		view    View
		text    string
		unset   bool
		visible bool
	}{
		{
			name:    "release profile",
			role:    RoleProfile,
			view:    View{Selection: selection.Snapshot{Profile: profile.Release}},
			text:    "Release",
			visible: true,
		},
		{
			name:    "custom profile is capitalized",
			role:    RoleProfile,
			view:    View{Selection: selection.Snapshot{Profile: "release-with-debug"}},
			text:    "Release-with-debug",
			visible: true,
		},
		{
			name:    "package hidden in single package project",
			role:    RolePackage,
			view:    View{Selection: selection.Snapshot{Profile: profile.Dev}},
			text:    "All packages",
			unset:   true,
			visible: false,
		},
		{
			name:    "selected package",
			role:    RolePackage,
			view:    View{Selection: selection.Snapshot{Package: "core"}, MultiPackage: true},
			text:    "core",
			visible: true,
		},
		{
			name:    "run target hidden while all packages are selected",
			role:    RoleRunTarget,
			view:    View{MultiPackage: true},
			text:    "Default binary",
			unset:   true,
			visible: false,
		},
		{
			name:    "all features",
			role:    RoleFeatures,
			view:    View{Selection: selection.Snapshot{Features: selection.NewFeatureSet(selection.AllFeatures)}},
			text:    "All features",
			visible: true,
		},
		{
			name:    "feature list",
			role:    RoleFeatures,
			view:    View{Selection: selection.Snapshot{Features: selection.NewFeatureSet("serde", "std")}},
			text:    "serde,std",
			visible: true,
		},
		{
			name:    "host platform",
			role:    RolePlatform,
			view:    View{},
			text:    "Host",
			unset:   true,
			visible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Render(tt.role, tt.view)
			assert.Equal(t, tt.role, item.Role)
			assert.Equal(t, tt.text, item.Text)
			assert.Equal(t, tt.unset, item.Unset)
			assert.Equal(t, tt.visible, item.Visible)
			assert.NotEmpty(t, item.Tooltip)
		})
	}
}

func TestRender_ProfileTooltip(t *testing.T) {
	item := Render(RoleProfile, View{Selection: selection.Snapshot{Profile: "ci"}})
	assert.Equal(t, "Custom profile (--profile ci)", item.Tooltip)
}

func TestPlain(t *testing.T) {
	view := View{
		MultiPackage: true,
		Selection: selection.Snapshot{
			Profile:     profile.Release,
			Package:     "cli",
			BuildTarget: "tool",
			RunTarget:   "cli",
			Platform:    "x86_64-unknown-linux-gnu",
		},
	}

	assert.Equal(t,
		"Profile: Release | Package: cli | Build: tool | Run: cli | Bench: All benchmarks | Features: Default features | Platform: x86_64-unknown-linux-gnu",
		Plain(view))
}

func TestLine_ContainsEveryVisibleItem(t *testing.T) {
	view := View{Selection: selection.Snapshot{Profile: profile.Dev}}
	line := Line(view)

	for _, item := range Items(view) {
		assert.Contains(t, line, item.Text)
	}
	assert.NotContains(t, line, "All packages")
}
