// Package status renders the selection as a compact status line, one item per
// selection role.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/jakoblorz/cargo-ws/internal/selection"
)

// Role is one status item. The set is closed.
type Role int

const (
	RoleProfile Role = iota
	RolePackage
	RoleBuildTarget
	RoleRunTarget
	RoleBenchTarget
	RoleFeatures
	RolePlatform
)

// Roles lists every role in display order.
var Roles = []Role{RoleProfile, RolePackage, RoleBuildTarget, RoleRunTarget, RoleBenchTarget, RoleFeatures, RolePlatform}

func (r Role) String() string {
	switch r {
	case RoleProfile:
		return "Profile"
	case RolePackage:
		return "Package"
	case RoleBuildTarget:
		return "Build"
	case RoleRunTarget:
		return "Run"
	case RoleBenchTarget:
		return "Bench"
	case RoleFeatures:
		return "Features"
	case RolePlatform:
		return "Platform"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// View is the input of the render policy.
type View struct {
	Selection    selection.Snapshot
	MultiPackage bool
}

// Item is a rendered status item.
type Item struct {
	Role    Role
	Text    string
	Tooltip string
	// Unset is true when the item shows a fallback rather than a selection
	Unset   bool
	Visible bool
}

// Render applies the render policy for role.
func Render(role Role, view View) Item {
	snap := view.Selection
	item := Item{Role: role, Visible: true}

	switch role {
	case RoleProfile:
		item.Text = profile.DisplayName(snap.Profile)
		item.Tooltip = profile.Description(snap.Profile)
		item.Unset = snap.Profile == profile.None

	case RolePackage:
		item.Visible = view.MultiPackage
		item.Text, item.Unset = orFallback(snap.Package, "All packages")
		item.Tooltip = "Package passed to --package"

	case RoleBuildTarget:
		item.Text, item.Unset = orFallback(snap.BuildTarget, "All targets")
		item.Tooltip = "Target built by default"

	case RoleRunTarget:
		item.Visible = snap.Package != "" || !view.MultiPackage
		item.Text, item.Unset = orFallback(snap.RunTarget, "Default binary")
		item.Tooltip = "Binary or example run by default"

	case RoleBenchTarget:
		item.Visible = snap.Package != "" || !view.MultiPackage
		item.Text, item.Unset = orFallback(snap.BenchmarkTarget, "All benchmarks")
		item.Tooltip = "Benchmark run by default"

	case RoleFeatures:
		switch {
		case snap.Features.All():
			item.Text = "All features"
		case len(snap.Features.Names()) > 0:
			item.Text = strings.Join(snap.Features.Names(), ",")
		default:
			item.Text, item.Unset = "Default features", true
		}
		item.Tooltip = "Features passed to --features"

	case RolePlatform:
		item.Text, item.Unset = orFallback(snap.Platform, "Host")
		item.Tooltip = "Target triple passed to --target"

	default:
		item.Visible = false
	}

	return item
}

// Items renders every visible role in display order.
func Items(view View) []Item {
	var items []Item
	for _, role := range Roles {
		if item := Render(role, view); item.Visible {
			items = append(items, item)
		}
	}
	return items
}

// Line joins the visible items into one styled line.
func Line(view View) string {
	var parts []string
	for _, item := range Items(view) {
		parts = append(parts, LabelStyle.Render(item.Role.String()+":")+" "+valueStyle(item).Render(item.Text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWith(parts, SeparatorStyle.Render("|"))...)
}

// Plain is Line without styling.
func Plain(view View) string {
	var parts []string
	for _, item := range Items(view) {
		parts = append(parts, item.Role.String()+": "+item.Text)
	}
	return strings.Join(parts, " | ")
}

func valueStyle(item Item) lipgloss.Style {
	switch {
	case item.Unset:
		return UnsetStyle
	case item.Role == RoleProfile && item.Text == profile.DisplayName(profile.Release):
		return ReleaseStyle
	default:
		return ValueStyle
	}
}

func orFallback(value, fallback string) (string, bool) {
	if value == "" {
		return fallback, true
	}
	return value, false
}

func joinWith(parts []string, sep string) []string {
	if len(parts) == 0 {
		return nil
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}
