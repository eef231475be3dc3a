// Package invocation turns an action plus a resolved selection into the
// argument vector passed to cargo.
package invocation

import (
	"strings"

	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
)

// Resolver looks up targets by name. An empty package name searches every
// package.
type Resolver interface {
	FindTargets(packageName, targetName string) []*models.Target
}

// TargetRef names a target, optionally with the kind it should be designated
// as. A zero Kind means the kind is resolved by name.
type TargetRef struct {
	Name string
	Kind models.TargetKind
}

// Request is everything Arguments needs. It is a plain value: Arguments reads
// nothing beyond it and the Resolver.
type Request struct {
	Action  models.Action
	Profile profile.Profile
	// ProfileFlag asks for --profile <name> on profiles other than release.
	ProfileFlag bool

	Package      string
	MultiPackage bool

	Target   *TargetRef
	Resolver Resolver

	Features          []string
	AllFeatures       bool
	NoDefaultFeatures bool
	Platform          string

	// Trailing arguments, appended verbatim in this order.
	ProfileArgs []string
	CommandArgs []string
	ExtraArgs   []string
}

// Arguments builds the cargo argument vector for req.
//
// The order is fixed: verb, profile, package, target designator, features,
// platform, trailing arguments. Clean never receives target, feature or
// platform flags. A request without a target never designates one; the
// caller decides what "no target" means before calling.
func Arguments(req Request) []string {
	args := []string{string(req.Action)}

	args = append(args, profileFlags(req)...)

	if req.MultiPackage && req.Package != "" {
		args = append(args, "--package", req.Package)
	}

	if req.Action != models.ActionClean {
		args = append(args, targetFlags(req)...)

		if features := nonEmpty(req.Features); len(features) > 0 {
			args = append(args, "--features", strings.Join(features, ","))
		}
		if req.AllFeatures {
			args = append(args, "--all-features")
		}
		if req.NoDefaultFeatures {
			args = append(args, "--no-default-features")
		}
		if req.Platform != "" {
			args = append(args, "--target", req.Platform)
		}
	}

	args = append(args, req.ProfileArgs...)
	args = append(args, req.CommandArgs...)
	args = append(args, req.ExtraArgs...)

	return args
}

func profileFlags(req Request) []string {
	switch {
	case req.Profile == profile.Release:
		return []string{"--release"}
	case req.ProfileFlag && req.Profile != profile.None && req.Profile != "":
		return []string{"--profile", req.Profile.Name()}
	default:
		return nil
	}
}

func targetFlags(req Request) []string {
	ref := req.Target
	if ref == nil {
		return nil
	}

	kind := ref.Kind
	if !kind.IsValid() {
		var ok bool
		if kind, ok = resolveKind(req); !ok {
			return nil
		}
	}

	flag, takesName := kind.Flag()
	if !takesName {
		return []string{flag}
	}
	if ref.Name == "" {
		return nil
	}
	return []string{flag, ref.Name}
}

// resolveKind finds the kind for a name-only reference, preferring a target
// that supports the action.
func resolveKind(req Request) (models.TargetKind, bool) {
	if req.Resolver == nil || req.Target.Name == "" {
		return "", false
	}

	candidates := req.Resolver.FindTargets(req.Package, req.Target.Name)
	if len(candidates) == 0 {
		return "", false
	}

	for _, t := range candidates {
		if t.Supports(req.Action) {
			return t.KindFor(req.Action)
		}
	}
	return candidates[0].KindFor(req.Action)
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
