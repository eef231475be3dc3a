// Package profile models cargo build profiles: the five well-known ones and
// the custom profiles discovered in manifests and cargo config files.
package profile

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Profile is a normalized (lowercase, trimmed) profile name.
type Profile string

const (
	None    Profile = "none"
	Dev     Profile = "dev"
	Release Profile = "release"
	Test    Profile = "test"
	Bench   Profile = "bench"
)

// WellKnown lists the built-in profiles in canonical order.
var WellKnown = []Profile{None, Dev, Release, Test, Bench}

var aliases = map[string]Profile{
	"debug": Dev,
}

// Normalize maps raw user or manifest input onto a Profile. It never fails:
// names that are neither well-known nor aliases become custom profiles, since
// cargo accepts arbitrary profile names.
func Normalize(raw string) Profile {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return None
	}
	if p, ok := aliases[name]; ok {
		return p
	}
	return Profile(name)
}

// IsWellKnown reports whether name normalizes to one of the built-in profiles.
func IsWellKnown(name string) bool {
	p := Normalize(name)
	for _, wk := range WellKnown {
		if p == wk {
			return true
		}
	}
	return false
}

// Name returns the profile name as cargo expects it.
func (p Profile) Name() string {
	return string(p)
}

// String returns the string representation of Profile
func (p Profile) String() string {
	return string(p)
}

// IsCustom reports whether p is not a built-in profile.
func (p Profile) IsCustom() bool {
	return !IsWellKnown(string(p))
}

// DisplayName returns a human readable label for p.
func DisplayName(p Profile) string {
	switch p {
	case None:
		return "None"
	case Dev:
		return "Dev"
	case Release:
		return "Release"
	case Test:
		return "Test"
	case Bench:
		return "Bench"
	}
	return capitalize(string(p))
}

// Description explains which compiler flag selecting p implies.
func Description(p Profile) string {
	switch p {
	case None:
		return "No profile flag; cargo picks the default profile for the command"
	case Dev:
		return "Development build with debug info (no --release flag)"
	case Release:
		return "Optimized build (--release)"
	case Test:
		return "Test profile (--profile test)"
	case Bench:
		return "Benchmark profile (--profile bench)"
	}
	return fmt.Sprintf("Custom profile (--profile %s)", p)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
