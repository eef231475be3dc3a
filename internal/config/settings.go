// Package config loads the optional cargo-ws.toml settings file that sits
// next to a workspace's Cargo.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jakoblorz/cargo-ws/internal/filesystem"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/pelletier/go-toml/v2"
)

const (
	// FileName is the settings file looked up in the workspace root.
	FileName = "cargo-ws.toml"

	// ProfileFlagEnv overrides use_profile_flag when set to a boolean.
	ProfileFlagEnv = "CARGO_WS_PROFILE_FLAG"
)

// Settings are the user-level knobs of argument synthesis.
type Settings struct {
	// UseProfileFlag passes --profile <name> for profiles other than release.
	UseProfileFlag bool `toml:"use_profile_flag"`

	// LabelTemplate renders task labels; empty means the default.
	LabelTemplate string `toml:"label_template"`

	// ProfileArgs are appended after the generated flags, keyed by profile.
	ProfileArgs map[string][]string `toml:"profile_args"`

	// CommandArgs are appended after ProfileArgs, keyed by action.
	CommandArgs map[string][]string `toml:"command_args"`

	// Path is the file the settings were read from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		ProfileArgs: map[string][]string{},
		CommandArgs: map[string][]string{},
	}
}

// Load reads root/cargo-ws.toml. A missing file yields Default. Environment
// overrides are applied through getenv; nil means os.Getenv.
func Load(fs filesystem.FileSystem, root string, getenv func(string) string) (*Settings, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	settings := Default()
	path := filepath.Join(root, FileName)

	if fs.Exists(path) {
		data, err := fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, settings); err != nil {
			var decodeErr *toml.DecodeError
			if errors.As(err, &decodeErr) {
				row, col := decodeErr.Position()
				return nil, fmt.Errorf("failed to parse %s at %d:%d: %w", path, row, col, err)
			}
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		settings.Path = path
	}

	if raw := strings.TrimSpace(getenv(ProfileFlagEnv)); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", ProfileFlagEnv, raw, err)
		}
		settings.UseProfileFlag = v
	}

	settings.normalize()
	return settings, nil
}

func (s *Settings) normalize() {
	if s.ProfileArgs == nil {
		s.ProfileArgs = map[string][]string{}
	}
	if s.CommandArgs == nil {
		s.CommandArgs = map[string][]string{}
	}

	profiles := make(map[string][]string, len(s.ProfileArgs))
	for name, args := range s.ProfileArgs {
		key := profile.Normalize(name).Name()
		profiles[key] = append(profiles[key], args...)
	}
	s.ProfileArgs = profiles

	commands := make(map[string][]string, len(s.CommandArgs))
	for name, args := range s.CommandArgs {
		key := strings.ToLower(strings.TrimSpace(name))
		commands[key] = append(commands[key], args...)
	}
	s.CommandArgs = commands
}

// ProfileArgsFor returns the trailing arguments configured for p.
func (s *Settings) ProfileArgsFor(p profile.Profile) []string {
	return clone(s.ProfileArgs[p.Name()])
}

// CommandArgsFor returns the trailing arguments configured for action a.
func (s *Settings) CommandArgsFor(a models.Action) []string {
	return clone(s.CommandArgs[string(a)])
}

func clone(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
