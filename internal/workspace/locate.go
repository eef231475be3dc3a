package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/jakoblorz/cargo-ws/internal/discovery"
	"github.com/jakoblorz/cargo-ws/internal/filesystem"
	"github.com/jakoblorz/cargo-ws/internal/logging"
)

// Locator finds the project root for a directory.
type Locator interface {
	Locate(ctx context.Context, dir string) (string, error)
}

type fsLocator struct {
	fs filesystem.FileSystem
}

// NewFSLocator locates roots by walking the filesystem with Detect.
func NewFSLocator(fs filesystem.FileSystem) Locator {
	return &fsLocator{fs: fs}
}

func (l *fsLocator) Locate(_ context.Context, dir string) (string, error) {
	return Detect(l.fs, dir)
}

type cargoLocator struct {
	runner   discovery.Runner
	fallback Locator
	logger   hclog.Logger
}

// NewCargoLocator asks `cargo locate-project --workspace` for the root and
// falls back to Detect when cargo is unavailable or fails.
func NewCargoLocator(runner discovery.Runner, fs filesystem.FileSystem, logger hclog.Logger) Locator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &cargoLocator{runner: runner, fallback: NewFSLocator(fs), logger: logger}
}

func (l *cargoLocator) Locate(ctx context.Context, dir string) (string, error) {
	out, err := l.runner.Run(ctx, dir, "cargo", "locate-project", "--workspace", "--message-format", "json")
	if err == nil {
		root, parseErr := parseLocateProject(out)
		if parseErr == nil {
			return root, nil
		}
		err = parseErr
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	l.logger.Debug("cargo locate-project failed, walking the filesystem", "dir", dir, "error", err)
	return l.fallback.Locate(ctx, dir)
}

func parseLocateProject(out []byte) (string, error) {
	var raw struct {
		Root string `json:"root"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		return "", fmt.Errorf("failed to parse locate-project output: %w", err)
	}

	manifestPath := strings.TrimSpace(raw.Root)
	if manifestPath == "" {
		return "", fmt.Errorf("locate-project returned no root")
	}
	return filepath.Dir(filepath.Clean(manifestPath)), nil
}
