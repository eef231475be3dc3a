// Package session owns every open workspace together with the state they
// share: the custom profile registry, the logger and the filesystem.
package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/jakoblorz/cargo-ws/internal/config"
	"github.com/jakoblorz/cargo-ws/internal/discovery"
	"github.com/jakoblorz/cargo-ws/internal/events"
	"github.com/jakoblorz/cargo-ws/internal/filesystem"
	"github.com/jakoblorz/cargo-ws/internal/logging"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/jakoblorz/cargo-ws/internal/workspace"
)

// DiscovererFactory builds the target discoverer for one workspace.
type DiscovererFactory func(fs filesystem.FileSystem, logger hclog.Logger) discovery.Discoverer

// Session is the explicitly constructed context command handlers share.
type Session struct {
	fs         filesystem.FileSystem
	logger     hclog.Logger
	profiles   *profile.Registry
	discoverer DiscovererFactory
	getenv     func(string) string

	mu         sync.Mutex
	workspaces map[string]*workspace.Workspace
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithDiscoverer sets how workspaces discover targets.
func WithDiscoverer(factory DiscovererFactory) Option {
	return func(s *Session) {
		s.discoverer = factory
	}
}

// WithGetenv sets the environment lookup used for settings overrides.
func WithGetenv(getenv func(string) string) Option {
	return func(s *Session) {
		s.getenv = getenv
	}
}

// New creates an empty Session.
func New(fs filesystem.FileSystem, options ...Option) *Session {
	s := &Session{
		fs:         fs,
		profiles:   profile.NewRegistry(),
		workspaces: make(map[string]*workspace.Workspace),
	}

	for _, option := range options {
		option(s)
	}

	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.discoverer == nil {
		s.discoverer = DefaultDiscoverer
	}
	return s
}

// DefaultDiscoverer runs cargo metadata and scans the source layout when
// cargo fails.
func DefaultDiscoverer(fs filesystem.FileSystem, logger hclog.Logger) discovery.Discoverer {
	return discovery.NewDefault(
		discovery.NewMetadataDiscoverer(discovery.NewOSRunner()),
		discovery.NewScanDiscoverer(fs),
		logger,
	)
}

// Open returns the workspace for root, creating and refreshing it on first
// use and restoring its saved selection. A workspace whose refresh failed is still returned together with the
// error so callers can inspect it; it stays open until Close.
func (s *Session) Open(ctx context.Context, root string) (*workspace.Workspace, error) {
	root = filepath.Clean(root)

	s.mu.Lock()
	if ws, ok := s.workspaces[root]; ok {
		s.mu.Unlock()
		return ws, nil
	}

	settings, err := config.Load(s.fs, root, s.getenv)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	logger := s.logger.Named("workspace").With("root", root)
	ws := workspace.New(s.fs, root,
		workspace.WithLogger(logger),
		workspace.WithNotifier(events.NewNotifier()),
		workspace.WithProfiles(s.profiles),
		workspace.WithSettings(settings),
		workspace.WithDiscoverer(s.discoverer(s.fs, logger)),
	)
	s.workspaces[root] = ws
	s.mu.Unlock()

	if err := ws.Refresh(ctx); err != nil && !errors.Is(err, workspace.ErrSuperseded) {
		return ws, err
	}
	if err := s.Restore(ws); err != nil {
		s.logger.Warn("ignoring saved selection", "root", root, "error", err)
	}
	return ws, nil
}

// Workspace returns the open workspace for root.
func (s *Session) Workspace(root string) (*workspace.Workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[filepath.Clean(root)]
	return ws, ok
}

// Roots returns the open roots in lexical order.
func (s *Session) Roots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	roots := make([]string, 0, len(s.workspaces))
	for root := range s.workspaces {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots
}

// Close disposes the workspace for root and rebuilds the custom profiles
// from the workspaces still open. It reports whether root was open.
func (s *Session) Close(root string) bool {
	root = filepath.Clean(root)

	s.mu.Lock()
	ws, ok := s.workspaces[root]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.workspaces, root)

	var remaining []string
	for _, r := range sortedKeys(s.workspaces) {
		remaining = append(remaining, s.workspaces[r].CustomProfiles()...)
	}
	s.mu.Unlock()

	ws.Dispose()
	s.profiles.Replace(remaining)
	s.logger.Debug("closed workspace", "root", root, "custom_profiles", len(s.profiles.Custom()))
	return true
}

// CloseAll disposes every workspace.
func (s *Session) CloseAll() {
	for _, root := range s.Roots() {
		s.Close(root)
	}
}

// Profiles returns the well-known profiles followed by the custom profiles
// of every open workspace.
func (s *Session) Profiles() []profile.Profile {
	return s.profiles.All()
}

// Registry returns the shared profile registry.
func (s *Session) Registry() *profile.Registry {
	return s.profiles
}

// Logger returns the session logger.
func (s *Session) Logger() hclog.Logger {
	return s.logger
}

// FileSystem returns the session filesystem.
func (s *Session) FileSystem() filesystem.FileSystem {
	return s.fs
}

func sortedKeys(m map[string]*workspace.Workspace) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
