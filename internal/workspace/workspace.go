// Package workspace is the model of one open Cargo project root: its parsed
// manifest, its target registry, the user's selection and the argument
// synthesis that ties them together.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
	"github.com/jakoblorz/cargo-ws/internal/config"
	"github.com/jakoblorz/cargo-ws/internal/discovery"
	"github.com/jakoblorz/cargo-ws/internal/events"
	"github.com/jakoblorz/cargo-ws/internal/filesystem"
	"github.com/jakoblorz/cargo-ws/internal/logging"
	"github.com/jakoblorz/cargo-ws/internal/manifest"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/jakoblorz/cargo-ws/internal/selection"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	// ErrSuperseded is returned by a refresh whose result was discarded
	// because a newer refresh was requested.
	ErrSuperseded = errors.New("refresh superseded by a newer request")

	// ErrDisposed is returned by Refresh after Dispose.
	ErrDisposed = errors.New("workspace disposed")
)

// Workspace is one project root.
type Workspace struct {
	fs         filesystem.FileSystem
	root       string
	reader     *manifest.Reader
	discoverer discovery.Discoverer
	logger     hclog.Logger
	notifier   *events.Notifier
	profiles   *profile.Registry
	settings   *config.Settings
	selection  *selection.State

	mu          sync.RWMutex
	manifest    *manifest.Manifest
	targets     []*models.Target
	packages    []string
	initialized bool
	lastErr     error

	refreshMu  sync.Mutex
	generation atomic.Uint64
	cancel     context.CancelFunc
	disposed   bool
}

// Option configures workspace behavior.
type Option func(*Workspace)

// WithDiscoverer replaces the default cargo metadata discovery.
func WithDiscoverer(d discovery.Discoverer) Option {
	return func(w *Workspace) {
		w.discoverer = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// WithNotifier sets the notifier change events are published on.
func WithNotifier(n *events.Notifier) Option {
	return func(w *Workspace) {
		w.notifier = n
	}
}

// WithProfiles sets the registry custom profiles are registered into.
func WithProfiles(r *profile.Registry) Option {
	return func(w *Workspace) {
		w.profiles = r
	}
}

// WithSettings sets the synthesis settings.
func WithSettings(s *config.Settings) Option {
	return func(w *Workspace) {
		w.settings = s
	}
}

// New creates a Workspace for root. Nothing is read until Refresh.
func New(fs filesystem.FileSystem, root string, options ...Option) *Workspace {
	w := &Workspace{
		fs:     fs,
		root:   filepath.Clean(root),
		reader: manifest.NewReader(fs),
	}

	for _, option := range options {
		option(w)
	}

	if w.logger == nil {
		w.logger = logging.Discard()
	}
	if w.notifier == nil {
		w.notifier = events.NewNotifier()
	}
	if w.profiles == nil {
		w.profiles = profile.NewRegistry()
	}
	if w.settings == nil {
		w.settings = config.Default()
	}
	if w.discoverer == nil {
		w.discoverer = discovery.NewDefault(
			discovery.NewMetadataDiscoverer(discovery.NewOSRunner()),
			discovery.NewScanDiscoverer(fs),
			w.logger,
		)
	}

	w.selection = selection.New(w, w.notifier)
	return w
}

// Root returns the project root directory.
func (w *Workspace) Root() string {
	return w.root
}

// Refresh re-reads the manifest and rediscovers targets, then replaces the
// registry in one step and reconciles the selection. A newer Refresh cancels
// this one; the older call then returns ErrSuperseded and applies nothing.
func (w *Workspace) Refresh(ctx context.Context) error {
	ctx, gen, err := w.beginRefresh(ctx)
	if err != nil {
		return err
	}
	defer w.endRefresh(gen)

	logger := w.logger.With("refresh", refreshID(gen), "root", w.root)
	logger.Debug("refreshing workspace")

	m, err := w.reader.Read(w.root)
	if err != nil {
		return w.fail(gen, logger, err)
	}

	targets, err := w.discoverer.Discover(ctx, m)
	if err != nil {
		return w.fail(gen, logger, fmt.Errorf("failed to discover targets: %w", err))
	}

	if !w.commit(gen, m, targets) {
		logger.Debug("discarding superseded refresh result")
		return ErrSuperseded
	}

	for _, name := range m.CustomProfiles {
		w.profiles.RegisterCustom(name)
	}

	logger.Info("workspace refreshed", "packages", len(w.Packages()), "targets", len(targets))
	w.selection.Reconcile()
	w.notifier.PublishDebounced(events.TargetsChanged)
	return nil
}

func (w *Workspace) beginRefresh(parent context.Context) (context.Context, uint64, error) {
	w.refreshMu.Lock()
	defer w.refreshMu.Unlock()

	if w.disposed {
		return nil, 0, ErrDisposed
	}
	if w.cancel != nil {
		w.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	w.cancel = cancel
	return ctx, w.generation.Add(1), nil
}

func (w *Workspace) endRefresh(gen uint64) {
	w.refreshMu.Lock()
	defer w.refreshMu.Unlock()

	if w.generation.Load() == gen && w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *Workspace) commit(gen uint64, m *manifest.Manifest, targets []*models.Target) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.generation.Load() != gen {
		return false
	}

	w.manifest = m
	w.targets = targets
	w.packages = packageNames(m, targets)
	w.initialized = true
	w.lastErr = nil
	return true
}

// fail records err unless the refresh was superseded. A failed refresh
// leaves the workspace uninitialized with an empty registry.
func (w *Workspace) fail(gen uint64, logger hclog.Logger, err error) error {
	w.mu.Lock()
	if w.generation.Load() != gen {
		w.mu.Unlock()
		logger.Debug("superseded refresh failed", "error", err)
		return ErrSuperseded
	}

	hadTargets := len(w.targets) > 0
	w.manifest = nil
	w.targets = nil
	w.packages = nil
	w.initialized = false
	w.lastErr = err
	w.mu.Unlock()

	if errors.Is(err, manifest.ErrNotProjectRoot) {
		logger.Debug("no Cargo.toml, workspace inactive")
	} else {
		logger.Error("refresh failed", "error", err)
	}

	w.selection.Reconcile()
	if hadTargets {
		w.notifier.PublishDebounced(events.TargetsChanged)
	}
	return err
}

// Dispose cancels any in-flight refresh and drops every subscription.
// Refresh fails with ErrDisposed afterwards.
func (w *Workspace) Dispose() {
	w.refreshMu.Lock()
	w.disposed = true
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	// results still in flight must not be applied
	w.generation.Add(1)
	w.refreshMu.Unlock()

	w.notifier.Close()
}

// Initialized reports whether the last refresh succeeded.
func (w *Workspace) Initialized() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.initialized
}

// LastError returns the error of the last applied refresh, nil on success.
func (w *Workspace) LastError() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}

// Manifest returns the parsed manifest, nil before a successful refresh.
func (w *Workspace) Manifest() *manifest.Manifest {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.manifest
}

// Targets returns the registry in discovery order.
func (w *Workspace) Targets() []*models.Target {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*models.Target, len(w.targets))
	copy(out, w.targets)
	return out
}

// TargetsForPackage returns the targets owned by the named package.
func (w *Workspace) TargetsForPackage(name string) []*models.Target {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []*models.Target
	for _, t := range w.targets {
		if t.PackageName == name {
			out = append(out, t)
		}
	}
	return out
}

// Packages returns the distinct package names, manifest order first.
func (w *Workspace) Packages() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]string, len(w.packages))
	copy(out, w.packages)
	return out
}

// IsMultiPackage reports whether more than one distinct package exists.
func (w *Workspace) IsMultiPackage() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.packages) > 1
}

// CustomProfiles returns the custom profiles the current manifest declares.
func (w *Workspace) CustomProfiles() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.manifest == nil {
		return nil
	}
	return append([]string(nil), w.manifest.CustomProfiles...)
}

// Selection returns the selection state.
func (w *Workspace) Selection() *selection.State {
	return w.selection
}

// Settings returns the synthesis settings.
func (w *Workspace) Settings() *config.Settings {
	return w.settings
}

// Subscribe registers handler for topic on the workspace notifier.
func (w *Workspace) Subscribe(topic events.Topic, handler events.Handler) (unsubscribe func()) {
	return w.notifier.Subscribe(topic, handler)
}

// Flush delivers pending debounced notifications now.
func (w *Workspace) Flush() {
	w.notifier.Flush()
}

// HasPackage reports whether the registry knows the package.
func (w *Workspace) HasPackage(name string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, p := range w.packages {
		if p == name {
			return true
		}
	}
	return false
}

// FindTargets returns the targets named targetName, restricted to
// packageName unless it is empty.
func (w *Workspace) FindTargets(packageName, targetName string) []*models.Target {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []*models.Target
	for _, t := range w.targets {
		if t.Name != targetName {
			continue
		}
		if packageName != "" && t.PackageName != packageName {
			continue
		}
		out = append(out, t)
	}
	return out
}

// WorkingDirectory is where cargo should run for the selection.
func (w *Workspace) WorkingDirectory() string {
	return w.PackageDirectory(w.selection.Package())
}

// PackageDirectory is where cargo should run for pkg: the package root in a
// multi-package workspace, otherwise the workspace root. Unknown and empty
// names map to the workspace root.
func (w *Workspace) PackageDirectory(pkg string) string {
	if pkg == "" || !w.IsMultiPackage() {
		return w.root
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.manifest != nil {
		if pm, ok := w.manifest.Package(pkg); ok {
			return pm.Package.RootPath
		}
	}
	for _, t := range w.targets {
		if t.PackageName == pkg && t.PackagePath != "" {
			return t.PackagePath
		}
	}
	return w.root
}

func packageNames(m *manifest.Manifest, targets []*models.Target) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, pm := range m.Packages() {
		add(pm.Package.Name)
	}
	for _, t := range targets {
		add(t.PackageName)
	}
	return names
}

func refreshID(gen uint64) string {
	id, err := gonanoid.New(10)
	if err != nil {
		return strconv.FormatUint(gen, 10)
	}
	return id
}
