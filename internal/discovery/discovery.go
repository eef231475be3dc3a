// Package discovery builds the target registry of a Cargo project: the list
// of binaries, libraries, tests, examples and benchmarks per package.
package discovery

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/jakoblorz/cargo-ws/internal/logging"
	"github.com/jakoblorz/cargo-ws/internal/manifest"
	"github.com/jakoblorz/cargo-ws/internal/models"
)

// Discoverer produces the ordered target list for a parsed project. The
// result is a fresh slice on every call; callers replace their registry with
// it wholesale.
type Discoverer interface {
	Discover(ctx context.Context, m *manifest.Manifest) ([]*models.Target, error)
}

// FallbackDiscoverer tries Primary and, when it fails, Fallback.
type FallbackDiscoverer struct {
	Primary  Discoverer
	Fallback Discoverer
	Logger   hclog.Logger
}

// NewDefault returns cargo metadata discovery with the filesystem scan as
// fallback.
func NewDefault(primary, fallback Discoverer, logger hclog.Logger) *FallbackDiscoverer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &FallbackDiscoverer{Primary: primary, Fallback: fallback, Logger: logger}
}

func (d *FallbackDiscoverer) Discover(ctx context.Context, m *manifest.Manifest) ([]*models.Target, error) {
	targets, err := d.Primary.Discover(ctx, m)
	if err == nil {
		return targets, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	d.Logger.Warn("target discovery failed, scanning source layout instead", "root", m.RootPath, "error", err)
	return d.Fallback.Discover(ctx, m)
}
