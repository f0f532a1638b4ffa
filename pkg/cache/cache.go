// Package cache stores computed layouts and rendered artifacts.
//
// # Overview
//
// A [Cache] is a byte store with per-entry TTLs. Three backends are provided:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache runs and tests
//
// Keys are derived by a [Keyer] from the inputs that determine an entry.
// Layouts are keyed on the size list and spiral parameters, artifacts on the
// layout hash and render options, so changing only the output style reuses a
// cached layout.
package cache

import (
	"context"
	"strings"
	"time"
)

// Default entry lifetimes.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a key/value byte store with expiry.
type Cache interface {
	// Get returns the entry for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout parameters stored with a cached layout:
// those that change placement plus the canvas the layout is framed in.
type LayoutKeyOpts struct {
	Width        int     `json:"w"`
	Height       int     `json:"h"`
	CenterX      int     `json:"cx"`
	CenterY      int     `json:"cy"`
	Distribution string  `json:"dist,omitempty"`
	AngleStep    float64 `json:"step,omitempty"`
	Coefficient  float64 `json:"k,omitempty"`
	Stride       int     `json:"stride,omitempty"`
	MaxSteps     int     `json:"max_steps,omitempty"`
}

// ArtifactKeyOpts are the render parameters that change output bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style,omitempty"`
	Engine string  `json:"engine,omitempty"`
	Labels bool    `json:"labels,omitempty"`
	Probes int     `json:"probes,omitempty"`
	Center bool    `json:"center,omitempty"`
	Margin int     `json:"margin,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys a layout by the hash of its size list and parameters.
	LayoutKey(sizesHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by its layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(sizesHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sizesHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// KeyType returns the entry type encoded in key ("layout", "artifact"), used
// to label cache events. Scoped prefixes are ignored.
func KeyType(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}
