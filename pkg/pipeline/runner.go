package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/sizes"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete sizes → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	result := &Result{}

	// Stage 1: Sizes
	sizesStart := time.Now()
	items, err := GenerateSizes(opts)
	result.Stats.SizesTime = time.Since(sizesStart)
	hooks.OnSizesComplete(ctx, opts.Source(), len(items), result.Stats.SizesTime, err)
	if err != nil {
		return nil, fmt.Errorf("sizes: %w", err)
	}
	result.Items = items
	result.SizesHash = cache.HashJSON(items)

	r.Logger.Debug("generated sizes",
		"source", opts.Source(),
		"count", len(items))

	// Stage 2: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, len(items))
	layout, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, items, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, len(layout.Rectangles), result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.CacheInfo.LayoutHit = layoutHit
	result.Stats.Rectangles = len(layout.Rectangles)
	result.Stats.Steps = layout.TotalSteps()
	result.Stats.Bounds = geom.Bounds(layout.Rectangles)

	r.Logger.Info("computed layout",
		"rectangles", result.Stats.Rectangles,
		"steps", result.Stats.Steps,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo lays out items with caching and reports
// whether the cache was hit.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, items []sizes.Item, opts Options) (Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(cache.HashJSON(items), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit := r.get(ctx, cacheKey); hit {
			if cached, err := UnmarshalLayout(data); err == nil {
				return cached, true, nil
			}
		}
	}

	layout, err := GenerateLayout(items, opts)
	if err != nil {
		return Layout{}, false, err
	}

	if data, err := MarshalLayout(layout); err == nil {
		r.set(ctx, cacheKey, data, cache.LayoutTTL)
	}
	return layout, false, nil
}

// RenderWithCacheInfo renders artifacts with caching and reports whether
// every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := json.Marshal(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	// The probe path depends on the distribution, not on the placed rectangles.
	if opts.Probes > 0 {
		layoutHash = cache.HashJSON([]any{layoutHash, opts.LayoutKeyOpts()})
	}

	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, hit := r.get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, layout, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.set(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.ArtifactTTL)
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads key, reporting hook events. Backend errors count as misses.
func (r *Runner) get(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cache.KeyType(key))
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cache.KeyType(key))
	return data, true
}

// set writes key, logging but otherwise ignoring backend errors.
func (r *Runner) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cache.KeyType(key), len(data))
}
