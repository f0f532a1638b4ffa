// Package pkg provides the core libraries for tagcloud rectangle layouts.
//
// # Overview
//
// Tagcloud places axis-aligned rectangles one after another so that none of
// them overlap, trying candidate positions along an Archimedean spiral that
// winds outward from a fixed center. The first free position wins, so early
// (usually larger) rectangles sit near the center and the cloud stays compact.
//
// # Architecture
//
// The typical data flow:
//
//	sizes (random, explicit, or measured words)
//	         ↓
//	    [distribution] package (candidate points around the center)
//	         ↓
//	    [layouter] package (first-fit placement, overlap checks)
//	         ↓
//	    [render] and [render/sink] packages (frame + output formats)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// [pipeline] ties these steps together and is shared by the CLI and the HTTP
// API so both produce identical results for identical options.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/tagcloud/pkg/geom"
//	    "github.com/matzehuels/tagcloud/pkg/layouter"
//	    "github.com/matzehuels/tagcloud/pkg/render"
//	    "github.com/matzehuels/tagcloud/pkg/render/sink"
//	)
//
//	l := layouter.New(geom.Pt(400, 300))
//	rects, err := l.PutAll([]geom.Size{geom.Sz(120, 40), geom.Sz(60, 20)})
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(render.Cloud{Center: l.Center(), Rectangles: rects})
//
// # Main Packages
//
// [geom] - Integer points, sizes and rectangles with intersection and bounds.
//
// [distribution] - Lazy candidate sequences. The Archimedean spiral is the
// default; square rings are an alternative with a fixed stride.
//
// [layouter] - The first-fit layouter. It keeps the placed rectangles and
// reports SEARCH_EXHAUSTED when a step limit is hit.
//
// [sizes] - Random size generation and word-frequency measurement.
//
// [render] - The [render.Cloud] model, frame computation and SVG to PDF
// conversion. [render/sink] writes SVG, PNG, JSON and DOT; [render/styles]
// holds the outline and filled looks.
//
// [pipeline] - Options, validation and the cached [pipeline.Runner].
//
// [session] - Incremental layout sessions for the HTTP API, persisted in
// memory, on disk, in Redis or in MongoDB.
//
// [cache] - Content-addressed caching of layouts and artifacts (file, Redis).
//
// [config] - TOML/YAML configuration with defaults.
//
// [errors] - Coded errors shared across packages.
//
// [observability] - Hooks that trace layout and render steps.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/geom
// [distribution]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/distribution
// [layouter]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/layouter
// [sizes]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/sizes
// [render]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/render/sink
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/render/styles
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/pipeline
// [session]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/session
// [cache]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/observability
package pkg
