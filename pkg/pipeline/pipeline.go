// Package pipeline provides the sizes → layout → render pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Sizes: produce the rectangle sizes, either given explicitly, drawn at
//     random from a seeded generator, or measured from word frequencies
//  2. Layout: place every size with a [layouter.Layouter]
//  3. Render: write the placed cloud in the requested formats
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Count:   50,
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// Layouts are cached on the sizes and layout parameters; artifacts on the
// layout and render parameters.
//
// [layouter.Layouter]: github.com/matzehuels/tagcloud/pkg/layouter.Layouter
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/distribution"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/render"
	"github.com/matzehuels/tagcloud/pkg/render/styles"
	"github.com/matzehuels/tagcloud/pkg/sizes"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API and config files
// =============================================================================

const (
	// DefaultWidth is the default canvas width.
	DefaultWidth = 800

	// DefaultHeight is the default canvas height.
	DefaultHeight = 600

	// DefaultCount is the number of random rectangles when no text is given.
	DefaultCount = 50

	// DefaultMinWidth and friends bound random rectangle sizes.
	DefaultMinWidth  = 20
	DefaultMinHeight = 10
	DefaultMaxWidth  = 80
	DefaultMaxHeight = 40

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultMaxSteps bounds the candidates examined per rectangle so a
	// request cannot spin forever. Layouter itself is unbounded by default.
	DefaultMaxSteps = 1 << 20

	// DefaultMinWordLength drops very short tokens when sizing words.
	DefaultMinWordLength = 3

	// MaxCount is the largest rectangle count accepted in one run.
	MaxCount = 10000

	// MaxProbes bounds the candidate points drawn as a probe path.
	MaxProbes = 100000

	// MaxRenderScale bounds the PNG scale factor.
	MaxRenderScale = 16.0

	// MaxWordScale bounds the font scale applied to the most frequent word.
	MaxWordScale = 64.0
)

// Distribution names.
const (
	DistributionSpiral = "spiral"
	DistributionRings  = "rings"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// SVG engines.
const (
	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// Size sources reported by [Options.Source].
const (
	SourceExplicit = "explicit"
	SourceRandom   = "random"
	SourceWords    = "words"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidDistributions is the set of supported candidate distributions.
var ValidDistributions = map[string]bool{
	DistributionSpiral: true,
	DistributionRings:  true,
}

// ValidEngines is the set of supported SVG engines.
var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the cloud pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Canvas and layout options
	Width        int         `json:"width,omitempty"`
	Height       int         `json:"height,omitempty"`
	Center       *geom.Point `json:"center,omitempty"` // defaults to the canvas center
	Distribution string      `json:"distribution,omitempty"`
	AngleStep    float64     `json:"angle_step,omitempty"`
	Coefficient  float64     `json:"coefficient,omitempty"`
	Stride       int         `json:"stride,omitempty"`
	MaxSteps     int         `json:"max_steps,omitempty"`

	// Size options. Sizes wins over Text, Text wins over random generation.
	Sizes         []geom.Size `json:"sizes,omitempty"`
	Labels        []string    `json:"labels,omitempty"`
	Count         int         `json:"count,omitempty"`
	MinWidth      int         `json:"min_width,omitempty"`
	MinHeight     int         `json:"min_height,omitempty"`
	MaxWidth      int         `json:"max_width,omitempty"`
	MaxHeight     int         `json:"max_height,omitempty"`
	Seed          uint64      `json:"seed,omitempty"`
	Text          string      `json:"text,omitempty"`
	MinWordLength int         `json:"min_word_length,omitempty"`
	WordLimit     int         `json:"word_limit,omitempty"`
	MinScale      float64     `json:"min_scale,omitempty"`
	MaxScale      float64     `json:"max_scale,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Engine     string   `json:"engine,omitempty"`
	ShowLabels bool     `json:"labels_visible,omitempty"`
	ShowCenter bool     `json:"show_center,omitempty"`
	Probes     int      `json:"probes,omitempty"` // number of distribution points to draw
	Margin     int      `json:"margin,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG scale factor

	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Items are the labelled sizes that were laid out.
	Items []sizes.Item

	// SizesHash is the content hash of Items.
	SizesHash string

	// Layout contains the placed rectangles.
	Layout Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rectangles int
	Steps      int // candidates examined over all placements
	Bounds     geom.Rectangle
	SizesTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	_, err := styles.ByName(style)
	return err
}

// ValidateDistribution checks that a distribution name is valid.
func ValidateDistribution(name string) error {
	if !ValidDistributions[name] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid distribution: %q (must be one of: spiral, rings)", name)
	}
	return nil
}

// ValidateEngine checks that an SVG engine name is valid.
func ValidateEngine(name string) error {
	if !ValidEngines[name] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %q (must be one of: native, graphviz)", name)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSizes(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSizes checks the size source and applies its defaults.
func (o *Options) ValidateForSizes() error {
	o.setLoggerDefault()
	switch o.Source() {
	case SourceExplicit:
		if err := errors.ValidateCount(len(o.Sizes), MaxCount); err != nil {
			return err
		}
		for i, s := range o.Sizes {
			if err := errors.ValidateSize(s.Width, s.Height); err != nil {
				return errors.Wrap(errors.GetCode(err), err, "size %d", i)
			}
		}
		if len(o.Labels) > 0 && len(o.Labels) != len(o.Sizes) {
			return errors.New(errors.ErrCodeInvalidInput, "got %d labels for %d sizes", len(o.Labels), len(o.Sizes))
		}
	case SourceWords:
		if o.MinWordLength == 0 {
			o.MinWordLength = DefaultMinWordLength
		}
		if o.WordLimit == 0 {
			o.WordLimit = DefaultCount
		}
		if o.MinScale == 0 {
			o.MinScale = sizes.DefaultMeasureOptions.MinScale
		}
		if o.MaxScale == 0 {
			o.MaxScale = sizes.DefaultMeasureOptions.MaxScale
		}
		if math.IsNaN(o.MinScale) || math.IsNaN(o.MaxScale) || o.MinScale < 0 || o.MaxScale > MaxWordScale {
			return errors.New(errors.ErrCodeInvalidInput, "word scales must lie in [0, %g]", MaxWordScale)
		}
		if err := errors.ValidateCount(o.WordLimit, MaxCount); err != nil {
			return err
		}
	default:
		if o.Count == 0 {
			o.Count = DefaultCount
		}
		if o.MinWidth == 0 && o.MinHeight == 0 && o.MaxWidth == 0 && o.MaxHeight == 0 {
			o.MinWidth, o.MinHeight = DefaultMinWidth, DefaultMinHeight
			o.MaxWidth, o.MaxHeight = DefaultMaxWidth, DefaultMaxHeight
		}
		if o.Seed == 0 {
			o.Seed = DefaultSeed
		}
		if err := errors.ValidateCount(o.Count, MaxCount); err != nil {
			return err
		}
		if err := errors.ValidateSizeRange(o.MinWidth, o.MinHeight, o.MaxWidth, o.MaxHeight); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForLayout applies layout defaults and checks layout fields.
func (o *Options) ValidateForLayout() error {
	o.setLoggerDefault()
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Distribution == "" {
		o.Distribution = DistributionSpiral
	}
	if o.AngleStep == 0 {
		o.AngleStep = distribution.DefaultAngleStep
	}
	if o.Coefficient == 0 {
		o.Coefficient = distribution.DefaultCoefficient
	}
	if o.Stride == 0 {
		o.Stride = 1
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = DefaultMaxSteps
	}

	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if o.Center == nil {
		c := geom.Pt(o.Width/2, o.Height/2)
		o.Center = &c
	}
	if !o.Center.InRange() {
		return errors.New(errors.ErrCodeInvalidInput, "center %s outside ±%d", *o.Center, geom.MaxCoordinate)
	}
	if o.AngleStep < 0 || o.Coefficient < 0 || o.Stride < 0 || o.MaxSteps < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "angle_step, coefficient, stride and max_steps must be positive")
	}
	return ValidateDistribution(o.Distribution)
}

// ValidateForRender applies render defaults and checks render fields.
func (o *Options) ValidateForRender() error {
	o.setLoggerDefault()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = styles.NameOutline
	}
	if o.Engine == "" {
		o.Engine = EngineNative
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Margin == 0 {
		o.Margin = render.DefaultMargin
	}
	if o.Probes < 0 || o.Margin < 0 || o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "probes, margin and scale must be non-negative")
	}
	if o.Probes > MaxProbes {
		return errors.New(errors.ErrCodeInvalidInput, "probes %d exceeds limit %d", o.Probes, MaxProbes)
	}
	if math.IsNaN(o.Scale) || o.Scale > MaxRenderScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g exceeds limit %g", o.Scale, MaxRenderScale)
	}
	if o.Margin > errors.MaxDimension {
		return errors.New(errors.ErrCodeInvalidInput, "margin %d exceeds limit %d", o.Margin, errors.MaxDimension)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Source reports where sizes come from.
func (o *Options) Source() string {
	switch {
	case len(o.Sizes) > 0:
		return SourceExplicit
	case strings.TrimSpace(o.Text) != "":
		return SourceWords
	default:
		return SourceRandom
	}
}

// CenterPoint returns the layout center, defaulting to the canvas center.
func (o *Options) CenterPoint() geom.Point {
	if o.Center != nil {
		return *o.Center
	}
	return geom.Pt(o.Width/2, o.Height/2)
}

// NewDistribution builds the candidate distribution described by o.
func (o *Options) NewDistribution() distribution.Distribution {
	if o.Distribution == DistributionRings {
		return distribution.NewRings(o.CenterPoint(), o.Stride)
	}
	return distribution.NewArchimedeanSpiral(o.CenterPoint(),
		distribution.WithAngleStep(o.AngleStep),
		distribution.WithCoefficient(o.Coefficient))
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Width:        o.Width,
		Height:       o.Height,
		CenterX:      o.CenterPoint().X,
		CenterY:      o.CenterPoint().Y,
		Distribution: o.Distribution,
		MaxSteps:     o.MaxSteps,
	}
	if o.Distribution == DistributionRings {
		k.Stride = o.Stride
	} else {
		k.AngleStep, k.Coefficient = o.AngleStep, o.Coefficient
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Engine: o.Engine,
		Labels: o.ShowLabels,
		Probes: o.Probes,
		Center: o.ShowCenter,
		Margin: o.Margin,
		Scale:  o.Scale,
	}
}
