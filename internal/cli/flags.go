package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// optionFlags binds pipeline options to command flags. Values the user
// sets on the command line override the config file; everything else keeps
// the config (or pipeline default) value.
type optionFlags struct {
	opts     pipeline.Options
	center   string
	sizes    string
	labels   string
	textFile string
	formats  string
}

func (f *optionFlags) addLayoutFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.opts.Width, "width", pipeline.DefaultWidth, "canvas width")
	fs.IntVar(&f.opts.Height, "height", pipeline.DefaultHeight, "canvas height")
	fs.StringVar(&f.center, "center", "", "spiral origin as x,y (default: canvas center)")
	fs.StringVar(&f.opts.Distribution, "distribution", pipeline.DistributionSpiral, "candidate distribution: spiral, rings")
	fs.Float64Var(&f.opts.AngleStep, "angle-step", 0, "spiral angle increment in radians (default 2π/120)")
	fs.Float64Var(&f.opts.Coefficient, "coefficient", 0, "spiral radius growth per radian (default 0.5)")
	fs.IntVar(&f.opts.Stride, "stride", 1, "ring spacing (rings distribution)")
	fs.IntVar(&f.opts.MaxSteps, "max-steps", pipeline.DefaultMaxSteps, "candidates tried per rectangle before giving up")
}

func (f *optionFlags) addSizeFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.opts.Count, "count", "n", pipeline.DefaultCount, "number of random rectangles")
	fs.IntVar(&f.opts.MinWidth, "min-width", pipeline.DefaultMinWidth, "minimum random width")
	fs.IntVar(&f.opts.MinHeight, "min-height", pipeline.DefaultMinHeight, "minimum random height")
	fs.IntVar(&f.opts.MaxWidth, "max-width", pipeline.DefaultMaxWidth, "maximum random width")
	fs.IntVar(&f.opts.MaxHeight, "max-height", pipeline.DefaultMaxHeight, "maximum random height")
	fs.Uint64Var(&f.opts.Seed, "seed", pipeline.DefaultSeed, "random seed")
	fs.StringVar(&f.sizes, "sizes", "", "explicit sizes as WxH,WxH,... (overrides random sizes)")
	fs.StringVar(&f.labels, "labels", "", "labels for --sizes, comma-separated")
	fs.StringVar(&f.textFile, "text", "", "size word boxes by frequency in this file (- for stdin)")
	fs.IntVar(&f.opts.MinWordLength, "min-word-length", pipeline.DefaultMinWordLength, "ignore shorter words")
	fs.IntVar(&f.opts.WordLimit, "words", 0, "keep only the most frequent words (0: all)")
}

func (f *optionFlags) addRenderFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	fs.StringVar(&f.opts.Style, "style", "", "visual style: outline (default), filled")
	fs.StringVar(&f.opts.Engine, "engine", "", "SVG engine: native (default), graphviz")
	fs.BoolVar(&f.opts.ShowLabels, "show-labels", false, "draw labels inside rectangles")
	fs.BoolVar(&f.opts.ShowCenter, "show-center", false, "mark the spiral origin")
	fs.IntVar(&f.opts.Probes, "probes", 0, "draw the first N candidate points")
	fs.IntVar(&f.opts.Margin, "margin", 0, "margin around the cloud (default 10)")
	fs.Float64Var(&f.opts.Scale, "scale", 0, "PNG scale factor (default 1)")
}

// resolve builds the effective options: config values first, then every
// flag the user changed.
func (f *optionFlags) resolve(cmd *cobra.Command, c *CLI) (pipeline.Options, error) {
	var opts pipeline.Options
	c.Config.ApplyTo(&opts)

	changed := cmd.Flags().Changed
	src := f.opts
	override := map[string]func(){
		"width":           func() { opts.Width = src.Width },
		"height":          func() { opts.Height = src.Height },
		"distribution":    func() { opts.Distribution = src.Distribution },
		"angle-step":      func() { opts.AngleStep = src.AngleStep },
		"coefficient":     func() { opts.Coefficient = src.Coefficient },
		"stride":          func() { opts.Stride = src.Stride },
		"max-steps":       func() { opts.MaxSteps = src.MaxSteps },
		"count":           func() { opts.Count = src.Count },
		"min-width":       func() { opts.MinWidth = src.MinWidth },
		"min-height":      func() { opts.MinHeight = src.MinHeight },
		"max-width":       func() { opts.MaxWidth = src.MaxWidth },
		"max-height":      func() { opts.MaxHeight = src.MaxHeight },
		"seed":            func() { opts.Seed = src.Seed },
		"min-word-length": func() { opts.MinWordLength = src.MinWordLength },
		"words":           func() { opts.WordLimit = src.WordLimit },
		"style":           func() { opts.Style = src.Style },
		"engine":          func() { opts.Engine = src.Engine },
		"show-labels":     func() { opts.ShowLabels = src.ShowLabels },
		"show-center":     func() { opts.ShowCenter = src.ShowCenter },
		"probes":          func() { opts.Probes = src.Probes },
		"margin":          func() { opts.Margin = src.Margin },
		"scale":           func() { opts.Scale = src.Scale },
	}
	for name, apply := range override {
		if cmd.Flags().Lookup(name) != nil && changed(name) {
			apply()
		}
	}

	if f.center != "" {
		p, err := parsePoint(f.center)
		if err != nil {
			return opts, err
		}
		opts.Center = &p
	}
	if f.sizes != "" {
		sz, err := parseSizes(f.sizes)
		if err != nil {
			return opts, err
		}
		opts.Sizes = sz
		if f.labels != "" {
			opts.Labels = strings.Split(f.labels, ",")
		}
	}
	if f.textFile != "" {
		text, err := readText(cmd.InOrStdin(), f.textFile)
		if err != nil {
			return opts, err
		}
		opts.Text = text
	}
	if f.formats != "" {
		opts.Formats = parseFormats(f.formats)
	}
	opts.Logger = c.Logger
	return opts, nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if !ok || errX != nil || errY != nil {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidInput, "invalid point %q (want x,y)", s)
	}
	return geom.Pt(x, y), nil
}

// parseSizes parses "WxH,WxH,...".
func parseSizes(s string) ([]geom.Size, error) {
	var out []geom.Size
	for _, part := range splitList(s) {
		ws, hs, ok := strings.Cut(strings.ToLower(part), "x")
		w, errW := strconv.Atoi(ws)
		h, errH := strconv.Atoi(hs)
		if !ok || errW != nil || errH != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid size %q (want WxH)", part)
		}
		out = append(out, geom.Sz(w, h))
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no sizes in %q", s)
	}
	return out, nil
}

func readText(stdin io.Reader, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read text %s: %w", path, err)
	}
	return string(data), nil
}

// basePath derives the base output path. If output is empty, it strips the
// extension from input (or uses appName). A known format extension on output
// is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each artifact to base.<format> in the order given
// and returns the paths written.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
