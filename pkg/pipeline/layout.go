package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/distribution"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layouter"
	"github.com/matzehuels/tagcloud/pkg/render"
	"github.com/matzehuels/tagcloud/pkg/sizes"
)

// Layout is the serializable result of the layout stage.
type Layout struct {
	Center     geom.Point       `json:"center"`
	Canvas     geom.Size        `json:"canvas"`
	Rectangles []geom.Rectangle `json:"rectangles"`
	Labels     []string         `json:"labels,omitempty"`
	// Steps holds the number of candidates examined for each rectangle.
	Steps []int `json:"steps,omitempty"`
}

// TotalSteps sums Steps.
func (l Layout) TotalSteps() int {
	n := 0
	for _, s := range l.Steps {
		n += s
	}
	return n
}

// Cloud converts the layout into a render input. probes points of the
// distribution are attached for probe-path rendering.
func (l Layout) Cloud(dist distribution.Distribution, probes int) render.Cloud {
	c := render.Cloud{
		Center:     l.Center,
		Canvas:     l.Canvas,
		Rectangles: l.Rectangles,
		Labels:     l.Labels,
	}
	if dist != nil && probes > 0 {
		c.Probes = distribution.Take(dist.Points(), probes)
	}
	return c
}

// MarshalLayout serializes a layout for caching.
func MarshalLayout(l Layout) ([]byte, error) { return json.Marshal(l) }

// UnmarshalLayout reads a layout written by [MarshalLayout].
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// =============================================================================
// Sizes
// =============================================================================

// GenerateSizes produces the labelled sizes described by opts.
func GenerateSizes(opts Options) ([]sizes.Item, error) {
	switch opts.Source() {
	case SourceExplicit:
		items := sizes.Items(opts.Sizes)
		for i := range items {
			if i < len(opts.Labels) {
				items[i].Label = opts.Labels[i]
			}
		}
		return items, nil
	case SourceWords:
		words := sizes.Words(opts.Text, opts.MinWordLength)
		if len(words) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "text has no words of at least %d characters", opts.MinWordLength)
		}
		return sizes.Measure(words, sizes.MeasureOptions{
			MinScale: opts.MinScale,
			MaxScale: opts.MaxScale,
			Padding:  sizes.DefaultMeasureOptions.Padding,
			Limit:    opts.WordLimit,
		}), nil
	default:
		sz, err := sizes.Random(opts.Count,
			geom.Sz(opts.MinWidth, opts.MinHeight),
			geom.Sz(opts.MaxWidth, opts.MaxHeight),
			opts.Seed)
		if err != nil {
			return nil, err
		}
		return sizes.Items(sz), nil
	}
}

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout places items in order with a fresh layouter. On failure the
// error keeps its code (SEARCH_EXHAUSTED when the candidate budget runs out)
// and names the offending rectangle.
func GenerateLayout(items []sizes.Item, opts Options) (Layout, error) {
	l := layouter.NewWithDistribution(opts.NewDistribution(), layouter.WithMaxSteps(opts.MaxSteps))

	out := Layout{
		Center:     l.Center(),
		Canvas:     geom.Sz(opts.Width, opts.Height),
		Rectangles: make([]geom.Rectangle, 0, len(items)),
		Steps:      make([]int, 0, len(items)),
	}
	labelled := false
	for i, it := range items {
		r, err := l.PutNext(it.Size)
		if err != nil {
			return Layout{}, errors.Wrap(errors.GetCode(err), err, "rectangle %d", i)
		}
		out.Rectangles = append(out.Rectangles, r)
		out.Steps = append(out.Steps, l.LastSteps())
		labelled = labelled || it.Label != ""
	}
	if labelled {
		out.Labels = make([]string, len(items))
		for i, it := range items {
			out.Labels[i] = it.Label
		}
	}
	return out, nil
}
