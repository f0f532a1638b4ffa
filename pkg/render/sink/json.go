package sink

import (
	"encoding/json"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style  string
	probes bool
}

// WithJSONStyle records the style name in the JSON output so the cloud can be
// re-rendered the same way.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONProbes includes the probe path in the output.
func WithJSONProbes() JSONOption { return func(r *jsonRenderer) { r.probes = true } }

type jsonOutput struct {
	Center     jsonPoint   `json:"center"`
	Width      int         `json:"width,omitempty"`
	Height     int         `json:"height,omitempty"`
	Style      string      `json:"style,omitempty"`
	Rectangles []jsonRect  `json:"rectangles"`
	Probes     []jsonPoint `json:"probes,omitempty"`
}

type jsonPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type jsonRect struct {
	Index  int    `json:"index"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// RenderJSON serializes the cloud as indented JSON.
func RenderJSON(c render.Cloud, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Center:     jsonPoint{c.Center.X, c.Center.Y},
		Width:      c.Canvas.Width,
		Height:     c.Canvas.Height,
		Style:      r.style,
		Rectangles: make([]jsonRect, 0, len(c.Rectangles)),
	}
	for i, rect := range c.Rectangles {
		out.Rectangles = append(out.Rectangles, jsonRect{
			Index:  i,
			Label:  c.Label(i),
			X:      rect.Origin.X,
			Y:      rect.Origin.Y,
			Width:  rect.Size.Width,
			Height: rect.Size.Height,
		})
	}
	if r.probes {
		for _, p := range c.Probes {
			out.Probes = append(out.Probes, jsonPoint{p.X, p.Y})
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// ParseJSON reads a cloud written by [RenderJSON]. It returns the cloud and
// the recorded style name, which is empty when none was stored.
func ParseJSON(data []byte) (render.Cloud, string, error) {
	var in jsonOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return render.Cloud{}, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse cloud json")
	}

	c := render.Cloud{
		Center:     geom.Pt(in.Center.X, in.Center.Y),
		Canvas:     geom.Sz(in.Width, in.Height),
		Rectangles: make([]geom.Rectangle, 0, len(in.Rectangles)),
	}
	hasLabels := false
	for i, r := range in.Rectangles {
		if r.Width < 0 || r.Height < 0 {
			return render.Cloud{}, "", errors.New(errors.ErrCodeInvalidFormat, "rectangle %d: negative size %dx%d", i, r.Width, r.Height)
		}
		c.Rectangles = append(c.Rectangles, geom.Rect(r.X, r.Y, r.Width, r.Height))
		hasLabels = hasLabels || r.Label != ""
	}
	if hasLabels {
		c.Labels = make([]string, len(in.Rectangles))
		for i, r := range in.Rectangles {
			c.Labels[i] = r.Label
		}
	}
	for _, p := range in.Probes {
		c.Probes = append(c.Probes, geom.Pt(p.X, p.Y))
	}
	return c, in.Style, nil
}
