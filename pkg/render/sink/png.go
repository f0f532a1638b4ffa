package sink

import (
	"bytes"
	"fmt"

	"github.com/gogpu/gg"

	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/render"
	"github.com/matzehuels/tagcloud/pkg/render/styles"
)

// MaxPNGPixels bounds the raster area so a sprawling cloud cannot exhaust
// memory.
const MaxPNGPixels = 64 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style  styles.Style
	scale  float64
	margin int
	probes bool
	center bool
}

// WithScale sets the PNG scale factor (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGStyle selects the colors used for boxes.
func WithPNGStyle(s styles.Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithPNGMargin sets the frame margin used when the cloud has no canvas.
func WithPNGMargin(m int) PNGOption { return func(r *pngRenderer) { r.margin = max(0, m) } }

// WithPNGProbePath draws the cloud's probe path underneath the boxes.
func WithPNGProbePath() PNGOption { return func(r *pngRenderer) { r.probes = true } }

// WithPNGCenter marks the cloud center with a small cross.
func WithPNGCenter() PNGOption { return func(r *pngRenderer) { r.center = true } }

// RenderPNG rasterizes the cloud. Labels are not drawn: PNG output is meant
// for inspecting placement, use SVG for labelled clouds.
func RenderPNG(c render.Cloud, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: styles.Outline{}, scale: 1, margin: render.DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	frame := c.Frame(r.margin)
	// Sides are bounded as floats before conversion; w*h can overflow int.
	fw := float64(frame.Size.Width)*r.scale + 0.5
	fh := float64(frame.Size.Height)*r.scale + 0.5
	if !(fw >= 1 && fh >= 1) {
		return nil, fmt.Errorf("png: empty frame %s at scale %g", frame.Size, r.scale)
	}
	if fw > MaxPNGPixels || fh > MaxPNGPixels {
		return nil, fmt.Errorf("png: frame %s at scale %g exceeds %d pixels", frame.Size, r.scale, MaxPNGPixels)
	}
	w, h := int(fw), int(fh)
	if w > MaxPNGPixels/h {
		return nil, fmt.Errorf("png: frame %dx%d exceeds %d pixels", w, h, MaxPNGPixels)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	tx := func(p geom.Point) (float64, float64) {
		return float64(p.X-frame.Origin.X) * r.scale, float64(p.Y-frame.Origin.Y) * r.scale
	}

	if r.probes && len(c.Probes) > 1 {
		dc.SetHexColor(probeColor)
		dc.SetLineWidth(0.5)
		dc.MoveTo(tx(c.Probes[0]))
		for _, p := range c.Probes[1:] {
			dc.LineTo(tx(p))
		}
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("png: probes: %w", err)
		}
	}

	for _, b := range buildBoxes(c) {
		x, y := tx(geom.Pt(int(b.X), int(b.Y)))
		bw, bh := b.W*r.scale, b.H*r.scale
		stroke, fill := r.style.Colors(b)
		if fill != "" {
			dc.SetHexColor(fill)
			dc.DrawRectangle(x, y, bw, bh)
			if err := dc.Fill(); err != nil {
				return nil, fmt.Errorf("png: box %d: %w", b.Index, err)
			}
		}
		dc.SetHexColor(stroke)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, y, bw, bh)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("png: box %d: %w", b.Index, err)
		}
	}

	if r.center {
		cx, cy := tx(c.Center)
		dc.SetHexColor(centerColor)
		dc.SetLineWidth(1)
		dc.MoveTo(cx-5, cy)
		dc.LineTo(cx+5, cy)
		dc.MoveTo(cx, cy-5)
		dc.LineTo(cx, cy+5)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("png: center: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}
