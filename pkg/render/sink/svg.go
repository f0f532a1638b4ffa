package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/render"
	"github.com/matzehuels/tagcloud/pkg/render/styles"
)

const (
	probeColor  = "#d62728"
	centerColor = "#1f77b4"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  styles.Style
	labels bool
	probes bool
	center bool
	margin int
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithLabels() SVGOption              { return func(r *svgRenderer) { r.labels = true } }
func WithProbePath() SVGOption           { return func(r *svgRenderer) { r.probes = true } }
func WithCenter() SVGOption              { return func(r *svgRenderer) { r.center = true } }
func WithMargin(m int) SVGOption         { return func(r *svgRenderer) { r.margin = max(0, m) } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Outline{}, margin: render.DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders the cloud as a standalone SVG document.
func RenderSVG(c render.Cloud, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	frame := c.Frame(r.margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%d %d %d %d" width="%d" height="%d">`+"\n",
		frame.Origin.X, frame.Origin.Y, frame.Size.Width, frame.Size.Height, frame.Size.Width, frame.Size.Height)

	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect class="background" x="%d" y="%d" width="%d" height="%d" fill="#ffffff"/>`+"\n",
		frame.Origin.X, frame.Origin.Y, frame.Size.Width, frame.Size.Height)

	if r.probes && len(c.Probes) > 0 {
		renderProbePath(&buf, c.Probes)
	}

	boxes := buildBoxes(c)
	for _, b := range boxes {
		r.style.RenderBox(&buf, b)
	}
	if r.labels {
		for _, b := range boxes {
			r.style.RenderText(&buf, b)
		}
	}

	if r.center {
		renderCenter(&buf, c.Center)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBoxes(c render.Cloud) []styles.Box {
	boxes := make([]styles.Box, 0, len(c.Rectangles))
	for i, rect := range c.Rectangles {
		boxes = append(boxes, toBox(i, c.Label(i), rect))
	}
	return boxes
}

func toBox(i int, label string, r geom.Rectangle) styles.Box {
	x, y := float64(r.Origin.X), float64(r.Origin.Y)
	w, h := float64(r.Size.Width), float64(r.Size.Height)
	return styles.Box{
		Index: i,
		Label: label,
		X:     x, Y: y, W: w, H: h,
		CX: x + w/2, CY: y + h/2,
	}
}

func renderProbePath(buf *bytes.Buffer, probes []geom.Point) {
	buf.WriteString(`  <polyline class="probes" fill="none" stroke="` + probeColor + `" stroke-width="0.5" stroke-opacity="0.6" points="`)
	for i, p := range probes {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%d,%d", p.X, p.Y)
	}
	buf.WriteString(`"/>` + "\n")
}

func renderCenter(buf *bytes.Buffer, p geom.Point) {
	fmt.Fprintf(buf, `  <g class="center" stroke="%s" stroke-width="1">`+"\n", centerColor)
	fmt.Fprintf(buf, `    <line x1="%d" y1="%d" x2="%d" y2="%d"/>`+"\n", p.X-5, p.Y, p.X+5, p.Y)
	fmt.Fprintf(buf, `    <line x1="%d" y1="%d" x2="%d" y2="%d"/>`+"\n", p.X, p.Y-5, p.X, p.Y+5)
	buf.WriteString("  </g>\n")
}
