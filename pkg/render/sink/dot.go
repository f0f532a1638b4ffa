package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tagcloud/pkg/render"
)

// pointsPerInch converts layout units (treated as points) to Graphviz inches.
const pointsPerInch = 72.0

// RenderDOT converts the cloud to Graphviz DOT. Every rectangle becomes a
// fixed-size box node pinned at its center, so neato reproduces the layout
// instead of computing its own. Graphviz y grows upwards, so y is negated.
func RenderDOT(c render.Cloud) string {
	var buf bytes.Buffer
	buf.WriteString("graph cloud {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=box, fixedsize=true, style=filled, fillcolor=white, fontname=\"monospace\", fontsize=10, margin=0];\n")
	buf.WriteString("\n")

	for i, r := range c.Rectangles {
		center := r.Center()
		fmt.Fprintf(&buf, "  r%d [label=%s, pos=\"%d,%d!\", width=%.4f, height=%.4f];\n",
			i, dotQuote(c.Label(i)), center.X, -center.Y,
			float64(r.Size.Width)/pointsPerInch, float64(r.Size.Height)/pointsPerInch)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotQuote returns s as a DOT double-quoted string. Backslash and quote are
// escaped and newlines become the centered line break \n. Other control
// characters and invalid UTF-8 are dropped. Everything else is written as
// UTF-8.
func dotQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '\\' || r == '"':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == unicode.ReplacementChar, unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// RenderGraphvizSVG renders DOT produced by [RenderDOT] to SVG using the
// neato engine.
func RenderGraphvizSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
