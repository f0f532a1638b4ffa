package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Style names accepted by [ByName].
const (
	NameOutline = "outline"
	NameFilled  = "filled"
)

// Style defines the visual appearance of a rendered cloud.
type Style interface {
	// Name returns the configuration name of the style.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the SVG for a single placed rectangle.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderText writes the SVG for a box label.
	RenderText(buf *bytes.Buffer, b Box)
	// Colors returns the stroke and fill colors (hex) for a box. An empty
	// fill means the box is not filled.
	Colors(b Box) (stroke, fill string)
}

// Box contains all data needed to render one placed rectangle.
type Box struct {
	Index      int     // Placement order
	Label      string  // Display text, may be empty
	X, Y, W, H float64 // Position and dimensions
	CX, CY     float64 // Center coordinates (for text)
}

// ByName resolves a style from its configuration name.
func ByName(name string) (Style, error) {
	switch name {
	case NameOutline, "":
		return Outline{}, nil
	case NameFilled:
		return Filled{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be 'outline' or 'filled')", name)
	}
}

// Names lists the available style names.
func Names() []string { return []string{NameOutline, NameFilled} }

func writeRect(buf *bytes.Buffer, b Box, stroke, fill string) {
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(buf, `  <rect id="box-%d" class="box" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		b.Index, b.X, b.Y, b.W, b.H, fill, stroke)
}

func writeText(buf *bytes.Buffer, b Box, color string) {
	if b.Label == "" {
		return
	}
	size := FontSize(b)
	fmt.Fprintf(buf, `  <text class="box-text" x="%.2f" y="%.2f" font-family="monospace" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		b.CX, b.CY, size, color, EscapeXML(TruncateLabel(b)))
}
