package render

import (
	"github.com/matzehuels/tagcloud/pkg/geom"
)

// DefaultMargin is the padding around the rectangle bounds when a cloud has
// no canvas.
const DefaultMargin = 10

// Cloud is a render-ready snapshot of a layout.
type Cloud struct {
	Center     geom.Point       `json:"center"`
	Canvas     geom.Size        `json:"canvas"`
	Rectangles []geom.Rectangle `json:"rectangles"`
	Labels     []string         `json:"labels,omitempty"`
	// Probes is an optional candidate path (for example the first points of
	// the distribution) drawn underneath the rectangles.
	Probes []geom.Point `json:"probes,omitempty"`
}

// Label returns the label of rectangle i, or "" when it has none.
func (c Cloud) Label(i int) string {
	if i < 0 || i >= len(c.Labels) {
		return ""
	}
	return c.Labels[i]
}

// Frame returns the visible area of the cloud.
//
// A cloud with a canvas is framed by the canvas, anchored at the origin, and
// grown to include any rectangle that spills over it. Without a canvas the
// frame is the bounding box of all rectangles and the center, padded by
// margin on every side.
func (c Cloud) Frame(margin int) geom.Rectangle {
	bounds := geom.Bounds(c.Rectangles)
	if !c.Canvas.Empty() {
		frame := geom.Rectangle{Size: c.Canvas}
		if bounds.Empty() {
			return frame
		}
		return frame.Union(pad(bounds, margin))
	}

	centerBox := geom.Rectangle{Origin: c.Center.Sub(geom.Pt(margin, margin)), Size: geom.Sz(2*margin, 2*margin)}
	if bounds.Empty() {
		if centerBox.Empty() {
			return geom.Rectangle{Origin: c.Center.Sub(geom.Pt(1, 1)), Size: geom.Sz(2, 2)}
		}
		return centerBox
	}
	return pad(bounds, margin).Union(centerBox)
}

func pad(r geom.Rectangle, margin int) geom.Rectangle {
	return geom.Rectangle{
		Origin: r.Origin.Sub(geom.Pt(margin, margin)),
		Size:   geom.Sz(r.Size.Width+2*margin, r.Size.Height+2*margin),
	}
}
