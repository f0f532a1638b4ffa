package distribution

import (
	"iter"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

// Rings scans square rings of growing radius around the center. Ring 0 is
// the center; ring k holds the 8k points at Chebyshev distance k·stride,
// visited clockwise from the top-left corner.
type Rings struct {
	center geom.Point
	stride int
}

// NewRings returns a ring scan with the given stride. A stride below 1 is
// treated as 1.
func NewRings(center geom.Point, stride int) *Rings {
	return &Rings{center: center, stride: max(stride, 1)}
}

// Center returns the scan origin.
func (r *Rings) Center() geom.Point { return r.center }

// Stride returns the distance between neighbouring candidates.
func (r *Rings) Stride() int { return r.stride }

// Points returns the infinite ring sequence.
func (r *Rings) Points() iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		if !yield(r.center) {
			return
		}
		for k := 1; ; k++ {
			for _, off := range ring(k) {
				p := geom.Point{X: r.center.X + off.X*r.stride, Y: r.center.Y + off.Y*r.stride}
				if !yield(p) {
					return
				}
			}
		}
	}
}

// ring returns the unit offsets of ring k in clockwise order.
func ring(k int) []geom.Point {
	out := make([]geom.Point, 0, 8*k)
	for x := -k; x < k; x++ {
		out = append(out, geom.Point{X: x, Y: -k})
	}
	for y := -k; y < k; y++ {
		out = append(out, geom.Point{X: k, Y: y})
	}
	for x := k; x > -k; x-- {
		out = append(out, geom.Point{X: x, Y: k})
	}
	for y := k; y > -k; y-- {
		out = append(out, geom.Point{X: -k, Y: y})
	}
	return out
}

var _ Distribution = (*Rings)(nil)
