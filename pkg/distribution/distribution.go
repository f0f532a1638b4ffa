package distribution

import (
	"iter"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

// Distribution is a source of candidate centers around a fixed point.
type Distribution interface {
	// Center returns the point the sequence starts from.
	Center() geom.Point

	// Points returns a new lazy sequence starting at step 0. The sequence
	// may be infinite; consumers stop it by breaking out of the range loop.
	Points() iter.Seq[geom.Point]
}

// Take returns the first n points of seq. It returns fewer than n points
// only if seq ends early.
func Take(seq iter.Seq[geom.Point], n int) []geom.Point {
	if n <= 0 {
		return nil
	}
	out := make([]geom.Point, 0, n)
	for p := range seq {
		out = append(out, p)
		if len(out) == n {
			break
		}
	}
	return out
}
