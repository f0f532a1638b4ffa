// Package distribution produces candidate placement points for the cloud
// layouter.
//
// # Overview
//
// A [Distribution] is bound to a fixed center and exposes an infinite, lazy
// sequence of points via [Distribution.Points]. Every call starts a fresh
// sequence at step 0, and the sequence is a pure function of the step index:
// the same center and the same number of consumed steps always yield the same
// point.
//
// # Strategies
//
//   - [ArchimedeanSpiral] (default): r = k·θ with θ advancing by a fixed angle
//     per step. The first point is the center itself and the radius never
//     decreases, so the search sweeps outward.
//   - [Rings]: square rings of growing Chebyshev radius. Useful as a
//     predictable substitute in tests and for grid-aligned clouds.
//
// # Usage
//
//	spiral := distribution.NewArchimedeanSpiral(geom.Pt(400, 300))
//	for p := range spiral.Points() {
//	    if fits(p) {
//	        break
//	    }
//	}
//
// [Take] materialises a prefix of any sequence, which is how renderers obtain
// the probe path for diagnostic output.
package distribution
