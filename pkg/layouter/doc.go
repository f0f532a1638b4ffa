// Package layouter places rectangles around a center without overlap.
//
// # Overview
//
// A [Layouter] owns one cloud: a center, a point [distribution.Distribution]
// and the ordered list of rectangles placed so far. [Layouter.PutNext] walks
// the distribution from its first point, centers a candidate of the
// requested size on each point and accepts the first candidate that does not
// intersect any placed rectangle (first-fit). The accepted rectangle is
// appended to the cloud and returned.
//
// # Guarantees
//
//   - The returned rectangle has exactly the requested size.
//   - It does not intersect any rectangle placed before it.
//   - On success the cloud grows by exactly one rectangle, at the end.
//   - On error (negative size, exhausted search) the cloud is unchanged.
//
// Placement is deterministic: two layouters built from equal distributions
// that receive the same sequence of sizes produce identical clouds.
//
// # Bounded Search
//
// With the default spiral the search always terminates for finite input,
// but the number of probes is not bounded. [WithMaxSteps] caps the probes
// per call; when the cap is reached, or when a finite distribution runs out,
// PutNext returns an error with code [errors.ErrCodeSearchExhausted].
//
// # Concurrency
//
// A Layouter is not safe for concurrent use. Each PutNext reads the cloud
// and then appends to it, so callers must serialise calls on the same value.
//
// [errors.ErrCodeSearchExhausted]: github.com/matzehuels/tagcloud/pkg/errors#ErrCodeSearchExhausted
package layouter
