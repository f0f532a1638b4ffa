package layouter

import (
	"slices"

	"github.com/matzehuels/tagcloud/pkg/distribution"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
)

// Option configures a [Layouter].
type Option func(*Layouter)

// WithMaxSteps caps the number of candidate points examined per PutNext.
// Zero or a negative value means no cap.
func WithMaxSteps(n int) Option {
	return func(l *Layouter) { l.maxSteps = max(n, 0) }
}

// Layouter is a single cloud layout session.
type Layouter struct {
	center   geom.Point
	dist     distribution.Distribution
	rects    []geom.Rectangle
	maxSteps int
	steps    int
}

// New returns a layouter around center using the default Archimedean spiral.
func New(center geom.Point, opts ...Option) *Layouter {
	return NewWithDistribution(distribution.NewArchimedeanSpiral(center), opts...)
}

// NewWithDistribution returns a layouter that draws candidates from d. The
// cloud's center is d.Center().
func NewWithDistribution(d distribution.Distribution, opts ...Option) *Layouter {
	l := &Layouter{
		center: d.Center(),
		dist:   d,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// PutNext places a rectangle of the given size at the first candidate point
// where it overlaps nothing already placed, records it and returns it.
// Sizes beyond [geom.MaxCoordinate] are rejected with INVALID_ARGUMENT, and
// the search ends with SEARCH_EXHAUSTED once a candidate leaves that range.
func (l *Layouter) PutNext(size geom.Size) (geom.Rectangle, error) {
	if err := errors.ValidateSize(size.Width, size.Height); err != nil {
		return geom.Rectangle{}, err
	}

	steps := 0
	for p := range l.dist.Points() {
		if l.maxSteps > 0 && steps == l.maxSteps {
			break
		}
		steps++

		candidate := geom.CenteredAt(p, size)
		if !candidate.InRange() {
			// The search ends at the first candidate outside the range,
			// even if later ones on the near side would fit.
			break
		}
		if l.fits(candidate) {
			l.rects = append(l.rects, candidate)
			l.steps = steps
			return candidate, nil
		}
	}

	l.steps = steps
	return geom.Rectangle{}, errors.New(errors.ErrCodeSearchExhausted,
		"no free position for %s after %d candidates", size, steps)
}

// PutAll places sizes in order. It stops at the first error and returns the
// rectangles placed before it.
func (l *Layouter) PutAll(sizes []geom.Size) ([]geom.Rectangle, error) {
	placed := make([]geom.Rectangle, 0, len(sizes))
	for i, s := range sizes {
		r, err := l.PutNext(s)
		if err != nil {
			return placed, errors.Wrap(errors.GetCode(err), err, "rectangle %d", i)
		}
		placed = append(placed, r)
	}
	return placed, nil
}

func (l *Layouter) fits(candidate geom.Rectangle) bool {
	for _, r := range l.rects {
		if r.Intersects(candidate) {
			return false
		}
	}
	return true
}

// Center returns the cloud's center.
func (l *Layouter) Center() geom.Point { return l.center }

// Distribution returns the candidate source.
func (l *Layouter) Distribution() distribution.Distribution { return l.dist }

// Rectangles returns a copy of the placed rectangles in placement order.
func (l *Layouter) Rectangles() []geom.Rectangle { return slices.Clone(l.rects) }

// Len returns the number of placed rectangles.
func (l *Layouter) Len() int { return len(l.rects) }

// Bounds returns the bounding box of all placed rectangles.
func (l *Layouter) Bounds() geom.Rectangle { return geom.Bounds(l.rects) }

// LastSteps returns how many candidates the most recent PutNext examined.
func (l *Layouter) LastSteps() int { return l.steps }

// MaxSteps returns the per-call probe cap, 0 if unbounded.
func (l *Layouter) MaxSteps() int { return l.maxSteps }
