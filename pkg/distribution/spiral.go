package distribution

import (
	"iter"
	"math"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

const (
	// DefaultAngleStep is the angle increment per step (3 degrees).
	DefaultAngleStep = 2 * math.Pi / 120

	// DefaultCoefficient is the spiral coefficient k in r = k·θ. With the
	// default it puts successive turns about π pixels apart.
	DefaultCoefficient = 0.5
)

// SpiralOption configures an [ArchimedeanSpiral].
type SpiralOption func(*ArchimedeanSpiral)

// WithAngleStep sets the angle increment per step in radians.
// Non-positive values keep the default.
func WithAngleStep(rad float64) SpiralOption {
	return func(s *ArchimedeanSpiral) {
		if rad > 0 {
			s.angleStep = rad
		}
	}
}

// WithCoefficient sets the spiral coefficient k. Non-positive values keep
// the default.
func WithCoefficient(k float64) SpiralOption {
	return func(s *ArchimedeanSpiral) {
		if k > 0 {
			s.coefficient = k
		}
	}
}

// ArchimedeanSpiral yields points on r = k·θ around a fixed center.
type ArchimedeanSpiral struct {
	center      geom.Point
	angleStep   float64
	coefficient float64
}

// NewArchimedeanSpiral returns a spiral centered on center.
func NewArchimedeanSpiral(center geom.Point, opts ...SpiralOption) *ArchimedeanSpiral {
	s := &ArchimedeanSpiral{
		center:      center,
		angleStep:   DefaultAngleStep,
		coefficient: DefaultCoefficient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Center returns the spiral's origin.
func (s *ArchimedeanSpiral) Center() geom.Point { return s.center }

// AngleStep returns the angle increment per step.
func (s *ArchimedeanSpiral) AngleStep() float64 { return s.angleStep }

// Coefficient returns k.
func (s *ArchimedeanSpiral) Coefficient() float64 { return s.coefficient }

// Angle returns θ at step i.
func (s *ArchimedeanSpiral) Angle(i int) float64 { return float64(i) * s.angleStep }

// Radius returns r at step i. Radius(0) is 0 and the function is
// non-decreasing for i >= 0.
func (s *ArchimedeanSpiral) Radius(i int) float64 { return s.coefficient * s.Angle(i) }

// Point returns the candidate at step i.
func (s *ArchimedeanSpiral) Point(i int) geom.Point {
	theta := s.Angle(i)
	r := s.coefficient * theta
	return geom.Point{
		X: s.center.X + int(math.Round(r*math.Cos(theta))),
		Y: s.center.Y + int(math.Round(r*math.Sin(theta))),
	}
}

// Points returns the infinite sequence Point(0), Point(1), ...
func (s *ArchimedeanSpiral) Points() iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		for i := 0; ; i++ {
			if !yield(s.Point(i)) {
				return
			}
		}
	}
}

var _ Distribution = (*ArchimedeanSpiral)(nil)
