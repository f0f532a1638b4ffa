package geom

import "fmt"

// MaxCoordinate bounds the absolute value of coordinates and size components.
// Within it, Max and Union cannot overflow even for 32-bit int.
const MaxCoordinate = 1 << 28

// Point is an integer 2D coordinate.
type Point struct {
	X int `json:"x" yaml:"x" toml:"x" bson:"x"`
	Y int `json:"y" yaml:"y" toml:"y" bson:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Size is the extent of a rectangle. A valid size has no negative component.
type Size struct {
	Width  int `json:"width" yaml:"width" toml:"width" bson:"width"`
	Height int `json:"height" yaml:"height" toml:"height" bson:"height"`
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h int) Size { return Size{Width: w, Height: h} }

// Valid reports whether both components are non-negative.
func (s Size) Valid() bool { return s.Width >= 0 && s.Height >= 0 }

// Empty reports whether the size has a zero (or negative) component.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Half returns the size divided by two, rounding toward zero.
func (s Size) Half() Point { return Point{X: s.Width / 2, Y: s.Height / 2} }

// Area returns Width*Height.
func (s Size) Area() int { return s.Width * s.Height }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Rectangle is an axis-aligned box anchored at its top-left corner.
type Rectangle struct {
	Origin Point `json:"origin" yaml:"origin" toml:"origin" bson:"origin"`
	Size   Size  `json:"size" yaml:"size" toml:"size" bson:"size"`
}

// Rect is shorthand for a rectangle at (x, y) with the given width and height.
func Rect(x, y, w, h int) Rectangle {
	return Rectangle{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// CenteredAt returns the rectangle of size s whose origin is p - s/2.
func CenteredAt(p Point, s Size) Rectangle {
	return Rectangle{Origin: p.Sub(s.Half()), Size: s}
}

// InRange reports whether the origin lies within ±MaxCoordinate and both size
// components are at most MaxCoordinate.
func (r Rectangle) InRange() bool {
	return inRange(r.Origin.X) && inRange(r.Origin.Y) &&
		r.Size.Width <= MaxCoordinate && r.Size.Height <= MaxCoordinate
}

// InRange reports whether both coordinates lie within ±MaxCoordinate.
func (p Point) InRange() bool { return inRange(p.X) && inRange(p.Y) }

func inRange(v int) bool { return v >= -MaxCoordinate && v <= MaxCoordinate }

// Min returns the top-left corner.
func (r Rectangle) Min() Point { return r.Origin }

// Max returns the exclusive bottom-right corner.
func (r Rectangle) Max() Point {
	return Point{X: r.Origin.X + r.Size.Width, Y: r.Origin.Y + r.Size.Height}
}

// Center returns the origin plus half the size.
func (r Rectangle) Center() Point { return r.Origin.Add(r.Size.Half()) }

// Empty reports whether the rectangle has no interior.
func (r Rectangle) Empty() bool { return r.Size.Empty() }

// Intersects reports whether r and o share an interior point.
func (r Rectangle) Intersects(o Rectangle) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	rMax, oMax := r.Max(), o.Max()
	return r.Origin.X < oMax.X && o.Origin.X < rMax.X &&
		r.Origin.Y < oMax.Y && o.Origin.Y < rMax.Y
}

// Union returns the smallest rectangle containing both r and o.
// Empty operands are ignored.
func (r Rectangle) Union(o Rectangle) Rectangle {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	rMax, oMax := r.Max(), o.Max()
	minX, minY := min(r.Origin.X, o.Origin.X), min(r.Origin.Y, o.Origin.Y)
	maxX, maxY := max(rMax.X, oMax.X), max(rMax.Y, oMax.Y)
	return Rect(minX, minY, maxX-minX, maxY-minY)
}

// Translate returns r moved by d.
func (r Rectangle) Translate(d Point) Rectangle {
	return Rectangle{Origin: r.Origin.Add(d), Size: r.Size}
}

func (r Rectangle) String() string { return fmt.Sprintf("%s+%s", r.Origin, r.Size) }

// Bounds returns the union of all rects, or the zero Rectangle if none has an
// interior.
func Bounds(rects []Rectangle) Rectangle {
	var b Rectangle
	for _, r := range rects {
		b = b.Union(r)
	}
	return b
}
