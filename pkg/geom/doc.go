// Package geom provides the integer geometry shared by the layouter and the
// renderers.
//
// Coordinates follow screen conventions: the origin of a [Rectangle] is its
// top-left corner and Y grows downward. All values are immutable; methods
// return new values instead of mutating the receiver.
//
// Two rectangles intersect only when their interiors share a point. Touching
// edges do not count, and a rectangle with a zero width or height never
// intersects anything:
//
//	a := geom.Rect(0, 0, 10, 10)
//	b := geom.Rect(10, 0, 10, 10)
//	a.Intersects(b) // false, the rectangles share an edge only
//
// Arithmetic is exact only for rectangles that satisfy [Rectangle.InRange]:
// origins within ±[MaxCoordinate] and sizes up to MaxCoordinate. The
// layouter never stores a rectangle outside that range.
package geom
