package stroke

import "math"

// Point is a 2D point in pixel space (y down).
type Point struct {
	X, Y float64
}

// Sub returns p - q as a vector.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add offsets p by v.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Scale multiplies v by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

// Dot is the dot product.
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

// Cross is the z component of the 3D cross product.
func (v Vec2) Cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }

// Length is the Euclidean norm.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// Perp rotates v by 90 degrees.
func (v Vec2) Perp() Vec2 { return Vec2{X: -v.Y, Y: v.X} }

// PathElement is one drawing command of an outline.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new contour.
type MoveTo struct{ Point Point }

// LineTo draws a straight edge.
type LineTo struct{ Point Point }

// QuadTo draws a quadratic Bézier.
type QuadTo struct{ Control, Point Point }

// CubicTo draws a cubic Bézier.
type CubicTo struct{ Control1, Control2, Point Point }

// Close returns to the start of the contour.
type Close struct{}

func (MoveTo) isPathElement()  {}
func (LineTo) isPathElement()  {}
func (QuadTo) isPathElement()  {}
func (CubicTo) isPathElement() {}
func (Close) isPathElement()   {}
