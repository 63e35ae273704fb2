package stroke

import "math"

// maxDepth bounds subdivision for degenerate control polygons.
const maxDepth = 16

// flattenQuad appends the polyline approximation of the quadratic
// (p0, p1, p2) to dst, excluding p0.
func flattenQuad(dst []Point, p0, p1, p2 Point, tol float64, depth int) []Point {
	if depth >= maxDepth || distanceToSegment(p1, p0, p2) < tol {
		return append(dst, p2)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	dst = flattenQuad(dst, p0, q0, mid, tol, depth+1)
	return flattenQuad(dst, mid, q1, p2, tol, depth+1)
}

// flattenCubic appends the polyline approximation of the cubic
// (p0, p1, p2, p3) to dst, excluding p0. De Casteljau subdivision.
func flattenCubic(dst []Point, p0, p1, p2, p3 Point, tol float64, depth int) []Point {
	d := math.Max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3))
	if depth >= maxDepth || d < tol {
		return append(dst, p3)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	dst = flattenCubic(dst, p0, q0, r0, s, tol, depth+1)
	return flattenCubic(dst, s, r1, q2, p3, tol, depth+1)
}

// distanceToSegment is the distance from p to the segment ab.
func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-20 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(ab.Scale(t))).Length()
}
