package stroke

import "math"

// DefaultTolerance is the flattening tolerance in pixels.
const DefaultTolerance = 0.1

// LineCap specifies the shape of the ends of open subpaths.
type LineCap int

const (
	// LineCapButt ends the stroke flush with the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound ends the stroke with a half disk.
	LineCapRound
)

// LineJoin specifies the shape of corners between segments.
type LineJoin int

const (
	// LineJoinRound rounds the outer corner with an arc of half the width.
	LineJoinRound LineJoin = iota
	// LineJoinMiter extends the outer edges until they meet, falling back
	// to a bevel past the miter limit.
	LineJoinMiter
	// LineJoinBevel cuts the outer corner with a straight edge.
	LineJoinBevel
)

// Stroke is the style of an outline stroke.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// RoundStroke returns the stroke used for outlined text: round joins and
// caps of the given total width.
func RoundStroke(width float64) Stroke {
	return Stroke{Width: width, Cap: LineCapRound, Join: LineJoinRound, MiterLimit: 4}
}

// StrokeExpander converts outlines into the fill geometry of their stroke.
//
// Each subpath is offset by half the width to both sides. A closed contour
// yields two closed rings of opposite orientation (the outer offset forward,
// the inner offset reversed) so a nonzero fill paints exactly the band
// between them. An open subpath yields a single ring with caps at both ends.
//
// A StrokeExpander holds no per-call state and is safe for concurrent use.
type StrokeExpander struct {
	style     Stroke
	tolerance float64
}

// NewStrokeExpander returns an expander for the given style.
func NewStrokeExpander(style Stroke) *StrokeExpander {
	return &StrokeExpander{style: style, tolerance: DefaultTolerance}
}

// SetTolerance sets the curve flattening tolerance. Non-positive values are
// ignored.
func (e *StrokeExpander) SetTolerance(tol float64) {
	if tol > 0 {
		e.tolerance = tol
	}
}

// Style returns the stroke style.
func (e *StrokeExpander) Style() Stroke { return e.style }

// Expand returns the stroke of the outline as fill geometry. A non-positive
// width yields nil.
func (e *StrokeExpander) Expand(elements []PathElement) []PathElement {
	if !(e.style.Width > 0) {
		return nil
	}
	x := &expansion{
		style:      e.style,
		tolerance:  e.tolerance,
		joinThresh: 2 * e.tolerance / e.style.Width,
	}
	for _, el := range elements {
		switch el := el.(type) {
		case MoveTo:
			x.finishOpen()
			x.startPt, x.lastPt = el.Point, el.Point
		case LineTo:
			x.segment(el.Point)
		case QuadTo:
			pts := flattenQuad(nil, x.lastPt, el.Control, el.Point, x.tolerance, 0)
			for _, p := range pts {
				x.segment(p)
			}
		case CubicTo:
			pts := flattenCubic(nil, x.lastPt, el.Control1, el.Control2, el.Point, x.tolerance, 0)
			for _, p := range pts {
				x.segment(p)
			}
		case Close:
			x.segment(x.startPt)
			x.finishClosed()
			x.lastPt = x.startPt
		}
	}
	x.finishOpen()
	return x.output.elements
}

// expansion is the state of one Expand call.
type expansion struct {
	style      Stroke
	tolerance  float64
	joinThresh float64

	forward  pathBuilder
	backward pathBuilder
	output   pathBuilder

	startPt   Point
	startTan  Vec2
	startNorm Vec2
	lastPt    Point
	lastTan   Vec2
	lastNorm  Vec2
}

// normal returns the left normal of tan scaled to half the stroke width.
func (x *expansion) normal(tan Vec2) Vec2 {
	return tan.Perp().Scale(0.5 * x.style.Width / tan.Length())
}

// segment extends the stroke with a straight edge to p.
func (x *expansion) segment(p Point) {
	tan := p.Sub(x.lastPt)
	if tan.Dot(tan) < 1e-20 {
		return
	}
	x.join(tan)
	norm := x.normal(tan)
	x.forward.lineTo(p.Add(norm.Neg()))
	x.backward.lineTo(p.Add(norm))
	x.lastPt, x.lastTan, x.lastNorm = p, tan, norm
}

// join connects the previous edge to one leaving lastPt along tan.
func (x *expansion) join(tan Vec2) {
	p0 := x.lastPt
	norm := x.normal(tan)
	if x.forward.empty() {
		x.forward.moveTo(p0.Add(norm.Neg()))
		x.backward.moveTo(p0.Add(norm))
		x.startTan, x.startNorm = tan, norm
		return
	}

	ab, cd := x.lastTan, tan
	cross, dot := ab.Cross(cd), ab.Dot(cd)
	hypot := math.Hypot(cross, dot)
	if dot > 0 && math.Abs(cross) < hypot*x.joinThresh {
		x.forward.lineTo(p0.Add(norm.Neg()))
		x.backward.lineTo(p0.Add(norm))
		return
	}

	switch x.style.Join {
	case LineJoinRound:
		angle := math.Atan2(cross, dot)
		if angle > 0 {
			x.backward.lineTo(p0.Add(norm))
			arc(&x.forward, p0, x.lastNorm.Neg(), angle)
		} else {
			x.forward.lineTo(p0.Add(norm.Neg()))
			arc(&x.backward, p0, x.lastNorm, angle)
		}
	case LineJoinMiter:
		limit := x.style.MiterLimit * x.style.MiterLimit
		if 2*hypot < (hypot+dot)*limit {
			x.miter(p0, norm, ab, cd, cross)
		}
		x.forward.lineTo(p0.Add(norm.Neg()))
		x.backward.lineTo(p0.Add(norm))
	default:
		x.forward.lineTo(p0.Add(norm.Neg()))
		x.backward.lineTo(p0.Add(norm))
	}
}

// miter adds the intersection of the outer offset edges. The inner side is
// routed through the corner itself.
func (x *expansion) miter(p0 Point, norm, ab, cd Vec2, cross float64) {
	last := x.lastNorm
	outer, inner := &x.forward, &x.backward
	if cross > 0 {
		last, norm = last.Neg(), norm.Neg()
	} else {
		outer, inner = inner, outer
	}
	from, to := p0.Add(last), p0.Add(norm)
	h := ab.Cross(to.Sub(from)) / cross
	outer.lineTo(to.Add(cd.Scale(-h)))
	inner.lineTo(p0)
}

// finishOpen emits the pending open subpath with caps at both ends.
func (x *expansion) finishOpen() {
	if x.forward.empty() {
		return
	}
	x.output.appendPath(&x.forward)
	x.cap(x.lastPt, x.lastNorm.Neg())
	x.output.appendReversed(&x.backward)
	x.cap(x.startPt, x.startNorm)
	x.output.close()
	x.forward.reset()
	x.backward.reset()
}

// finishClosed joins the contour back to its first edge and emits the two
// offset rings.
func (x *expansion) finishClosed() {
	if x.forward.empty() {
		return
	}
	x.join(x.startTan)
	x.output.appendPath(&x.forward)
	x.output.close()
	x.output.moveTo(x.backward.current)
	x.output.appendReversed(&x.backward)
	x.output.close()
	x.forward.reset()
	x.backward.reset()
}

// cap draws the end of an open subpath from center+norm around to
// center-norm.
func (x *expansion) cap(center Point, norm Vec2) {
	switch x.style.Cap {
	case LineCapRound:
		arc(&x.output, center, norm, math.Pi)
	default:
		x.output.lineTo(center.Add(norm.Neg()))
	}
}

// arc appends the circular arc around center that starts at center+from and
// sweeps angle radians, split into cubic pieces of at most 90 degrees.
func arc(out *pathBuilder, center Point, from Vec2, angle float64) {
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := angle / float64(n)
	a := math.Atan2(from.Y, from.X)
	r := from.Length()
	for i := 0; i < n; i++ {
		out.cubicTo(arcSegment(center, r, a, a+step))
		a += step
	}
}

// arcSegment approximates the arc from angle a0 to a1 with one cubic.
func arcSegment(c Point, r, a0, a1 float64) (Point, Point, Point) {
	k := 4.0 / 3.0 * math.Tan((a1-a0)/4)
	cos0, sin0 := math.Cos(a0), math.Sin(a0)
	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	return Point{X: c.X + r*(cos0-k*sin0), Y: c.Y + r*(sin0+k*cos0)},
		Point{X: c.X + r*(cos1+k*sin1), Y: c.Y + r*(sin1-k*cos1)},
		Point{X: c.X + r*cos1, Y: c.Y + r*sin1}
}

// pathBuilder accumulates path elements and tracks the current point.
type pathBuilder struct {
	elements []PathElement
	current  Point
}

func (b *pathBuilder) empty() bool { return len(b.elements) == 0 }

func (b *pathBuilder) reset() {
	b.elements = b.elements[:0]
	b.current = Point{}
}

func (b *pathBuilder) moveTo(p Point) {
	b.elements = append(b.elements, MoveTo{Point: p})
	b.current = p
}

func (b *pathBuilder) lineTo(p Point) {
	b.elements = append(b.elements, LineTo{Point: p})
	b.current = p
}

func (b *pathBuilder) cubicTo(c1, c2, p Point) {
	b.elements = append(b.elements, CubicTo{Control1: c1, Control2: c2, Point: p})
	b.current = p
}

func (b *pathBuilder) close() {
	b.elements = append(b.elements, Close{})
}

func (b *pathBuilder) appendPath(other *pathBuilder) {
	b.elements = append(b.elements, other.elements...)
	b.current = other.current
}

// appendReversed walks other backwards from its current point to its first
// point. Only line and cubic elements are expected after the initial MoveTo.
func (b *pathBuilder) appendReversed(other *pathBuilder) {
	els := other.elements
	for i := len(els) - 1; i >= 1; i-- {
		end := endPoint(els[i-1])
		switch el := els[i].(type) {
		case LineTo:
			b.lineTo(end)
		case CubicTo:
			b.cubicTo(el.Control2, el.Control1, end)
		}
	}
}

func endPoint(el PathElement) Point {
	switch el := el.(type) {
	case MoveTo:
		return el.Point
	case LineTo:
		return el.Point
	case QuadTo:
		return el.Point
	case CubicTo:
		return el.Point
	}
	return Point{}
}
