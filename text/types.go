package text

// GlyphID is a glyph index within one font. Zero is .notdef.
type GlyphID uint16

// Rect represents a rectangle for glyph bounds, in pixels with y down.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle is empty.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// OutlinePoint is a point of a scaled glyph outline.
type OutlinePoint struct {
	X, Y float64
}

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo starts a new contour.
	OutlineOpMoveTo OutlineOp = iota
	// OutlineOpLineTo draws a line to Points[0].
	OutlineOpLineTo
	// OutlineOpQuadTo draws a quadratic curve through Points[0] to Points[1].
	OutlineOpQuadTo
	// OutlineOpCubicTo draws a cubic curve through Points[0..1] to Points[2].
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// OutlineSegment is one path operation of a glyph outline.
type OutlineSegment struct {
	Op     OutlineOp
	Points [3]OutlinePoint
}
