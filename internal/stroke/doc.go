// Package stroke expands glyph outlines into the fill geometry of their
// stroke for outlined text.
//
// Curves are flattened to polylines within a tolerance, then every subpath is
// offset by half the stroke width to both sides. Corners get round, miter or
// bevel joins. A closed contour becomes two rings of opposite orientation,
// an open one a single ring with butt or round caps. The result is meant for
// a nonzero rasterizer such as x/image/vector.
//
//	e := stroke.NewStrokeExpander(stroke.RoundStroke(2))
//	ring := e.Expand([]stroke.PathElement{
//	    stroke.MoveTo{Point: stroke.Point{X: 0, Y: 0}},
//	    stroke.LineTo{Point: stroke.Point{X: 10, Y: 0}},
//	    stroke.LineTo{Point: stroke.Point{X: 10, Y: 10}},
//	    stroke.Close{},
//	})
package stroke
