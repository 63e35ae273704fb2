package text

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/imagetext/internal/logging"
	"github.com/gogpu/imagetext/internal/stroke"
)

// RasterizeGlyph returns the coverage mask of a glyph whose origin (pen
// position on the baseline) is at (x, y) in canvas pixels. The mask bounds
// are in canvas coordinates.
//
// With strokeWidth > 0 the mask covers the glyph inflated by strokeWidth/2 on
// both sides of its outline: the union of the fill and the stroke ring.
//
// Returned masks are shared with the glyph cache and must not be modified.
// Glyphs without an outline yield nil.
func RasterizeGlyph(src *FontSource, gid GlyphID, ppem, x, y, strokeWidth float64) *image.Alpha {
	if src == nil || ppem <= 0 {
		return nil
	}
	ix, sx := quantize(x)
	iy, sy := quantize(y)
	if strokeWidth < 0 {
		strokeWidth = 0
	}
	key := glyphKey{
		source: src.ID(),
		gid:    gid,
		ppem:   math.Float64bits(ppem),
		subX:   sx,
		subY:   sy,
		stroke: math.Float64bits(strokeWidth),
	}
	gm := glyphCache.GetOrCreate(key, func() glyphMask {
		return glyphMask{mask: rasterize(src, gid, ppem,
			float64(sx)/SubpixelSteps, float64(sy)/SubpixelSteps, strokeWidth)}
	})
	if gm.mask == nil {
		return nil
	}
	// Shallow copy with translated bounds; pixels stay shared.
	m := *gm.mask
	m.Rect = m.Rect.Add(image.Pt(ix, iy))
	return &m
}

// rasterize scan-converts a glyph with its origin at the subpixel offset
// (ox, oy) inside pixel (0, 0).
func rasterize(src *FontSource, gid GlyphID, ppem, ox, oy, strokeWidth float64) *image.Alpha {
	segs, err := src.Parsed().GlyphOutline(gid, ppem)
	if err != nil {
		logging.Logger().Debug("text: glyph outline unavailable", "font", src.Name(), "gid", gid, "err", err)
		return nil
	}
	if len(segs) == 0 {
		return nil
	}

	path := toStrokePath(segs, ox, oy)
	var ring []stroke.PathElement
	if strokeWidth > 0 {
		ring = stroke.NewStrokeExpander(stroke.RoundStroke(strokeWidth)).Expand(path)
	}

	bounds := pathBounds(path, strokeWidth/2)
	if bounds.Empty() {
		return nil
	}
	mask := image.NewAlpha(bounds)
	fillPath(mask, path)
	if len(ring) > 0 {
		ringMask := image.NewAlpha(bounds)
		fillPath(ringMask, ring)
		for i, c := range ringMask.Pix {
			mask.Pix[i] = max(mask.Pix[i], c)
		}
	}
	return mask
}

// toStrokePath converts outline segments to path elements offset by (ox, oy).
// Every contour is closed explicitly.
func toStrokePath(segs []OutlineSegment, ox, oy float64) []stroke.PathElement {
	pt := func(p OutlinePoint) stroke.Point { return stroke.Point{X: p.X + ox, Y: p.Y + oy} }
	out := make([]stroke.PathElement, 0, len(segs)+8)
	open := false
	for _, s := range segs {
		switch s.Op {
		case OutlineOpMoveTo:
			if open {
				out = append(out, stroke.Close{})
			}
			out = append(out, stroke.MoveTo{Point: pt(s.Points[0])})
			open = true
		case OutlineOpLineTo:
			out = append(out, stroke.LineTo{Point: pt(s.Points[0])})
		case OutlineOpQuadTo:
			out = append(out, stroke.QuadTo{Control: pt(s.Points[0]), Point: pt(s.Points[1])})
		case OutlineOpCubicTo:
			out = append(out, stroke.CubicTo{
				Control1: pt(s.Points[0]),
				Control2: pt(s.Points[1]),
				Point:    pt(s.Points[2]),
			})
		}
	}
	if open {
		out = append(out, stroke.Close{})
	}
	return out
}

// pathBounds returns the integer pixel rectangle enclosing every point of
// path grown by pad. Control points bound their curves.
func pathBounds(path []stroke.PathElement, pad float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(p stroke.Point) {
		minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
		maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
	}
	for _, el := range path {
		switch e := el.(type) {
		case stroke.MoveTo:
			add(e.Point)
		case stroke.LineTo:
			add(e.Point)
		case stroke.QuadTo:
			add(e.Control)
			add(e.Point)
		case stroke.CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	if math.IsInf(minX, 1) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(minX-pad)), int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)), int(math.Ceil(maxY+pad)),
	)
}

// fillPath rasterizes path into dst with x/image/vector under the nonzero
// rule, so the two offset rings of a stroked contour leave its counter empty.
func fillPath(dst *image.Alpha, path []stroke.PathElement) {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Src
	dx, dy := float64(b.Min.X), float64(b.Min.Y)
	f := func(p stroke.Point) (float32, float32) {
		return float32(p.X - dx), float32(p.Y - dy)
	}
	for _, el := range path {
		switch e := el.(type) {
		case stroke.MoveTo:
			r.MoveTo(f(e.Point))
		case stroke.LineTo:
			r.LineTo(f(e.Point))
		case stroke.QuadTo:
			bx, by := f(e.Control)
			cx, cy := f(e.Point)
			r.QuadTo(bx, by, cx, cy)
		case stroke.CubicTo:
			bx, by := f(e.Control1)
			cx, cy := f(e.Control2)
			ex, ey := f(e.Point)
			r.CubeTo(bx, by, cx, cy, ex, ey)
		case stroke.Close:
			r.ClosePath()
		}
	}
	r.Draw(dst, b, image.Opaque, b.Min)
}
