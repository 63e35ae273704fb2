package text

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/sfnt.
type ximageParser struct{}

// Parse implements FontParser.Parse. Collections yield their first face.
func (ximageParser) Parse(data []byte) (ParsedFont, error) {
	var (
		f   *sfnt.Font
		err error
	)
	if bytes.HasPrefix(data, []byte("ttcf")) {
		var c *sfnt.Collection
		if c, err = sfnt.ParseCollection(data); err == nil {
			f, err = c.Font(0)
		}
	} else {
		f, err = sfnt.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont. sfnt.Buffer is not safe for
// concurrent use, so every call borrows one from a pool.
type ximageParsedFont struct {
	font *sfnt.Font
	bufs sync.Pool
}

func (f *ximageParsedFont) buffer() *sfnt.Buffer {
	if b, ok := f.bufs.Get().(*sfnt.Buffer); ok {
		return b
	}
	return new(sfnt.Buffer)
}

func (f *ximageParsedFont) name(ids ...sfnt.NameID) string {
	buf := f.buffer()
	defer f.bufs.Put(buf)
	for _, id := range ids {
		if s, err := f.font.Name(buf, id); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string { return f.name(sfnt.NameIDFamily) }

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string { return f.name(sfnt.NameIDFull) }

// Family implements ParsedFont.Family.
func (f *ximageParsedFont) Family() string {
	return f.name(sfnt.NameIDTypographicFamily, sfnt.NameIDFamily)
}

// Subfamily implements ParsedFont.Subfamily.
func (f *ximageParsedFont) Subfamily() string {
	return f.name(sfnt.NameIDTypographicSubfamily, sfnt.NameIDSubfamily)
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) GlyphID {
	buf := f.buffer()
	defer f.bufs.Put(buf)
	idx, err := f.font.GlyphIndex(buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageParsedFont) GlyphAdvance(gid GlyphID, ppem float64) float64 {
	buf := f.buffer()
	defer f.bufs.Put(buf)
	advance, err := f.font.GlyphAdvance(buf, sfnt.GlyphIndex(gid), toFixed(ppem), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(advance)
}

// GlyphBounds implements ParsedFont.GlyphBounds.
func (f *ximageParsedFont) GlyphBounds(gid GlyphID, ppem float64) Rect {
	buf := f.buffer()
	defer f.bufs.Put(buf)
	bounds, _, err := f.font.GlyphBounds(buf, sfnt.GlyphIndex(gid), toFixed(ppem), font.HintingNone)
	if err != nil {
		return Rect{}
	}
	return Rect{
		MinX: fromFixed(bounds.Min.X),
		MinY: fromFixed(bounds.Min.Y),
		MaxX: fromFixed(bounds.Max.X),
		MaxY: fromFixed(bounds.Max.Y),
	}
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *ximageParsedFont) GlyphOutline(gid GlyphID, ppem float64) ([]OutlineSegment, error) {
	buf := f.buffer()
	defer f.bufs.Put(buf)
	segments, err := f.font.LoadGlyph(buf, sfnt.GlyphIndex(gid), toFixed(ppem), nil)
	if errors.Is(err, sfnt.ErrColoredGlyph) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("text: glyph %d: %w", gid, err)
	}

	out := make([]OutlineSegment, len(segments))
	for i, seg := range segments {
		var n int
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			out[i].Op, n = OutlineOpMoveTo, 1
		case sfnt.SegmentOpLineTo:
			out[i].Op, n = OutlineOpLineTo, 1
		case sfnt.SegmentOpQuadTo:
			out[i].Op, n = OutlineOpQuadTo, 2
		case sfnt.SegmentOpCubeTo:
			out[i].Op, n = OutlineOpCubicTo, 3
		}
		for j := 0; j < n; j++ {
			out[i].Points[j] = OutlinePoint{X: fromFixed(seg.Args[j].X), Y: fromFixed(seg.Args[j].Y)}
		}
	}
	return out, nil
}

// Metrics implements ParsedFont.Metrics.
func (f *ximageParsedFont) Metrics(ppem float64) FontMetrics {
	buf := f.buffer()
	defer f.bufs.Put(buf)
	m, err := f.font.Metrics(buf, toFixed(ppem), font.HintingNone)
	if err != nil {
		return FontMetrics{}
	}
	ascent, descent := fromFixed(m.Ascent), fromFixed(m.Descent)
	return FontMetrics{
		Ascent:    ascent,
		Descent:   descent,
		LineGap:   max(0, fromFixed(m.Height)-ascent-descent),
		XHeight:   fromFixed(m.XHeight),
		CapHeight: fromFixed(m.CapHeight),
	}
}

// toFixed converts a float64 pixel size to fixed.Int26_6.
func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fromFixed converts fixed.Int26_6 to float64.
func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
