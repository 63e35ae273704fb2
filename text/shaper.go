package text

// Shaper converts one run of runes, all resolved to the same source, into
// positioned glyphs.
type Shaper interface {
	Shape(src *FontSource, runes []rune, ppem float64) []ShapedGlyph
}

// ShapedGlyph is a glyph positioned relative to the start of its run.
type ShapedGlyph struct {
	GID GlyphID

	// Cluster is the index of the first rune the glyph was produced from.
	Cluster int

	// X is the pen offset, including any shaping offset.
	X float64

	// XAdvance is the pen movement after the glyph.
	XAdvance float64
}

// BuiltinShaper maps each rune to its cmap glyph and advance. It applies no
// ligatures or kerning, so a run's width is exactly the sum of per-rune
// advances.
//
// BuiltinShaper is stateless and safe for concurrent use.
type BuiltinShaper struct{}

// Shape implements Shaper.
func (BuiltinShaper) Shape(src *FontSource, runes []rune, ppem float64) []ShapedGlyph {
	if len(runes) == 0 || src == nil {
		return nil
	}
	parsed := src.Parsed()
	out := make([]ShapedGlyph, len(runes))
	var x float64
	for i, r := range runes {
		gid := parsed.GlyphIndex(r)
		adv := parsed.GlyphAdvance(gid, ppem)
		out[i] = ShapedGlyph{GID: gid, Cluster: i, X: x, XAdvance: adv}
		x += adv
	}
	return out
}
