package text

import (
	"fmt"
	"sync"
)

// FontParser is an interface for font parsing backends.
// The default implementation uses golang.org/x/image/font/sfnt.
type FontParser interface {
	// Parse parses font data (TTF, OTF or the first face of a TTC).
	// The returned font may keep references into data.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file. Sizes are pixels per em;
// coordinates are pixels with y growing downwards and the origin on the
// baseline at the pen position.
//
// Implementations must be safe for concurrent use.
type ParsedFont interface {
	// Name returns the font family name, or "".
	Name() string

	// FullName returns the full font name, or "".
	FullName() string

	// Family returns the typographic family, falling back to Name.
	Family() string

	// Subfamily returns the style name such as "Bold Italic", or "".
	Subfamily() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph for r, or 0 if the font has none.
	GlyphIndex(r rune) GlyphID

	// GlyphAdvance returns the advance width of a glyph.
	GlyphAdvance(gid GlyphID, ppem float64) float64

	// GlyphBounds returns the ink bounds of a glyph.
	GlyphBounds(gid GlyphID, ppem float64) Rect

	// GlyphOutline returns the scaled outline of a glyph. Glyphs without
	// an outline (space, bitmap-only color glyphs) return nil, nil.
	GlyphOutline(gid GlyphID, ppem float64) ([]OutlineSegment, error)

	// Metrics returns the font metrics at the given size.
	Metrics(ppem float64) FontMetrics
}

// FontMetrics holds font-level metrics at a specific size.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the font.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font
	// (positive).
	Descent float64

	// LineGap is the recommended extra space between lines.
	LineGap float64

	// XHeight is the height of lowercase letters (like 'x').
	XHeight float64

	// CapHeight is the height of uppercase letters.
	CapHeight float64
}

// LineHeight returns ascent + descent, the height of one laid out line.
func (m FontMetrics) LineHeight() float64 {
	return m.Ascent + m.Descent
}

// Height returns the recommended baseline-to-baseline distance.
func (m FontMetrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]FontParser{
		defaultParserName: ximageParser{},
	}
)

// RegisterParser registers a font parser under name, replacing any parser
// registered under the same name.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser registered under name.
func getParser(name string) (FontParser, error) {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParser, name)
}
