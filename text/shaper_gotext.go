package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/imagetext/internal/logging"
)

// GoTextShaper shapes runs with go-text/typesetting's HarfBuzz port, which
// applies OpenType ligatures, kerning and contextual alternates.
//
// GoTextShaper is safe for concurrent use. Parsed fonts live on their
// FontSource; a lightweight font.Face is created per call because font.Face
// is not safe for concurrent use. HarfbuzzShaper instances are pooled.
type GoTextShaper struct {
	shaperPool sync.Pool
	fallback   BuiltinShaper
}

// NewGoTextShaper creates a new GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

var defaultGoTextShaper = NewGoTextShaper()

// Shape implements Shaper. Fonts go-text cannot parse fall back to the
// builtin shaper.
func (s *GoTextShaper) Shape(src *FontSource, runes []rune, ppem float64) []ShapedGlyph {
	if len(runes) == 0 || src == nil {
		return nil
	}
	f, err := src.shapingFace()
	if err != nil {
		logging.Logger().Debug("text: ligature shaping unavailable", "font", src.Name(), "err", err)
		return s.fallback.Shape(src, runes, ppem)
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f),
		Size:      toFixed(ppem),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	out := make([]ShapedGlyph, len(output.Glyphs))
	var x float64
	for i, g := range output.Glyphs {
		adv := fromFixed(g.Advance)
		out[i] = ShapedGlyph{
			GID:      GlyphID(uint16(g.GlyphID)), //nolint:gosec // glyph ids of sfnt fonts fit in 16 bits
			Cluster:  g.TextIndex(),
			X:        x + fromFixed(g.XOffset),
			XAdvance: adv,
		}
		x += adv
	}
	return out
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
