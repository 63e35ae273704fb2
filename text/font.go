package text

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/imagetext/text/emoji"
)

// Font is a composite font: a primary FontSource, ordered fallbacks and an
// emoji policy. Sources may be shared between fonts.
//
// Font is safe for concurrent use. The emoji policy can be replaced at any
// time with SetEmojiOptions; layouts in flight see either the old or the new
// policy.
type Font struct {
	sources   []*FontSource // primary first
	ligatures bool
	emoji     atomic.Pointer[emoji.Options]
}

// NewFont creates a composite font around primary.
func NewFont(primary *FontSource, opts ...FontOption) (*Font, error) {
	config := defaultFontConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if primary == nil {
		return nil, ErrNilSource
	}
	sources := make([]*FontSource, 0, 1+len(config.fallbacks))
	sources = append(sources, primary)
	for i, fb := range config.fallbacks {
		if fb == nil {
			return nil, fmt.Errorf("%w: fallback %d", ErrNilSource, i)
		}
		sources = append(sources, fb)
	}

	f := &Font{sources: sources, ligatures: config.ligatures}
	eo := config.emoji
	f.emoji.Store(&eo)
	return f, nil
}

// LoadFont loads the primary font and fallbacks from files.
func LoadFont(path string, fallbackPaths []string, opts ...FontOption) (*Font, error) {
	primary, err := NewFontSourceFromFile(path)
	if err != nil {
		return nil, err
	}
	fallbacks := make([]*FontSource, 0, len(fallbackPaths))
	for _, p := range fallbackPaths {
		fb, err := NewFontSourceFromFile(p)
		if err != nil {
			return nil, err
		}
		fallbacks = append(fallbacks, fb)
	}
	return NewFont(primary, append([]FontOption{WithFallbacks(fallbacks...)}, opts...)...)
}

// Primary returns the primary source.
func (f *Font) Primary() *FontSource { return f.sources[0] }

// Fallbacks returns the fallback sources in resolution order.
func (f *Font) Fallbacks() []*FontSource {
	return append([]*FontSource(nil), f.sources[1:]...)
}

// Sources returns the primary followed by the fallbacks.
func (f *Font) Sources() []*FontSource {
	return append([]*FontSource(nil), f.sources...)
}

// Ligatures reports whether HarfBuzz shaping is enabled.
func (f *Font) Ligatures() bool { return f.ligatures }

// Resolve returns the first source with a glyph for r. When no source has
// one it returns the primary and glyph 0 (.notdef).
func (f *Font) Resolve(r rune) (*FontSource, GlyphID) {
	for _, s := range f.sources {
		if s.HasGlyph(r) {
			return s, s.parsed.GlyphIndex(r)
		}
	}
	return f.sources[0], 0
}

// Metrics returns the primary source's metrics at px. Fallback metrics are
// never mixed in so that line heights stay uniform.
func (f *Font) Metrics(px float64) FontMetrics {
	return f.sources[0].parsed.Metrics(px)
}

// LineHeight returns ascent + descent of the primary at px.
func (f *Font) LineHeight(px float64) float64 {
	return f.Metrics(px).LineHeight()
}

// Scale converts a pixel size to pixels per font unit of src, using that
// source's own units per em.
func (f *Font) Scale(src *FontSource, px float64) float64 {
	upem := src.parsed.UnitsPerEm()
	if upem <= 0 {
		return 0
	}
	return px / float64(upem)
}

// EmojiOptions returns the current emoji policy.
func (f *Font) EmojiOptions() emoji.Options {
	return *f.emoji.Load()
}

// SetEmojiOptions replaces the emoji policy.
func (f *Font) SetEmojiOptions(opts emoji.Options) {
	f.emoji.Store(&opts)
}

// EmojiSize returns the side of the emoji square at px.
func (f *Font) EmojiSize(px float64) float64 {
	return f.LineHeight(px) * f.EmojiOptions().EffectiveScale()
}
