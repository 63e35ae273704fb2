package text

import (
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// asciiParser hides every glyph outside ASCII, giving tests a primary font
// that needs fallbacks.
type asciiParser struct{}

func (asciiParser) Parse(data []byte) (ParsedFont, error) {
	p, err := ximageParser{}.Parse(data)
	if err != nil {
		return nil, err
	}
	return asciiFont{p}, nil
}

type asciiFont struct{ ParsedFont }

func (f asciiFont) GlyphIndex(r rune) GlyphID {
	if r > 0x7F {
		return 0
	}
	return f.ParsedFont.GlyphIndex(r)
}

func init() {
	RegisterParser("ascii", asciiParser{})
}

func loadSource(t testing.TB, data []byte, opts ...SourceOption) *FontSource {
	t.Helper()
	src, err := NewFontSource(data, opts...)
	if err != nil {
		t.Fatalf("NewFontSource() error = %v", err)
	}
	return src
}

func regularSource(t testing.TB) *FontSource { return loadSource(t, goregular.TTF) }
func monoSource(t testing.TB) *FontSource    { return loadSource(t, gomono.TTF) }
func boldSource(t testing.TB) *FontSource    { return loadSource(t, gobold.TTF) }

func newTestFont(t testing.TB, primary *FontSource, opts ...FontOption) *Font {
	t.Helper()
	f, err := NewFont(primary, opts...)
	if err != nil {
		t.Fatalf("NewFont() error = %v", err)
	}
	return f
}

func near(a, b, eps float64) bool {
	d := a - b
	return d < eps && d > -eps
}
