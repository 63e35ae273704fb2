package text

import (
	"errors"
	"testing"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

func TestNewFontSourceErrors(t *testing.T) {
	if _, err := NewFontSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewFontSource(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewFontSource([]byte("not a font")); err == nil {
		t.Error("NewFontSource(garbage) error = nil")
	}
	if _, err := NewFontSource(goregular.TTF, WithParser("missing")); !errors.Is(err, ErrUnknownParser) {
		t.Errorf("unknown parser error = %v, want ErrUnknownParser", err)
	}
	if _, err := NewFontSourceFromFile("testdata/does-not-exist.ttf"); err == nil {
		t.Error("NewFontSourceFromFile(missing) error = nil")
	}
}

func TestFontSourceMetadata(t *testing.T) {
	src := regularSource(t)
	if src.Name() != "Go" {
		t.Errorf("Name() = %q, want %q", src.Name(), "Go")
	}
	if src.Path() != "" {
		t.Errorf("Path() = %q, want empty", src.Path())
	}
	if src.Parsed().UnitsPerEm() != 2048 {
		t.Errorf("UnitsPerEm() = %d, want 2048", src.Parsed().UnitsPerEm())
	}
	if named := loadSource(t, goregular.TTF, WithName("body")); named.Name() != "body" {
		t.Errorf("WithName: Name() = %q", named.Name())
	}
	if a, b := regularSource(t), regularSource(t); a.ID() == b.ID() {
		t.Error("two sources share an ID")
	}
}

func TestFontSourceStyle(t *testing.T) {
	if w := boldSource(t).Weight(); w != xfont.WeightBold {
		t.Errorf("bold Weight() = %v, want WeightBold", w)
	}
	if s := loadSource(t, goitalic.TTF).Style(); s != xfont.StyleItalic {
		t.Errorf("italic Style() = %v, want StyleItalic", s)
	}
	if w := regularSource(t).Weight(); w != xfont.WeightNormal {
		t.Errorf("regular Weight() = %v, want WeightNormal", w)
	}
}

func TestFontSourceOwnsData(t *testing.T) {
	data := append([]byte(nil), goregular.TTF...)
	src := loadSource(t, data)
	for i := range data {
		data[i] = 0
	}
	if !src.HasGlyph('A') {
		t.Error("HasGlyph('A') = false after caller reused its buffer")
	}
}

func TestHasGlyph(t *testing.T) {
	src := regularSource(t)
	tests := []struct {
		r    rune
		want bool
	}{
		{'A', true},
		{'é', true},
		{'あ', false},
		{'A', true}, // memoized
	}
	for _, tt := range tests {
		if got := src.HasGlyph(tt.r); got != tt.want {
			t.Errorf("HasGlyph(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestGuessStyle(t *testing.T) {
	tests := []struct {
		in     string
		style  xfont.Style
		weight xfont.Weight
	}{
		{"Regular", xfont.StyleNormal, xfont.WeightNormal},
		{"Bold Italic", xfont.StyleItalic, xfont.WeightBold},
		{"Semi Bold", xfont.StyleNormal, xfont.WeightSemiBold},
		{"ExtraLight Oblique", xfont.StyleOblique, xfont.WeightExtraLight},
		{"Black", xfont.StyleNormal, xfont.WeightBlack},
		{"", xfont.StyleNormal, xfont.WeightNormal},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s, w := GuessStyle(tt.in)
			if s != tt.style || w != tt.weight {
				t.Errorf("GuessStyle(%q) = %v, %v, want %v, %v", tt.in, s, w, tt.style, tt.weight)
			}
		})
	}
}

func TestCoverageMap(t *testing.T) {
	m := newCoverageMap()
	if _, checked := m.get('x'); checked {
		t.Fatal("fresh map reports checked")
	}
	m.set('x', true)
	m.set('y', false)
	m.set(0x1F600, true)
	for r, want := range map[rune]bool{'x': true, 'y': false, 0x1F600: true} {
		has, checked := m.get(r)
		if !checked || has != want {
			t.Errorf("get(%U) = %v, %v, want %v, true", r, has, checked, want)
		}
	}
	m.set('x', false)
	if has, _ := m.get('x'); has {
		t.Error("set(false) did not clear")
	}
}
