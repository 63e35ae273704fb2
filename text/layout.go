package text

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/imagetext/text/emoji"
)

// ItemKind tells glyph items from emoji items.
type ItemKind uint8

const (
	// ItemGlyph is a font glyph.
	ItemGlyph ItemKind = iota
	// ItemEmoji is an emoji drawn from a bitmap.
	ItemEmoji
)

// Item is one positioned element of a laid out line.
type Item struct {
	Kind ItemKind

	// Source and GID identify the glyph of an ItemGlyph.
	Source *FontSource
	GID    GlyphID

	// Emoji is the token of an ItemEmoji.
	Emoji *emoji.Token

	// X is the pen position relative to the line start.
	X float64

	// Advance is the pen movement after the item. Emoji advance by the
	// emoji square side.
	Advance float64
}

// Line is a single laid out line of text.
type Line struct {
	Items []Item

	// Width is the total advance.
	Width float64

	// Size is the pixel size the line was laid out at.
	Size float64

	// Ascent and Descent come from the primary source.
	Ascent, Descent float64
}

// Height returns ascent + descent.
func (l Line) Height() float64 {
	return l.Ascent + l.Descent
}

// Without returns a copy of the line with the items matching drop removed
// and every following item moved left by the dropped advances.
func (l Line) Without(drop func(Item) bool) Line {
	out := l
	out.Items = make([]Item, 0, len(l.Items))
	var shift float64
	for _, it := range l.Items {
		if drop(it) {
			shift += it.Advance
			continue
		}
		it.X -= shift
		out.Items = append(out.Items, it)
	}
	out.Width -= shift
	return out
}

// Layout lays out s as a single line at px pixels. With withEmoji, emoji
// tokens (per the font's emoji policy) become ItemEmoji squares of side
// LineHeight(px)·scale. Control characters take no space.
func (f *Font) Layout(s string, px float64, withEmoji bool) Line {
	m := f.Metrics(px)
	line := Line{Size: px, Ascent: m.Ascent, Descent: m.Descent}
	if s == "" {
		return line
	}

	var pen float64
	if !withEmoji {
		pen = f.layoutText(&line, s, px, pen)
	} else {
		opts := f.EmojiOptions()
		side := m.LineHeight() * opts.EffectiveScale()
		for _, seg := range emoji.Tokenize(s, opts) {
			if seg.Emoji == nil {
				pen = f.layoutText(&line, seg.Text, px, pen)
				continue
			}
			line.Items = append(line.Items, Item{Kind: ItemEmoji, Emoji: seg.Emoji, X: pen, Advance: side})
			pen += side
		}
	}
	line.Width = pen
	return line
}

func (f *Font) shaper() Shaper {
	if f.ligatures {
		return defaultGoTextShaper
	}
	return BuiltinShaper{}
}

// layoutText appends glyph items for s starting at pen and returns the new
// pen position. Consecutive runes resolved to the same source are shaped as
// one run.
func (f *Font) layoutText(line *Line, s string, px, pen float64) float64 {
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	shaper := f.shaper()

	var (
		run    []rune
		runSrc *FontSource
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		var adv float64
		for _, g := range shaper.Shape(runSrc, run, px) {
			line.Items = append(line.Items, Item{
				Kind:    ItemGlyph,
				Source:  runSrc,
				GID:     g.GID,
				X:       pen + g.X,
				Advance: g.XAdvance,
			})
			adv += g.XAdvance
		}
		pen += adv
		run = run[:0]
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			flush()
			continue
		}
		src, _ := f.Resolve(r)
		if src != runSrc {
			flush()
			runSrc = src
		}
		run = append(run, r)
	}
	flush()
	return pen
}
