package text

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/gogpu/imagetext/text/emoji"
)

// WrapStyle selects how words wider than the wrap width are handled.
type WrapStyle uint8

const (
	// WrapWord never splits a word; an oversize word gets a line of its own.
	WrapWord WrapStyle = iota
	// WrapCharacter splits oversize words at grapheme cluster boundaries.
	WrapCharacter
)

// String returns the string representation of the wrap style.
func (w WrapStyle) String() string {
	switch w {
	case WrapWord:
		return "Word"
	case WrapCharacter:
		return "Character"
	default:
		return "Unknown"
	}
}

// SplitOnSpace splits s into words that keep their trailing whitespace, so
// concatenating the result gives s back. Leading whitespace forms its own
// token.
func SplitOnSpace(s string) []string {
	var (
		out   []string
		start int
		inWS  bool
	)
	for i, r := range s {
		ws := unicode.IsSpace(r)
		if inWS && !ws {
			out = append(out, s[start:i])
			start = i
		}
		inWS = ws
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// Wrap breaks s into lines no wider than width pixels at px. Newlines in s
// always break. Lines are substrings of s with trailing whitespace removed,
// so emoji keep their original spelling (unicode, :shortcode: or
// <:name:id>). In WrapWord mode a single word wider than width is placed on
// its own line unsplit.
func (f *Font) Wrap(s string, width, px float64, style WrapStyle, withEmoji bool) []string {
	w := &wrapper{font: f, width: width, px: px, style: style, emoji: withEmoji}
	return w.wrap(s)
}

// WrapWithout wraps s like Wrap in emoji mode, but emoji tokens for which
// skip returns true are measured as taking no space. Callers pass the emoji
// that will not be drawn, such as those whose bitmap could not be fetched.
func (f *Font) WrapWithout(s string, width, px float64, style WrapStyle, skip func(emoji.Token) bool) []string {
	w := &wrapper{font: f, width: width, px: px, style: style, emoji: true, skip: skip}
	return w.wrap(s)
}

type wrapper struct {
	font  *Font
	width float64
	px    float64
	style WrapStyle
	emoji bool
	skip  func(emoji.Token) bool
	lines []string
}

func (w *wrapper) wrap(s string) []string {
	for _, para := range strings.Split(s, "\n") {
		w.paragraph(strings.TrimSuffix(para, "\r"))
	}
	return w.lines
}

func (w *wrapper) measure(s string) float64 {
	l := w.font.Layout(strings.TrimRightFunc(s, unicode.IsSpace), w.px, w.emoji)
	if w.skip != nil {
		l = l.Without(func(it Item) bool {
			return it.Kind == ItemEmoji && w.skip(*it.Emoji)
		})
	}
	return l.Width
}

func (w *wrapper) emit(s string) {
	w.lines = append(w.lines, strings.TrimRightFunc(s, unicode.IsSpace))
}

func (w *wrapper) paragraph(p string) {
	var cur string
	for _, tok := range SplitOnSpace(p) {
		if cur == "" || w.measure(cur+tok) <= w.width {
			if cur == "" && w.style == WrapCharacter && w.measure(tok) > w.width {
				cur = w.split(tok)
				continue
			}
			cur += tok
			continue
		}
		w.emit(cur)
		cur = ""
		if w.style == WrapCharacter && w.measure(tok) > w.width {
			cur = w.split(tok)
			continue
		}
		cur = tok
	}
	w.emit(cur)
}

// split emits full slices of an oversize token and returns the remainder,
// which starts the next line. Each slice holds at least one cluster.
func (w *wrapper) split(tok string) string {
	var cur string
	for _, c := range w.clusters(tok) {
		if cur != "" && w.measure(cur+c) > w.width {
			w.emit(cur)
			cur = ""
		}
		cur += c
	}
	return cur
}

// clusters splits s into grapheme clusters, keeping each emoji token
// (including :shortcode: and <:name:id> forms) whole.
func (w *wrapper) clusters(s string) []string {
	var out []string
	graphemes := func(t string) {
		g := uniseg.NewGraphemes(t)
		for g.Next() {
			out = append(out, g.Str())
		}
	}
	if !w.emoji {
		graphemes(s)
		return out
	}
	for _, seg := range emoji.Tokenize(s, w.font.EmojiOptions()) {
		if seg.Emoji != nil {
			out = append(out, seg.Text)
			continue
		}
		graphemes(seg.Text)
	}
	return out
}
