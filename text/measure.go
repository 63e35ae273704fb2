package text

import "math"

// TextSize returns the advance width of s and the line height (ascent +
// descent of the primary) at px. It is a pure function of its arguments and
// the font's current emoji policy.
func (f *Font) TextSize(s string, px float64, withEmoji bool) (w, h float64) {
	l := f.Layout(s, px, withEmoji)
	return l.Width, l.Height()
}

// TextSizeMultiline returns the widest line's width and
// ceil(len(lines)·lineHeight·spacing).
func (f *Font) TextSizeMultiline(lines []string, px, spacing float64, withEmoji bool) (w, h float64) {
	for _, s := range lines {
		lw, _ := f.TextSize(s, px, withEmoji)
		w = math.Max(w, lw)
	}
	h = math.Ceil(float64(len(lines)) * f.LineHeight(px) * spacing)
	return w, h
}
