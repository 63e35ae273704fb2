package text

import (
	"strings"

	xfont "golang.org/x/image/font"
)

var weightWords = map[string]xfont.Weight{
	"thin":       xfont.WeightThin,
	"hairline":   xfont.WeightThin,
	"extralight": xfont.WeightExtraLight,
	"ultralight": xfont.WeightExtraLight,
	"light":      xfont.WeightLight,
	"regular":    xfont.WeightNormal,
	"normal":     xfont.WeightNormal,
	"book":       xfont.WeightNormal,
	"medium":     xfont.WeightMedium,
	"semibold":   xfont.WeightSemiBold,
	"demibold":   xfont.WeightSemiBold,
	"bold":       xfont.WeightBold,
	"extrabold":  xfont.WeightExtraBold,
	"ultrabold":  xfont.WeightExtraBold,
	"heavy":      xfont.WeightBlack,
	"black":      xfont.WeightBlack,
}

// ParseWeight maps a weight word ("Bold", "semi-bold", "ExtraLight") to a
// weight.
func ParseWeight(word string) (xfont.Weight, bool) {
	w, ok := weightWords[normalizeStyleWord(word)]
	return w, ok
}

// ParseStyle maps "italic" or "oblique" to a style.
func ParseStyle(word string) (xfont.Style, bool) {
	switch normalizeStyleWord(word) {
	case "italic":
		return xfont.StyleItalic, true
	case "oblique":
		return xfont.StyleOblique, true
	}
	return xfont.StyleNormal, false
}

// GuessStyle derives style and weight from a subfamily name such as
// "Bold Italic" or "SemiBold". Unknown words are ignored.
func GuessStyle(subfamily string) (xfont.Style, xfont.Weight) {
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	words := strings.FieldsFunc(subfamily, func(r rune) bool {
		return r == ' ' || r == ',' || r == '_'
	})
	// Joined pairs catch "Semi Bold" and "Extra Light".
	for i := 0; i < len(words); i++ {
		w := words[i]
		if s, ok := ParseStyle(w); ok {
			style = s
			continue
		}
		if i+1 < len(words) {
			if wt, ok := ParseWeight(w + words[i+1]); ok {
				weight = wt
				i++
				continue
			}
		}
		if wt, ok := ParseWeight(w); ok {
			weight = wt
		}
	}
	return style, weight
}

func normalizeStyleWord(word string) string {
	return strings.ReplaceAll(strings.ToLower(word), "-", "")
}
