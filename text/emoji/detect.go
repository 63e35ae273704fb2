package emoji

import "unicode"

// Special code points of UTS #51 sequences.
const (
	zwj        = 0x200D
	vs15       = 0xFE0E // text presentation selector
	vs16       = 0xFE0F // emoji presentation selector
	keycapMark = 0x20E3
	blackFlag  = 0x1F3F4
	cancelTag  = 0xE007F
	modifierLo = 0x1F3FB
	modifierHi = 0x1F3FF
	regionalLo = 0x1F1E6
	regionalHi = 0x1F1FF
	tagLo      = 0xE0020
	tagHi      = 0xE007E
)

// IsEmojiPresentation reports whether r renders as emoji on its own.
func IsEmojiPresentation(r rune) bool {
	return unicode.Is(load().presentation, r)
}

// IsEmoji reports whether r can start an emoji, possibly only with U+FE0F.
func IsEmoji(r rune) bool {
	t := load()
	return unicode.Is(t.presentation, r) || unicode.Is(t.textDefault, r)
}

// IsModifier reports whether r is a Fitzpatrick skin tone modifier.
func IsModifier(r rune) bool { return r >= modifierLo && r <= modifierHi }

// IsModifierBase reports whether r accepts a skin tone modifier.
func IsModifierBase(r rune) bool { return unicode.Is(load().modifierBase, r) }

// IsRegionalIndicator reports whether r is one of the flag letters A-Z.
func IsRegionalIndicator(r rune) bool { return r >= regionalLo && r <= regionalHi }

func isKeycapBase(r rune) bool { return (r >= '0' && r <= '9') || r == '#' || r == '*' }

func isTag(r rune) bool { return r >= tagLo && r <= tagHi }

// scanSequence returns how many runes at the start of rs form one emoji
// sequence, or 0 if rs does not start with an emoji.
func scanSequence(rs []rune) int {
	if len(rs) == 0 {
		return 0
	}
	r := rs[0]
	switch {
	case IsRegionalIndicator(r):
		if len(rs) >= 2 && IsRegionalIndicator(rs[1]) {
			return 2
		}
		return 0
	case r == blackFlag:
		if n := scanTagSequence(rs); n > 0 {
			return n
		}
	case isKeycapBase(r):
		return scanKeycap(rs)
	}
	return scanExtended(rs)
}

// scanTagSequence matches BLACK FLAG, tag characters, CANCEL TAG.
func scanTagSequence(rs []rune) int {
	i := 1
	for i < len(rs) && isTag(rs[i]) {
		i++
	}
	if i > 1 && i < len(rs) && rs[i] == cancelTag {
		return i + 1
	}
	return 0
}

// scanKeycap matches [0-9#*] [FE0F] 20E3.
func scanKeycap(rs []rune) int {
	i := 1
	if i < len(rs) && rs[i] == vs16 {
		i++
	}
	if i < len(rs) && rs[i] == keycapMark {
		return i + 1
	}
	return 0
}

// scanElement matches one emoji element: a base, an optional presentation
// selector and an optional modifier. Text-default bases qualify only when
// followed by U+FE0F or a modifier, or when inZWJ is set.
func scanElement(rs []rune, inZWJ bool) int {
	t := load()
	r := rs[0]
	presentation := unicode.Is(t.presentation, r)
	if !presentation && !unicode.Is(t.textDefault, r) {
		return 0
	}

	i := 1
	emojiForm := presentation || inZWJ
	if i < len(rs) {
		switch rs[i] {
		case vs15:
			return 0
		case vs16:
			emojiForm = true
			i++
		}
	}
	if i < len(rs) && IsModifier(rs[i]) && unicode.Is(t.modifierBase, r) {
		emojiForm = true
		i++
	}
	if !emojiForm {
		return 0
	}
	return i
}

// scanExtended matches element (ZWJ element)*.
func scanExtended(rs []rune) int {
	n := scanElement(rs, false)
	if n == 0 {
		return 0
	}
	for n+1 < len(rs) && rs[n] == zwj {
		m := scanElement(rs[n+1:], true)
		if m == 0 {
			break
		}
		n += 1 + m
	}
	return n
}
