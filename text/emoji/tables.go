package emoji

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	kemoji "github.com/kyokomi/emoji/v2"
	"golang.org/x/text/unicode/rangetable"
)

// tables holds every lazily built matcher of the package.
type tables struct {
	// presentation: Emoji_Presentation=Yes, emoji on their own.
	presentation *unicode.RangeTable
	// textDefault: emoji-capable characters that need U+FE0F (or a
	// modifier/ZWJ continuation) to render as emoji.
	textDefault *unicode.RangeTable
	// modifierBase: characters accepting a skin tone modifier.
	modifierBase *unicode.RangeTable

	shortcodes  map[string]string
	shortcodeRe *regexp.Regexp
	discordRe   *regexp.Regexp
}

var (
	tablesOnce sync.Once
	tbl        *tables
)

// Prebuild constructs the emoji tables, shortcode map and token patterns
// now instead of on first use. Safe to call any number of times.
func Prebuild() {
	load()
}

func load() *tables {
	tablesOnce.Do(func() {
		tbl = buildTables()
	})
	return tbl
}

func span(lo, hi rune) *unicode.RangeTable {
	return &unicode.RangeTable{R32: []unicode.Range32{{Lo: uint32(lo), Hi: uint32(hi), Stride: 1}}}
}

func buildTables() *tables {
	presentation := rangetable.Merge(
		span(0x1F004, 0x1F004), // mahjong red dragon
		span(0x1F0CF, 0x1F0CF), // joker
		span(0x1F18E, 0x1F18E),
		span(0x1F191, 0x1F19A),
		span(0x1F1E6, 0x1F1FF), // regional indicators
		span(0x1F201, 0x1F201),
		span(0x1F21A, 0x1F21A),
		span(0x1F22F, 0x1F22F),
		span(0x1F232, 0x1F236),
		span(0x1F238, 0x1F23A),
		span(0x1F250, 0x1F251),
		span(0x1F300, 0x1F320), // misc symbols and pictographs
		span(0x1F32D, 0x1F335),
		span(0x1F337, 0x1F37C),
		span(0x1F37E, 0x1F393),
		span(0x1F3A0, 0x1F3CA),
		span(0x1F3CF, 0x1F3D3),
		span(0x1F3E0, 0x1F3F0),
		span(0x1F3F4, 0x1F3F4),
		span(0x1F3F8, 0x1F43E),
		span(0x1F440, 0x1F440),
		span(0x1F442, 0x1F4FC),
		span(0x1F4FF, 0x1F53D),
		span(0x1F54B, 0x1F54E),
		span(0x1F550, 0x1F567),
		span(0x1F57A, 0x1F57A),
		span(0x1F595, 0x1F596),
		span(0x1F5A4, 0x1F5A4),
		span(0x1F5FB, 0x1F64F), // emoticons
		span(0x1F680, 0x1F6C5), // transport and map
		span(0x1F6CC, 0x1F6CC),
		span(0x1F6D0, 0x1F6D2),
		span(0x1F6D5, 0x1F6D7),
		span(0x1F6DC, 0x1F6DF),
		span(0x1F6EB, 0x1F6EC),
		span(0x1F6F4, 0x1F6FC),
		span(0x1F7E0, 0x1F7EB),
		span(0x1F7F0, 0x1F7F0),
		span(0x1F90C, 0x1F93A), // supplemental symbols and pictographs
		span(0x1F93C, 0x1F945),
		span(0x1F947, 0x1F9FF),
		span(0x1FA70, 0x1FAFF), // extended-A
		rangetable.New(
			0x231A, 0x231B, 0x23E9, 0x23EA, 0x23EB, 0x23EC, 0x23F0, 0x23F3,
			0x25FD, 0x25FE, 0x2614, 0x2615, 0x267F, 0x2693, 0x26A1, 0x26AA,
			0x26AB, 0x26BD, 0x26BE, 0x26C4, 0x26C5, 0x26CE, 0x26D4, 0x26EA,
			0x26F2, 0x26F3, 0x26F5, 0x26FA, 0x26FD, 0x2705, 0x270A, 0x270B,
			0x2728, 0x274C, 0x274E, 0x2753, 0x2754, 0x2755, 0x2757, 0x2795,
			0x2796, 0x2797, 0x27B0, 0x27BF, 0x2B1B, 0x2B1C, 0x2B50, 0x2B55,
		),
		span(0x2648, 0x2653), // zodiac
	)

	textDefault := rangetable.Merge(
		rangetable.New(0x00A9, 0x00AE, 0x203C, 0x2049, 0x2122, 0x2139, 0x2328,
			0x23CF, 0x24C2, 0x25AA, 0x25AB, 0x25B6, 0x25C0, 0x2934, 0x2935,
			0x2B05, 0x2B06, 0x2B07, 0x3030, 0x303D, 0x3297, 0x3299,
			0x21A9, 0x21AA),
		span(0x2194, 0x2199), // arrows
		span(0x23ED, 0x23EF),
		span(0x23F1, 0x23F2),
		span(0x23F8, 0x23FA),
		span(0x25FB, 0x25FC),
		span(0x2600, 0x26FF), // misc symbols
		span(0x2702, 0x27B0), // dingbats
		span(0x1F170, 0x1F17F),
		span(0x1F321, 0x1F32C),
		span(0x1F336, 0x1F336),
		span(0x1F37D, 0x1F37D),
		span(0x1F396, 0x1F39F),
		span(0x1F3CB, 0x1F3CE),
		span(0x1F3D4, 0x1F3DF),
		span(0x1F3F3, 0x1F3F7),
		span(0x1F43F, 0x1F43F),
		span(0x1F441, 0x1F441),
		span(0x1F4FD, 0x1F4FD),
		span(0x1F549, 0x1F54A),
		span(0x1F56F, 0x1F579),
		span(0x1F587, 0x1F5FA),
		span(0x1F6CB, 0x1F6CF),
		span(0x1F6E0, 0x1F6E9),
		span(0x1F6F0, 0x1F6F3),
	)

	modifierBase := rangetable.Merge(
		rangetable.New(0x261D, 0x26F9, 0x1F385, 0x1F3C2, 0x1F3C7, 0x1F442, 0x1F443,
			0x1F47C, 0x1F4AA, 0x1F57A, 0x1F590, 0x1F6A3, 0x1F6C0, 0x1F6CC,
			0x1F90C, 0x1F90F, 0x1F926, 0x1F977, 0x1F9BB),
		span(0x270A, 0x270D),
		span(0x1F3C3, 0x1F3C4),
		span(0x1F3CA, 0x1F3CC),
		span(0x1F446, 0x1F450),
		span(0x1F466, 0x1F478),
		span(0x1F481, 0x1F487),
		span(0x1F574, 0x1F575),
		span(0x1F595, 0x1F596),
		span(0x1F645, 0x1F647),
		span(0x1F64B, 0x1F64F),
		span(0x1F6B4, 0x1F6B6),
		span(0x1F918, 0x1F91F),
		span(0x1F930, 0x1F939),
		span(0x1F93C, 0x1F93E),
		span(0x1F9B5, 0x1F9B6),
		span(0x1F9B8, 0x1F9B9),
		span(0x1F9CD, 0x1F9CF),
		span(0x1F9D1, 0x1F9DD),
		span(0x1FAC3, 0x1FAC5),
		span(0x1FAF0, 0x1FAF8),
	)

	// Shortcode table, normalized to ":name:" → sequence. Every base character
	// a shortcode can produce is also made recognizable in Unicode form.
	src := kemoji.CodeMap()
	shortcodes := make(map[string]string, len(src))
	var extra []rune
	for code, seq := range src {
		seq = strings.TrimSpace(seq)
		if seq == "" || !strings.HasPrefix(code, ":") || !strings.HasSuffix(code, ":") {
			continue
		}
		shortcodes[strings.ToLower(code)] = seq
		if r, _ := utf8.DecodeRuneInString(seq); r >= 0x80 &&
			!unicode.Is(presentation, r) && !unicode.Is(textDefault, r) {
			extra = append(extra, r)
		}
	}
	if len(extra) > 0 {
		textDefault = rangetable.Merge(textDefault, rangetable.New(extra...))
	}

	return &tables{
		presentation: presentation,
		textDefault:  textDefault,
		modifierBase: modifierBase,
		shortcodes:   shortcodes,
		shortcodeRe:  regexp.MustCompile(`^:[a-zA-Z0-9_+\-]+:`),
		discordRe:    regexp.MustCompile(`^<:([A-Za-z0-9_]+):([0-9]+)>`),
	}
}

// LookupShortcode returns the Unicode sequence for a ":name:" shortcode.
func LookupShortcode(code string) (string, bool) {
	seq, ok := load().shortcodes[strings.ToLower(code)]
	return seq, ok
}
