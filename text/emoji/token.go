package emoji

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind distinguishes Unicode emoji from externally hosted custom emoji.
type Kind uint8

const (
	// Regular is a Unicode emoji sequence (typed directly or via shortcode).
	Regular Kind = iota
	// External is a custom emoji referenced by numeric id (<:name:id>).
	External
)

func (k Kind) String() string {
	if k == External {
		return "External"
	}
	return "Regular"
}

// Token is one recognized emoji.
type Token struct {
	Kind Kind

	// Sequence is the Unicode sequence of a Regular token.
	Sequence string

	// Name and ID identify an External token.
	Name string
	ID   string

	// Raw is the token exactly as spelled in the input: "😀", ":smile:" or
	// "<:name:id>".
	Raw string
}

// Codepoints formats the sequence as lowercase hex joined by '-'
// ("1f468-200d-1f469"). With stripVS, U+FE0F selectors are omitted.
// External tokens yield their ID.
func (t Token) Codepoints(stripVS bool) string {
	if t.Kind == External {
		return t.ID
	}
	var b strings.Builder
	for _, r := range t.Sequence {
		if stripVS && r == vs16 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteString(strconv.FormatInt(int64(r), 16))
	}
	return b.String()
}

// key identifies the token for caching.
func (t Token) key() string {
	if t.Kind == External {
		return "x:" + t.ID
	}
	return "u:" + t.Sequence
}

// Segment is a run of plain text or a single emoji. Start and End are byte
// offsets into the tokenized string.
type Segment struct {
	Text  string
	Emoji *Token
	Start int
	End   int
}

// IsEmoji reports whether the segment is an emoji token.
func (s Segment) IsEmoji() bool { return s.Emoji != nil }

// Tokenize splits s into text and emoji segments according to opts.
// Concatenating the Text of all segments reproduces s; for emoji segments
// Text equals Token.Raw.
//
// At each position the external form is tried first, then the shortcode
// form, then Unicode sequences.
func Tokenize(s string, opts Options) []Segment {
	if s == "" {
		return nil
	}
	t := load()

	runes := []rune(s)
	offs := make([]int, len(runes)+1)
	o := 0
	for i, r := range runes {
		offs[i] = o
		o += utf8.RuneLen(r)
	}
	offs[len(runes)] = len(s)

	var (
		segs      []Segment
		textStart = -1
	)
	flushText := func(end int) {
		if textStart >= 0 && end > textStart {
			segs = append(segs, Segment{Text: s[textStart:end], Start: textStart, End: end})
		}
		textStart = -1
	}
	emit := func(tok Token, start, end int) {
		flushText(start)
		tok.Raw = s[start:end]
		segs = append(segs, Segment{Text: tok.Raw, Emoji: &tok, Start: start, End: end})
	}
	// skipTo advances the rune index to the first rune at or after byte end.
	skipTo := func(i, end int) int {
		for i < len(runes) && offs[i] < end {
			i++
		}
		return i
	}

	for i := 0; i < len(runes); {
		at := offs[i]
		switch runes[i] {
		case '<':
			if opts.ParseDiscordEmojis {
				if m := t.discordRe.FindStringSubmatchIndex(s[at:]); m != nil {
					end := at + m[1]
					emit(Token{Kind: External, Name: s[at+m[2] : at+m[3]], ID: s[at+m[4] : at+m[5]]}, at, end)
					i = skipTo(i, end)
					continue
				}
			}
		case ':':
			if opts.ParseShortcodes {
				if m := t.shortcodeRe.FindStringIndex(s[at:]); m != nil {
					end := at + m[1]
					if seq, ok := t.shortcodes[strings.ToLower(s[at:end])]; ok {
						emit(Token{Kind: Regular, Sequence: seq}, at, end)
						i = skipTo(i, end)
						continue
					}
				}
			}
		}

		if n := scanSequence(runes[i:]); n > 0 {
			emit(Token{Kind: Regular, Sequence: string(runes[i : i+n])}, at, offs[i+n])
			i += n
			continue
		}

		if textStart < 0 {
			textStart = at
		}
		i++
	}
	flushText(len(s))
	return segs
}

// HasEmoji reports whether Tokenize would find at least one emoji in s.
func HasEmoji(s string, opts Options) bool {
	for _, seg := range Tokenize(s, opts) {
		if seg.Emoji != nil {
			return true
		}
	}
	return false
}
