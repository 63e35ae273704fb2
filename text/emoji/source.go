package emoji

import (
	"net/url"
	"path/filepath"
	"strings"
)

// vsPolicy says how a provider names files for sequences containing U+FE0F.
type vsPolicy uint8

const (
	keepVS vsPolicy = iota
	// stripVS drops every FE0F.
	stripVS
	// stripVSUnlessZWJ drops FE0F except inside ZWJ sequences.
	stripVSUnlessZWJ
)

// layout is the URL convention of a provider. {code} expands to the hex
// codepoint name, {emoji} to the URL-escaped sequence itself.
type layout struct {
	template string
	vs       vsPolicy
	upper    bool
}

const (
	twemojiURL = "https://cdn.jsdelivr.net/gh/jdecked/twemoji@latest/assets/72x72/{code}.png"
	emojicdn   = "https://emojicdn.elk.sh/{emoji}?style="

	// ExternalURL is the template for <:name:id> custom emoji.
	ExternalURL = "https://cdn.discordapp.com/emojis/{id}.png"
)

var layouts = [...]layout{
	Twitter:   {twemojiURL, stripVSUnlessZWJ, false},
	Apple:     {"https://cdn.jsdelivr.net/npm/emoji-datasource-apple/img/apple/64/{code}.png", keepVS, false},
	Google:    {"https://cdn.jsdelivr.net/npm/emoji-datasource-google/img/google/64/{code}.png", keepVS, false},
	Microsoft: {emojicdn + "microsoft", keepVS, false},
	Samsung:   {emojicdn + "samsung", keepVS, false},
	WhatsApp:  {emojicdn + "whatsapp", keepVS, false},
	JoyPixels: {emojicdn + "joypixels", keepVS, false},
	OpenMoji:  {"https://cdn.jsdelivr.net/npm/openmoji/color/72x72/{code}.png", stripVS, true},
	Emojidex:  {emojicdn + "emojidex", keepVS, false},
	Messenger: {"https://cdn.jsdelivr.net/npm/emoji-datasource-facebook/img/facebook/64/{code}.png", keepVS, false},
	Mozilla:   {emojicdn + "mozilla", keepVS, false},
	Lg:        {emojicdn + "lg", keepVS, false},
	Htc:       {emojicdn + "htc", keepVS, false},
	Twemoji:   {twemojiURL, stripVSUnlessZWJ, false},
}

// Filename returns the image file name (without extension) the source uses
// for a Regular token: lowercase hex codepoints joined by '-', with variation
// selectors handled per provider. Dir sources keep selectors only inside ZWJ
// sequences.
func (s Source) Filename(tok Token) string {
	policy, upper := stripVSUnlessZWJ, false
	if !s.IsDir() && int(s.provider) < len(layouts) {
		l := layouts[s.provider]
		policy, upper = l.vs, l.upper
	}
	strip := false
	switch policy {
	case stripVS:
		strip = true
	case stripVSUnlessZWJ:
		strip = !strings.ContainsRune(tok.Sequence, zwj)
	}
	name := tok.Codepoints(strip)
	if upper {
		name = strings.ToUpper(name)
	}
	return name
}

// URL returns where a named source hosts tok. External tokens ignore the
// provider and use ExternalURL. Dir sources return "".
func (s Source) URL(tok Token) string {
	if tok.Kind == External {
		return strings.ReplaceAll(ExternalURL, "{id}", tok.ID)
	}
	if s.IsDir() || int(s.provider) >= len(layouts) {
		return ""
	}
	r := strings.NewReplacer(
		"{code}", s.Filename(tok),
		"{emoji}", url.PathEscape(tok.Sequence),
	)
	return r.Replace(layouts[s.provider].template)
}

// FilePath returns path/<hex>.png for Dir sources, "" otherwise.
func (s Source) FilePath(tok Token) string {
	if !s.IsDir() {
		return ""
	}
	return filepath.Join(s.dir, s.Filename(tok)+".png")
}
