package emoji

import (
	"fmt"
	"strings"
)

// Provider names a hosted emoji image set.
type Provider uint8

const (
	Twitter Provider = iota
	Apple
	Google
	Microsoft
	Samsung
	WhatsApp
	JoyPixels
	OpenMoji
	Emojidex
	Messenger
	Mozilla
	Lg
	Htc
	Twemoji
)

var providerNames = [...]string{
	"Twitter", "Apple", "Google", "Microsoft", "Samsung", "WhatsApp",
	"JoyPixels", "OpenMoji", "Emojidex", "Messenger", "Mozilla", "Lg", "Htc",
	"Twemoji",
}

func (p Provider) String() string {
	if int(p) < len(providerNames) {
		return providerNames[p]
	}
	return fmt.Sprintf("Provider(%d)", p)
}

// Source selects where emoji bitmaps come from: a named provider or a local
// directory holding <hex>.png files. The zero Source is Twitter.
type Source struct {
	provider Provider
	dir      string
}

// Named returns the source for a hosted provider.
func Named(p Provider) Source { return Source{provider: p} }

// Dir returns a source reading path/<hex>.png.
func Dir(path string) Source { return Source{dir: path} }

// IsDir reports whether the source is a local directory.
func (s Source) IsDir() bool { return s.dir != "" }

// Path returns the directory of a Dir source.
func (s Source) Path() string { return s.dir }

// Provider returns the provider of a named source.
func (s Source) Provider() Provider { return s.provider }

func (s Source) String() string {
	if s.IsDir() {
		return "Dir(" + s.dir + ")"
	}
	return s.provider.String()
}

// key identifies the source for caching.
func (s Source) key() string {
	if s.IsDir() {
		return "dir:" + s.dir
	}
	return "p:" + s.provider.String()
}

// ParseSource resolves a provider name case-insensitively. "dir:PATH"
// selects a directory source.
func ParseSource(name string) (Source, error) {
	if path, ok := strings.CutPrefix(name, "dir:"); ok && path != "" {
		return Dir(path), nil
	}
	for i, n := range providerNames {
		if strings.EqualFold(n, name) {
			return Named(Provider(i)), nil
		}
	}
	return Source{}, fmt.Errorf("%w: unknown emoji source %q", ErrInvalidToken, name)
}

// Options controls how emoji are recognized and placed.
type Options struct {
	// Scale multiplies the emoji square (line height). Values <= 0 mean 1.
	Scale float64

	// ShiftX and ShiftY offset the emoji in pixels after scaling.
	ShiftX, ShiftY int

	// ParseShortcodes enables :shortcode: recognition.
	ParseShortcodes bool

	// ParseDiscordEmojis enables <:name:id> recognition.
	ParseDiscordEmojis bool

	Source Source
}

// DefaultOptions returns scale 1, no shift, shortcodes on, external ids off,
// Twitter images.
func DefaultOptions() Options {
	return Options{
		Scale:           1,
		ParseShortcodes: true,
		Source:          Named(Twitter),
	}
}

// EffectiveScale returns Scale, substituting 1 for non-positive values.
func (o Options) EffectiveScale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}
