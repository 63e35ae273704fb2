package text

import "github.com/gogpu/imagetext/text/emoji"

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName string
	name       string
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/sfnt.
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// WithName overrides the name reported by FontSource.Name.
func WithName(name string) SourceOption {
	return func(c *sourceConfig) {
		c.name = name
	}
}

// FontOption configures a composite Font.
type FontOption func(*fontConfig)

type fontConfig struct {
	fallbacks []*FontSource
	emoji     emoji.Options
	ligatures bool
}

func defaultFontConfig() fontConfig {
	return fontConfig{emoji: emoji.DefaultOptions()}
}

// WithFallbacks appends fallback sources, consulted in order.
func WithFallbacks(sources ...*FontSource) FontOption {
	return func(c *fontConfig) {
		c.fallbacks = append(c.fallbacks, sources...)
	}
}

// WithEmojiOptions sets the initial emoji policy.
func WithEmojiOptions(opts emoji.Options) FontOption {
	return func(c *fontConfig) {
		c.emoji = opts
	}
}

// WithLigatures enables HarfBuzz shaping (ligatures, kerning) through
// go-text/typesetting instead of the per-rune builtin shaper.
func WithLigatures(enabled bool) FontOption {
	return func(c *fontConfig) {
		c.ligatures = enabled
	}
}
