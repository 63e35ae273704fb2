package imagetext

import (
	"context"

	"github.com/gogpu/imagetext/text"
	"github.com/gogpu/imagetext/text/emoji"
)

// TextAlign places lines of a multiline block horizontally.
type TextAlign uint8

const (
	// AlignLeft pins every line to the block's left edge.
	AlignLeft TextAlign = iota
	// AlignCenter centers every line on the block's midpoint.
	AlignCenter
	// AlignRight pins every line to the block's right edge.
	AlignRight
)

// String returns the string representation of the alignment.
func (a TextAlign) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// WrapStyle selects how DrawTextWrapped and TextWrap treat words wider than
// the wrap width.
type WrapStyle = text.WrapStyle

// Wrap styles.
const (
	WrapWord      = text.WrapWord
	WrapCharacter = text.WrapCharacter
)

// DrawOption configures a draw call.
type DrawOption func(*drawConfig)

type drawConfig struct {
	strokeWidth float64
	strokePaint *Paint
	emoji       bool
	lineSpacing float64
	align       TextAlign
	wrap        WrapStyle
	resolver    *emoji.Resolver
	ctx         context.Context
	tryLock     bool
}

func newDrawConfig(opts []DrawOption) drawConfig {
	cfg := drawConfig{lineSpacing: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.strokePaint == nil {
		cfg.strokePaint = PaintColor(Black)
	}
	if cfg.resolver == nil {
		cfg.resolver = emoji.DefaultResolver()
	}
	if cfg.ctx == nil {
		cfg.ctx = context.Background()
	}
	return cfg
}

// WithStroke outlines glyphs with a stroke of the given total width drawn
// beneath the fill. A nil paint strokes in opaque black.
func WithStroke(width float64, p *Paint) DrawOption {
	return func(c *drawConfig) {
		c.strokeWidth = width
		c.strokePaint = p
	}
}

// WithEmoji renders emoji as bitmaps, following the font's emoji options.
func WithEmoji() DrawOption {
	return func(c *drawConfig) { c.emoji = true }
}

// WithLineSpacing multiplies the line height between lines. Default 1.
func WithLineSpacing(f float64) DrawOption {
	return func(c *drawConfig) { c.lineSpacing = f }
}

// WithAlign sets the alignment of multiline and wrapped text.
func WithAlign(a TextAlign) DrawOption {
	return func(c *drawConfig) { c.align = a }
}

// WithWrapStyle sets how DrawTextWrapped breaks oversize words.
func WithWrapStyle(w WrapStyle) DrawOption {
	return func(c *drawConfig) { c.wrap = w }
}

// WithEmojiResolver replaces emoji.DefaultResolver for this call.
func WithEmojiResolver(r *emoji.Resolver) DrawOption {
	return func(c *drawConfig) { c.resolver = r }
}

// WithContext bounds emoji fetches made by this call.
func WithContext(ctx context.Context) DrawOption {
	return func(c *drawConfig) { c.ctx = ctx }
}

// WithTryLock makes the call fail with ErrCanvasBusy instead of waiting when
// another draw holds the canvas.
func WithTryLock() DrawOption {
	return func(c *drawConfig) { c.tryLock = true }
}
