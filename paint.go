package imagetext

import "fmt"

// Paint describes how glyph coverage is colored: a Brush plus the
// anti-aliasing switch. When AntiAlias is false coverage is thresholded at
// one half, producing hard edges.
//
// A Paint is a value; share it freely across goroutines as long as nobody
// mutates it concurrently.
type Paint struct {
	Brush     Brush
	AntiAlias bool
}

// NewPaint returns a solid paint.
func NewPaint(c Color, antiAlias bool) *Paint {
	return &Paint{Brush: SolidBrush{Color: c}, AntiAlias: antiAlias}
}

// PaintColor returns an anti-aliased solid paint.
func PaintColor(c Color) *Paint {
	return NewPaint(c, true)
}

// PaintGradient returns an anti-aliased linear gradient with colors spaced
// evenly from start to stop.
func PaintGradient(start, stop Point, colors []Color) (*Paint, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: gradient needs at least one color", ErrInvalidInput)
	}
	return &Paint{Brush: NewLinearGradient(start, stop, colors...), AntiAlias: true}, nil
}

// PaintRainbow returns an anti-aliased hue sweep from start to stop.
func PaintRainbow(start, stop Point) *Paint {
	return &Paint{Brush: RainbowBrush{Start: start, Stop: stop}, AntiAlias: true}
}

// SetColor replaces the brush with a solid color.
func (p *Paint) SetColor(c Color) {
	p.Brush = SolidBrush{Color: c}
}

// SetAntiAlias toggles anti-aliasing.
func (p *Paint) SetAntiAlias(on bool) {
	p.AntiAlias = on
}

// ColorAt samples the brush; a nil brush paints transparent.
func (p *Paint) ColorAt(x, y float64) Color {
	if p == nil || p.Brush == nil {
		return Transparent
	}
	return p.Brush.ColorAt(x, y)
}

// solid reports the brush color when it does not depend on position.
func (p *Paint) solid() (Color, bool) {
	if b, ok := p.Brush.(SolidBrush); ok {
		return b.Color, true
	}
	return Color{}, false
}
