package imagetext

import (
	"fmt"
	"image/color"
	"math"
)

// Color is a straight (non-premultiplied) 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ColorFromSlice builds a color from 3 (opaque RGB) or 4 (RGBA) components.
func ColorFromSlice(c []uint8) (Color, error) {
	switch len(c) {
	case 3:
		return RGB(c[0], c[1], c[2]), nil
	case 4:
		return RGBA(c[0], c[1], c[2], c[3]), nil
	}
	return Color{}, fmt.Errorf("%w: color needs 3 or 4 components, got %d", ErrInvalidInput, len(c))
}

// Hex parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" (the leading '#' is
// optional).
func Hex(s string) (Color, error) {
	h := s
	if h != "" && h[0] == '#' {
		h = h[1:]
	}

	var v [8]uint8
	for i := 0; i < len(h); i++ {
		d, ok := hexDigit(h[i])
		if !ok || i >= len(v) {
			return Color{}, fmt.Errorf("%w: bad hex color %q", ErrInvalidInput, s)
		}
		v[i] = d
	}

	switch len(h) {
	case 3:
		return RGB(v[0]*17, v[1]*17, v[2]*17), nil
	case 4:
		return RGBA(v[0]*17, v[1]*17, v[2]*17, v[3]*17), nil
	case 6:
		return RGB(v[0]<<4|v[1], v[2]<<4|v[3], v[4]<<4|v[5]), nil
	case 8:
		return RGBA(v[0]<<4|v[1], v[2]<<4|v[3], v[4]<<4|v[5], v[6]<<4|v[7]), nil
	}
	return Color{}, fmt.Errorf("%w: bad hex color %q", ErrInvalidInput, s)
}

// MustHex is like Hex but panics on malformed input. For constants.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Hex formats the color as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// RGBA implements color.Color (alpha-premultiplied, 16-bit).
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA converts to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Lerp interpolates each straight channel linearly, t in [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B), A: mix(c.A, o.A)}
}

// HSV returns the opaque color for hue h in degrees (wrapped to [0, 360)),
// saturation s and value v in [0, 1].
func HSV(h, s, v float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	to8 := func(f float64) uint8 { return uint8(math.Round(math.Max(0, math.Min(1, f+m)) * 255)) }
	return RGB(to8(r), to8(g), to8(b))
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Transparent = RGBA(0, 0, 0, 0)
)
