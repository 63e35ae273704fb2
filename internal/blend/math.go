// Package blend composites coverage-weighted colors onto straight-alpha
// RGBA8 pixels.
//
// Pixels are stored non-premultiplied. Each blend converts both operands to
// premultiplied form, applies Porter-Duff source-over, and converts back.
package blend

// div255 divides x by 255 with correct rounding for every x in [0, 255*255].
// Alvy Ray Smith's formula, no division.
func div255(x uint32) uint32 {
	x += 128
	return (x + (x >> 8)) >> 8
}

// MulDiv255 returns round(a*b/255).
func MulDiv255(a, b uint8) uint8 {
	return uint8(div255(uint32(a) * uint32(b)))
}
