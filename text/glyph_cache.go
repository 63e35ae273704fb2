package text

import (
	"image"
	"math"

	"github.com/gogpu/imagetext/cache"
)

// glyphKey identifies a rasterized glyph mask. Positions are quantized to
// quarter pixels.
type glyphKey struct {
	source uint64
	gid    GlyphID
	ppem   uint64 // math.Float64bits
	subX   uint8
	subY   uint8
	stroke uint64 // math.Float64bits; 0 for fills
}

func hashGlyphKey(k glyphKey) uint64 {
	h := cache.Mix(cache.Seed, k.source)
	h = cache.Mix(h, uint64(k.gid)|uint64(k.subX)<<16|uint64(k.subY)<<24)
	h = cache.Mix(h, k.ppem)
	return cache.Mix(h, k.stroke)
}

// glyphMask is a cached coverage mask. Its bounds are relative to the integer
// pixel holding the glyph origin.
type glyphMask struct {
	mask *image.Alpha
}

// DefaultGlyphCacheCapacity is the per-shard capacity of the glyph cache.
const DefaultGlyphCacheCapacity = 1024

var glyphCache = cache.NewSharded[glyphKey, glyphMask](DefaultGlyphCacheCapacity, hashGlyphKey)

// GlyphCacheStats reports glyph cache counters.
func GlyphCacheStats() cache.Stats {
	return glyphCache.Stats()
}

// ClearGlyphCache drops every cached glyph mask.
func ClearGlyphCache() {
	glyphCache.Clear()
}

// SubpixelSteps is the number of cached positions per pixel on each axis.
const SubpixelSteps = 4

// quantize splits v into an integer pixel and a subpixel step.
func quantize(v float64) (int, uint8) {
	fl := math.Floor(v)
	step := int(math.Floor((v - fl) * SubpixelSteps))
	if step >= SubpixelSteps {
		step = SubpixelSteps - 1
	}
	return int(fl), uint8(step) //nolint:gosec // step is in [0, SubpixelSteps)
}
