// Package text turns strings into positioned glyphs and coverage masks.
//
// The package is organized in layers:
//
//   - FontSource wraps one parsed font file (a glyph provider).
//   - Font composes a primary FontSource with ordered fallbacks and an emoji
//     policy. Code points resolve to the first source that has a glyph.
//   - Layout shapes a single line into glyph and emoji items with pen
//     positions; TextSize, TextSizeMultiline and Wrap are built on it.
//   - RasterizeGlyph scan-converts glyph outlines (optionally stroked) into
//     alpha masks, cached process-wide.
//
// All sizes are pixel sizes: a 24 px font maps one em to 24 pixels.
//
// FontSource and Font are immutable after construction (apart from the
// atomically swapped emoji options) and safe for concurrent use.
package text
