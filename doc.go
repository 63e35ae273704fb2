// Package imagetext draws text onto raster images.
//
// # Overview
//
// imagetext lays out a string with a composite font (a primary face plus
// fallbacks), rasterizes each glyph on the CPU and composites it onto a
// Canvas with a Paint. Emoji, both Unicode sequences and :shortcodes:, can
// be rendered as bitmaps fetched from a CDN or read from a directory.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/imagetext"
//	    "github.com/gogpu/imagetext/text"
//	)
//
//	f, _ := text.LoadFont("NotoSans-Regular.ttf", []string{"NotoSansCJK.ttc"})
//	c, _ := imagetext.NewCanvas(512, 128, imagetext.White)
//	_ = imagetext.DrawTextAnchored(c, "Hello 😀", 256, 64, 0.5, 0.5, 48, f,
//	    imagetext.PaintColor(imagetext.Black), imagetext.WithEmoji())
//	_ = c.Save("hello.png")
//
// # Packages
//
//   - imagetext: Canvas, Paint, colors, draw and measure calls
//   - text: font sources, composite fonts, layout, wrapping, glyph masks
//   - text/emoji: emoji detection, tokenization and bitmap resolution
//   - fontdb: a named registry of fonts with query strings like "Go Bold 14"
//
// # Coordinate System
//
// The origin (0, 0) is the top-left pixel; x grows right, y grows down. A
// text position is the top-left corner of its layout box: the baseline is
// one ascent below it.
//
// # Concurrency
//
// Fonts, paints and resolvers are safe for concurrent use. Every draw call
// takes the canvas exclusively only for compositing; layout, rasterization
// and emoji fetches happen before the lock is taken.
package imagetext

// Version is the current version of the library.
const Version = "0.1.0"
