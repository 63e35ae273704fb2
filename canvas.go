package imagetext

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"golang.org/x/image/draw"

	"github.com/gogpu/imagetext/internal/codec"
)

// Canvas is a mutable RGBA8 raster: row-major, 4 bytes per pixel, straight
// alpha. Draw calls take the canvas exclusively for the compositing step;
// exports (Bytes, Buffer, ToImage, Save) take it shared.
//
// Canvas implements image.Image. It must not be copied after creation.
type Canvas struct {
	mu       sync.RWMutex
	img      *image.NRGBA
	poisoned atomic.Bool
}

// NewCanvas returns a width×height canvas filled with bg.
func NewCanvas(width, height int, bg Color) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", ErrInvalidInput, width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if bg != (Color{}) {
		pix := img.Pix
		for i := 0; i < len(pix); i += 4 {
			pix[i], pix[i+1], pix[i+2], pix[i+3] = bg.R, bg.G, bg.B, bg.A
		}
	}
	return &Canvas{img: img}, nil
}

// NewCanvasFromImage copies any image into a new canvas, converting it to
// straight RGBA. The canvas origin is the image's top-left corner.
func NewCanvasFromImage(src image.Image) (*Canvas, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return &Canvas{img: img}, nil
}

// NewCanvasFromRaw wraps a raw pixel buffer described by a mode string:
//
//	"RGBA"  4 bytes per pixel, copied as is
//	"RGBX"  4 bytes per pixel, X dropped, alpha 255
//	"RGB"   3 bytes per pixel, alpha 255
//	"LA"    2 bytes per pixel, gray + alpha
//	"L"     1 byte per pixel, gray, alpha 255
//
// Any other mode, or a buffer whose length is not width·height·channels, is
// rejected with ErrInvalidInput.
func NewCanvasFromRaw(mode string, width, height int, data []byte) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", ErrInvalidInput, width, height)
	}
	channels, ok := rawModes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported pixel mode %q", ErrInvalidInput, mode)
	}
	if len(data) != width*height*channels {
		return nil, fmt.Errorf("%w: %s buffer has %d bytes, want %d",
			ErrInvalidInput, mode, len(data), width*height*channels)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	pix := img.Pix
	for i, j := 0, 0; i < len(pix); i, j = i+4, j+channels {
		switch mode {
		case "RGBA":
			copy(pix[i:i+4], data[j:j+4])
		case "RGBX", "RGB":
			pix[i], pix[i+1], pix[i+2], pix[i+3] = data[j], data[j+1], data[j+2], 255
		case "LA":
			pix[i], pix[i+1], pix[i+2], pix[i+3] = data[j], data[j], data[j], data[j+1]
		case "L":
			pix[i], pix[i+1], pix[i+2], pix[i+3] = data[j], data[j], data[j], 255
		}
	}
	return &Canvas{img: img}, nil
}

var rawModes = map[string]int{"RGBA": 4, "RGBX": 4, "RGB": 3, "LA": 2, "L": 1}

// LoadCanvas decodes an image file (PNG, JPEG, GIF, BMP, TIFF, WebP) into a
// canvas.
func LoadCanvas(path string) (*Canvas, error) {
	img, err := codec.Load(path)
	if err != nil {
		return nil, err
	}
	return NewCanvasFromImage(img)
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model { return color.NRGBAModel }

// At implements image.Image.
func (c *Canvas) At(x, y int) color.Color {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.img.NRGBAAt(x, y)
}

// Pixel returns the straight color at (x, y); out of range yields Transparent.
func (c *Canvas) Pixel(x, y int) Color {
	p := c.At(x, y).(color.NRGBA)
	return Color{R: p.R, G: p.G, B: p.B, A: p.A}
}

// Bytes returns the dimensions and a copy of the pixel buffer.
func (c *Canvas) Bytes() (width, height int, data []byte, err error) {
	err = c.read(func(img *image.NRGBA) {
		data = append([]byte(nil), img.Pix...)
	})
	return c.Width(), c.Height(), data, err
}

// Buffer returns a copy of the pixel buffer.
func (c *Canvas) Buffer() ([]byte, error) {
	_, _, data, err := c.Bytes()
	return data, err
}

// ToImage returns an independent copy of the canvas as a standard image.
func (c *Canvas) ToImage() (*image.NRGBA, error) {
	var out *image.NRGBA
	err := c.read(func(img *image.NRGBA) {
		out = image.NewNRGBA(img.Rect)
		copy(out.Pix, img.Pix)
	})
	return out, err
}

// Save encodes the canvas to path. The extension selects the codec:
// .png, .jpg/.jpeg, .gif, .bmp, .tif/.tiff or .webp.
func (c *Canvas) Save(path string) error {
	var err error
	rerr := c.read(func(img *image.NRGBA) {
		err = codec.Save(path, img)
	})
	if rerr != nil {
		return rerr
	}
	return err
}

// read runs fn under the shared lock.
func (c *Canvas) read(fn func(*image.NRGBA)) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.poisoned.Load() {
		return ErrCanvasPoisoned
	}
	fn(c.img)
	return nil
}

// write runs fn under the exclusive lock. With try set it fails fast with
// ErrCanvasBusy instead of waiting. A panic inside fn poisons the canvas
// and keeps propagating.
func (c *Canvas) write(try bool, fn func(*image.NRGBA)) error {
	if try {
		if !c.mu.TryLock() {
			return ErrCanvasBusy
		}
	} else {
		c.mu.Lock()
	}
	defer c.mu.Unlock()
	if c.poisoned.Load() {
		return ErrCanvasPoisoned
	}

	done := false
	defer func() {
		if !done {
			c.poisoned.Store(true)
		}
	}()
	fn(c.img)
	done = true
	return nil
}
