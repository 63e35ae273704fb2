package imagetext

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// Writer draws onto an existing draw.Image through a temporary Canvas.
// Drawing happens on Canvas(); Close writes the pixels back into the
// destination.
//
//	w, _ := imagetext.NewWriter(img)
//	_ = imagetext.DrawText(w.Canvas(), "hi", 10, 10, 24, font, paint)
//	_ = w.Close()
type Writer struct {
	dst    draw.Image
	canvas *Canvas
	once   sync.Once
	err    error
}

// NewWriter copies dst into a new canvas.
func NewWriter(dst draw.Image) (*Writer, error) {
	if dst == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	c, err := NewCanvasFromImage(dst)
	if err != nil {
		return nil, err
	}
	return &Writer{dst: dst, canvas: c}, nil
}

// Canvas returns the canvas to draw on.
func (w *Writer) Canvas() *Canvas {
	return w.canvas
}

// Close copies the canvas back into the destination. Only the first call
// writes; later calls return the first result.
func (w *Writer) Close() error {
	w.once.Do(func() {
		w.err = w.canvas.read(func(src *image.NRGBA) {
			b := w.dst.Bounds()
			draw.Draw(w.dst, b, src, image.Point{}, draw.Src)
		})
	})
	return w.err
}
