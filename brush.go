package imagetext

import (
	"math"
	"sort"
)

// Brush yields the paint color at a canvas position. It is sealed: only
// SolidBrush, LinearGradientBrush and RainbowBrush implement it.
type Brush interface {
	brushMarker()

	// ColorAt returns the straight color at pixel center (x, y).
	ColorAt(x, y float64) Color
}

// SolidBrush paints a single color everywhere.
type SolidBrush struct {
	Color Color
}

func (SolidBrush) brushMarker() {}

// ColorAt implements Brush.
func (b SolidBrush) ColorAt(_, _ float64) Color { return b.Color }

// ColorStop places a color along a gradient axis, Offset in [0, 1].
type ColorStop struct {
	Offset float64
	Color  Color
}

// Point is a canvas position in pixels.
type Point struct {
	X, Y float64
}

// LinearGradientBrush interpolates its stops along Start→Stop. Positions are
// projected onto the axis and clamped, so the first and last colors extend
// past the endpoints.
type LinearGradientBrush struct {
	Start, Stop Point
	Stops       []ColorStop
}

func (*LinearGradientBrush) brushMarker() {}

// NewLinearGradient spaces colors evenly between start and stop.
func NewLinearGradient(start, stop Point, colors ...Color) *LinearGradientBrush {
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		off := 0.0
		if len(colors) > 1 {
			off = float64(i) / float64(len(colors)-1)
		}
		stops[i] = ColorStop{Offset: off, Color: c}
	}
	return &LinearGradientBrush{Start: start, Stop: stop, Stops: stops}
}

// ColorAt implements Brush.
func (g *LinearGradientBrush) ColorAt(x, y float64) Color {
	return colorAtOffset(g.Stops, axisParam(g.Start, g.Stop, x, y))
}

// RainbowBrush sweeps the hue circle (full saturation and value) along
// Start→Stop.
type RainbowBrush struct {
	Start, Stop Point
}

func (RainbowBrush) brushMarker() {}

// ColorAt implements Brush.
func (r RainbowBrush) ColorAt(x, y float64) Color {
	return HSV(axisParam(r.Start, r.Stop, x, y)*360, 1, 1)
}

// axisParam projects (x, y) onto the axis s→e:
// t = dot(P-S, E-S) / |E-S|², clamped to [0, 1]. A degenerate axis yields 0.
func axisParam(s, e Point, x, y float64) float64 {
	dx, dy := e.X-s.X, e.Y-s.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return 0
	}
	t := ((x-s.X)*dx + (y-s.Y)*dy) / l2
	return math.Max(0, math.Min(1, t))
}

// colorAtOffset linearly interpolates between the stops bracketing t. Stops
// must be sorted by offset.
func colorAtOffset(stops []ColorStop, t float64) Color {
	switch len(stops) {
	case 0:
		return Transparent
	case 1:
		return stops[0].Color
	}
	i := sort.Search(len(stops), func(i int) bool { return stops[i].Offset >= t })
	if i == 0 {
		return stops[0].Color
	}
	if i == len(stops) {
		return stops[len(stops)-1].Color
	}
	a, b := stops[i-1], stops[i]
	span := b.Offset - a.Offset
	if span <= 0 {
		return b.Color
	}
	return a.Color.Lerp(b.Color, (t-a.Offset)/span)
}
