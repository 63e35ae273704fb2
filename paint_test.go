package imagetext

import (
	"errors"
	"testing"
)

func TestPaintSolid(t *testing.T) {
	p := PaintColor(Red)
	if !p.AntiAlias {
		t.Error("PaintColor() should anti-alias")
	}
	if got := p.ColorAt(100, -5); got != Red {
		t.Errorf("ColorAt() = %v, want %v", got, Red)
	}
	p.SetColor(Blue)
	p.SetAntiAlias(false)
	if got := p.ColorAt(0, 0); got != Blue || p.AntiAlias {
		t.Errorf("after setters ColorAt() = %v, AntiAlias = %v", got, p.AntiAlias)
	}
	if c, ok := p.solid(); !ok || c != Blue {
		t.Errorf("solid() = %v, %v, want %v, true", c, ok, Blue)
	}
}

func TestPaintNilBrush(t *testing.T) {
	var p *Paint
	if got := p.ColorAt(0, 0); got != Transparent {
		t.Errorf("nil paint ColorAt() = %v, want transparent", got)
	}
	if got := (&Paint{}).ColorAt(0, 0); got != Transparent {
		t.Errorf("nil brush ColorAt() = %v, want transparent", got)
	}
}

func TestPaintGradient(t *testing.T) {
	p, err := PaintGradient(Point{0, 0}, Point{100, 0}, []Color{Red, Blue})
	if err != nil {
		t.Fatalf("PaintGradient() error = %v", err)
	}
	tests := []struct {
		x, y float64
		want Color
	}{
		{-10, 0, Red},
		{0, 50, Red},
		{50, 7, Red.Lerp(Blue, 0.5)},
		{100, 0, Blue},
		{250, -3, Blue},
	}
	for _, tt := range tests {
		if got := p.ColorAt(tt.x, tt.y); got != tt.want {
			t.Errorf("ColorAt(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if _, ok := p.solid(); ok {
		t.Error("gradient reported as solid")
	}

	if _, err := PaintGradient(Point{}, Point{1, 1}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("PaintGradient(no colors) error = %v, want ErrInvalidInput", err)
	}
}

func TestGradientThreeStops(t *testing.T) {
	g := NewLinearGradient(Point{0, 0}, Point{0, 10}, Red, Green, Blue)
	if got := g.ColorAt(3, 5); got != Green {
		t.Errorf("ColorAt(mid) = %v, want %v", got, Green)
	}
	degenerate := NewLinearGradient(Point{5, 5}, Point{5, 5}, Red, Blue)
	if got := degenerate.ColorAt(9, 9); got != Red {
		t.Errorf("degenerate axis ColorAt() = %v, want first color", got)
	}
}

func TestPaintRainbow(t *testing.T) {
	p := PaintRainbow(Point{0, 0}, Point{360, 0})
	tests := []struct {
		x    float64
		want Color
	}{
		{0, Red},
		{120, Green},
		{240, Blue},
		{360, Red},
	}
	for _, tt := range tests {
		if got := p.ColorAt(tt.x, 0); got != tt.want {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}
