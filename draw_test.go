package imagetext

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/imagetext/text"
	"github.com/gogpu/imagetext/text/emoji"
)

func testFont(t testing.TB) *text.Font {
	t.Helper()
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource() error = %v", err)
	}
	f, err := text.NewFont(src)
	if err != nil {
		t.Fatalf("NewFont() error = %v", err)
	}
	return f
}

func blankCanvas(t testing.TB, w, h int) *Canvas {
	t.Helper()
	c, err := NewCanvas(w, h, Transparent)
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}
	return c
}

// inkBounds returns the smallest rectangle holding every pixel with
// non-zero alpha.
func inkBounds(t testing.TB, c *Canvas) image.Rectangle {
	t.Helper()
	img, err := c.ToImage()
	if err != nil {
		t.Fatalf("ToImage() error = %v", err)
	}
	var r image.Rectangle
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if img.NRGBAAt(x, y).A == 0 {
				continue
			}
			r = r.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return r
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestDrawTextInvalidInput(t *testing.T) {
	f := testFont(t)
	c := blankCanvas(t, 10, 10)
	p := PaintColor(Black)

	tests := []struct {
		name string
		err  error
	}{
		{"nil canvas", DrawText(nil, "a", 0, 0, 12, f, p)},
		{"nil font", DrawText(c, "a", 0, 0, 12, nil, p)},
		{"nil paint", DrawText(c, "a", 0, 0, 12, f, nil)},
		{"negative size", DrawText(c, "a", 0, 0, -1, f, p)},
		{"NaN size", DrawText(c, "a", 0, 0, math.NaN(), f, p)},
		{"infinite size", DrawText(c, "a", 0, 0, math.Inf(1), f, p)},
		{"negative stroke", DrawText(c, "a", 0, 0, 12, f, p, WithStroke(-1, nil))},
		{"negative spacing", DrawTextMultiline(c, []string{"a"}, 0, 0, 0, 0, 0, 12, f, p, WithLineSpacing(-1))},
		{"NaN x", DrawText(c, "a", math.NaN(), 0, 12, f, p)},
		{"infinite y", DrawText(c, "a", 0, math.Inf(-1), 12, f, p)},
		{"NaN anchor x", DrawTextAnchored(c, "a", 0, 0, math.NaN(), 0, 12, f, p)},
		{"infinite anchor y", DrawTextAnchored(c, "a", 0, 0, 0, math.Inf(1), 12, f, p)},
		{"NaN block width", DrawTextMultiline(c, []string{"a"}, 0, 0, 0, 0, math.NaN(), 12, f, p)},
		{"infinite block width", DrawTextMultiline(c, []string{"a"}, 0, 0, 0, 0, math.Inf(1), 12, f, p)},
		{"NaN wrap width", DrawTextWrapped(c, "a b", 0, 0, 0, 0, math.NaN(), 12, f, p)},
		{"NaN wrap anchor", DrawTextWrapped(c, "a b", 0, 0, math.NaN(), 0, 50, 12, f, p)},
		{"infinite block x", DrawTextMultiline(c, []string{"a"}, math.Inf(1), 0, 0, 0, 0, 12, f, p)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", tt.err)
			}
		})
	}
	if r := inkBounds(t, c); !r.Empty() {
		t.Errorf("rejected draws left ink at %v", r)
	}
}

func TestDrawTextCenteredAnchor(t *testing.T) {
	f := testFont(t)
	for _, size := range []float64{16, 24, 48} {
		c := blankCanvas(t, 100, 100)
		if err := DrawTextAnchored(c, "X", 50, 50, 0.5, 0.5, size, f, PaintColor(Black)); err != nil {
			t.Fatalf("size %v: DrawTextAnchored() error = %v", size, err)
		}
		r := inkBounds(t, c)
		if r.Empty() {
			t.Fatalf("size %v: nothing drawn", size)
		}
		cx := float64(r.Min.X+r.Max.X) / 2
		cy := float64(r.Min.Y+r.Max.Y) / 2
		if math.Abs(cx-50) > 1 || math.Abs(cy-50) > 1 {
			t.Errorf("size %v: ink %v centered at (%.1f, %.1f), want (50, 50)", size, r, cx, cy)
		}
	}
}

func TestDrawTextEmptyIsNoop(t *testing.T) {
	f := testFont(t)
	c := blankCanvas(t, 20, 20)
	if err := DrawText(c, "", 2, 2, 12, f, PaintColor(Black)); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}
	if err := DrawTextMultiline(c, nil, 2, 2, 0, 0, 0, 12, f, PaintColor(Black)); err != nil {
		t.Fatalf("DrawTextMultiline() error = %v", err)
	}
	if r := inkBounds(t, c); !r.Empty() {
		t.Errorf("ink bounds = %v, want empty", r)
	}
}

func TestDrawTextBaseline(t *testing.T) {
	f := testFont(t)
	c := blankCanvas(t, 100, 60)
	const size, top = 32.0, 10.0
	if err := DrawText(c, "H", 5, top, size, f, PaintColor(Black)); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}
	r := inkBounds(t, c)
	baseline := int(math.Round(top + f.Metrics(size).Ascent))
	if absInt(r.Max.Y-baseline) > 1 {
		t.Errorf("ink bottom = %d, want baseline %d", r.Max.Y, baseline)
	}
	if r.Min.Y < int(top) {
		t.Errorf("ink top = %d, above layout top %v", r.Min.Y, top)
	}
}

func TestDrawTextAnchor(t *testing.T) {
	f := testFont(t)
	const size = 24.0
	w, h, err := TextSize("Hello", size, f, false)
	if err != nil {
		t.Fatalf("TextSize() error = %v", err)
	}

	ref := blankCanvas(t, 200, 100)
	if err := DrawTextAnchored(ref, "Hello", 40, 30, 0, 0, size, f, PaintColor(Black)); err != nil {
		t.Fatal(err)
	}
	want := inkBounds(t, ref)

	anchors := []struct{ ax, ay float64 }{{1, 1}, {0.5, 0.5}, {0, 1}, {1, 0}}
	for _, a := range anchors {
		c := blankCanvas(t, 200, 100)
		x, y := 40+a.ax*w, 30+a.ay*h
		if err := DrawTextAnchored(c, "Hello", x, y, a.ax, a.ay, size, f, PaintColor(Black)); err != nil {
			t.Fatal(err)
		}
		got := inkBounds(t, c)
		if absInt(got.Min.X-want.Min.X) > 1 || absInt(got.Min.Y-want.Min.Y) > 1 {
			t.Errorf("anchor (%v, %v): ink at %v, want %v", a.ax, a.ay, got, want)
		}
	}
}

func TestDrawTextMultilineAlign(t *testing.T) {
	f := testFont(t)
	const size, width = 20.0, 150.0
	w, _, _ := TextSize("Mid", size, f, false)

	draw := func(a TextAlign) image.Rectangle {
		c := blankCanvas(t, 200, 60)
		if err := DrawTextMultiline(c, []string{"Mid"}, 10, 5, 0, 0, width, size, f, PaintColor(Black), WithAlign(a)); err != nil {
			t.Fatal(err)
		}
		return inkBounds(t, c)
	}
	left, center, right := draw(AlignLeft), draw(AlignCenter), draw(AlignRight)

	if d, want := center.Min.X-left.Min.X, int(math.Round((width-w)/2)); absInt(d-want) > 1 {
		t.Errorf("center shift = %d, want %d", d, want)
	}
	if d, want := right.Min.X-left.Min.X, int(math.Round(width-w)); absInt(d-want) > 1 {
		t.Errorf("right shift = %d, want %d", d, want)
	}
}

func TestDrawTextMultilineSpacing(t *testing.T) {
	f := testFont(t)
	const size = 20.0
	lh := f.LineHeight(size)

	rows := func(spacing float64) image.Rectangle {
		c := blankCanvas(t, 100, 200)
		lines := []string{"", "", "H"}
		if err := DrawTextMultiline(c, lines, 0, 0, 0, 0, 0, size, f, PaintColor(Black), WithLineSpacing(spacing)); err != nil {
			t.Fatal(err)
		}
		return inkBounds(t, c)
	}
	one, two := rows(1), rows(2)
	if d, want := two.Min.Y-one.Min.Y, int(math.Round(2*lh)); absInt(d-want) > 1 {
		t.Errorf("third line moved by %d with double spacing, want %d", d, want)
	}
}

func TestDrawTextAliased(t *testing.T) {
	f := testFont(t)
	c := blankCanvas(t, 120, 50)
	if err := DrawText(c, "Ag", 4, 4, 30, f, NewPaint(Black, false)); err != nil {
		t.Fatal(err)
	}
	img, _ := c.ToImage()
	inked := 0
	for i := 3; i < len(img.Pix); i += 4 {
		switch img.Pix[i] {
		case 0:
		case 255:
			inked++
		default:
			t.Fatalf("aliased alpha %d at pixel %d", img.Pix[i], i/4)
		}
	}
	if inked == 0 {
		t.Error("aliased draw left no ink")
	}
}

func TestDrawTextStroke(t *testing.T) {
	f := testFont(t)
	plain := blankCanvas(t, 120, 60)
	stroked := blankCanvas(t, 120, 60)
	fill := PaintColor(Blue)
	if err := DrawText(plain, "O", 20, 10, 32, f, fill); err != nil {
		t.Fatal(err)
	}
	if err := DrawText(stroked, "O", 20, 10, 32, f, fill, WithStroke(4, PaintColor(Red))); err != nil {
		t.Fatal(err)
	}

	pr, sr := inkBounds(t, plain), inkBounds(t, stroked)
	if !(sr.Min.X < pr.Min.X && sr.Max.X > pr.Max.X) {
		t.Errorf("stroked ink %v does not extend past fill ink %v", sr, pr)
	}

	img, _ := stroked.ToImage()
	var red, blue bool
	for y := 0; y < 60; y++ {
		for x := 0; x < 120; x++ {
			p := img.NRGBAAt(x, y)
			if p.A == 255 && p.R == 255 && p.B == 0 {
				red = true
			}
			if p.A == 255 && p.B == 255 && p.R == 0 {
				blue = true
			}
		}
	}
	if !red || !blue {
		t.Errorf("stroke colors: red=%v blue=%v, want both", red, blue)
	}
}

func TestDrawTextGradient(t *testing.T) {
	f := testFont(t)
	const size = 40.0
	w, _, _ := TextSize("MMMM", size, f, false)
	p, err := PaintGradient(Point{0, 0}, Point{w, 0}, []Color{Red, Blue})
	if err != nil {
		t.Fatal(err)
	}
	c := blankCanvas(t, int(w)+10, 60)
	if err := DrawText(c, "MMMM", 0, 0, size, f, p); err != nil {
		t.Fatal(err)
	}
	img, _ := c.ToImage()
	r := inkBounds(t, c)

	// first opaque pixel with x in [x0, x1)
	opaque := func(x0, x1 int) color.NRGBA {
		for x := x0; x < x1; x++ {
			for y := r.Min.Y; y < r.Max.Y; y++ {
				if p := img.NRGBAAt(x, y); p.A == 255 {
					return p
				}
			}
		}
		t.Fatalf("no opaque pixel in columns [%d, %d)", x0, x1)
		return color.NRGBA{}
	}
	q := r.Dx() / 4
	l := opaque(r.Min.X, r.Min.X+q)
	rt := opaque(r.Max.X-q, r.Max.X)
	if l.R <= l.B {
		t.Errorf("left ink %v should be mostly red", l)
	}
	if rt.B <= rt.R {
		t.Errorf("right ink %v should be mostly blue", rt)
	}
}

func pngBody(t testing.TB, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDrawTextEmoji(t *testing.T) {
	f := testFont(t)
	body := pngBody(t, color.NRGBA{R: 255, A: 255})
	r := emoji.NewResolver(emoji.WithFetcher(emoji.FetcherFunc(func(context.Context, string) ([]byte, error) {
		return body, nil
	})))

	const size = 32.0
	c, _ := NewCanvas(200, 60, White)
	if err := DrawText(c, "a😀", 0, 0, size, f, PaintColor(Black), WithEmoji(), WithEmojiResolver(r)); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}

	l := f.Layout("a😀", size, true)
	if len(l.Items) != 2 || l.Items[1].Kind != text.ItemEmoji {
		t.Fatalf("layout items = %+v, want glyph then emoji", l.Items)
	}
	side := int(math.Round(l.Items[1].Advance))
	x0 := int(math.Round(l.Items[1].X))
	if got := c.Pixel(x0+side/2, side/2); got != Red {
		t.Errorf("emoji center = %v, want %v", got, Red)
	}
	if got := c.Pixel(x0+side+2, side/2); got != White {
		t.Errorf("past emoji = %v, want background", got)
	}

	// Shortcodes resolve the same way.
	c2, _ := NewCanvas(200, 60, White)
	if err := DrawText(c2, ":grinning:", 0, 0, size, f, PaintColor(Black), WithEmoji(), WithEmojiResolver(r)); err != nil {
		t.Fatal(err)
	}
	if got := c2.Pixel(side/2, side/2); got != Red {
		t.Errorf("shortcode emoji center = %v, want %v", got, Red)
	}
}

func TestDrawTextEmojiShift(t *testing.T) {
	src, _ := text.NewFontSource(goregular.TTF)
	opts := emoji.DefaultOptions()
	opts.ShiftX, opts.ShiftY = 5, 3
	f, err := text.NewFont(src, text.WithEmojiOptions(opts))
	if err != nil {
		t.Fatal(err)
	}
	body := pngBody(t, color.NRGBA{G: 255, A: 255})
	r := emoji.NewResolver(emoji.WithFetcher(emoji.FetcherFunc(func(context.Context, string) ([]byte, error) {
		return body, nil
	})))

	c := blankCanvas(t, 100, 60)
	if err := DrawText(c, "😀", 10, 10, 20, f, PaintColor(Black), WithEmoji(), WithEmojiResolver(r)); err != nil {
		t.Fatal(err)
	}
	got := inkBounds(t, c)
	if got.Min != image.Pt(15, 13) {
		t.Errorf("emoji origin = %v, want (15,13)", got.Min)
	}
}

func TestDrawTextFailedEmojiTakesNoSpace(t *testing.T) {
	f := testFont(t)
	r := emoji.NewResolver(emoji.WithFetcher(emoji.FetcherFunc(func(context.Context, string) ([]byte, error) {
		return nil, errors.New("offline")
	})))

	cfg := newDrawConfig([]DrawOption{WithEmoji(), WithEmojiResolver(r)})
	lo := layoutLines(cfg, f, []string{"a😀"}, 24, nil)
	want := f.Layout("a", 24, false)
	if got := lo.lines[0].Width; !near(got, want.Width) {
		t.Errorf("width with failed emoji = %v, want %v", got, want.Width)
	}

	withEmoji := blankCanvas(t, 100, 40)
	plain := blankCanvas(t, 100, 40)
	if err := DrawTextAnchored(withEmoji, "a😀", 50, 5, 0.5, 0, 24, f, PaintColor(Black), WithEmoji(), WithEmojiResolver(r)); err != nil {
		t.Fatal(err)
	}
	if err := DrawTextAnchored(plain, "a", 50, 5, 0.5, 0, 24, f, PaintColor(Black)); err != nil {
		t.Fatal(err)
	}
	a, _ := withEmoji.Buffer()
	b, _ := plain.Buffer()
	if !bytes.Equal(a, b) {
		t.Error("failed emoji changed the rendering of the remaining text")
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDrawTextWrapped(t *testing.T) {
	f := testFont(t)
	const size = 20.0
	s := "one two three four five six"
	lines, err := TextWrap(s, 80, size, f, WrapWord, false)
	if err != nil {
		t.Fatalf("TextWrap() error = %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("TextWrap() = %q, want several lines", lines)
	}

	wrapped := blankCanvas(t, 200, 200)
	manual := blankCanvas(t, 200, 200)
	if err := DrawTextWrapped(wrapped, s, 5, 5, 0, 0, 80, size, f, PaintColor(Black)); err != nil {
		t.Fatal(err)
	}
	if err := DrawTextMultiline(manual, lines, 5, 5, 0, 0, 80, size, f, PaintColor(Black)); err != nil {
		t.Fatal(err)
	}
	a, _ := wrapped.Buffer()
	b, _ := manual.Buffer()
	if !bytes.Equal(a, b) {
		t.Error("DrawTextWrapped differs from DrawTextMultiline of TextWrap lines")
	}
}

func TestDrawTextWrappedFailedEmojiTakesNoSpace(t *testing.T) {
	f := testFont(t)
	const size = 20.0
	s := "ab 😀😀😀 cd"
	var calls int
	r := emoji.NewResolver(emoji.WithFetcher(emoji.FetcherFunc(func(context.Context, string) ([]byte, error) {
		calls++
		return nil, errors.New("offline")
	})))
	opts := []DrawOption{WithEmoji(), WithEmojiResolver(r)}
	width, _, err := TextSize("ab  cd", size, f, false)
	if err != nil {
		t.Fatal(err)
	}
	width++

	if lines := f.Wrap(s, width, size, WrapWord, true); len(lines) < 2 {
		t.Fatalf("Wrap() = %q, want the emoji squares to force a break", lines)
	}

	wrapped := blankCanvas(t, 200, 100)
	single := blankCanvas(t, 200, 100)
	if err := DrawTextWrapped(wrapped, s, 5, 5, 0, 0, width, size, f, PaintColor(Black), opts...); err != nil {
		t.Fatal(err)
	}
	if err := DrawTextMultiline(single, []string{s}, 5, 5, 0, 0, width, size, f, PaintColor(Black), opts...); err != nil {
		t.Fatal(err)
	}
	a, _ := wrapped.Buffer()
	b, _ := single.Buffer()
	if !bytes.Equal(a, b) {
		t.Error("failed emoji still forced a line break")
	}
	if calls != 1 {
		t.Errorf("fetch calls = %d, want 1", calls)
	}
}

func TestDrawTextDeterministicConcurrent(t *testing.T) {
	f := testFont(t)
	ref := blankCanvas(t, 160, 40)
	if err := DrawText(ref, "Concurrent", 3, 3, 22, f, PaintColor(Black)); err != nil {
		t.Fatal(err)
	}
	want, _ := ref.Buffer()

	var g errgroup.Group
	results := make([][]byte, 8)
	for i := range results {
		g.Go(func() error {
			c, err := NewCanvas(160, 40, Transparent)
			if err != nil {
				return err
			}
			if err := DrawText(c, "Concurrent", 3, 3, 22, f, PaintColor(Black)); err != nil {
				return err
			}
			results[i], err = c.Buffer()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("goroutine %d produced different pixels", i)
		}
	}
}

func TestDrawTextSharedCanvas(t *testing.T) {
	f := testFont(t)
	c := blankCanvas(t, 300, 300)
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			return DrawText(c, "x", float64(i*25), float64(i*25), 16, f, PaintColor(Black))
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent DrawText() error = %v", err)
	}
	if r := inkBounds(t, c); r.Empty() {
		t.Error("no ink after concurrent draws")
	}
}

func TestDrawTextTryLock(t *testing.T) {
	f := testFont(t)
	c := blankCanvas(t, 50, 50)
	c.mu.Lock()
	err := DrawText(c, "H", 0, 0, 20, f, PaintColor(Black), WithTryLock())
	c.mu.Unlock()
	if !errors.Is(err, ErrCanvasBusy) {
		t.Errorf("DrawText(try) error = %v, want ErrCanvasBusy", err)
	}
	if err := DrawText(c, "H", 0, 0, 20, f, PaintColor(Black), WithTryLock()); err != nil {
		t.Errorf("DrawText(try) on idle canvas error = %v", err)
	}
}

func TestDrawTextPoisonedCanvas(t *testing.T) {
	f := testFont(t)
	c := blankCanvas(t, 50, 50)
	c.poisoned.Store(true)
	if err := DrawText(c, "H", 0, 0, 20, f, PaintColor(Black)); !errors.Is(err, ErrCanvasPoisoned) {
		t.Errorf("DrawText() error = %v, want ErrCanvasPoisoned", err)
	}
}
