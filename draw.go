package imagetext

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/imagetext/internal/blend"
	"github.com/gogpu/imagetext/internal/logging"
	"github.com/gogpu/imagetext/text"
	"github.com/gogpu/imagetext/text/emoji"
)

// DrawText draws s with the top-left corner of its layout box at (x, y).
// The baseline sits at y + ascent. size is the pixel size of one em.
func DrawText(c *Canvas, s string, x, y, size float64, f *text.Font, fill *Paint, opts ...DrawOption) error {
	return DrawTextAnchored(c, s, x, y, 0, 0, size, f, fill, opts...)
}

// DrawTextAnchored draws s so that (x, y) lies at (left + ax·w, top + ay·h)
// of its layout box, where w is the advance width and h the line height.
// (0, 0) anchors the top-left corner, (0.5, 0.5) the center and (1, 1) the
// bottom-right corner.
func DrawTextAnchored(c *Canvas, s string, x, y, ax, ay, size float64, f *text.Font, fill *Paint, opts ...DrawOption) error {
	cfg := newDrawConfig(opts)
	if err := validate(c, f, fill, size, cfg, coord{"x", x}, coord{"y", y}, coord{"ax", ax}, coord{"ay", ay}); err != nil {
		return err
	}
	lo := layoutLines(cfg, f, []string{s}, size, nil)
	l := lo.lines[0]
	placed := []placedLine{{line: l, x: x - ax*l.Width, top: y - ay*l.Height()}}
	return render(c, lo, placed, fill, cfg)
}

// DrawTextMultiline draws lines as a block. The block is max(width, widest
// line) wide and ceil(n·lineHeight·spacing) tall, anchored at (x, y) like
// DrawTextAnchored. Each line is placed in the block per WithAlign.
func DrawTextMultiline(c *Canvas, lines []string, x, y, ax, ay, width, size float64, f *text.Font, fill *Paint, opts ...DrawOption) error {
	cfg := newDrawConfig(opts)
	if err := validate(c, f, fill, size, cfg,
		coord{"x", x}, coord{"y", y}, coord{"ax", ax}, coord{"ay", ay}, coord{"width", width}); err != nil {
		return err
	}
	return drawBlock(c, lines, x, y, ax, ay, width, size, f, fill, cfg, nil)
}

// DrawTextWrapped wraps s to width (see text.Font.Wrap) and draws the result
// as DrawTextMultiline does. In emoji mode the emoji are fetched before
// wrapping, and those that fail take no space in the line measurements.
func DrawTextWrapped(c *Canvas, s string, x, y, ax, ay, width, size float64, f *text.Font, fill *Paint, opts ...DrawOption) error {
	cfg := newDrawConfig(opts)
	if err := validate(c, f, fill, size, cfg,
		coord{"x", x}, coord{"y", y}, coord{"ax", ax}, coord{"ay", ay}, coord{"width", width}); err != nil {
		return err
	}
	if !cfg.emoji {
		lines := f.Wrap(s, width, size, cfg.wrap, false)
		return drawBlock(c, lines, x, y, ax, ay, width, size, f, fill, cfg, nil)
	}
	whole := f.Layout(s, size, true)
	known := resolveEmoji(cfg.ctx, cfg.resolver, f.EmojiOptions().Source, []text.Line{whole}, nil)
	lines := f.WrapWithout(s, width, size, cfg.wrap, func(t emoji.Token) bool {
		return known[keyOf(&t)] == nil
	})
	return drawBlock(c, lines, x, y, ax, ay, width, size, f, fill, cfg, known)
}

// coord is a named position argument that must be finite.
type coord struct {
	name string
	v    float64
}

func validate(c *Canvas, f *text.Font, fill *Paint, size float64, cfg drawConfig, coords ...coord) error {
	switch {
	case c == nil:
		return fmt.Errorf("%w: nil canvas", ErrInvalidInput)
	case f == nil:
		return fmt.Errorf("%w: nil font", ErrInvalidInput)
	case fill == nil:
		return fmt.Errorf("%w: nil paint", ErrInvalidInput)
	case size < 0 || math.IsNaN(size) || math.IsInf(size, 0):
		return fmt.Errorf("%w: size %v", ErrInvalidInput, size)
	case cfg.lineSpacing < 0 || math.IsNaN(cfg.lineSpacing):
		return fmt.Errorf("%w: line spacing %v", ErrInvalidInput, cfg.lineSpacing)
	case cfg.strokeWidth < 0 || math.IsNaN(cfg.strokeWidth):
		return fmt.Errorf("%w: stroke width %v", ErrInvalidInput, cfg.strokeWidth)
	}
	for _, p := range coords {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s %v", ErrInvalidInput, p.name, p.v)
		}
	}
	return nil
}

// placedLine is a laid out line with its top-left corner on the canvas.
type placedLine struct {
	line   text.Line
	x, top float64
}

func drawBlock(c *Canvas, lines []string, x, y, ax, ay, width, size float64, f *text.Font, fill *Paint, cfg drawConfig, known map[emojiKey]image.Image) error {
	if len(lines) == 0 {
		return nil
	}
	lo := layoutLines(cfg, f, lines, size, known)

	blockW := math.Max(width, 0)
	for _, l := range lo.lines {
		blockW = math.Max(blockW, l.Width)
	}
	lh := f.LineHeight(size)
	blockH := math.Ceil(float64(len(lo.lines)) * lh * cfg.lineSpacing)
	left := x - ax*blockW
	top := y - ay*blockH

	placed := make([]placedLine, len(lo.lines))
	for i, l := range lo.lines {
		lx := left
		switch cfg.align {
		case AlignCenter:
			lx = left + (blockW-l.Width)/2
		case AlignRight:
			lx = left + blockW - l.Width
		}
		placed[i] = placedLine{line: l, x: lx, top: top + float64(i)*lh*cfg.lineSpacing}
	}
	return render(c, lo, placed, fill, cfg)
}

// emojiKey identifies a distinct emoji within one draw call.
type emojiKey struct {
	kind emoji.Kind
	seq  string
	id   string
}

func keyOf(t *emoji.Token) emojiKey {
	return emojiKey{kind: t.Kind, seq: t.Sequence, id: t.ID}
}

// laidOut holds the lines of one call plus the emoji bitmaps they use. A
// nil bitmap marks an emoji whose fetch failed.
type laidOut struct {
	lines  []text.Line
	emoji  map[emojiKey]image.Image
	policy emoji.Options
}

// layoutLines lays out every line. In emoji mode it resolves the emoji
// bitmaps first, outside any canvas lock, and drops emoji whose fetch failed
// so they take no space. Emoji already in known are not resolved again.
func layoutLines(cfg drawConfig, f *text.Font, lines []string, size float64, known map[emojiKey]image.Image) laidOut {
	lo := laidOut{lines: make([]text.Line, len(lines)), policy: f.EmojiOptions()}
	for i, s := range lines {
		lo.lines[i] = f.Layout(s, size, cfg.emoji)
	}
	if !cfg.emoji {
		return lo
	}
	lo.emoji = resolveEmoji(cfg.ctx, cfg.resolver, lo.policy.Source, lo.lines, known)
	missing := func(it text.Item) bool {
		return it.Kind == text.ItemEmoji && lo.emoji[keyOf(it.Emoji)] == nil
	}
	for i, l := range lo.lines {
		lo.lines[i] = l.Without(missing)
		if d := l.Width - lo.lines[i].Width; d > 0 {
			logging.Logger().Debug("imagetext: dropped unavailable emoji", "line", i, "width", d)
		}
	}
	return lo
}

// resolveEmoji fetches every distinct emoji of lines in parallel, starting
// from the entries of known. Failed emoji map to nil.
func resolveEmoji(ctx context.Context, r *emoji.Resolver, src emoji.Source, lines []text.Line, known map[emojiKey]image.Image) map[emojiKey]image.Image {
	toks := make(map[emojiKey]*emoji.Token)
	for _, l := range lines {
		for _, it := range l.Items {
			if it.Kind != text.ItemEmoji {
				continue
			}
			k := keyOf(it.Emoji)
			if _, ok := known[k]; !ok {
				toks[k] = it.Emoji
			}
		}
	}
	if len(toks) == 0 {
		return known
	}

	var (
		mu  sync.Mutex
		out = make(map[emojiKey]image.Image, len(toks)+len(known))
		g   errgroup.Group
	)
	for k, img := range known {
		out[k] = img
	}
	g.SetLimit(8)
	for k, tok := range toks {
		g.Go(func() error {
			img, err := r.Resolve(ctx, src, *tok)
			if err != nil {
				img = nil
			}
			mu.Lock()
			out[k] = img
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// drawOp is one compositing step: a coverage mask filled with a paint, or
// an already scaled emoji bitmap.
type drawOp struct {
	mask  *image.Alpha
	paint *Paint
	img   *image.NRGBA
	at    image.Point
}

// render rasterizes and scales everything outside the lock, then composites
// in order under the exclusive canvas lock: per line the stroke pass, then
// glyphs and emoji left to right.
func render(c *Canvas, lo laidOut, lines []placedLine, fill *Paint, cfg drawConfig) error {
	eo := lo.policy
	var ops []drawOp
	scaled := make(map[emojiKey]*image.NRGBA)
	for _, pl := range lines {
		line := pl.line
		baseline := pl.top + line.Ascent

		if cfg.strokeWidth > 0 {
			for _, it := range line.Items {
				if it.Kind != text.ItemGlyph {
					continue
				}
				if m := text.RasterizeGlyph(it.Source, it.GID, line.Size, pl.x+it.X, baseline, cfg.strokeWidth); m != nil {
					ops = append(ops, drawOp{mask: m, paint: cfg.strokePaint})
				}
			}
		}

		for _, it := range line.Items {
			switch it.Kind {
			case text.ItemGlyph:
				if m := text.RasterizeGlyph(it.Source, it.GID, line.Size, pl.x+it.X, baseline, 0); m != nil {
					ops = append(ops, drawOp{mask: m, paint: fill})
				}
			case text.ItemEmoji:
				k := keyOf(it.Emoji)
				img, ok := scaled[k]
				if !ok {
					img = scaleEmoji(lo.emoji[k], int(math.Round(it.Advance)))
					scaled[k] = img
				}
				if img == nil {
					continue
				}
				at := image.Pt(
					int(math.Round(pl.x+it.X))+eo.ShiftX,
					int(math.Round(pl.top))+eo.ShiftY,
				)
				ops = append(ops, drawOp{img: img, at: at})
			}
		}
	}

	if len(ops) == 0 {
		return nil
	}
	return c.write(cfg.tryLock, func(dst *image.NRGBA) {
		for _, op := range ops {
			if op.img != nil {
				r := op.img.Bounds().Add(op.at)
				draw.Draw(dst, r, op.img, image.Point{}, draw.Over)
				continue
			}
			fillMask(dst, op.mask, op.paint)
		}
	})
}

// scaleEmoji resizes src to a side×side square with Catmull-Rom filtering.
func scaleEmoji(src image.Image, side int) *image.NRGBA {
	if src == nil || side <= 0 {
		return nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// fillMask composites p through mask m onto dst with source-over. Without
// anti-aliasing coverage is thresholded at one half.
func fillMask(dst *image.NRGBA, m *image.Alpha, p *Paint) {
	r := m.Rect.Intersect(dst.Rect)
	if r.Empty() {
		return
	}
	col, solid := p.solid()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		mi := m.PixOffset(r.Min.X, y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			cov := m.Pix[mi]
			mi++
			px := dst.Pix[di : di+4 : di+4]
			di += 4
			if !p.AntiAlias {
				cov = blend.Threshold(cov)
			}
			if cov == 0 {
				continue
			}
			if !solid {
				col = p.ColorAt(float64(x)+0.5, float64(y)+0.5)
			}
			blend.SourceOver(px, col.R, col.G, col.B, col.A, cov)
		}
	}
}
