// Command imagetext renders a string of text (with optional emoji) into an
// image file.
//
//	imagetext -text "Hello 😀" -font "Go Bold 48" -emoji -out hello.png
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/imagetext"
	"github.com/gogpu/imagetext/fontdb"
	"github.com/gogpu/imagetext/text/emoji"
)

func main() {
	var (
		msg         = flag.String("text", "Hello, world!", "text to draw; \\n starts a new line")
		query       = flag.String("font", "Go 48", "font query: family, weight, style and size")
		fontDir     = flag.String("fontdir", "", "directory of extra fonts to register")
		system      = flag.Bool("system", false, "register the system fonts")
		width       = flag.Int("width", 800, "image width")
		height      = flag.Int("height", 200, "image height")
		wrapWidth   = flag.Float64("wrap", 0, "wrap width in pixels (0 disables wrapping)")
		charWrap    = flag.Bool("charwrap", false, "break oversize words between characters")
		align       = flag.String("align", "center", "line alignment: left, center or right")
		bg          = flag.String("bg", "#ffffff", "background color")
		fg          = flag.String("color", "#000000", "text color")
		rainbow     = flag.Bool("rainbow", false, "paint the text with a rainbow gradient")
		stroke      = flag.Float64("stroke", 0, "outline width in pixels")
		strokeColor = flag.String("stroke-color", "#000000", "outline color")
		noAA        = flag.Bool("no-aa", false, "disable anti-aliasing")
		withEmoji   = flag.Bool("emoji", false, "render emoji as images")
		emojiSource = flag.String("emoji-source", "twitter", "emoji provider name or dir:<path>")
		spacing     = flag.Float64("spacing", 1, "line spacing factor")
		output      = flag.String("out", "text.png", "output file (.png, .jpg, .gif, .bmp, .tiff, .webp)")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		imagetext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	reg, size, err := setupFonts(*query, *fontDir, *system)
	if err != nil {
		log.Fatalf("fonts: %v", err)
	}
	src, err := emoji.ParseSource(*emojiSource)
	if err != nil {
		log.Fatalf("emoji source: %v", err)
	}
	eo := emoji.DefaultOptions()
	eo.Source = src
	f, err := reg.QueryWithEmoji(*query, eo)
	if err != nil {
		log.Fatalf("font %q: %v", *query, err)
	}

	bgColor, err := imagetext.Hex(*bg)
	if err != nil {
		log.Fatal(err)
	}
	fgColor, err := imagetext.Hex(*fg)
	if err != nil {
		log.Fatal(err)
	}
	c, err := imagetext.NewCanvas(*width, *height, bgColor)
	if err != nil {
		log.Fatal(err)
	}

	paint := imagetext.NewPaint(fgColor, !*noAA)
	if *rainbow {
		paint = imagetext.PaintRainbow(imagetext.Point{}, imagetext.Point{X: float64(*width)})
		paint.SetAntiAlias(!*noAA)
	}

	opts := []imagetext.DrawOption{imagetext.WithLineSpacing(*spacing)}
	switch strings.ToLower(*align) {
	case "left":
		opts = append(opts, imagetext.WithAlign(imagetext.AlignLeft))
	case "right":
		opts = append(opts, imagetext.WithAlign(imagetext.AlignRight))
	default:
		opts = append(opts, imagetext.WithAlign(imagetext.AlignCenter))
	}
	if *charWrap {
		opts = append(opts, imagetext.WithWrapStyle(imagetext.WrapCharacter))
	}
	if *stroke > 0 {
		sc, err := imagetext.Hex(*strokeColor)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, imagetext.WithStroke(*stroke, imagetext.NewPaint(sc, !*noAA)))
	}
	if *withEmoji {
		imagetext.PrebuildStaticVars()
		opts = append(opts, imagetext.WithEmoji())
	}

	cx, cy := float64(*width)/2, float64(*height)/2
	s := strings.ReplaceAll(*msg, `\n`, "\n")
	if *wrapWidth > 0 {
		err = imagetext.DrawTextWrapped(c, s, cx, cy, 0.5, 0.5, *wrapWidth, size, f, paint, opts...)
	} else {
		err = imagetext.DrawTextMultiline(c, strings.Split(s, "\n"), cx, cy, 0.5, 0.5, 0, size, f, paint, opts...)
	}
	if err != nil {
		log.Fatalf("draw: %v", err)
	}

	if err := c.Save(*output); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("Saved %s (%dx%d)\n", *output, *width, *height)
}

// setupFonts registers the bundled Go fonts plus any requested extras and
// returns the pixel size named in query (48 when absent).
func setupFonts(query, dir string, system bool) (*fontdb.Registry, float64, error) {
	reg := fontdb.New()
	bundled := []struct {
		name string
		data []byte
	}{
		{"Go", goregular.TTF},
		{"Go Bold", gobold.TTF},
		{"Go Italic", goitalic.TTF},
		{"Go Bold Italic", gobolditalic.TTF},
		{"Go Mono", gomono.TTF},
	}
	for _, b := range bundled {
		if err := reg.LoadFromBytes(b.name, b.data); err != nil {
			return nil, 0, fmt.Errorf("bundled font %s: %w", b.name, err)
		}
	}

	ctx := context.Background()
	if dir != "" {
		if _, err := reg.LoadFromDir(ctx, dir); err != nil {
			return nil, 0, err
		}
	}
	if system {
		if _, err := reg.LoadSystemFonts(ctx); err != nil {
			return nil, 0, err
		}
	}

	pq := fontdb.ParseQuery(query)
	size := 48.0
	if pq.Size > 0 {
		size = pq.Size
	}
	return reg, size, nil
}
