package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	gotext "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
)

var sourceIDs atomic.Uint64

// FontSource represents a loaded font file: the glyph provider behind a
// composite Font. It owns a private copy of the font bytes for its whole
// lifetime because parsed tables reference them.
//
// FontSource is immutable and safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr must point to the FontSource itself.
	addr *FontSource

	id     uint64
	data   []byte
	parsed ParsedFont

	name   string
	path   string
	style  xfont.Style
	weight xfont.Weight

	coverage *coverageMap

	shapingOnce sync.Once
	shapingFont *gotext.Font
	shapingErr  error
}

// NewFontSource creates a FontSource from font data (TTF, OTF or TTC).
// The data slice is copied before parsing and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	return newFontSource(owned, "", opts)
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFontData, path)
	}
	return newFontSource(data, path, opts)
}

func newFontSource(data []byte, path string, opts []SourceOption) (*FontSource, error) {
	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}
	parser, err := getParser(config.parserName)
	if err != nil {
		return nil, err
	}
	parsed, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		id:       sourceIDs.Add(1),
		data:     data,
		parsed:   parsed,
		path:     path,
		coverage: newCoverageMap(),
	}
	s.addr = s
	s.name = config.name
	if s.name == "" {
		s.name = extractFontName(parsed)
	}
	s.style, s.weight = GuessStyle(parsed.Subfamily())
	return s, nil
}

// ID returns a process-unique identifier, used in cache keys.
func (s *FontSource) ID() uint64 {
	s.copyCheck()
	return s.id
}

// Name returns the font name (family name unless overridden by WithName).
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Family returns the typographic family name.
func (s *FontSource) Family() string {
	s.copyCheck()
	return s.parsed.Family()
}

// Subfamily returns the style name, e.g. "Bold Italic".
func (s *FontSource) Subfamily() string {
	s.copyCheck()
	return s.parsed.Subfamily()
}

// FullName returns the full font name.
func (s *FontSource) FullName() string {
	s.copyCheck()
	return s.parsed.FullName()
}

// Path returns the file the source was loaded from, or "" for in-memory data.
func (s *FontSource) Path() string {
	s.copyCheck()
	return s.path
}

// Style returns the slant guessed from the subfamily name.
func (s *FontSource) Style() xfont.Style {
	s.copyCheck()
	return s.style
}

// Weight returns the weight guessed from the subfamily name.
func (s *FontSource) Weight() xfont.Weight {
	s.copyCheck()
	return s.weight
}

// Parsed returns the parsed font for advanced operations.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	return s.parsed
}

// HasGlyph reports whether the font maps r to a real glyph.
func (s *FontSource) HasGlyph(r rune) bool {
	s.copyCheck()
	if has, checked := s.coverage.get(r); checked {
		return has
	}
	has := s.parsed.GlyphIndex(r) != 0
	s.coverage.set(r, has)
	return has
}

// shapingFace returns the go-text font used for HarfBuzz shaping, parsed on
// first use. font.Font is read-only and safe for concurrent use.
func (s *FontSource) shapingFace() (*gotext.Font, error) {
	s.shapingOnce.Do(func() {
		face, err := gotext.ParseTTF(bytes.NewReader(s.data))
		if err != nil {
			s.shapingErr = fmt.Errorf("text: go-text parse %s: %w", s.name, err)
			return
		}
		s.shapingFont = face.Font
	})
	return s.shapingFont, s.shapingErr
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}
