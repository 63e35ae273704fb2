package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNilSource is returned when a nil FontSource is passed to NewFont.
	ErrNilSource = errors.New("text: nil font source")

	// ErrUnknownParser is returned when WithParser names an unregistered parser.
	ErrUnknownParser = errors.New("text: unknown font parser")

	// ErrInvalidSize is returned for negative or non-finite pixel sizes.
	ErrInvalidSize = errors.New("text: invalid size")
)
