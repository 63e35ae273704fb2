package imagetext

import (
	"fmt"
	"math"

	"github.com/gogpu/imagetext/text"
)

func checkMeasure(f *text.Font, size float64) error {
	if f == nil {
		return fmt.Errorf("%w: nil font", ErrInvalidInput)
	}
	if size < 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return fmt.Errorf("%w: size %v", ErrInvalidInput, size)
	}
	return nil
}

// TextSize returns the advance width and line height of s at size pixels.
// With withEmoji each emoji counts as a square of lineHeight·scale.
func TextSize(s string, size float64, f *text.Font, withEmoji bool) (w, h float64, err error) {
	if err := checkMeasure(f, size); err != nil {
		return 0, 0, err
	}
	w, h = f.TextSize(s, size, withEmoji)
	return w, h, nil
}

// TextSizeMultiline returns the widest line and ceil(n·lineHeight·spacing).
func TextSizeMultiline(lines []string, size float64, f *text.Font, spacing float64, withEmoji bool) (w, h float64, err error) {
	if err := checkMeasure(f, size); err != nil {
		return 0, 0, err
	}
	if spacing < 0 || math.IsNaN(spacing) {
		return 0, 0, fmt.Errorf("%w: line spacing %v", ErrInvalidInput, spacing)
	}
	w, h = f.TextSizeMultiline(lines, size, spacing, withEmoji)
	return w, h, nil
}

// TextWrap breaks s into lines no wider than width pixels.
func TextWrap(s string, width, size float64, f *text.Font, style WrapStyle, withEmoji bool) ([]string, error) {
	if err := checkMeasure(f, size); err != nil {
		return nil, err
	}
	return f.Wrap(s, width, size, style, withEmoji), nil
}

// SplitOnSpace splits s into words that keep their trailing whitespace.
func SplitOnSpace(s string) []string {
	return text.SplitOnSpace(s)
}
