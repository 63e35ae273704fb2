package imagetext

import "errors"

// Sentinel errors for the imagetext package. Text, emoji and registry
// failures come from the text, text/emoji and fontdb packages and are
// returned wrapped.
var (
	// ErrInvalidInput reports an argument outside its domain: zero canvas
	// dimensions, a negative size, a malformed color or buffer.
	ErrInvalidInput = errors.New("imagetext: invalid input")

	// ErrCanvasBusy is returned by draws using WithTryLock when another
	// goroutine holds the canvas. Retrying later is safe.
	ErrCanvasBusy = errors.New("imagetext: canvas busy")

	// ErrCanvasPoisoned is returned for every operation on a canvas whose
	// previous draw panicked while holding the lock.
	ErrCanvasPoisoned = errors.New("imagetext: canvas poisoned")
)
