package imagetext

import (
	"log/slog"

	"github.com/gogpu/imagetext/internal/logging"
)

// SetLogger configures the logger for imagetext and all its sub-packages
// (text, text/emoji, fontdb). By default nothing is logged.
//
// SetLogger is safe for concurrent use. Pass nil to restore silent output.
//
// Log levels used by imagetext:
//   - [slog.LevelDebug]: glyph cache misses, fallback font selection, scanned files
//   - [slog.LevelInfo]: registry lifecycle (fonts loaded, system scan totals)
//   - [slog.LevelWarn]: recovered failures (emoji fetch, unreadable font in a directory)
//
// Example:
//
//	imagetext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the logger currently used by imagetext.
func Logger() *slog.Logger {
	return logging.Logger()
}
