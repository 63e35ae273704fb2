package fontdb

import (
	"context"
	"sync"

	"github.com/gogpu/imagetext/text"
	"github.com/gogpu/imagetext/text/emoji"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// LoadFromPath calls Default().LoadFromPath.
func LoadFromPath(name, path string) error { return Default().LoadFromPath(name, path) }

// LoadFromBytes calls Default().LoadFromBytes.
func LoadFromBytes(name string, data []byte) error { return Default().LoadFromBytes(name, data) }

// LoadFromDir calls Default().LoadFromDir.
func LoadFromDir(ctx context.Context, dir string) (int, error) {
	return Default().LoadFromDir(ctx, dir)
}

// LoadSystemFonts calls Default().LoadSystemFonts.
func LoadSystemFonts(ctx context.Context) (int, error) { return Default().LoadSystemFonts(ctx) }

// Get calls Default().Get.
func Get(name string) (*text.FontSource, error) { return Default().Get(name) }

// Remove calls Default().Remove.
func Remove(name string) bool { return Default().Remove(name) }

// Query calls Default().Query.
func Query(q string) (*text.Font, error) { return Default().Query(q) }

// QueryWithEmoji calls Default().QueryWithEmoji.
func QueryWithEmoji(q string, opts emoji.Options) (*text.Font, error) {
	return Default().QueryWithEmoji(q, opts)
}

// SetDefaultEmojiOptions calls Default().SetDefaultEmojiOptions.
func SetDefaultEmojiOptions(opts emoji.Options) { Default().SetDefaultEmojiOptions(opts) }
