package imagetext

import "github.com/gogpu/imagetext/text/emoji"

// PrebuildStaticVars builds the emoji tables (code point ranges, shortcode
// map, token patterns) now instead of on the first emoji-aware call. It is
// safe to call any number of times from any goroutine.
func PrebuildStaticVars() {
	emoji.Prebuild()
	_ = emoji.DefaultResolver()
}
