// Package emoji finds emoji in text and turns them into bitmaps.
//
// Three spellings are recognized, in this order of precedence at any given
// position:
//
//   - external custom emoji: <:name:id> (when Options.ParseDiscordEmojis)
//   - shortcodes: :smile: (when Options.ParseShortcodes, CLDR/gemoji names)
//   - Unicode sequences following UTS #51: presentation characters,
//     text-default characters with U+FE0F, skin tone modifiers, ZWJ
//     sequences, flags, keycaps and subdivision tag sequences
//
// Tokenize splits a string into text and emoji segments. A Resolver fetches
// the bitmap for a token from the configured Source (a named CDN layout or a
// local directory of <hex>.png files) and caches it; fetch failures degrade to
// a transparent 1×1 bitmap.
//
//	for _, seg := range emoji.Tokenize("hi :wave: 😀", emoji.DefaultOptions()) {
//	    if seg.Emoji != nil {
//	        img, _ := emoji.DefaultResolver().Resolve(ctx, opts.Source, *seg.Emoji)
//	        _ = img
//	    }
//	}
//
// The lookup tables and patterns are built lazily on first use; call Prebuild
// to pay that cost up front.
package emoji
