package emoji

import "errors"

var (
	// ErrInvalidToken reports a malformed source name or token.
	ErrInvalidToken = errors.New("emoji: invalid token")

	// ErrFetch wraps every failure to obtain or decode an emoji bitmap.
	ErrFetch = errors.New("emoji: fetch failed")
)
