package emoji

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

// Fetcher retrieves the bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// DefaultMaxBytes caps a downloaded emoji image.
const DefaultMaxBytes = 4 << 20

// HTTPFetcher downloads over HTTP(S).
type HTTPFetcher struct {
	// Client defaults to a client with a 10 second timeout.
	Client *http.Client

	// UserAgent is sent when non-empty. Some CDNs reject empty agents.
	UserAgent string

	// MaxBytes limits the body size; <= 0 means DefaultMaxBytes.
	MaxBytes int64
}

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// Fetch implements Fetcher. Non-2xx responses are errors.
func (h *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	client := h.Client
	if client == nil {
		client = defaultHTTPClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	limit := h.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// StatusError is returned by HTTPFetcher for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Permanent reports whether retrying the request is pointless: client
// errors other than timeouts and rate limiting.
func (e *StatusError) Permanent() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// permanent reports whether a fetch error will recur on retry. Errors that
// implement Permanent() decide for themselves; missing files are permanent.
// Everything else, such as network failures and 5xx responses, is not.
func permanent(err error) bool {
	var p interface{ Permanent() bool }
	if errors.As(err, &p) {
		return p.Permanent()
	}
	return errors.Is(err, fs.ErrNotExist)
}

// readFile loads Dir source images.
func readFile(_ context.Context, path string) ([]byte, error) {
	// #nosec G304 -- the emoji directory is chosen by the caller
	return os.ReadFile(path)
}
