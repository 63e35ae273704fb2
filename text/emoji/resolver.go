package emoji

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/imagetext/cache"
	"github.com/gogpu/imagetext/internal/codec"
	"github.com/gogpu/imagetext/internal/logging"
)

// ResolverOption configures a Resolver.
type ResolverOption func(*resolverConfig)

type resolverConfig struct {
	fetcher    Fetcher
	readFile   func(ctx context.Context, path string) ([]byte, error)
	capacity   int
	failureTTL time.Duration
	now        func() time.Time
}

// DefaultFailureTTL is how long a transient fetch failure is remembered.
const DefaultFailureTTL = 30 * time.Second

func defaultResolverConfig() resolverConfig {
	return resolverConfig{
		fetcher:    &HTTPFetcher{UserAgent: "imagetext"},
		readFile:   readFile,
		capacity:   512,
		failureTTL: DefaultFailureTTL,
		now:        time.Now,
	}
}

// WithFetcher replaces the network fetcher (tests use an in-memory one).
func WithFetcher(f Fetcher) ResolverOption {
	return func(c *resolverConfig) { c.fetcher = f }
}

// WithFileReader replaces how Dir sources read files.
func WithFileReader(read func(ctx context.Context, path string) ([]byte, error)) ResolverOption {
	return func(c *resolverConfig) { c.readFile = read }
}

// WithCacheCapacity sets the per-shard bitmap cache capacity.
func WithCacheCapacity(n int) ResolverOption {
	return func(c *resolverConfig) { c.capacity = n }
}

// WithFailureTTL sets how long transient failures (network errors, 5xx
// responses) are cached before the next Resolve retries them. d <= 0
// disables caching of transient failures. Permanent failures, such as 4xx
// responses, missing files and undecodable images, are cached until evicted.
func WithFailureTTL(d time.Duration) ResolverOption {
	return func(c *resolverConfig) { c.failureTTL = d }
}

// resolved is a cached outcome. Transient failures carry an expiry.
type resolved struct {
	img     image.Image
	err     error
	expires time.Time
}

func (v resolved) fresh(now time.Time) bool {
	return v.expires.IsZero() || now.Before(v.expires)
}

// Resolver turns tokens into decoded bitmaps. Results, including failures,
// are cached per (source, token); concurrent requests for the same key share
// one fetch. Resolver is safe for concurrent use.
type Resolver struct {
	cfg   resolverConfig
	cache *cache.Sharded[string, resolved]
	group singleflight.Group
}

// NewResolver creates a resolver. By default it fetches over HTTP.
func NewResolver(opts ...ResolverOption) *Resolver {
	cfg := defaultResolverConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Resolver{
		cfg:   cfg,
		cache: cache.NewSharded[string, resolved](cfg.capacity, cache.StringHasher),
	}
}

var (
	defaultResolverOnce sync.Once
	defaultResolver     *Resolver
)

// DefaultResolver returns the process-wide resolver.
func DefaultResolver() *Resolver {
	defaultResolverOnce.Do(func() {
		defaultResolver = NewResolver()
	})
	return defaultResolver
}

// Placeholder returns the transparent 1×1 bitmap used for failed fetches.
func Placeholder() image.Image {
	return image.NewNRGBA(image.Rect(0, 0, 1, 1))
}

// Resolve returns the bitmap for tok. On failure it returns the transparent
// placeholder together with an error wrapping ErrFetch. The failure is
// logged and cached: permanent ones until evicted, transient ones for the
// failure TTL.
func (r *Resolver) Resolve(ctx context.Context, src Source, tok Token) (image.Image, error) {
	key := src.key() + "|" + tok.key()
	if tok.Kind == External {
		key = tok.key()
	}
	if v, ok := r.cache.Get(key); ok && v.fresh(r.cfg.now()) {
		return v.img, v.err
	}

	v, _, _ := r.group.Do(key, func() (any, error) {
		if v, ok := r.cache.Get(key); ok && v.fresh(r.cfg.now()) {
			return v, nil
		}
		res, transient := r.load(ctx, src, tok)
		switch {
		case res.err == nil:
			r.cache.Set(key, res)
		case ctx.Err() != nil:
			// A cancelled caller must not pin a failure for everyone else.
		case !transient:
			r.cache.Set(key, res)
		case r.cfg.failureTTL > 0:
			res.expires = r.cfg.now().Add(r.cfg.failureTTL)
			r.cache.Set(key, res)
		default:
			r.cache.Delete(key)
		}
		return res, nil
	})
	res := v.(resolved)
	return res.img, res.err
}

// load fetches and decodes one bitmap. transient reports a failure worth
// retrying later.
func (r *Resolver) load(ctx context.Context, src Source, tok Token) (res resolved, transient bool) {
	var (
		data     []byte
		err      error
		location string
	)
	switch {
	case tok.Kind == External || !src.IsDir():
		location = src.URL(tok)
		data, err = r.cfg.fetcher.Fetch(ctx, location)
	default:
		location = src.FilePath(tok)
		data, err = r.cfg.readFile(ctx, location)
	}

	var img image.Image
	if err == nil {
		img, err = codec.DecodeBytes(data)
	} else {
		transient = !permanent(err)
	}
	if err != nil {
		logging.Logger().Warn("emoji: fetch failed",
			"emoji", tok.Raw, "source", src.String(), "location", location,
			"transient", transient, "err", err)
		return resolved{img: Placeholder(), err: fmt.Errorf("%w: %s: %w", ErrFetch, location, err)}, transient
	}
	logging.Logger().Debug("emoji: fetched", "emoji", tok.Raw, "location", location,
		"size", img.Bounds().Size())
	return resolved{img: img}, false
}

// Forget drops every cached bitmap.
func (r *Resolver) Forget() {
	r.cache.Clear()
}

// CacheStats reports cache counters.
func (r *Resolver) CacheStats() cache.Stats {
	return r.cache.Stats()
}
