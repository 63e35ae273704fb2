package fontdb

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/imagetext/internal/logging"
	"github.com/gogpu/imagetext/text"
	"github.com/gogpu/imagetext/text/emoji"
)

// fontExts are the file extensions LoadFromDir considers.
var fontExts = map[string]bool{
	".ttf": true,
	".otf": true,
	".ttc": true,
	".otc": true,
}

// Option configures a Registry.
type Option func(*Registry)

// WithParseConcurrency bounds the number of fonts parsed in parallel by
// LoadFromDir and LoadSystemFonts. The default is GOMAXPROCS.
func WithParseConcurrency(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.parallel = n
		}
	}
}

// WithSourceOptions passes options to every text.NewFontSource call.
func WithSourceOptions(opts ...text.SourceOption) Option {
	return func(r *Registry) {
		r.sourceOpts = append(r.sourceOpts, opts...)
	}
}

// Registry maps names to font sources.
type Registry struct {
	mu    sync.RWMutex
	fonts map[string]*text.FontSource
	emoji emoji.Options

	parallel   int
	sourceOpts []text.SourceOption
}

// New creates an empty registry whose default emoji options are
// emoji.DefaultOptions.
func New(opts ...Option) *Registry {
	r := &Registry{
		fonts:    make(map[string]*text.FontSource),
		emoji:    emoji.DefaultOptions(),
		parallel: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers src under name, replacing any previous entry.
func (r *Registry) Add(name string, src *text.FontSource) error {
	if name == "" {
		return ErrEmptyName
	}
	if src == nil {
		return text.ErrNilSource
	}
	r.mu.Lock()
	r.fonts[name] = src
	r.mu.Unlock()
	logging.Logger().Debug("fontdb: registered", "name", name, "family", src.Family())
	return nil
}

// LoadFromPath parses the font at path and registers it under name.
func (r *Registry) LoadFromPath(name, path string) error {
	src, err := text.NewFontSourceFromFile(path, r.sourceOpts...)
	if err != nil {
		return fmt.Errorf("fontdb: load %s: %w", path, err)
	}
	return r.Add(name, src)
}

// LoadFromBytes parses data and registers it under name.
func (r *Registry) LoadFromBytes(name string, data []byte) error {
	src, err := text.NewFontSource(data, r.sourceOpts...)
	if err != nil {
		return fmt.Errorf("fontdb: load %s: %w", name, err)
	}
	return r.Add(name, src)
}

// LoadFromDir recursively loads every font file below dir, keyed by family
// name. When a family is already taken the face is keyed by its full name.
// Files that fail to parse are logged and skipped. It returns the number of
// fonts registered.
func (r *Registry) LoadFromDir(ctx context.Context, dir string) (int, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() && fontExts[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("fontdb: scan %s: %w", dir, err)
	}
	return r.loadFiles(ctx, paths)
}

// LoadSystemFonts loads the fonts found in the operating system's font
// directories.
func (r *Registry) LoadSystemFonts(ctx context.Context) (int, error) {
	paths := findfont.List()
	logging.Logger().Info("fontdb: scanning system fonts", "files", len(paths))
	return r.loadFiles(ctx, paths)
}

// LoadSystemFont finds a font file by name (e.g. "DejaVuSans.ttf") in the
// system font directories and registers it under name.
func (r *Registry) LoadSystemFont(name, file string) error {
	path, err := findfont.Find(file)
	if err != nil {
		return fmt.Errorf("fontdb: %w: %s", ErrNotFound, err)
	}
	return r.LoadFromPath(name, path)
}

// loadFiles parses paths in parallel and registers the results in path
// order, so keys do not depend on scheduling.
func (r *Registry) loadFiles(ctx context.Context, paths []string) (int, error) {
	slices.Sort(paths)
	sources := make([]*text.FontSource, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := text.NewFontSourceFromFile(path, r.sourceOpts...)
			if err != nil {
				logging.Logger().Warn("fontdb: skipping font", "path", path, "err", err)
				return nil
			}
			sources[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("fontdb: load: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	seen := make(map[string]bool)
	for _, src := range sources {
		if src == nil {
			continue
		}
		key := src.Family()
		if key == "" {
			key = src.Name()
		}
		if seen[key] || r.fonts[key] != nil {
			if full := src.FullName(); full != "" {
				key = full
			}
		}
		seen[key] = true
		r.fonts[key] = src
		n++
	}
	logging.Logger().Info("fontdb: loaded fonts", "count", n, "files", len(paths))
	return n, nil
}

// Get returns the source registered under name.
func (r *Registry) Get(name string) (*text.FontSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.fonts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return src, nil
}

// Remove unregisters name and reports whether it was present. Fonts already
// built from the source keep working.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.fonts[name]
	delete(r.fonts, name)
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered fonts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fonts)
}

// SetDefaultEmojiOptions sets the emoji policy given to fonts built by Query.
func (r *Registry) SetDefaultEmojiOptions(opts emoji.Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emoji = opts
}

// DefaultEmojiOptions returns the emoji policy given to fonts built by Query.
func (r *Registry) DefaultEmojiOptions() emoji.Options {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emoji
}

// Query builds a composite font from every registered font matching q, best
// match first, with the registry's default emoji options.
func (r *Registry) Query(q string) (*text.Font, error) {
	return r.QueryWithEmoji(q, r.DefaultEmojiOptions())
}

// QueryWithEmoji is Query with an explicit emoji policy.
func (r *Registry) QueryWithEmoji(q string, opts emoji.Options) (*text.Font, error) {
	pq := ParseQuery(q)

	r.mu.RLock()
	cands := make([]candidate, 0, len(r.fonts))
	for name, src := range r.fonts {
		if c, ok := pq.score(name, src); ok {
			cands = append(cands, c)
		}
	}
	r.mu.RUnlock()

	if len(cands) == 0 {
		return nil, &QueryError{Query: q, Err: ErrNoMatch}
	}
	rank(cands)

	// One source registered under several names is used once, at its best
	// rank.
	seen := map[uint64]bool{cands[0].src.ID(): true}
	fallbacks := make([]*text.FontSource, 0, len(cands)-1)
	for _, c := range cands[1:] {
		if id := c.src.ID(); !seen[id] {
			seen[id] = true
			fallbacks = append(fallbacks, c.src)
		}
	}
	logging.Logger().Debug("fontdb: query", "query", q, "primary", cands[0].name, "fallbacks", len(fallbacks))
	return text.NewFont(cands[0].src, text.WithFallbacks(fallbacks...), text.WithEmojiOptions(opts))
}
