// Package tableset owns the process-wide property tables. A Registry holds an
// immutable table set and swaps it atomically on reload; a Watcher reloads
// the registry when table files in a directory change.
package tableset

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pygacity/sandlersteam/internal/steamdata"
	"github.com/pygacity/sandlersteam/pkg/log"
	"github.com/pygacity/sandlersteam/pkg/resolver"
)

// SourceEmbedded names the tables compiled into the binary.
const SourceEmbedded = "embedded"

// Loader produces a fresh set of tables.
type Loader func() (resolver.Tables, error)

// Set is one loaded generation of tables with its resolver.
type Set struct {
	Tables     resolver.Tables
	Resolver   *resolver.Resolver
	Source     string
	LoadedAt   time.Time
	Generation uint64
}

// ReloadHook observes every reload attempt. set is nil when err is not.
type ReloadHook func(set *Set, err error)

// Registry serves the current table set. Readers never block: a reload
// builds a complete new Set and publishes it with a single pointer swap, so
// in-flight resolutions keep the set they started with.
type Registry struct {
	current atomic.Pointer[Set]
	source  string
	load    Loader

	// mu serializes reloads.
	mu         sync.Mutex
	logger     log.Logger
	resolvOpts []resolver.Option
	hooks      []ReloadHook
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithResolverOptions sets options applied to every resolver the registry builds.
func WithResolverOptions(opts ...resolver.Option) Option {
	return func(r *Registry) {
		r.resolvOpts = append(r.resolvOpts, opts...)
	}
}

// WithReloadHook registers a hook called after every reload attempt.
func WithReloadHook(h ReloadHook) Option {
	return func(r *Registry) {
		r.hooks = append(r.hooks, h)
	}
}

// New creates a registry and performs the initial load.
func New(source string, load Loader, opts ...Option) (*Registry, error) {
	r := &Registry{
		source: source,
		load:   load,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Embedded loads the tables compiled into the binary.
func Embedded() Loader {
	return steamdata.Default
}

// Dir loads the table files in dir.
func Dir(dir string) Loader {
	return func() (resolver.Tables, error) {
		return steamdata.LoadDir(dir)
	}
}

// Open returns a registry over dir, or over the embedded tables when dir is empty.
func Open(dir string, opts ...Option) (*Registry, error) {
	if dir == "" {
		return New(SourceEmbedded, Embedded(), opts...)
	}
	return New(dir, Dir(dir), opts...)
}

// Current returns the active table set.
func (r *Registry) Current() *Set {
	return r.current.Load()
}

// Resolver returns the resolver of the active table set.
func (r *Registry) Resolver() *resolver.Resolver {
	return r.Current().Resolver
}

// Source returns where the registry loads tables from.
func (r *Registry) Source() string { return r.source }

// Reload loads the tables again and publishes them. On failure the active
// set is kept.
func (r *Registry) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tables, err := r.load()
	if err != nil {
		err = fmt.Errorf("load tables from %s: %w", r.source, err)
		r.logger.Warn("table reload failed", log.String("source", r.source), log.Err(err))
		r.notify(nil, err)
		return err
	}
	set, err := r.swap(tables)
	if err != nil {
		r.notify(nil, err)
		return err
	}
	r.logger.Info("tables loaded",
		log.String("source", set.Source),
		log.Int("superheated_isobars", set.Tables.Superheated.Len()),
		log.Int("subcooled_isobars", set.Tables.Subcooled.Len()),
		log.Any("generation", set.Generation))
	r.notify(set, nil)
	return nil
}

// Swap publishes tables built elsewhere.
func (r *Registry) Swap(tables resolver.Tables) (*Set, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, err := r.swap(tables)
	r.notify(set, err)
	return set, err
}

func (r *Registry) swap(tables resolver.Tables) (*Set, error) {
	res, err := resolver.New(tables, append([]resolver.Option{resolver.WithLogger(r.logger)}, r.resolvOpts...)...)
	if err != nil {
		return nil, err
	}
	var gen uint64 = 1
	if prev := r.current.Load(); prev != nil {
		gen = prev.Generation + 1
	}
	set := &Set{
		Tables:     tables,
		Resolver:   res,
		Source:     r.source,
		LoadedAt:   time.Now(),
		Generation: gen,
	}
	r.current.Store(set)
	return set, nil
}

func (r *Registry) notify(set *Set, err error) {
	for _, h := range r.hooks {
		h(set, err)
	}
}
