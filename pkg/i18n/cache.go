package i18n

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/folio/pkg/async"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// Cache holds the translation trees of one language.
//
// Each namespace is loaded from the Source at most once at a time: the first
// Request starts the load and memoizes its future, concurrent requests receive
// the same future. A successfully loaded tree is kept for the lifetime of the
// Cache and never mutated.
type Cache struct {
	lang    string
	source  Source
	logger  *slog.Logger
	baseCtx context.Context
	sticky  bool
	known   map[Namespace]struct{}

	mu      sync.Mutex
	entries map[Namespace]*async.Future[Node]
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the logger used to report load failures.
func WithLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStickyFailures keeps failed loads memoized, so a namespace that failed
// once is never fetched again.
func WithStickyFailures() CacheOption {
	return func(c *Cache) {
		c.sticky = true
	}
}

// WithKnownNamespaces restricts the cache to the listed namespaces. Requests for
// any other name fail with ErrNamespaceNotFound without reaching the Source.
func WithKnownNamespaces(namespaces ...Namespace) CacheOption {
	return func(c *Cache) {
		c.known = make(map[Namespace]struct{}, len(namespaces))
		for _, ns := range namespaces {
			c.known[ns] = struct{}{}
		}
	}
}

// WithBaseContext sets the context loads run under. Requesters never cancel
// a load; only cancelling this context does.
func WithBaseContext(ctx context.Context) CacheOption {
	return func(c *Cache) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}

// NewCache creates an empty cache for lang backed by source.
func NewCache(lang string, source Source, opts ...CacheOption) *Cache {
	c := &Cache{
		lang:    lang,
		source:  source,
		logger:  slog.Default(),
		baseCtx: context.Background(),
		entries: make(map[Namespace]*async.Future[Node]),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("i18n"), logger.Lang(lang))
	return c
}

// Language returns the language code served by the cache.
func (c *Cache) Language() string {
	return c.lang
}

// Request returns the future of the namespace tree.
// A cached namespace yields an already resolved future. Otherwise one load is
// started and every concurrent caller shares its future. A failed load is
// forgotten once it completes, so a later Request tries again, unless the cache
// was built WithStickyFailures.
func (c *Cache) Request(ns Namespace) *async.Future[Node] {
	if !ValidNamespace(ns) {
		return async.Failed[Node](fmt.Errorf("%w: %q", ErrInvalidNamespace, ns))
	}
	if !c.Known(ns) {
		return async.Failed[Node](fmt.Errorf("%w: %s/%s", ErrNamespaceNotFound, c.lang, ns))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.entries[ns]; ok {
		_, err, done := f.Peek()
		if !done || err == nil || c.sticky {
			return f
		}
	}

	f := async.Go(c.baseCtx, func(ctx context.Context) (Node, error) {
		return c.load(ctx, ns)
	})
	c.entries[ns] = f
	return f
}

// Known reports whether ns may be requested. Every valid name is known unless
// the cache was built WithKnownNamespaces.
func (c *Cache) Known(ns Namespace) bool {
	if c.known == nil {
		return true
	}
	_, ok := c.known[ns]
	return ok
}

func (c *Cache) load(ctx context.Context, ns Namespace) (node Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			node, err = nil, fmt.Errorf("%w: source panicked: %v", ErrFailedToRead, r)
		}
		if err != nil {
			c.logger.ErrorContext(ctx, "failed to load translations",
				logger.Event("namespace_load_failed"),
				logger.Namespace(string(ns)),
				logger.Error(err),
			)
		}
	}()

	node, err = c.source.Fetch(ctx, c.lang, ns)
	if err != nil {
		return nil, err
	}
	if node == nil {
		node = Node{}
	}
	c.logger.DebugContext(ctx, "translations loaded",
		logger.Namespace(string(ns)),
		slog.Int("keys", len(Keys(node))),
	)
	return node, nil
}

// Get returns the tree of a populated namespace without blocking or loading.
func (c *Cache) Get(ns Namespace) (Node, bool) {
	c.mu.Lock()
	f, ok := c.entries[ns]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	node, err, done := f.Peek()
	if !done || err != nil {
		return nil, false
	}
	return node, true
}

// Use requests ns and returns a Binding over its future.
func (c *Cache) Use(ns Namespace) *Binding {
	return &Binding{ns: ns, cache: c, future: c.Request(ns)}
}

// UseMany binds several namespaces at once.
func (c *Cache) UseMany(namespaces ...Namespace) *Set {
	s := &Set{bindings: make(map[Namespace]*Binding, len(namespaces))}
	for _, ns := range namespaces {
		if _, ok := s.bindings[ns]; ok {
			continue
		}
		s.bindings[ns] = c.Use(ns)
		s.order = append(s.order, ns)
	}
	return s
}

// Preload requests every namespace concurrently and waits until all loads finish
// or ctx is done. It returns the joined load errors.
func (c *Cache) Preload(ctx context.Context, namespaces ...Namespace) error {
	errs := make([]error, len(namespaces))

	var g errgroup.Group
	for i, ns := range namespaces {
		g.Go(func() error {
			if _, err := c.Request(ns).Await(ctx); err != nil {
				errs[i] = fmt.Errorf("%s/%s: %w", c.lang, ns, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// Loaded returns the sorted list of populated namespaces.
func (c *Cache) Loaded() []Namespace {
	c.mu.Lock()
	defer c.mu.Unlock()

	loaded := make([]Namespace, 0, len(c.entries))
	for ns, f := range c.entries {
		if _, err, done := f.Peek(); done && err == nil {
			loaded = append(loaded, ns)
		}
	}
	slices.Sort(loaded)
	return loaded
}
