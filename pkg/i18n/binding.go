package i18n

import (
	"context"

	"github.com/dmitrymomot/folio/pkg/async"
)

// Binding is a consumer view of one namespace.
// It is safe for concurrent use and never blocks on T. A binding whose load
// failed picks up the tree once a later Request on the same cache succeeds.
type Binding struct {
	ns     Namespace
	cache  *Cache
	future *async.Future[Node]
}

// Namespace returns the bound namespace.
func (b *Binding) Namespace() Namespace {
	return b.ns
}

// T translates key, falling back to the key while the namespace is unavailable.
func (b *Binding) T(key string) string {
	node, ok := b.tree()
	if !ok {
		return key
	}
	return Lookup(node, key)
}

// Loading reports whether the tree has not been populated yet.
// It stays true after a failed load.
func (b *Binding) Loading() bool {
	_, ok := b.tree()
	return !ok
}

// Translations returns the raw tree, or an empty Node while loading.
func (b *Binding) Translations() Node {
	node, ok := b.tree()
	if !ok {
		return Node{}
	}
	return node
}

// Wait blocks until the load completes or ctx is done and returns the load error.
func (b *Binding) Wait(ctx context.Context) error {
	_, err := b.future.Await(ctx)
	return err
}

// Ready is closed once the load has completed, successfully or not.
func (b *Binding) Ready() <-chan struct{} {
	return b.future.Done()
}

// Err returns the error of the bound load, or nil while loading or after success.
func (b *Binding) Err() error {
	_, err, _ := b.future.Peek()
	return err
}

func (b *Binding) tree() (Node, bool) {
	node, err, done := b.future.Peek()
	if !done {
		return nil, false
	}
	if err != nil {
		return b.cache.Get(b.ns)
	}
	return node, true
}

// Set gives access to several namespaces of one language.
type Set struct {
	bindings map[Namespace]*Binding
	order    []Namespace
}

// T translates key in ns. Unknown namespaces fall back to the key.
func (s *Set) T(ns Namespace, key string) string {
	b, ok := s.bindings[ns]
	if !ok {
		return key
	}
	return b.T(key)
}

// Binding returns the binding of ns, or nil when ns is not part of the set.
func (s *Set) Binding(ns Namespace) *Binding {
	return s.bindings[ns]
}

// Namespaces returns the bound namespaces in the order they were requested.
func (s *Set) Namespaces() []Namespace {
	return append([]Namespace(nil), s.order...)
}

// Loading reports whether any namespace of the set is not populated.
func (s *Set) Loading() bool {
	for _, b := range s.bindings {
		if b.Loading() {
			return true
		}
	}
	return false
}

// Wait waits for every namespace and returns the joined load errors.
func (s *Set) Wait(ctx context.Context) error {
	futures := make([]*async.Future[Node], 0, len(s.order))
	for _, ns := range s.order {
		futures = append(futures, s.bindings[ns].future)
	}
	_, err := async.WaitAll(ctx, futures...)
	return err
}
