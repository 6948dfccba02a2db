package i18n_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/i18n"
)

// countingSource serves fixed trees, counts fetches per namespace and
// optionally holds every fetch until release is closed.
type countingSource struct {
	mu      sync.Mutex
	calls   map[i18n.Namespace]int
	trees   map[i18n.Namespace]i18n.Node
	release chan struct{}
}

func newCountingSource(trees map[i18n.Namespace]i18n.Node) *countingSource {
	return &countingSource{calls: map[i18n.Namespace]int{}, trees: trees}
}

func (s *countingSource) Fetch(ctx context.Context, lang string, ns i18n.Namespace) (i18n.Node, error) {
	s.mu.Lock()
	s.calls[ns]++
	release := s.release
	s.mu.Unlock()

	if release != nil {
		<-release
	}

	tree, ok := s.trees[ns]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", i18n.ErrNamespaceNotFound, lang, ns)
	}
	return tree, nil
}

func (s *countingSource) count(ns i18n.Namespace) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[ns]
}

func contactTree() i18n.Node {
	return i18n.Node{"form": i18n.Node{"email": i18n.Node{"label": i18n.Leaf("Correo")}}}
}

func TestCache_SingleFlight(t *testing.T) {
	t.Parallel()

	src := newCountingSource(map[i18n.Namespace]i18n.Node{"contact": contactTree()})
	src.release = make(chan struct{})
	cache := i18n.NewCache("es", src)

	first := cache.Use("contact")
	second := cache.Use("contact")

	assert.True(t, first.Loading())
	assert.True(t, second.Loading())
	assert.Equal(t, "form.email.label", first.T("form.email.label"))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Request("contact")
		}()
	}
	wg.Wait()

	close(src.release)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, first.Wait(ctx))
	require.NoError(t, second.Wait(ctx))

	assert.False(t, first.Loading())
	assert.Equal(t, "Correo", first.T("form.email.label"))
	assert.Equal(t, "Correo", second.T("form.email.label"))
	assert.Equal(t, first.Translations(), second.Translations())
	assert.Equal(t, 1, src.count("contact"))
}

func TestCache_CachedRequestIsImmediate(t *testing.T) {
	t.Parallel()

	src := newCountingSource(map[i18n.Namespace]i18n.Node{"common": {"nav": i18n.Node{"home": i18n.Leaf("Inicio")}}})
	cache := i18n.NewCache("es", src)

	_, err := cache.Request("common").Await(context.Background())
	require.NoError(t, err)

	for range 10 {
		f := cache.Request("common")
		assert.True(t, f.IsComplete(), "cached namespace must resolve without waiting")

		b := cache.Use("common")
		assert.False(t, b.Loading())
		assert.Equal(t, "Inicio", b.T("nav.home"))
	}

	got, ok := cache.Get("common")
	require.True(t, ok)
	assert.Equal(t, "Inicio", i18n.Lookup(got, "nav.home"))
	assert.Equal(t, 1, src.count("common"))
}

func TestCache_MissingNamespace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	src := newCountingSource(map[i18n.Namespace]i18n.Node{})
	cache := i18n.NewCache("es", src, i18n.WithLogger(log))

	b := cache.Use("missing")
	err := b.Wait(context.Background())
	require.ErrorIs(t, err, i18n.ErrNamespaceNotFound)
	assert.ErrorIs(t, b.Err(), i18n.ErrNamespaceNotFound)

	assert.True(t, b.Loading())
	assert.Equal(t, "title", b.T("title"))
	assert.Equal(t, i18n.Node{}, b.Translations())

	_, ok := cache.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, cache.Loaded())

	assert.Contains(t, buf.String(), "failed to load translations")
	assert.Contains(t, buf.String(), "namespace=missing")
	assert.Contains(t, buf.String(), "component=i18n")
}

func TestCache_FailureRetriedOnNextRequest(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	fail.Store(true)
	var calls atomic.Int32

	src := i18n.SourceFunc(func(ctx context.Context, lang string, ns i18n.Namespace) (i18n.Node, error) {
		calls.Add(1)
		if fail.Load() {
			return nil, errors.New("temporarily unavailable")
		}
		return i18n.Node{"title": i18n.Leaf("Proyectos")}, nil
	})
	cache := i18n.NewCache("es", src)
	ctx := context.Background()

	failed := cache.Use("projects")
	require.Error(t, failed.Wait(ctx))

	fail.Store(false)
	ok := cache.Use("projects")
	require.NoError(t, ok.Wait(ctx))

	assert.Equal(t, "Proyectos", ok.T("title"))
	assert.Equal(t, "Proyectos", failed.T("title"), "a failed binding sees the later load")
	assert.False(t, failed.Loading())
	assert.Error(t, failed.Err())
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, []i18n.Namespace{"projects"}, cache.Loaded())
}

func TestCache_StickyFailures(t *testing.T) {
	t.Parallel()

	src := newCountingSource(nil)
	cache := i18n.NewCache("es", src, i18n.WithStickyFailures())
	ctx := context.Background()

	for range 3 {
		_, err := cache.Request("missing").Await(ctx)
		require.ErrorIs(t, err, i18n.ErrNamespaceNotFound)
	}
	assert.Equal(t, 1, src.count("missing"))
}

func TestCache_InvalidNamespace(t *testing.T) {
	t.Parallel()

	src := newCountingSource(nil)
	cache := i18n.NewCache("es", src)

	_, err := cache.Request("../etc").Await(context.Background())
	assert.ErrorIs(t, err, i18n.ErrInvalidNamespace)
	assert.Equal(t, 0, src.count("../etc"))
}

func TestCache_KnownNamespaces(t *testing.T) {
	t.Parallel()

	src := newCountingSource(map[i18n.Namespace]i18n.Node{"contact": contactTree()})
	cache := i18n.NewCache("es", src, i18n.WithKnownNamespaces("contact"))

	for i := range 5 {
		_, err := cache.Request(i18n.Namespace(fmt.Sprintf("junk%d", i))).Await(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNamespaceNotFound)
	}
	assert.Equal(t, 0, src.count("junk0"))
	assert.False(t, cache.Known("junk0"))
	assert.Empty(t, cache.Loaded())

	_, err := cache.Request("contact").Await(context.Background())
	require.NoError(t, err)
	assert.True(t, cache.Known("contact"))
	assert.Equal(t, []i18n.Namespace{"contact"}, cache.Loaded())
}

func TestCache_WaitHonoursCallerContext(t *testing.T) {
	t.Parallel()

	src := newCountingSource(map[i18n.Namespace]i18n.Node{"hero": {"title": i18n.Leaf("Hola")}})
	src.release = make(chan struct{})
	cache := i18n.NewCache("es", src)

	b := cache.Use("hero")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.Error(t, b.Wait(ctx))

	// The load itself is not cancelled by the requester.
	close(src.release)
	select {
	case <-b.Ready():
	case <-time.After(time.Second):
		t.Fatal("load did not complete")
	}
	assert.Equal(t, "Hola", b.T("title"))
}

func TestCache_Panic(t *testing.T) {
	t.Parallel()

	src := i18n.SourceFunc(func(context.Context, string, i18n.Namespace) (i18n.Node, error) {
		panic("boom")
	})
	cache := i18n.NewCache("es", src)

	b := cache.Use("hero")
	require.ErrorIs(t, b.Wait(context.Background()), i18n.ErrFailedToRead)
	assert.Equal(t, "title", b.T("title"))
}

func TestCache_Preload(t *testing.T) {
	t.Parallel()

	src := newCountingSource(map[i18n.Namespace]i18n.Node{
		"common":  {"a": i18n.Leaf("1")},
		"hero":    {"a": i18n.Leaf("2")},
		"contact": contactTree(),
	})
	cache := i18n.NewCache("es", src)

	err := cache.Preload(context.Background(), "common", "hero", "contact", "missing")
	require.ErrorIs(t, err, i18n.ErrNamespaceNotFound)
	assert.Contains(t, err.Error(), "es/missing")

	assert.Equal(t, []i18n.Namespace{"common", "contact", "hero"}, cache.Loaded())

	require.NoError(t, cache.Preload(context.Background(), "common", "hero"))
	assert.Equal(t, 1, src.count("common"))
}

func TestCache_UseMany(t *testing.T) {
	t.Parallel()

	src := newCountingSource(map[i18n.Namespace]i18n.Node{
		"common": {"nav": i18n.Node{"contact": i18n.Leaf("Contacto")}},
		"hero":   {"title": i18n.Leaf("Hola")},
	})
	cache := i18n.NewCache("es", src)

	set := cache.UseMany("common", "hero", "common")
	require.NoError(t, set.Wait(context.Background()))

	assert.False(t, set.Loading())
	assert.Equal(t, []i18n.Namespace{"common", "hero"}, set.Namespaces())
	assert.Equal(t, "Contacto", set.T("common", "nav.contact"))
	assert.Equal(t, "Hola", set.T("hero", "title"))
	assert.Equal(t, "title", set.T("skills", "title"))
	assert.Nil(t, set.Binding("skills"))
}
