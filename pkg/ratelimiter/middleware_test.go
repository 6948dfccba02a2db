package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/ratelimiter"
)

type failingStore struct{}

func (failingStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, errors.Join(ratelimiter.ErrStoreUnavailable, errors.New("dial tcp: refused"))
}

func (failingStore) Reset(context.Context, string) error { return nil }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
}

func byHeader(r *http.Request) string { return r.Header.Get("X-Client") }

func TestMiddleware(t *testing.T) {
	t.Parallel()

	b, _ := newMemoryBucket(t, time.Now, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
	h := ratelimiter.Middleware(b, byHeader)(okHandler())

	send := func(client string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		if client != "" {
			r.Header.Set("X-Client", client)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	w := send("a")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))

	assert.Equal(t, http.StatusAccepted, send("a").Code)

	w = send("a")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusAccepted, send("b").Code)

	// Requests without a key are not limited.
	for range 5 {
		w = send("")
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestMiddleware_CustomHandlers(t *testing.T) {
	t.Parallel()

	b, _ := newMemoryBucket(t, time.Now, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
	h := ratelimiter.Middleware(b, ratelimiter.Static("contact"),
		ratelimiter.WithDeniedHandler(func(w http.ResponseWriter, _ *http.Request, res ratelimiter.Result) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
		}),
	)(okHandler())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestMiddleware_StoreFailure(t *testing.T) {
	t.Parallel()

	b, err := ratelimiter.NewBucket(failingStore{}, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	ratelimiter.Middleware(b, ratelimiter.Static("k"))(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var gotErr error
	w = httptest.NewRecorder()
	ratelimiter.Middleware(b, ratelimiter.Static("k"),
		ratelimiter.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
			gotErr = err
			w.WriteHeader(http.StatusInternalServerError)
		}),
	)(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.ErrorIs(t, gotErr, ratelimiter.ErrStoreUnavailable)

	w = httptest.NewRecorder()
	ratelimiter.Middleware(b, ratelimiter.Static("k"), ratelimiter.WithFailOpen())(okHandler()).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestComposite(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Client", "203.0.113.1")

	assert.Equal(t, "contact:203.0.113.1", ratelimiter.Composite(ratelimiter.Static("contact"), byHeader, ratelimiter.Static(""))(r))
	assert.Equal(t, "", ratelimiter.Composite(ratelimiter.Static(""))(r))

	long := ratelimiter.Composite(ratelimiter.Static(strings.Repeat("x", 80)))(r)
	assert.LessOrEqual(t, len(long), 13)
	assert.Equal(t, long, ratelimiter.Composite(ratelimiter.Static(strings.Repeat("x", 80)))(r))
}
