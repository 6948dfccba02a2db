package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/folio/pkg/clientip"
)

func TestResolver_IP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "198.51.100.4:51234", want: "198.51.100.4"},
		{name: "remote addr without port", remote: "198.51.100.4", want: "198.51.100.4"},
		{name: "ipv6 remote", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "cloudflare wins", headers: map[string]string{"CF-Connecting-IP": "203.0.113.9", "X-Forwarded-For": "203.0.113.1"}, remote: "10.0.0.1:1", want: "203.0.113.9"},
		{name: "left-most forwarded", headers: map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.2"}, remote: "10.0.0.1:1", want: "203.0.113.1"},
		{name: "skips garbage in forwarded", headers: map[string]string{"X-Forwarded-For": "unknown, 203.0.113.2"}, remote: "10.0.0.1:1", want: "203.0.113.2"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "203.0.113.3"}, remote: "10.0.0.1:1", want: "203.0.113.3"},
		{name: "ipv4 mapped", headers: map[string]string{"X-Real-IP": "::ffff:203.0.113.5"}, remote: "10.0.0.1:1", want: "203.0.113.5"},
		{name: "invalid header falls back", headers: map[string]string{"X-Real-IP": "<script>"}, remote: "10.0.0.1:1", want: "10.0.0.1"},
		{name: "nothing parseable", remote: "pipe", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}

func TestResolver_WithHeaders(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1"
	r.Header.Set("X-Forwarded-For", "203.0.113.1")

	assert.Equal(t, "10.0.0.1", clientip.New(clientip.WithHeaders()).IP(r))
	assert.Equal(t, "203.0.113.1", clientip.New(clientip.WithHeaders("X-Forwarded-For")).IP(r))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.New().Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Real-IP", "203.0.113.8")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "203.0.113.8", got)
}
