package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/binder"
)

type contactForm struct {
	Name     string   `form:"name" json:"name"`
	Email    string   `form:"email" json:"email"`
	Budget   *string  `form:"budget" json:"budget,omitempty"`
	Tags     []string `form:"tags" json:"tags,omitempty"`
	Count    int      `form:"count" json:"count,omitempty"`
	Consent  bool     `form:"consent" json:"consent,omitempty"`
	Internal string   `form:"-" json:"-"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
	}{
		{"valid", "application/json; charset=utf-8", `{"name":"Ana","email":"ana@example.com","extra":1}`, nil},
		{"no content type", "", `{"name":"Ana"}`, nil},
		{"wrong media type", "text/plain", `{"name":"Ana"}`, binder.ErrUnsupportedMediaType},
		{"malformed", "application/json", `{"name":`, binder.ErrInvalidJSON},
		{"empty", "application/json", ``, binder.ErrInvalidJSON},
		{"type mismatch", "application/json", `{"name":42}`, binder.ErrInvalidJSON},
		{"trailing data", "application/json", `{"name":"a"} {"name":"b"}`, binder.ErrInvalidJSON},
		{"too large", "application/json", `{"name":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`, binder.ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			var got contactForm
			err := binder.JSON()(req, &got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ana", got.Name)
		})
	}
}

func TestForm_URLEncoded(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"name":     {"Ana"},
		"email":    {"ana@example.com"},
		"budget":   {"5k-10k"},
		"tags":     {"go", "web"},
		"count":    {"3"},
		"consent":  {"on"},
		"Internal": {"leak"},
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var got contactForm
	require.NoError(t, binder.Form()(req, &got))

	assert.Equal(t, "Ana", got.Name)
	require.NotNil(t, got.Budget)
	assert.Equal(t, "5k-10k", *got.Budget)
	assert.Equal(t, []string{"go", "web"}, got.Tags)
	assert.Equal(t, 3, got.Count)
	assert.True(t, got.Consent)
	assert.Empty(t, got.Internal)
}

func TestForm_Multipart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Ana"))
	require.NoError(t, mw.WriteField("email", "ana@example.com"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/contact", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var got contactForm
	require.NoError(t, binder.Form()(req, &got))
	assert.Equal(t, "ana@example.com", got.Email)
}

func TestForm_Errors(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	assert.ErrorIs(t, binder.Form()(req, &contactForm{}), binder.ErrBinderNotApplicable)

	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("count=many"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.ErrorIs(t, binder.Form()(req, &contactForm{}), binder.ErrInvalidForm)

	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("name=a"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var notStruct string
	assert.ErrorIs(t, binder.Form()(req, &notStruct), binder.ErrInvalidForm)
}

func TestSignals(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"Ana","email":"ana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.ErrorIs(t, binder.Signals()(req, &contactForm{}), binder.ErrBinderNotApplicable)

	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"Ana","email":"ana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")

	var got contactForm
	require.NoError(t, binder.Signals()(req, &got))
	assert.Equal(t, "Ana", got.Name)

	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":`))
	req.Header.Set("Datastar-Request", "true")
	assert.ErrorIs(t, binder.Signals()(req, &contactForm{}), binder.ErrInvalidSignals)
}
