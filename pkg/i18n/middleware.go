package i18n

import (
	"context"
	"net/http"
	"time"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "lang"
)

type langContextKey struct{}

// WithLanguage returns a copy of ctx carrying lang.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langContextKey{}, lang)
}

// LanguageFromContext returns the language stored by Middleware, or "" when absent.
func LanguageFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langContextKey{}).(string); ok {
		return lang
	}
	return ""
}

// Negotiate resolves the request language: the lang query parameter, then the
// lang cookie, then Accept-Language, then the default language. The second
// value reports whether the choice came from the query parameter.
func (c *Catalog) Negotiate(r *http.Request) (string, bool) {
	if lang, ok := c.negotiator.parse(r.URL.Query().Get(LangParam)); ok {
		return lang, true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if lang, ok := c.negotiator.parse(cookie.Value); ok {
			return lang, false
		}
	}
	if lang, ok := c.negotiator.matchAcceptLanguage(r.Header.Get("Accept-Language")); ok {
		return lang, false
	}
	return c.defaultLang, false
}

// Middleware stores the negotiated language in the request context and sets
// the Content-Language header. An explicit ?lang= choice is persisted in a cookie.
func (c *Catalog) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang, explicit := c.Negotiate(r)
		if explicit {
			SetLanguageCookie(w, lang)
		}
		w.Header().Set("Content-Language", lang)
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
	})
}

// Match resolves value to a supported language code.
func (c *Catalog) Match(value string) (string, bool) {
	return c.negotiator.parse(value)
}

// SetLanguageCookie persists lang for a year.
func SetLanguageCookie(w http.ResponseWriter, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest returns the cache for the language negotiated by Middleware,
// or the default language cache.
func (c *Catalog) FromRequest(r *http.Request) *Cache {
	return c.Cache(LanguageFromContext(r.Context()))
}
