package i18n

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Catalog owns one Cache per supported language.
// It is created once at application start and shared by all handlers for the
// lifetime of the process; caches are never torn down.
type Catalog struct {
	defaultLang string
	languages   []string
	caches      map[string]*Cache
	negotiator  negotiator
}

type catalogConfig struct {
	languages    []string
	defaultLang  string
	cacheOptions []CacheOption
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogConfig)

// WithLanguages sets the supported languages. Invalid codes are ignored.
func WithLanguages(langs ...string) CatalogOption {
	return func(c *catalogConfig) {
		for _, lang := range langs {
			if !validLanguage(lang) {
				continue
			}
			c.languages = append(c.languages, normalizeLanguage(lang))
		}
	}
}

// WithDefaultLanguage sets the fallback language. Defaults to the first supported language.
func WithDefaultLanguage(lang string) CatalogOption {
	return func(c *catalogConfig) {
		if validLanguage(lang) {
			c.defaultLang = normalizeLanguage(lang)
		}
	}
}

// WithCacheOptions applies opts to every per-language Cache.
func WithCacheOptions(opts ...CacheOption) CatalogOption {
	return func(c *catalogConfig) {
		c.cacheOptions = append(c.cacheOptions, opts...)
	}
}

// NewCatalog creates a Catalog whose caches all read from source.
// Without WithLanguages it serves English only.
func NewCatalog(source Source, opts ...CatalogOption) *Catalog {
	cfg := &catalogConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	languages := dedupe(cfg.languages)
	if cfg.defaultLang == "" {
		if len(languages) > 0 {
			cfg.defaultLang = languages[0]
		} else {
			cfg.defaultLang = "en"
		}
	}

	// The default language goes first: the matcher falls back to index 0.
	ordered := []string{cfg.defaultLang}
	for _, lang := range languages {
		if lang != cfg.defaultLang {
			ordered = append(ordered, lang)
		}
	}

	c := &Catalog{
		defaultLang: cfg.defaultLang,
		languages:   ordered,
		caches:      make(map[string]*Cache, len(ordered)),
		negotiator:  newNegotiator(ordered),
	}
	for _, lang := range ordered {
		c.caches[lang] = NewCache(lang, source, cfg.cacheOptions...)
	}
	return c
}

// Cache returns the cache for lang, or the default language cache when lang
// is not supported.
func (c *Catalog) Cache(lang string) *Cache {
	if cache, ok := c.caches[normalizeLanguage(lang)]; ok {
		return cache
	}
	return c.caches[c.defaultLang]
}

// DefaultLanguage returns the fallback language.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLang
}

// Languages returns the supported languages, default first.
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.languages...)
}

// Supports reports whether lang (or its base language) is served by the catalog.
func (c *Catalog) Supports(lang string) bool {
	_, ok := c.negotiator.parse(lang)
	return ok
}

// Preload warms namespaces in every language and returns the joined load errors.
func (c *Catalog) Preload(ctx context.Context, namespaces ...Namespace) error {
	errs := make([]error, len(c.languages))

	var g errgroup.Group
	for i, lang := range c.languages {
		g.Go(func() error {
			errs[i] = c.caches[lang].Preload(ctx, namespaces...)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
