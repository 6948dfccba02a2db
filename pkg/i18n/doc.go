// Package i18n loads namespaced translation trees on demand and serves key lookups
// with fallback-to-key semantics.
//
// # Architecture
//
// A Cache owns the translation trees of one language. Each namespace ("common",
// "hero", "contact", …) is fetched from a Source the first time it is requested and
// kept for the lifetime of the process. Concurrent requests for a namespace that is
// still loading share one memoized future, so the Source is hit exactly once per
// namespace no matter how many consumers ask for it.
//
// Trees are a recursive sum type: a Leaf holds a translated string, a Node maps key
// segments to subtrees. Lookup walks a dot-separated key ("form.email.label") through
// the tree and returns the key itself whenever the path does not end on a Leaf.
//
// A Catalog groups one Cache per supported language and is the object an application
// constructs at start-up and injects into its handlers.
//
// # Usage
//
//	catalog := i18n.NewCatalog(i18n.NewFSSource(locales.FS),
//		i18n.WithLanguages("es", "en"),
//		i18n.WithDefaultLanguage("es"),
//		i18n.WithCacheOptions(i18n.WithLogger(log)),
//	)
//
//	b := catalog.Cache("es").Use("contact")
//	_ = b.Wait(ctx)
//	label := b.T("form.email.label")
//
// # HTTP Middleware
//
// Catalog.Middleware negotiates the request language (query parameter, cookie, then
// Accept-Language) and stores it in the request context; LanguageFromContext reads it back.
//
// # Error Handling
//
// Lookups never fail. Load failures are logged by the Cache and leave the namespace
// unpopulated; Binding.Err and the future returned by Cache.Request expose the cause,
// which wraps sentinel errors such as ErrNamespaceNotFound.
package i18n
