package web

import (
	"context"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/internal/locales"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/logger"
)

const msgNamespaceNotFound = "Namespace not found"

// exportNamespace serves the negotiated language's tree of a namespace as JSON.
func (s *Server) exportNamespace(w http.ResponseWriter, r *http.Request) {
	ns := i18n.Namespace(chi.URLParam(r, "namespace"))
	if !slices.Contains(locales.Namespaces(), ns) {
		_ = handler.JSONError(http.StatusNotFound, msgNamespaceNotFound).Render(w, r)
		return
	}
	cache := s.catalog.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), s.loadTimeout)
	defer cancel()

	tree, err := cache.Request(ns).Await(ctx)
	if err != nil {
		s.log.DebugContext(r.Context(), "namespace export unavailable",
			logger.Namespace(string(ns)),
			logger.Lang(cache.Language()),
			logger.Error(err),
		)
		_ = handler.JSONError(http.StatusNotFound, msgNamespaceNotFound).Render(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	s.render(w, r, handler.JSON(tree))
}

// switchLanguage stores the chosen language and returns to the referring page.
func (s *Server) switchLanguage(w http.ResponseWriter, r *http.Request) {
	lang, ok := s.catalog.Match(chi.URLParam(r, "code"))
	if !ok {
		s.errorHandler(handler.NewContext(w, r), handler.ErrNotFound)
		return
	}
	i18n.SetLanguageCookie(w, lang)
	s.render(w, r, handler.RedirectBack(r, "/"))
}
