package web

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/internal/locales"
	"github.com/dmitrymomot/folio/pkg/i18n"
)

// errorPage renders the error document in the language stored on the render context.
func (s *Server) errorPage(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		data := s.contextPageData(ctx, errorData{
			Key:        p.Key,
			StatusCode: p.StatusCode,
			RequestID:  p.RequestID,
			RetryURL:   p.RetryURL,
		})
		return s.views.page(pageError, data).Render(ctx, w)
	})
}

func (s *Server) errorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tr := s.contextTranslations(ctx)
		return s.views.partial(pageError, "toast", toastView{
			Type:           p.Type,
			Message:        tr.T(locales.Common, "errors."+p.Key),
			RequestID:      p.RequestID,
			RequestIDLabel: tr.T(locales.Common, "errors.request_id"),
		}).Render(ctx, w)
	})
}

// contextTranslations binds the common namespace of the context language and
// waits for it at most loadTimeout.
func (s *Server) contextTranslations(ctx context.Context) *i18n.Set {
	return s.await(ctx, s.catalog.Cache(i18n.LanguageFromContext(ctx)).UseMany(locales.Common))
}

func (s *Server) contextPageData(ctx context.Context, data any) pageData {
	return pageData{
		Lang:      s.catalog.Cache(i18n.LanguageFromContext(ctx)).Language(),
		Languages: s.catalog.Languages(),
		Site:      s.content.Site,
		Social:    s.content.Social,
		Year:      currentYear(),
		Data:      data,
		tr:        s.contextTranslations(ctx),
	}
}
