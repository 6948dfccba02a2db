package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/internal/contact"
	"github.com/dmitrymomot/folio/internal/locales"
	"github.com/dmitrymomot/folio/pkg/binder"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/qrcode"
	"github.com/dmitrymomot/folio/pkg/validator"
)

// API response messages. Clients match on these strings.
const (
	msgSent          = "Message sent successfully!"
	msgMissingFields = "Missing required fields"
	msgInvalidEmail  = "Invalid email format"
	msgInvalidBody   = "Invalid request body"
	msgInternalError = "Internal server error"
)

const (
	vcardSize           = 256
	vcardCacheControl   = "public, max-age=86400"
	contactFormSelector = "#contact-form"
)

type apiResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func (s *Server) submitAPI(w http.ResponseWriter, r *http.Request) {
	handler.Wrap(s.handleContactAPI,
		handler.WithBinders[handler.Context, contact.Submission](binder.JSON()),
		handler.WithErrorHandler[handler.Context, contact.Submission](s.apiError),
	)(w, r)
}

func (s *Server) handleContactAPI(ctx handler.Context, req contact.Submission) handler.Response {
	sub := req.Sanitize()
	if err := sub.Check(); err != nil {
		if errors.Is(err, contact.ErrInvalidEmail) {
			return handler.JSONError(http.StatusBadRequest, msgInvalidEmail)
		}
		return handler.JSONError(http.StatusBadRequest, msgMissingFields)
	}

	if err := s.contact.Submit(ctx, sub, i18n.LanguageFromContext(ctx)); err != nil {
		return handler.JSONError(http.StatusInternalServerError, msgInternalError)
	}
	return handler.JSON(apiResponse{Message: msgSent, Success: true})
}

// apiError answers binding failures with 400 and anything else with 500.
func (s *Server) apiError(ctx handler.Context, err error) {
	r, w := ctx.Request(), ctx.ResponseWriter()

	status, msg := http.StatusInternalServerError, msgInternalError
	if errors.Is(err, binder.ErrInvalidJSON) || errors.Is(err, binder.ErrUnsupportedMediaType) ||
		errors.Is(err, binder.ErrBodyTooLarge) || errors.Is(err, binder.ErrMissingContentType) {
		status, msg = http.StatusBadRequest, msgInvalidBody
	}

	s.log.LogAttrs(r.Context(), slog.LevelWarn, "contact api error",
		logger.Handler("contact_api"),
		slog.Int("status_code", status),
		logger.Error(err),
	)
	if renderErr := handler.JSONError(status, msg).Render(w, r); renderErr != nil {
		s.log.ErrorContext(r.Context(), "failed to write api error", logger.Error(renderErr))
	}
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	handler.Wrap(s.handleContactForm,
		handler.WithBinders[handler.Context, contact.Submission](binder.Form(), binder.Signals()),
		handler.WithErrorHandler[handler.Context, contact.Submission](s.errorHandler),
	)(w, r)
}

func (s *Server) handleContactForm(ctx handler.Context, req contact.Submission) handler.Response {
	r := ctx.Request()
	sub := req.Sanitize()
	form := formState{Values: sub}

	if err := sub.Validate(s.content.Contact); err != nil {
		errs := validator.ExtractValidationErrors(err)
		if errs == nil {
			return handler.ResponseFunc(func(http.ResponseWriter, *http.Request) error { return err })
		}
		tr := s.translations(r, locales.Contact)
		form.Errors = errs.Messages(func(key string) string { return tr.T(locales.Contact, key) })
		return s.contactForm(r, form)
	}

	if err := s.contact.Submit(ctx, sub, i18n.LanguageFromContext(ctx)); err != nil {
		form.Failed = true
		return s.contactForm(r, form)
	}

	if handler.IsDataStar(r) {
		return s.contactForm(r, formState{Sent: true})
	}
	return handler.Redirect("/contact?sent=1")
}

// contactForm patches the form for datastar requests and renders the whole
// contact page otherwise.
func (s *Server) contactForm(r *http.Request, form formState) handler.Response {
	data := s.pageData(r, contactData{Form: form, Options: s.content.Contact}, locales.Contact)
	return handler.TemplPartial(
		s.views.partial(pageContact, "contact_form", data),
		s.views.page(pageContact, data),
		handler.WithTarget(contactFormSelector),
	)
}

func (s *Server) vcard(w http.ResponseWriter, r *http.Request) {
	lang := s.catalog.FromRequest(r).Language()
	png, err := s.vcards.GetOrLoad(lang, func() ([]byte, error) {
		site := s.content.Site
		card := qrcode.VCard{
			Name:     site.Name,
			Title:    site.Title.In(lang),
			Email:    site.Email,
			Phone:    site.Phone,
			URL:      site.URL,
			Location: site.Location.In(lang),
		}
		return qrcode.Generate(card.String(), vcardSize)
	})
	if err != nil {
		s.errorHandler(handler.NewContext(w, r), err)
		return
	}
	s.render(w, r, handler.CachedBlob("image/png", vcardCacheControl, png))
}
