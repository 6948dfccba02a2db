package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/folio/pkg/binder"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/requestid"
	"github.com/dmitrymomot/folio/pkg/validator"
)

// ErrorPageParams is the data of a full error page.
type ErrorPageParams struct {
	Key        string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams is the data of a toast rendered for datastar requests.
type ErrorToastParams struct {
	Key       string
	Type      string // "error" or "warning"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget defaults to "#toast-container".
	ToastTarget string
	// ToastMode defaults to PatchPrepend.
	ToastMode datastar.ElementPatchMode
}

type errorInfo struct {
	status int
	key    string
}

func classifyError(err error) errorInfo {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return errorInfo{status: httpErr.Code, key: httpErr.Key}
	case validator.IsValidationError(err):
		return errorInfo{status: http.StatusBadRequest, key: "validation_failed"}
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return errorInfo{status: http.StatusUnsupportedMediaType, key: ErrUnsupportedMedia.Key}
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidForm), errors.Is(err, binder.ErrInvalidSignals):
		return errorInfo{status: http.StatusBadRequest, key: ErrBadRequest.Key}
	}
	return errorInfo{status: http.StatusInternalServerError, key: ErrInternalServerError.Key}
}

// NewErrorHandler creates an error handler that logs the error and renders an
// error page, or a toast patch for datastar requests.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("error_handler"))
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}

	return func(ctx Context, err error) {
		r, w := ctx.Request(), ctx.ResponseWriter()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		level := slog.LevelError
		if info.status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			slog.Int("status_code", info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				http.Error(w, info.key, info.status)
				return
			}
			typ := "error"
			if info.status < http.StatusInternalServerError {
				typ = "warning"
			}
			toast := cfg.ErrorToast(ErrorToastParams{Key: info.key, Type: typ, RequestID: reqID})
			if renderErr := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode)).Render(w, r); renderErr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast",
					logger.Error(renderErr),
					logger.Event("render_error_toast"),
				)
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(w, info.key, info.status)
			return
		}
		page := cfg.ErrorPage(ErrorPageParams{
			Key:        info.key,
			StatusCode: info.status,
			RequestID:  reqID,
			RetryURL:   r.URL.Path,
		})
		if renderErr := TemplStatus(info.status, page).Render(w, r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error page",
				logger.Error(renderErr),
				logger.Event("render_error_page"),
			)
		}
	}
}
