// Package web serves the portfolio pages, the contact endpoints and the
// translation export.
package web

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/internal/contact"
	"github.com/dmitrymomot/folio/internal/locales"
	"github.com/dmitrymomot/folio/internal/portfolio"
	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/clientip"
	"github.com/dmitrymomot/folio/pkg/httpserver"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
	"github.com/dmitrymomot/folio/pkg/requestid"
)

// ErrTranslationsNotReady is reported by the readiness check until the common
// namespace of the default language is loaded.
var ErrTranslationsNotReady = errors.New("web: translations not ready")

// Server wires the site handlers.
type Server struct {
	catalog *i18n.Catalog
	content *portfolio.Content
	contact *contact.Service
	limiter *ratelimiter.Bucket
	views   *views
	vcards  *cache.LRU[string, []byte]
	log     *slog.Logger

	loadTimeout    time.Duration
	requestTimeout time.Duration
	checks         []httpserver.Check
	errorHandler   handler.ErrorHandler[handler.Context]
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRateLimiter limits contact submissions per client IP.
func WithRateLimiter(b *ratelimiter.Bucket) Option {
	return func(s *Server) {
		s.limiter = b
	}
}

// WithLoadTimeout bounds how long a page waits for its translations before it
// renders with key fallbacks.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// WithRequestTimeout sets the per-request deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithReadinessChecks adds checks to /readyz.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(s *Server) {
		s.checks = append(s.checks, checks...)
	}
}

// New creates a Server. It fails when the embedded templates do not parse.
func New(catalog *i18n.Catalog, content *portfolio.Content, svc *contact.Service, opts ...Option) (*Server, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}

	s := &Server{
		catalog:        catalog,
		content:        content,
		contact:        svc,
		views:          v,
		vcards:         cache.NewLRU[string, []byte](max(1, len(catalog.Languages()))),
		log:            slog.Default(),
		loadTimeout:    2 * time.Second,
		requestTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("web"))
	s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
		ErrorPage:  s.errorPage,
		ErrorToast: s.errorToast,
	})
	return s, nil
}

// Routes returns the site router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(clientip.New().Middleware)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(s.requestTimeout))
	r.Use(s.catalog.Middleware)

	r.NotFound(s.fail(handler.ErrNotFound))
	r.MethodNotAllowed(s.fail(handler.ErrMethodNotAllowed))

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(s.log, 2*time.Second, append([]httpserver.Check{{
		Name: "translations",
		Fn:   s.translationsReady,
	}}, s.checks...)...))

	static, _ := fs.Sub(staticFS, "static")
	r.With(cacheControl("public, max-age=86400")).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	r.Get("/", s.home)
	r.Get("/projects", s.projects)
	r.Get("/projects/{slug}", s.project)
	r.Get("/experience", s.experience)
	r.Get("/contact", s.contactPage)
	r.Get("/contact/vcard.png", s.vcard)
	r.Get("/lang/{code}", s.switchLanguage)
	r.Get("/i18n/{namespace}.json", s.exportNamespace)

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(ratelimiter.Middleware(s.limiter, clientip.GetIP,
				ratelimiter.WithDeniedHandler(s.tooManyRequests),
				ratelimiter.WithFailOpen(),
			))
		}
		r.Post("/contact", s.submitForm)
		r.Post("/api/contact", s.submitAPI)
	})

	return r
}

func (s *Server) translationsReady(context.Context) error {
	if _, ok := s.catalog.Cache(s.catalog.DefaultLanguage()).Get(locales.Common); !ok {
		return ErrTranslationsNotReady
	}
	return nil
}

// translations binds namespaces of the request language and waits for them at
// most loadTimeout. Namespaces still loading render with key fallbacks.
func (s *Server) translations(r *http.Request, namespaces ...i18n.Namespace) *i18n.Set {
	return s.await(r.Context(), s.catalog.FromRequest(r).UseMany(namespaces...))
}

func (s *Server) await(ctx context.Context, set *i18n.Set) *i18n.Set {
	if !set.Loading() {
		return set
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()
	if err := set.Wait(waitCtx); err != nil {
		s.log.WarnContext(ctx, "rendering with missing translations",
			logger.Event("translations_incomplete"),
			logger.Lang(i18n.LanguageFromContext(ctx)),
			logger.Error(err),
		)
	}
	return set
}

func (s *Server) pageData(r *http.Request, data any, namespaces ...i18n.Namespace) pageData {
	return pageData{
		Lang:      s.catalog.FromRequest(r).Language(),
		Languages: s.catalog.Languages(),
		Path:      r.URL.Path,
		Site:      s.content.Site,
		Social:    s.content.Social,
		Year:      currentYear(),
		RequestID: requestid.FromContext(r.Context()),
		Data:      data,
		tr:        s.translations(r, append([]i18n.Namespace{locales.Common}, namespaces...)...),
	}
}

// fail renders err through the error handler.
func (s *Server) fail(err error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), err)
	}
}

func (s *Server) tooManyRequests(w http.ResponseWriter, r *http.Request, _ ratelimiter.Result) {
	if r.URL.Path == "/api/contact" {
		_ = handler.JSONError(http.StatusTooManyRequests, "Too many requests").Render(w, r)
		return
	}
	s.errorHandler(handler.NewContext(w, r), handler.ErrTooManyRequests)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.log.DebugContext(r.Context(), "request served",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Int("bytes", ww.BytesWritten()),
			logger.ClientIP(clientip.GetIP(r)),
			logger.Duration(time.Since(start)),
		)
	})
}

func cacheControl(value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
