// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response that knows how to render itself:
//
//	type contactRequest struct {
//	    Name  string `json:"name" form:"name"`
//	    Email string `json:"email" form:"email"`
//	}
//
//	r.Post("/contact", handler.Wrap(
//	    func(ctx handler.Context, req contactRequest) handler.Response {
//	        return handler.Templ(views.ContactForm(req))
//	    },
//	    handler.WithBinders[handler.Context, contactRequest](binder.Form(), binder.Signals()),
//	    handler.WithErrorHandler[handler.Context, contactRequest](errorHandler),
//	))
//
// Responses adapt to the request: Templ and TemplPartial render HTML for
// regular requests and an element patch over server-sent events for datastar
// requests. Redirect does the same for navigation.
//
// Errors returned by binders or by Response.Render are passed to the
// ErrorHandler. NewErrorHandler builds one that logs the failure and renders an
// error page or, for datastar requests, a toast.
package handler
