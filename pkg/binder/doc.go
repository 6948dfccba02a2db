// Package binder decodes HTTP requests into structs.
//
// Each constructor returns a func(r *http.Request, v any) error suitable for
// handler.WithBinders. Binders that do not apply to a request (for example Form
// on a JSON body) return ErrBinderNotApplicable so several binders can be
// chained over the same target.
//
//	type contactForm struct {
//	    Name    string `form:"name" json:"name"`
//	    Message string `form:"message" json:"message"`
//	}
//
// Supported field kinds are string, bool, signed and unsigned integers,
// floats, pointers to those and slices of those.
package binder
