package binder

import (
	"errors"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// Signals decodes datastar signals into v using `json` tags. It is applicable
// only to requests carrying the Datastar-Request header.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Header.Get("Datastar-Request") != "true" {
			return ErrBinderNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return errors.Join(ErrInvalidSignals, err)
		}
		return nil
	}
}
