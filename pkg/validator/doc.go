// Package validator provides declarative validation rules whose errors carry
// translation keys.
//
// Rules are plain values built by constructor functions and evaluated by Apply:
//
//	err := validator.Apply(
//	    validator.Required("name", in.Name),
//	    validator.MaxLen("name", in.Name, 100),
//	    validator.ValidEmail("email", in.Email),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//	    messages := errs.Messages(translate)
//	}
//
// Every ValidationError keeps an English fallback Message together with a
// TranslationKey and the values it interpolates, so callers can render errors
// in the visitor's language.
package validator
