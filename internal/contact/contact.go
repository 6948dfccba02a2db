// Package contact validates and delivers contact form submissions.
package contact

import (
	"errors"

	"github.com/dmitrymomot/folio/internal/portfolio"
	"github.com/dmitrymomot/folio/pkg/sanitizer"
	"github.com/dmitrymomot/folio/pkg/validator"
)

var (
	ErrMissingFields  = errors.New("contact: missing required fields")
	ErrInvalidEmail   = errors.New("contact: invalid email format")
	ErrDeliveryFailed = errors.New("contact: delivery failed")
)

const (
	maxNameLen    = 100
	maxEmailLen   = 254
	maxCompanyLen = 100
	maxSubjectLen = 150
	maxMessageLen = 5000
	maxOptionLen  = 100
)

// Submission is one contact request. Tags serve the JSON API, HTML forms and
// datastar signals alike.
type Submission struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Company  string `json:"company,omitempty" form:"company"`
	Subject  string `json:"subject" form:"subject"`
	Message  string `json:"message" form:"message"`
	Budget   string `json:"budget,omitempty" form:"budget"`
	Timeline string `json:"timeline,omitempty" form:"timeline"`
}

var (
	cleanLine = sanitizer.Compose(sanitizer.StripHTML, sanitizer.RemoveControlChars, sanitizer.SingleLine)
	cleanText = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.NormalizeText, sanitizer.Trim)
)

// Sanitize returns a copy with markup and control characters removed and
// whitespace normalized. Message keeps its paragraphs. Email is only trimmed.
func (s Submission) Sanitize() Submission {
	return Submission{
		Name:     cleanLine(s.Name),
		Email:    sanitizer.Trim(s.Email),
		Company:  cleanLine(s.Company),
		Subject:  cleanLine(s.Subject),
		Message:  cleanText(s.Message),
		Budget:   cleanLine(s.Budget),
		Timeline: cleanLine(s.Timeline),
	}
}

// Check applies the API acceptance rules: name, email, subject and message are
// required and the email must look like an address.
func (s Submission) Check() error {
	if s.Name == "" || s.Email == "" || s.Subject == "" || s.Message == "" {
		return ErrMissingFields
	}
	if err := validator.Apply(validator.ValidEmail("email", s.Email)); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Validate applies the form rules, returning validator.ValidationErrors.
// Budget and timeline must be one of the configured option values when set.
func (s Submission) Validate(opts portfolio.ContactOptions) error {
	return validator.Apply(
		validator.Required("name", s.Name),
		validator.MaxLen("name", s.Name, maxNameLen),
		validator.Required("email", s.Email),
		validator.ValidEmail("email", s.Email),
		validator.MaxLen("email", s.Email, maxEmailLen),
		validator.MaxLen("company", s.Company, maxCompanyLen),
		validator.Required("subject", s.Subject),
		validator.MaxLen("subject", s.Subject, maxSubjectLen),
		validator.Required("message", s.Message),
		validator.MinLen("message", s.Message, 10),
		validator.MaxLen("message", s.Message, maxMessageLen),
		validator.OneOf("budget", s.Budget, portfolio.Values(opts.Budget)),
		validator.MaxLen("budget", s.Budget, maxOptionLen),
		validator.OneOf("timeline", s.Timeline, portfolio.Values(opts.Timeline)),
		validator.MaxLen("timeline", s.Timeline, maxOptionLen),
	)
}
