package email

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Sender sends a single email.
type Sender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one outbound message. At least one of BodyHTML and
// BodyText must be set.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	ReplyTo  string `json:"reply_to,omitempty"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html,omitempty"`
	BodyText string `json:"body_text,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidAddress reports whether s looks like an email address.
func ValidAddress(s string) bool {
	return emailRegex.MatchString(s)
}

// Validate checks the message fields before delivery.
func (p SendEmailParams) Validate() error {
	switch {
	case !ValidAddress(p.SendTo):
		return fmt.Errorf("%w: invalid recipient %q", ErrInvalidParams, p.SendTo)
	case p.ReplyTo != "" && !ValidAddress(p.ReplyTo):
		return fmt.Errorf("%w: invalid reply-to %q", ErrInvalidParams, p.ReplyTo)
	case strings.TrimSpace(p.Subject) == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	case strings.TrimSpace(p.BodyHTML) == "" && strings.TrimSpace(p.BodyText) == "":
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}

// NewSender returns a PostmarkSender when cfg carries a server token and a
// LogSender otherwise.
func NewSender(cfg Config, log *slog.Logger) (Sender, error) {
	if cfg.PostmarkEnabled() {
		return NewPostmarkSender(cfg)
	}
	return NewLogSender(log), nil
}
