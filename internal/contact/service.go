package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/pkg/email"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/sanitizer"
)

// Config is the contact delivery configuration.
type Config struct {
	Delay        time.Duration `env:"CONTACT_DELAY" envDefault:"1s"`
	To           string        `env:"CONTACT_TO"`
	RateCapacity int           `env:"CONTACT_RATE_CAPACITY" envDefault:"5"`
	RateInterval time.Duration `env:"CONTACT_RATE_INTERVAL" envDefault:"1m"`
}

// maxLoggedMessage bounds the message text written to the submission log.
// The delivered email always carries the full message.
const maxLoggedMessage = 500

var logPreview = sanitizer.MaxLength(maxLoggedMessage)

// Service logs and delivers submissions.
type Service struct {
	sender email.Sender
	to     string
	delay  time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the submission logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDelay sets the pause applied before each delivery.
func WithDelay(d time.Duration) Option {
	return func(s *Service) {
		s.delay = max(0, d)
	}
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service that sends submissions to the address to.
func NewService(sender email.Sender, to string, opts ...Option) *Service {
	s := &Service{
		sender: sender,
		to:     to,
		delay:  time.Second,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("contact"))
	return s
}

// Submit logs sub with a timestamp, waits the configured delay and delivers it.
// sub must already be sanitized and checked.
func (s *Service) Submit(ctx context.Context, sub Submission, lang string) error {
	ts := s.now().UTC()
	s.logger.InfoContext(ctx, "contact form submission",
		logger.Event("contact_submitted"),
		logger.Lang(lang),
		slog.String("name", sub.Name),
		slog.String("email", sub.Email),
		slog.String("company", sub.Company),
		slog.String("subject", sub.Subject),
		slog.String("message", logPreview(sub.Message)),
		slog.String("budget", sub.Budget),
		slog.String("timeline", sub.Timeline),
		slog.String("timestamp", ts.Format(time.RFC3339)),
	)

	if err := sleepContext(ctx, s.delay); err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}

	err := s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   s.to,
		ReplyTo:  sub.Email,
		Subject:  "[folio] " + sub.Subject,
		BodyText: body(sub, lang, ts),
		Tag:      "contact",
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "contact delivery failed",
			logger.Event("contact_delivery_failed"),
			logger.Error(err),
		)
		return errors.Join(ErrDeliveryFailed, err)
	}
	return nil
}

func body(sub Submission, lang string, ts time.Time) string {
	var b strings.Builder
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	field("Name", sub.Name)
	field("Email", sub.Email)
	field("Company", sub.Company)
	field("Budget", sub.Budget)
	field("Timeline", sub.Timeline)
	field("Language", lang)
	field("Received", ts.Format(time.RFC3339))
	b.WriteString("\n")
	b.WriteString(sub.Message)
	b.WriteString("\n")
	return b.String()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
