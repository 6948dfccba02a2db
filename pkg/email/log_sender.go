package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/folio/pkg/logger"
)

// LogSender writes every message to a logger instead of delivering it.
type LogSender struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewLogSender creates a LogSender. A nil logger means slog.Default().
func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{
		logger: log.With(logger.Component("email")),
		now:    time.Now,
	}
}

// SendEmail validates params and logs them.
func (s *LogSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	body := params.BodyText
	if body == "" {
		body = params.BodyHTML
	}

	s.logger.InfoContext(ctx, "email captured",
		logger.Event("email_logged"),
		slog.String("timestamp", s.now().UTC().Format(time.RFC3339)),
		slog.String("to", params.SendTo),
		slog.String("reply_to", params.ReplyTo),
		slog.String("subject", params.Subject),
		slog.String("tag", params.Tag),
		slog.String("body", body),
	)
	return nil
}
