// Package email delivers transactional messages through a provider-agnostic
// Sender.
//
// Two senders ship with the package: PostmarkSender delivers through the
// Postmark API and LogSender writes each message to a structured logger, which
// is what local development uses when no Postmark token is configured.
//
//	sender, err := email.NewSender(cfg, log)
//	if err != nil {
//	    return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "hola@example.com",
//	    Subject:  "New contact message",
//	    BodyText: body,
//	})
//
// All senders validate SendEmailParams before delivery and report failures
// wrapped in ErrFailedToSendEmail.
package email
