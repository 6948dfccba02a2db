package email

// Config holds email delivery configuration.
// The Postmark tokens are optional: without a server token NewSender falls back
// to the log sender.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@folio.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL"`
}

// PostmarkEnabled reports whether a Postmark server token is configured.
func (c Config) PostmarkEnabled() bool {
	return c.PostmarkServerToken != ""
}
