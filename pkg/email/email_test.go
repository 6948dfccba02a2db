package email_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/email"
)

func validParams() email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   "hola@example.com",
		ReplyTo:  "visitor@example.org",
		Subject:  "New contact message",
		BodyText: "Hello there",
	}
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*email.SendEmailParams)
	}{
		{"invalid recipient", func(p *email.SendEmailParams) { p.SendTo = "nope" }},
		{"invalid reply-to", func(p *email.SendEmailParams) { p.ReplyTo = "a b@c.d" }},
		{"empty subject", func(p *email.SendEmailParams) { p.Subject = "  " }},
		{"empty body", func(p *email.SendEmailParams) { p.BodyText = "" }},
	}

	require.NoError(t, validParams().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := validParams()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
		})
	}
}

func TestValidAddress(t *testing.T) {
	t.Parallel()

	assert.True(t, email.ValidAddress("a@b.co"))
	assert.False(t, email.ValidAddress("a@b"))
	assert.False(t, email.ValidAddress("a @b.co"))
	assert.False(t, email.ValidAddress(""))
}

func TestLogSender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sender := email.NewLogSender(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, sender.SendEmail(context.Background(), validParams()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "email captured", entry["msg"])
	assert.Equal(t, "email", entry["component"])
	assert.Equal(t, "hola@example.com", entry["to"])
	assert.Equal(t, "Hello there", entry["body"])
	assert.NotEmpty(t, entry["timestamp"])

	assert.ErrorIs(t, sender.SendEmail(context.Background(), email.SendEmailParams{}), email.ErrInvalidParams)
}

func TestNewSender(t *testing.T) {
	t.Parallel()

	s, err := email.NewSender(email.Config{SenderEmail: "noreply@example.com"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &email.LogSender{}, s)

	s, err = email.NewSender(email.Config{PostmarkServerToken: "token", SenderEmail: "noreply@example.com"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &email.PostmarkSender{}, s)
}

func TestNewPostmarkSender_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  email.Config
	}{
		{"missing token", email.Config{SenderEmail: "noreply@example.com"}},
		{"invalid sender", email.Config{PostmarkServerToken: "t", SenderEmail: "noreply"}},
		{"invalid support", email.Config{PostmarkServerToken: "t", SenderEmail: "noreply@example.com", SupportEmail: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := email.NewPostmarkSender(tt.cfg)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Nil(t, s)
		})
	}
}

func TestPostmarkSender_SendEmail(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		got   map[string]any
		token string
	)
	last := func(key string) any {
		mu.Lock()
		defer mu.Unlock()
		return got[key]
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		token = r.Header.Get("X-Postmark-Server-Token")
		got = nil
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")

		code := 0
		if got["To"] == "reject@example.com" {
			code = 406
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"To":        got["To"],
			"MessageID": "abc",
			"ErrorCode": code,
			"Message":   "OK",
		})
	}))
	t.Cleanup(srv.Close)

	sender, err := email.NewPostmarkSender(email.Config{
		PostmarkServerToken: "server-token",
		SenderEmail:         "noreply@example.com",
		SupportEmail:        "support@example.com",
	}, email.WithBaseURL(srv.URL))
	require.NoError(t, err)

	require.NoError(t, sender.SendEmail(context.Background(), validParams()))
	mu.Lock()
	assert.Equal(t, "server-token", token)
	mu.Unlock()
	assert.Equal(t, "noreply@example.com", last("From"))
	assert.Equal(t, "visitor@example.org", last("ReplyTo"))
	assert.Equal(t, "Hello there", last("TextBody"))

	p := validParams()
	p.ReplyTo = ""
	p.SendTo = "reject@example.com"
	assert.ErrorIs(t, sender.SendEmail(context.Background(), p), email.ErrFailedToSendEmail)
	assert.Equal(t, "support@example.com", last("ReplyTo"))
}
