package email

import (
	"context"
	"fmt"
	"time"

	"sparknest-backend/config"

	"github.com/resend/resend-go/v3"
)

// ResendTransport sends emails through the Resend HTTP API
type ResendTransport struct {
	client      *resend.Client
	apiKey      string
	senderEmail string
	senderName  string
	timeout     time.Duration
}

// NewResendTransport creates a new Resend transport from the configuration
func NewResendTransport(cfg *config.Config) *ResendTransport {
	return &ResendTransport{
		client:      resend.NewClient(cfg.ResendAPIKey),
		apiKey:      cfg.ResendAPIKey,
		senderEmail: cfg.ResendFromEmail,
		senderName:  cfg.ResendFromName,
		timeout:     cfg.MailTimeout,
	}
}

// IsConfigured checks if an API key and sender are set
func (s *ResendTransport) IsConfigured() bool {
	return s.apiKey != "" && s.senderEmail != ""
}

// Send implements Transport
func (s *ResendTransport) Send(ctx context.Context, msg *Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := &resend.SendEmailRequest{
		From:    s.from(),
		To:      msg.To,
		Subject: headerSafe(msg.Subject),
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: headerSafe(msg.ReplyTo),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return &TransportError{Provider: "resend", Err: err}
	}
	return nil
}

func (s *ResendTransport) from() string {
	if s.senderName != "" {
		return fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail)
	}
	return s.senderEmail
}
