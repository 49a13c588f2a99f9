package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sparknest-backend/config"
)

// ErrTransportUnavailable means no delivery channel is configured
var ErrTransportUnavailable = errors.New("email: transport is not configured")

// Message is a fully rendered notification ready for delivery
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Transport delivers a single message. Implementations enforce their own
// timeout and must not retry.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
}

// TransportError wraps a failed delivery attempt
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("email: %s delivery failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransport builds the transport selected by MAIL_PROVIDER. It returns
// ErrTransportUnavailable when the provider has no credentials or when
// submissions are configured to be logged only.
func NewTransport(cfg *config.Config) (Transport, error) {
	switch cfg.MailProvider {
	case config.MailProviderSMTP:
		t := NewSMTPTransport(cfg)
		if !t.IsConfigured() {
			return nil, ErrTransportUnavailable
		}
		return t, nil
	case config.MailProviderResend:
		t := NewResendTransport(cfg)
		if !t.IsConfigured() {
			return nil, ErrTransportUnavailable
		}
		return t, nil
	case config.MailProviderLog, "":
		return nil, ErrTransportUnavailable
	default:
		return nil, fmt.Errorf("email: unknown provider %q", cfg.MailProvider)
	}
}

// headerSafe strips line breaks so user input cannot inject headers
func headerSafe(s string) string {
	return strings.Join(strings.Fields(strings.NewReplacer("\r", " ", "\n", " ").Replace(s)), " ")
}
