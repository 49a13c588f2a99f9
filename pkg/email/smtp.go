package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"time"

	"sparknest-backend/config"
)

// SMTPTransport sends emails through an authenticated SMTP relay (Brevo by default)
type SMTPTransport struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	fromName  string
	timeout   time.Duration
}

// NewSMTPTransport creates a new SMTP transport from the configuration
func NewSMTPTransport(cfg *config.Config) *SMTPTransport {
	return &SMTPTransport{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		fromName:  cfg.BrandName,
		timeout:   cfg.MailTimeout,
	}
}

// IsConfigured checks if the transport has valid SMTP configuration
func (s *SMTPTransport) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// Send delivers msg in a single SMTP session bounded by the configured timeout
func (s *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return &TransportError{Provider: "smtp", Err: fmt.Errorf("no recipient")}
	}

	body, err := buildMIMEMessage(s.from(), msg)
	if err != nil {
		return &TransportError{Provider: "smtp", Err: err}
	}

	if err := s.deliver(ctx, msg.To, body); err != nil {
		return &TransportError{Provider: "smtp", Err: err}
	}
	return nil
}

func (s *SMTPTransport) from() string {
	addr := mail.Address{Name: s.fromName, Address: s.fromEmail}
	return addr.String()
}

func (s *SMTPTransport) deliver(ctx context.Context, to []string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	addr := net.JoinHostPort(s.host, s.port)
	dialer := &net.Dialer{Timeout: s.timeout}

	var conn net.Conn
	var err error
	if s.port == "465" {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: s.tlsConfig()}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("set deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(s.tlsConfig()); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if ok, _ := client.Extension("AUTH"); ok {
		if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := client.Mail(s.fromEmail); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}

	return client.Quit()
}

func (s *SMTPTransport) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: s.host,
		MinVersion: tls.VersionTLS12,
	}
}

// buildMIMEMessage constructs a multipart/alternative message with a plain
// text and an HTML part
func buildMIMEMessage(from string, msg *Message) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	var head bytes.Buffer
	writeHeader := func(key, value string) {
		fmt.Fprintf(&head, "%s: %s\r\n", key, value)
	}
	writeHeader("From", from)
	writeHeader("To", joinAddresses(msg.To))
	if msg.ReplyTo != "" {
		writeHeader("Reply-To", headerSafe(msg.ReplyTo))
	}
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", headerSafe(msg.Subject)))
	writeHeader("Date", time.Now().UTC().Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()))
	head.WriteString("\r\n")

	parts := []struct{ contentType, body string }{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		if p.body == "" {
			continue
		}
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, fmt.Errorf("create mime part: %w", err)
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := qp.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("write mime part: %w", err)
		}
		if err := qp.Close(); err != nil {
			return nil, fmt.Errorf("close mime part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close mime message: %w", err)
	}

	return append(head.Bytes(), buf.Bytes()...), nil
}

func joinAddresses(addrs []string) string {
	var out bytes.Buffer
	for i, a := range addrs {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(headerSafe(a))
	}
	return out.String()
}
