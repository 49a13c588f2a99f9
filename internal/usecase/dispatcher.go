package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sparknest-backend/internal/domain"
	"sparknest-backend/pkg/email"
	"sparknest-backend/pkg/logger"
	"sparknest-backend/pkg/security"
)

// Outcome reports what happened to a dispatched notification
type Outcome struct {
	// Delivered is true when the notification was sent or written to the fallback log
	Delivered bool
	// Fallback is true when the transport was unavailable or failed
	Fallback bool
}

// DispatcherConfig collects the collaborators of a Dispatcher
type DispatcherConfig struct {
	Renderer *email.Renderer
	// Transport may be nil, every notification is then logged instead of sent
	Transport     email.Transport
	To            string
	SubjectPrefix string
	WhatsApp      string
	Logger        *slog.Logger
	Audit         *security.SecurityLogger
}

// Dispatcher renders validated submissions and hands them to the transport.
// It is immutable after construction.
type Dispatcher struct {
	renderer      *email.Renderer
	transport     email.Transport
	to            []string
	subjectPrefix string
	whatsApp      string
	log           *slog.Logger
	audit         *security.SecurityLogger
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	log := cfg.Logger
	if log == nil {
		log = logger.Log
	}
	var to []string
	if cfg.To != "" {
		to = []string{cfg.To}
	}
	return &Dispatcher{
		renderer:      cfg.Renderer,
		transport:     cfg.Transport,
		to:            to,
		subjectPrefix: cfg.SubjectPrefix,
		whatsApp:      cfg.WhatsApp,
		log:           log,
		audit:         cfg.Audit,
	}
}

// Compose renders a submission into a deliverable message
func (d *Dispatcher) Compose(sub domain.Submission) (*email.Message, error) {
	var (
		rendered *email.Rendered
		subject  string
		err      error
	)

	switch s := sub.(type) {
	case *domain.ContactSubmission:
		rendered, err = d.renderer.RenderContact(email.ContactEmailData{
			Heading:  s.Kind().Label(),
			Name:     s.Name,
			Email:    s.Email,
			Phone:    s.Phone,
			Subject:  s.Subject,
			Message:  s.Message,
			WhatsApp: d.whatsApp,
		})
		subject = d.subject(s.Subject)
	case *domain.ProjectSubmission:
		rendered, err = d.renderer.RenderProject(email.ProjectEmailData{
			Name:           s.Name,
			Email:          s.Email,
			Company:        s.Company,
			Phone:          s.Phone,
			ProjectType:    s.ProjectType.Label(),
			Budget:         s.Budget,
			Timeline:       s.Timeline,
			Description:    s.Description,
			Features:       s.Features,
			AdditionalInfo: s.AdditionalInfo,
			WhatsApp:       d.whatsApp,
		})
		subject = d.subject("New Project: " + s.ProjectType.Label())
	default:
		return nil, fmt.Errorf("unsupported submission type %T", sub)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s notification: %w", sub.Kind(), err)
	}

	return &email.Message{
		To:      d.to,
		ReplyTo: sub.SenderEmail(),
		Subject: subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	}, nil
}

func (d *Dispatcher) subject(s string) string {
	if d.subjectPrefix == "" {
		return s
	}
	return d.subjectPrefix + " " + s
}

// Dispatch renders and delivers sub with a single attempt. Delivery failures
// are logged together with the full notification and never returned; only a
// rendering failure is.
func (d *Dispatcher) Dispatch(ctx context.Context, sub domain.Submission) (Outcome, error) {
	msg, err := d.Compose(sub)
	if err != nil {
		return Outcome{}, err
	}

	// The send outlives an aborted request, the transport bounds it
	sendCtx := context.WithoutCancel(ctx)

	if d.transport == nil {
		d.fallback(ctx, sub, msg, email.ErrTransportUnavailable)
		return Outcome{Delivered: true, Fallback: true}, nil
	}

	if err := d.send(sendCtx, msg); err != nil {
		d.fallback(ctx, sub, msg, err)
		return Outcome{Delivered: true, Fallback: true}, nil
	}

	d.log.InfoContext(ctx, "notification sent",
		slog.String("form", string(sub.Kind())),
		slog.String("subject", msg.Subject),
	)
	return Outcome{Delivered: true}, nil
}

func (d *Dispatcher) send(ctx context.Context, msg *email.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &email.TransportError{Provider: "unknown", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	err = d.transport.Send(ctx, msg)
	if err == nil {
		return nil
	}
	var terr *email.TransportError
	if !errors.As(err, &terr) {
		err = &email.TransportError{Provider: "unknown", Err: err}
	}
	return err
}

func (d *Dispatcher) fallback(ctx context.Context, sub domain.Submission, msg *email.Message, cause error) {
	d.log.WarnContext(ctx, "notification not delivered, logging instead",
		slog.String("delivery", "fallback"),
		slog.String("form", string(sub.Kind())),
		slog.String("error", cause.Error()),
		slog.String("to", strings.Join(msg.To, ", ")),
		slog.String("reply_to", msg.ReplyTo),
		slog.String("subject", msg.Subject),
		slog.String("text", msg.Text),
		slog.String("html", msg.HTML),
	)
	d.audit.LogDeliveryDegraded(ctx, string(sub.Kind()), cause.Error())
}
