package main

import (
	"errors"
	"fmt"
	"log/slog"

	"sparknest-backend/config"
	"sparknest-backend/internal/domain"
	"sparknest-backend/internal/usecase"
	"sparknest-backend/pkg/email"
	"sparknest-backend/pkg/logger"
	"sparknest-backend/pkg/security"
	"sparknest-backend/pkg/validation"
)

const serviceName = "sparknest-backend"

// app holds the wired submission pipeline
type app struct {
	cfg        *config.Config
	validator  *validation.FormValidator
	dispatcher *usecase.Dispatcher
	audit      *security.SecurityLogger
	submission domain.SubmissionUsecase
	health     domain.HealthUsecase
}

func newApp(cfg *config.Config, withTransport bool) (*app, error) {
	renderer, err := email.NewRenderer(cfg.BrandName)
	if err != nil {
		return nil, err
	}

	var transport email.Transport
	if withTransport {
		transport, err = email.NewTransport(cfg)
		switch {
		case errors.Is(err, email.ErrTransportUnavailable):
			logger.Log.Warn("Email transport not configured - submissions will be logged instead of sent",
				slog.String("provider", cfg.MailProvider))
			transport = nil
		case err != nil:
			return nil, fmt.Errorf("failed to build email transport: %w", err)
		}
	}

	audit := security.NewSecurityLogger(serviceName, cfg.SentryEnvironment)
	validator := validation.NewFormValidator()
	dispatcher := usecase.NewDispatcher(usecase.DispatcherConfig{
		Renderer:      renderer,
		Transport:     transport,
		To:            cfg.ContactEmailTo,
		SubjectPrefix: cfg.MailSubjectPrefix,
		WhatsApp:      cfg.ContactWhatsApp,
		Audit:         audit,
	})

	return &app{
		cfg:        cfg,
		validator:  validator,
		dispatcher: dispatcher,
		audit:      audit,
		submission: usecase.NewSubmissionUsecase(validator, dispatcher, audit),
		health:     usecase.NewHealthUsecase(cfg.MailProvider, transport != nil),
	}, nil
}

func initLogger(cfg *config.Config) func() {
	level := slog.LevelInfo
	if !cfg.IsProduction() {
		level = slog.LevelDebug
	}
	return logger.Init(logger.Options{
		Level:             level,
		File:              cfg.LogFile,
		SentryDSN:         cfg.SentryDSN,
		SentryEnvironment: cfg.SentryEnvironment,
	})
}
