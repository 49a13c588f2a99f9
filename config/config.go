package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Mail provider names accepted by MAIL_PROVIDER
const (
	MailProviderSMTP   = "smtp"
	MailProviderResend = "resend"
	MailProviderLog    = "log"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	// Branding used in notification emails
	BrandName         string `env:"BRAND_NAME" envDefault:"SparkNest Studio"`
	MailSubjectPrefix string `env:"MAIL_SUBJECT_PREFIX" envDefault:"[SparkNest]"`
	ContactEmailTo    string `env:"CONTACT_EMAIL_TO" envDefault:"hello@sparknest.studio"`
	ContactWhatsApp   string `env:"CONTACT_WHATSAPP"`

	// Delivery
	MailProvider string        `env:"MAIL_PROVIDER" envDefault:"smtp"`
	MailTimeout  time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s"`

	// SMTP Configuration
	SMTPHost      string `env:"SMTP_HOST" envDefault:"smtp-relay.brevo.com"`
	SMTPPort      string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername  string `env:"SMTP_USERNAME"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`
	SMTPFromEmail string `env:"SMTP_FROM_EMAIL" envDefault:"noreply@sparknest.studio"`

	// Resend Configuration
	ResendAPIKey    string `env:"RESEND_API_KEY"`
	ResendFromEmail string `env:"RESEND_FROM_EMAIL" envDefault:"noreply@sparknest.studio"`
	ResendFromName  string `env:"RESEND_FROM_NAME" envDefault:"SparkNest Studio"`

	// HTTP
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes       int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	PingMessage        string   `env:"PING_MESSAGE" envDefault:"pong"`

	// Logging
	LogFile           string `env:"LOG_FILE"`
	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

func LoadConfig() (*Config, error) {
	// .env is only present locally, a missing file is fine
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.MailProvider = strings.ToLower(strings.TrimSpace(cfg.MailProvider))
	switch cfg.MailProvider {
	case MailProviderSMTP, MailProviderResend, MailProviderLog:
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
	}

	if cfg.ContactEmailTo == "" {
		return nil, fmt.Errorf("CONTACT_EMAIL_TO must not be empty")
	}

	if cfg.MailTimeout <= 0 {
		return nil, fmt.Errorf("MAIL_TIMEOUT must be positive, got %s", cfg.MailTimeout)
	}

	if cfg.MailProvider == MailProviderSMTP && (cfg.SMTPUsername == "" || cfg.SMTPPassword == "") {
		log.Println("WARNING: SMTP credentials are missing. Submissions will be logged instead of emailed.")
	}
	if cfg.MailProvider == MailProviderResend && cfg.ResendAPIKey == "" {
		log.Println("WARNING: RESEND_API_KEY is missing. Submissions will be logged instead of emailed.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}
