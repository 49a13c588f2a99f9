package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"sparknest-backend/pkg/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventSubmissionAccepted EventType = "submission_accepted"
	EventValidationFailed   EventType = "validation_failed"
	EventDeliveryDegraded   EventType = "delivery_degraded"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time      `json:"timestamp"`
	Service      string         `json:"service"`
	Environment  string         `json:"env"`
	Level        string         `json:"level"`
	Severity     Severity       `json:"severity"`
	Event        EventType      `json:"event"`
	SubjectType  string         `json:"subject_type,omitempty"`  // "email", "ip"
	SubjectValue string         `json:"subject_value,omitempty"` // Masked or hashed for PII
	RequestID    string         `json:"request_id,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// SecurityLogger provides structured logging for form submission events.
// A nil *SecurityLogger discards everything.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewSecurityLogger builds a production Zap logger writing JSON to stdout
func NewSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		zl, _ = zap.NewProduction()
	}
	return NewSecurityLoggerWithZap(zl, serviceName, environment)
}

// NewSecurityLoggerWithZap wraps an existing Zap logger
func NewSecurityLoggerWithZap(zl *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   zl,
		serviceName: serviceName,
		environment: environment,
	}
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if sl == nil {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = sl.serviceName
	event.Environment = sl.environment
	if event.RequestID == "" {
		event.RequestID = logger.RequestID(ctx)
	}

	event.Severity = GetSeverity(event.Event)
	level := event.Severity.zapLevel()
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(event.Severity)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)
}

// LogSubmissionAccepted logs a submission that passed validation
func (sl *SecurityLogger) LogSubmissionAccepted(ctx context.Context, kind, email string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventSubmissionAccepted,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      map[string]any{"form": kind},
	})
}

// LogValidationFailed logs a rejected submission with the offending fields
func (sl *SecurityLogger) LogValidationFailed(ctx context.Context, kind, email string, fields []string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventValidationFailed,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      map[string]any{"form": kind, "fields": fields},
	})
}

// LogDeliveryDegraded logs a notification that fell back to the diagnostic log
func (sl *SecurityLogger) LogDeliveryDegraded(ctx context.Context, kind, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:   EventDeliveryDegraded,
		Details: map[string]any{"form": kind, "reason": reason},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	if sl == nil {
		return nil
	}
	return sl.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return HashValue(email)
	}
	return email[:1] + "***" + email[at:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8]) // First 16 chars of hex
}
