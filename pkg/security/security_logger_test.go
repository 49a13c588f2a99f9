package security_test

import (
	"context"
	"testing"

	"sparknest-backend/pkg/logger"
	"sparknest-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*security.SecurityLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return security.NewSecurityLoggerWithZap(zap.New(core), "sparknest-backend", "test"), logs
}

func TestLogValidationFailed(t *testing.T) {
	sl, logs := newObserved()
	ctx := logger.WithRequestID(context.Background(), "req-1")

	sl.LogValidationFailed(ctx, "project", "jane@x.com", []string{"projectType"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "validation_failed", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "j***@x.com", fields["subject_value"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, `{"fields":["projectType"],"form":"project"}`, fields["details"])
}

func TestLogSubmissionAccepted(t *testing.T) {
	sl, logs := newObserved()
	sl.LogSubmissionAccepted(context.Background(), "contact", "jane@x.com")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.InfoLevel, logs.All()[0].Level)
	assert.NotContains(t, logs.All()[0].ContextMap(), "request_id")
}

func TestLogDeliveryDegraded(t *testing.T) {
	sl, logs := newObserved()
	sl.LogDeliveryDegraded(context.Background(), "contact", "email: transport is not configured")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "delivery_degraded", logs.All()[0].Message)
}

func TestNilSecurityLogger(t *testing.T) {
	var sl *security.SecurityLogger
	assert.NotPanics(t, func() {
		sl.LogSubmissionAccepted(context.Background(), "contact", "jane@x.com")
		_ = sl.Sync()
	})
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", security.MaskEmail("jane@example.com"))
	assert.Equal(t, "", security.MaskEmail(""))
	assert.Equal(t, security.HashValue("not-an-email"), security.MaskEmail("not-an-email"))
	assert.Equal(t, security.HashValue("@x.com"), security.MaskEmail("@x.com"))
	assert.Len(t, security.HashValue("anything"), 16)
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, security.SeverityINFO, security.GetSeverity(security.EventSubmissionAccepted))
	assert.Equal(t, security.SeverityWARN, security.GetSeverity("unmapped"))
	assert.True(t, security.IsHighOrAbove(security.EventDeliveryDegraded))
	assert.False(t, security.IsHighOrAbove(security.EventValidationFailed))

	sl, logs := newObserved()
	sl.LogDeliveryDegraded(context.Background(), "project", "timeout")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	assert.Equal(t, "HIGH", logs.All()[0].ContextMap()["severity"])
}
