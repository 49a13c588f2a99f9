package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Options configures the process logger
type Options struct {
	Level slog.Level
	// File enables a rotated copy of the log stream
	File string
	// SentryDSN forwards warnings and errors to Sentry when set
	SentryDSN         string
	SentryEnvironment string
}

// Init replaces Log with a logger built from opts. The returned func flushes
// and closes the file and Sentry sinks.
func Init(opts Options) func() {
	var out io.Writer = os.Stdout
	var rotated *lumberjack.Logger
	if opts.File != "" {
		rotated = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotated)
	}

	// JSON handler for production-ready logging
	var handler slog.Handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: opts.Level,
	})

	sentryEnabled := false
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.SentryEnvironment,
			EnableLogs:  true,
		})
		if err != nil {
			slog.New(handler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		} else {
			sentryEnabled = true
			sentryHandler := sentryslog.Option{
				EventLevel: []slog.Level{slog.LevelError},
				LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
			}.NewSentryHandler(context.Background())
			handler = newMultiHandler(handler, sentryHandler)
		}
	}

	Log = slog.New(NewLogHandlerDecorator(handler, RequestIDExtractor))

	return func() {
		if sentryEnabled {
			sentry.Flush(sentryFlushTimeout)
		}
		if rotated != nil {
			_ = rotated.Close()
		}
	}
}
