package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sparknest-backend/config"
	v1 "sparknest-backend/internal/delivery/http/v1"
	"sparknest-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	closeLogger := initLogger(cfg)
	defer closeLogger()
	logger.Log.Info("Starting SparkNest backend", "port", cfg.Port, "provider", cfg.MailProvider)

	// 3. Setup pipeline
	a, err := newApp(cfg, true)
	if err != nil {
		return err
	}
	defer a.audit.Sync()

	// 4. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		SubmissionUC: a.submission,
		HealthUC:     a.health,
		Config:       cfg,
	})

	// 5. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful Shutdown
	select {
	case err := <-errCh:
		if err != nil {
			logger.Log.Error("Listen failed", "error", err)
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
		return err
	}

	logger.Log.Info("Server exiting")
	return nil
}
