package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"surveyportal/internal/app"
	"surveyportal/internal/config"
	"surveyportal/internal/logging"
)

// @title Neuro Pulse Survey API
// @version 1.0
// @description Survey authoring, response collection and analytics
// @BasePath /v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.Logging)

	ctx := context.Background()
	portal, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer portal.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           portal.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting",
			slog.String("port", cfg.HTTP.Port),
			slog.String("medium", cfg.Store.Medium),
			slog.Bool("analyticsCache", cfg.AnalyticsCache.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ListenAndServe", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
