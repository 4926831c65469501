package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osa911/formintake/internal/metrics"
	"github.com/osa911/formintake/internal/repository"
	"github.com/osa911/formintake/internal/server"
	"github.com/osa911/formintake/internal/telemetry"
	"github.com/osa911/formintake/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting formintake %s in %s mode", version.Info(), cfg.Environment)

	shutdownTracing, err := telemetry.InitTracing(ctx, telemetry.TracingOptions{
		Endpoint: cfg.OTLPEndpoint,
		Insecure: cfg.OTLPInsecure,
		Sample:   cfg.OTELSampleRate,
		Version:  version.Version,
	})
	if err != nil {
		return err
	}

	repo, err := repository.Open(ctx, cfg.StoreURL(), repository.Options{
		FirebaseCredentialsFile: cfg.FirebaseCredentialsFile,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if err := repository.Migrate(ctx, repo); err != nil {
		logger.Warn("Store migration failed: %v", err)
	}

	srv, err := server.NewServer(cfg, server.Dependencies{
		Repo:    repo,
		Metrics: metrics.New(),
		Logger:  logger,
	})
	if err != nil {
		_ = repo.Close(context.Background())
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("Server shutdown failed: %v", shutdownErr)
	}
	if closeErr := repo.Close(shutdownCtx); closeErr != nil {
		logger.Error("Failed to close store: %v", closeErr)
	}
	if traceErr := shutdownTracing(shutdownCtx); traceErr != nil {
		logger.Warn("Failed to flush traces: %v", traceErr)
	}

	if err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
