package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hms-dev/mileage-backend/internal/api"
	"github.com/hms-dev/mileage-backend/internal/application/reconcile"
	"github.com/hms-dev/mileage-backend/internal/application/service"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/config"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/feedclient"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/logging"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
	"github.com/hms-dev/mileage-backend/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configPath)

	logger := logging.NewLogger(cfg.Observability.Logging)
	slog.SetDefault(logger)

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Storage.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()
	logger.Info("database ready", "path", cfg.Storage.DatabasePath)

	// Without a feed URL the server runs as a plain mileage ledger; the
	// reconciliation pipeline and its endpoints stay off.
	var syncSvc *service.SyncService
	if cfg.Calendar.FeedURL != "" {
		fetcher := feedclient.NewClient(time.Duration(cfg.Calendar.TimeoutSeconds) * time.Second)
		reconciler := reconcile.NewReconciler(store, fetcher, cfg.Calendar.FeedURL, logger)
		syncSvc = service.NewSyncService(reconciler, logger)

		sched := scheduler.New(
			func(ctx context.Context) { syncSvc.Sync(ctx) },
			time.Duration(cfg.Calendar.SyncIntervalMinutes)*time.Minute,
			time.Duration(cfg.Calendar.StartupDelaySeconds)*time.Second,
			logger,
		)
		if err := sched.Start(); err != nil {
			logger.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
		defer sched.Stop()
	} else {
		logger.Info("calendar feed not configured, sync disabled")
	}

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Username:       cfg.Auth.Username,
		Password:       cfg.Auth.Password,
	}, store, syncSvc, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
