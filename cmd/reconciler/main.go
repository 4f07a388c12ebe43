package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"snapbox/internal/adapters/eventbroker/nats"
	"snapbox/internal/adapters/repository/postgres"
	"snapbox/internal/adapters/storage/minio"
	"snapbox/internal/config"
	"snapbox/internal/core/service/bucketevent"
	"syscall"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Database.Driver != "postgres" {
		logger.Error("the reconciler shares metadata with the api and needs postgres", "driver", cfg.Database.Driver)
		os.Exit(1)
	}

	// Initialize database
	db, err := postgres.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("db connection established")

	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}
	logger.Info("minio adapter initialized")

	unitOfWork := postgres.NewUnitOfWork(db)
	bucketEventService := bucketevent.NewBucketEventService(minioAdapter, unitOfWork, logger)

	// Initialize NATS consumer
	natsConsumer, err := nats.NewNATSConsumer(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to create NATS consumer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := natsConsumer.Close(); err != nil {
			logger.Error("failed to close NATS consumer", "error", err)
		}
	}()
	logger.Info("NATS consumer initialized")

	if err := natsConsumer.EnsureStream(ctx); err != nil {
		logger.Error("failed to ensure NATS stream", "error", err)
		os.Exit(1)
	}

	if err := natsConsumer.Subscribe(ctx, bucketEventService); err != nil {
		logger.Error("failed to subscribe to NATS", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS subscription active")

	// Wait for termination signal
	<-ctx.Done()
	logger.Info("gracefully shutting down reconciler")

	// Close waits for the message in flight
	if err := natsConsumer.Close(); err != nil {
		logger.Error("failed to close NATS consumer during shutdown", "error", err)
	}

	logger.Info("reconciler shutdown complete")
}
