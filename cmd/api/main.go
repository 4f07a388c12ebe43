package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"snapbox/internal/adapters/handlers/http/chi"
	imagev1 "snapbox/internal/adapters/handlers/http/chi/v1/image"
	"snapbox/internal/adapters/metrics"
	"snapbox/internal/adapters/repository/postgres"
	"snapbox/internal/adapters/repository/sqlite"
	"snapbox/internal/adapters/storage/minio"
	"snapbox/internal/config"
	"snapbox/internal/core/port"
	"snapbox/internal/core/service/cleanup"
	"snapbox/internal/core/service/image"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// multipart framing allowance on top of the largest accepted image
const formOverhead = 1 << 20

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	unitOfWork, closeDB, err := initUnitOfWork(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err, "driver", cfg.Database.Driver)
		os.Exit(1)
	}
	defer func() {
		if err := closeDB(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("db connection established", "driver", cfg.Database.Driver)

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	imageMetrics := metrics.NewImageMetrics(registry)

	imageService := image.NewImageService(unitOfWork, minioAdapter, imageMetrics, cfg.Upload, logger)
	cleanupService := cleanup.NewCleanupService(unitOfWork, minioAdapter, logger)

	//http
	imageHandler := imagev1.NewImageHandlerV1(imageService, cfg.Server.PublicBaseURL, logger)

	router := chi.NewRouter(logger, imageHandler, chi.RouterOptions{
		Env:          cfg.Env.Env,
		MaxBodyBytes: cfg.Upload.MaxSize + formOverhead,
		Metrics:      metrics.Handler(registry),
	})
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// init cleanup task
	wg.Add(1)
	go func() {
		defer wg.Done()
		initCleanupTask(ctx, cleanupService, cfg.Upload, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

// initUnitOfWork opens the metadata store selected by DB_DRIVER
func initUnitOfWork(cfg config.DatabaseConfig) (port.UnitOfWork, func() error, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := postgres.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewUnitOfWork(db), db.Close, nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewUnitOfWork(db), sqlDB.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func initCleanupTask(ctx context.Context, service port.CleanupService, cfg config.UploadConfig, logger *slog.Logger) {
	ticker := time.NewTicker(cfg.CleanupEvery)
	defer ticker.Stop()

	logger.Info("cleanup task initialized", "interval", cfg.CleanupEvery, "stale_after", cfg.StaleAfter)

	for {
		select {
		case <-ticker.C:
			logger.Info("cleanup task starting")
			err := service.CleanupStaleUploads(ctx, time.Now().Add(-cfg.StaleAfter))
			if err != nil {
				logger.Error("failed to cleanup stale uploads", "error", err)
			} else {
				logger.Info("cleanup task completed successfully")
			}
		case <-ctx.Done():
			logger.Info("cleanup task stopped")
			return
		}
	}

}
