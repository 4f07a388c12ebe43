package cleanup

import (
	"log/slog"
	"snapbox/internal/core/port"
)

type cleanupService struct {
	uow          port.UnitOfWork
	imageStorage port.ImageStorage
	logger       *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(uow port.UnitOfWork, imageStorage port.ImageStorage, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		uow:          uow,
		imageStorage: imageStorage,
		logger:       logger,
	}
}
