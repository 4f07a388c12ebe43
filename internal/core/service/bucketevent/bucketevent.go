package bucketevent

import (
	"log/slog"
	"snapbox/internal/core/port"
)

type bucketEventService struct {
	storage port.ImageStorage
	uow     port.UnitOfWork
	logger  *slog.Logger
}

// NewBucketEventService creates a handler reconciling image metadata with bucket notifications
func NewBucketEventService(storage port.ImageStorage, uow port.UnitOfWork, logger *slog.Logger) port.MessageService {
	return &bucketEventService{
		storage: storage,
		uow:     uow,
		logger:  logger,
	}
}
