package image

import (
	"context"
	"snapbox/internal/core/domain"
)

// ListImages returns completed images, newest first
func (s *imageService) ListImages(ctx context.Context) ([]domain.ImageMetadata, error) {
	return s.uow.ImageRepo().ListCompleted(ctx)
}
