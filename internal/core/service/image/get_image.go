package image

import (
	"context"
	"io"
	"snapbox/internal/core/domain"

	"github.com/google/uuid"
)

func (s *imageService) GetImage(ctx context.Context, id uuid.UUID) (*domain.ImageMetadata, error) {
	image, err := s.uow.ImageRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if image.Status != domain.ImageStatusCompleted {
		return nil, domain.ErrImageNotFound
	}
	return image, nil
}

// OpenImage streams the stored object behind a public filename
func (s *imageService) OpenImage(ctx context.Context, filename string) (io.ReadCloser, *domain.ImageMetadata, error) {
	image, err := s.uow.ImageRepo().FindByFilename(ctx, filename)
	if err != nil {
		return nil, nil, err
	}
	if image.Status != domain.ImageStatusCompleted {
		return nil, nil, domain.ErrImageNotFound
	}

	object, err := s.storage.GetObject(ctx, image.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return object, image, nil
}
