package image

import (
	"context"
	"fmt"
	"snapbox/internal/core/port"

	"github.com/google/uuid"
)

// DeleteImage removes the metadata row and the stored object
func (s *imageService) DeleteImage(ctx context.Context, id uuid.UUID) error {
	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		image, err := uow.ImageRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := uow.ImageRepo().Delete(ctx, id); err != nil {
			return err
		}

		return s.storage.DeleteObject(ctx, image.StorageKey)
	})
	if txErr != nil {
		return fmt.Errorf("could not delete image %s: %w", id, txErr)
	}

	s.metrics.ImagesDeleted(1)
	s.logger.Info("image deleted", "id", id)
	return nil
}

// DeleteAllImages removes every image and returns how many were deleted
func (s *imageService) DeleteAllImages(ctx context.Context) (int, error) {
	var deleted int

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		images, err := uow.ImageRepo().DeleteAll(ctx)
		if err != nil {
			return err
		}

		for _, image := range images {
			if err := s.storage.DeleteObject(ctx, image.StorageKey); err != nil {
				return err
			}
		}
		deleted = len(images)
		return nil
	})
	if txErr != nil {
		return 0, fmt.Errorf("could not delete images: %w", txErr)
	}

	s.metrics.ImagesDeleted(deleted)
	s.logger.Info("images deleted", "count", deleted)
	return deleted, nil
}
