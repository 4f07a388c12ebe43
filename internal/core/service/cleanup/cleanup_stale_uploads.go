package cleanup

import (
	"context"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"time"
)

// CleanupStaleUploads drops images stuck in uploading since before olderThan.
// A failing image is logged and skipped so one bad row does not block the rest.
func (c *cleanupService) CleanupStaleUploads(ctx context.Context, olderThan time.Time) error {

	images, err := c.uow.ImageRepo().FindStale(ctx, olderThan)
	if err != nil {
		return err
	}

	cleaned := 0
	for _, image := range images {

		txErr := c.uow.Execute(ctx, func(uow port.UnitOfWork) error {

			if err := uow.ImageRepo().UpdateStatus(ctx, image.ID, domain.ImageStatusFailed); err != nil {
				return err
			}

			if err := uow.ImageRepo().Delete(ctx, image.ID); err != nil {
				return err
			}

			return c.imageStorage.DeleteObject(ctx, image.StorageKey)
		})
		if txErr != nil {
			c.logger.Error("failed to clean up stale upload", "id", image.ID, "err", txErr)
			continue
		}
		cleaned++
	}

	c.logger.Info("stale upload cleanup completed", "found", len(images), "cleaned", cleaned)
	return nil
}
