package bucketevent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"snapbox/internal/core/domain"
	"strings"
)

// HandleMessage reconciles every record of a bucket notification.
// An error makes the broker redeliver the message.
func (b *bucketEventService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.BucketEvent

	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal bucket event: %w", err)
	}
	if len(event.Records) == 0 {
		return fmt.Errorf("no records in bucket event")
	}

	for _, record := range event.Records {
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			return err
		}

		eventType := domain.ClassifyBucketEvent(record.EventName)
		b.logger.Info("handling bucket event", "eventtype", record.EventName, "key", key)

		switch eventType {
		case domain.BucketEventObjectCreated:
			err = b.objectCreated(ctx, key)
		case domain.BucketEventObjectRemoved:
			err = b.objectRemoved(ctx, key)
		default:
			b.logger.Warn("ignoring bucket event", "eventtype", record.EventName, "key", key)
		}
		if err != nil {
			return fmt.Errorf("could not reconcile %s: %w", key, err)
		}
	}
	return nil
}

// objectCreated checks the stored object against its metadata and marks the image failed on mismatch
func (b *bucketEventService) objectCreated(ctx context.Context, key string) error {
	image, err := b.uow.ImageRepo().FindByStorageKey(ctx, key)
	if err != nil {
		return err
	}
	if image.Status == domain.ImageStatusFailed {
		return nil
	}

	info, err := b.storage.GetObjectInfo(ctx, key)
	if err != nil {
		return err
	}

	var mismatch error
	if info.Size != image.SizeBytes {
		mismatch = fmt.Errorf("%w: stored %d, expected %d", domain.ErrSizeMismatch, info.Size, image.SizeBytes)
	} else {
		header, err := b.storage.GetHeaderBytes(ctx, key, 512)
		if err != nil {
			return err
		}
		detected := strings.ToLower(strings.SplitN(http.DetectContentType(header), ";", 2)[0])
		if detected != image.MimeType {
			mismatch = fmt.Errorf("%w: stored %s, expected %s", domain.ErrContentTypeMismatch, detected, image.MimeType)
		}
	}

	if mismatch == nil {
		return nil
	}

	b.logger.Warn("stored object does not match metadata", "id", image.ID, "key", key, "error", mismatch)
	return b.uow.ImageRepo().UpdateStatus(ctx, image.ID, domain.ImageStatusFailed)
}

// objectRemoved drops the metadata of an object deleted behind the service's back
func (b *bucketEventService) objectRemoved(ctx context.Context, key string) error {
	image, err := b.uow.ImageRepo().FindByStorageKey(ctx, key)
	if errors.Is(err, domain.ErrImageNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	b.logger.Info("removing metadata of deleted object", "id", image.ID, "key", key)
	return b.uow.ImageRepo().Delete(ctx, image.ID)
}
