package image

import (
	"context"
	"errors"
	"fmt"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"time"

	"github.com/google/uuid"
)

// UploadImage validates the upload, records its metadata and stores the object in a single unit of work
func (s *imageService) UploadImage(ctx context.Context, req port.UploadRequest) (*domain.ImageMetadata, error) {
	image, err := s.uploadImage(ctx, req)
	if err != nil {
		s.metrics.ImageRejected(rejectReason(err))
		return nil, err
	}
	s.metrics.ImageUploaded(image.Source, image.SizeBytes)
	return image, nil
}

func (s *imageService) uploadImage(ctx context.Context, req port.UploadRequest) (*domain.ImageMetadata, error) {
	declared, err := s.validateImage(req.ContentType, req.Size)
	if err != nil {
		return nil, err
	}

	sniffed, body, err := sniff(req.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read upload: %w", err)
	}
	if _, ok := AllowedImageMimeTypes[sniffed]; !ok {
		return nil, fmt.Errorf("%w: content is %s, declared %s", domain.ErrInvalidFileType, sniffed, declared)
	}

	source := domain.SourceCamera
	if req.Source != "" {
		source, err = domain.ParseSource(req.Source)
		if err != nil {
			return nil, err
		}
	}

	if req.ClientID != "" {
		_, err := s.uow.ImageRepo().FindByClientID(ctx, req.ClientID)
		if err == nil {
			return nil, fmt.Errorf("%w: image %s", domain.ErrAlreadyExists, req.ClientID)
		}
		if !errors.Is(err, domain.ErrImageNotFound) {
			return nil, err
		}
	}

	used, err := s.uow.ImageRepo().SumSize(ctx)
	if err != nil {
		return nil, err
	}
	if used+req.Size > s.uploadCfg.StorageQuota {
		return nil, fmt.Errorf("%w: %d of %d bytes used", domain.ErrQuotaExceeded, used, s.uploadCfg.StorageQuota)
	}

	now := time.Now().UTC()
	id := uuid.New()
	filename := id.String() + AllowedImageMimeTypes[sniffed]

	image := domain.ImageMetadata{
		ID:           id,
		ClientID:     req.ClientID,
		Filename:     filename,
		OriginalName: req.OriginalName,
		MimeType:     sniffed,
		SizeBytes:    req.Size,
		Source:       source,
		StorageKey:   "images/" + filename,
		Status:       domain.ImageStatusUploading,
		CapturedAt:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.CapturedAt != nil {
		image.CapturedAt = req.CapturedAt.UTC()
	}
	if image.OriginalName == "" {
		image.OriginalName = filename
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if err := uow.ImageRepo().Create(ctx, image); err != nil {
			return err
		}

		if err := s.storage.PutObject(ctx, image.StorageKey, body, image.SizeBytes, image.MimeType); err != nil {
			return err
		}

		return uow.ImageRepo().UpdateStatus(ctx, image.ID, domain.ImageStatusCompleted)
	})
	if txErr != nil {
		return nil, fmt.Errorf("could not store image: %w", txErr)
	}

	image.Status = domain.ImageStatusCompleted
	s.logger.Info("image stored", "id", image.ID, "key", image.StorageKey, "size", image.SizeBytes, "source", image.Source)
	return &image, nil
}
