package photosync

import (
	"context"
	"fmt"
	"path/filepath"
	"snapbox/internal/core/domain"
	"time"
)

// Save assigns an id and capture time, uploads the photo and refreshes the buffer.
// Failures are stored in the error slot and reported as (nil, false).
func (c *syncController) Save(ctx context.Context, draft domain.PhotoDraft) (*domain.Photo, bool) {
	c.begin()
	defer c.end()

	source, err := domain.ParseSource(string(draft.Source))
	if err != nil {
		c.setErr(fmt.Errorf("failed to save photo: %w", err))
		return nil, false
	}

	capturedAt := time.Now()
	photo := domain.Photo{
		ID:         newPhotoID(),
		Name:       draft.Name,
		Content:    draft.Content,
		MimeType:   draft.MimeType,
		Size:       int64(len(draft.Content)),
		Source:     source,
		CapturedAt: capturedAt,
	}
	if photo.Name == "" {
		photo.Name = fmt.Sprintf("%s_%s.jpg", source, capturedAt.Format("20060102_150405"))
	}
	if photo.MimeType == "" {
		photo.MimeType = mimeFromName(photo.Name)
	}

	saved, err := c.store.Upload(ctx, photo)
	if err != nil {
		err = fmt.Errorf("failed to save photo: %w", err)
		c.logger.Error("save failed", "error", err, "name", photo.Name)
		c.setErr(err)
		return nil, false
	}
	c.logger.Info("photo saved", "id", saved.ID, "name", saved.Name, "size", saved.Size)

	_ = c.refresh(ctx)
	return saved, true
}

func mimeFromName(name string) string {
	switch filepath.Ext(name) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
