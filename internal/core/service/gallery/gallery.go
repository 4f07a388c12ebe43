package gallery

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"strings"
)

type galleryPicker struct {
	maxSize int64
	logger  *slog.Logger
}

// NewGalleryPicker creates a picker accepting image files up to maxSize bytes
func NewGalleryPicker(maxSize int64, logger *slog.Logger) port.GalleryPicker {
	return &galleryPicker{maxSize: maxSize, logger: logger}
}

// Pick reads an image file from disk and tags it as coming from the gallery
func (g *galleryPicker) Pick(path string) (domain.PhotoDraft, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.PhotoDraft{}, err
	}
	if info.IsDir() {
		return domain.PhotoDraft{}, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidFileType, path)
	}
	if info.Size() == 0 {
		return domain.PhotoDraft{}, domain.ErrFileSizeTooSmall
	}
	if info.Size() > g.maxSize {
		return domain.PhotoDraft{}, fmt.Errorf("%w: %s exceeds %s", domain.ErrFileSizeTooBig, domain.FormatSize(info.Size()), domain.FormatSize(g.maxSize))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.PhotoDraft{}, err
	}

	mimeType := strings.SplitN(http.DetectContentType(content), ";", 2)[0]
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.PhotoDraft{}, fmt.Errorf("%w: %s is %s", domain.ErrInvalidFileType, filepath.Base(path), mimeType)
	}

	g.logger.Debug("picked gallery file", "path", path, "size", info.Size(), "mimetype", mimeType)
	return domain.PhotoDraft{
		Name:     filepath.Base(path),
		Content:  content,
		MimeType: mimeType,
		Source:   domain.SourceGallery,
	}, nil
}
