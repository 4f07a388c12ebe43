package image

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"snapbox/internal/config"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"strings"
)

type imageService struct {
	storage   port.ImageStorage
	uow       port.UnitOfWork
	metrics   port.ImageMetrics
	uploadCfg config.UploadConfig
	logger    *slog.Logger
}

// NewImageService creates a new image service
func NewImageService(uow port.UnitOfWork, storage port.ImageStorage, metrics port.ImageMetrics, cfg config.UploadConfig, logger *slog.Logger) port.ImageService {
	return &imageService{uow: uow, storage: storage, metrics: metrics, uploadCfg: cfg, logger: logger}
}

// AllowedImageMimeTypes maps the accepted image MIME types to the extension used for storage names.
// Only types recognised by content sniffing are listed.
var AllowedImageMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// sniffLen is the number of bytes http.DetectContentType looks at
const sniffLen = 512

func extractMimeType(contentType string) string {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mimeType)
}

// sniff reads the head of body and returns its detected MIME type together with a reader
// replaying the full content
func sniff(body io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]
	return extractMimeType(http.DetectContentType(head)), io.MultiReader(bytes.NewReader(head), body), nil
}

func (s *imageService) validateImage(contentType string, size int64) (string, error) {
	if size <= 0 {
		return "", domain.ErrFileSizeTooSmall
	}
	if size > s.uploadCfg.MaxSize {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrFileSizeTooBig, size, s.uploadCfg.MaxSize)
	}

	mimeType := extractMimeType(contentType)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: %s is not an image", domain.ErrInvalidFileType, contentType)
	}
	if _, ok := AllowedImageMimeTypes[mimeType]; !ok {
		return "", fmt.Errorf("%w: unsupported MIME type %s", domain.ErrInvalidFileType, mimeType)
	}
	return mimeType, nil
}

// rejectReason is the metrics label of a refused upload
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidFileType):
		return "invalid_file_type"
	case errors.Is(err, domain.ErrFileSizeTooBig):
		return "too_big"
	case errors.Is(err, domain.ErrFileSizeTooSmall):
		return "empty"
	case errors.Is(err, domain.ErrInvalidSource):
		return "invalid_source"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "duplicate"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "quota"
	default:
		return "error"
	}
}
