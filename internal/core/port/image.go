package port

import (
	"context"
	"io"
	"snapbox/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// ImageRepository is an interface to define image metadata repository interactions
type ImageRepository interface {
	Create(ctx context.Context, image domain.ImageMetadata) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ImageMetadata, error)
	FindByClientID(ctx context.Context, clientID string) (*domain.ImageMetadata, error)
	FindByStorageKey(ctx context.Context, storageKey string) (*domain.ImageMetadata, error)
	FindByFilename(ctx context.Context, filename string) (*domain.ImageMetadata, error)
	ListCompleted(ctx context.Context) ([]domain.ImageMetadata, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ImageStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) ([]domain.ImageMetadata, error)
	SumSize(ctx context.Context) (int64, error)
	FindStale(ctx context.Context, olderThan time.Time) ([]domain.ImageMetadata, error)
}

// ObjectInfo is the storage side description of a stored object
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// ImageStorage is an interface to define object storage interactions
type ImageStorage interface {
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	GetObjectInfo(ctx context.Context, key string) (*ObjectInfo, error)
	GetHeaderBytes(ctx context.Context, key string, n int64) ([]byte, error)
	DeleteObject(ctx context.Context, key string) error
}

// UploadRequest is an image upload as received by the storage service
type UploadRequest struct {
	ClientID     string
	OriginalName string
	ContentType  string
	Size         int64
	Source       string
	CapturedAt   *time.Time
	Body         io.Reader
}

// ImageService is an interface to define the storage service
type ImageService interface {
	UploadImage(ctx context.Context, req UploadRequest) (*domain.ImageMetadata, error)
	ListImages(ctx context.Context) ([]domain.ImageMetadata, error)
	GetImage(ctx context.Context, id uuid.UUID) (*domain.ImageMetadata, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
	DeleteAllImages(ctx context.Context) (int, error)
	StorageInfo(ctx context.Context) (domain.StorageInfo, error)
	OpenImage(ctx context.Context, filename string) (io.ReadCloser, *domain.ImageMetadata, error)
}

// ImageMetrics records storage service activity
type ImageMetrics interface {
	ImageUploaded(source domain.Source, size int64)
	ImageRejected(reason string)
	ImagesDeleted(n int)
}
