package port

import (
	"context"
	"snapbox/internal/core/domain"
)

// PhotoStore is the client side view of the storage service
type PhotoStore interface {
	Upload(ctx context.Context, photo domain.Photo) (*domain.Photo, error)
	List(ctx context.Context) ([]domain.Photo, error)
	Get(ctx context.Context, id string) (*domain.Photo, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	StorageInfo(ctx context.Context) (domain.StorageInfo, error)
}

// PhotoBuffer holds the client's current view of the photo set
type PhotoBuffer interface {
	List() []domain.Photo
	Get(id string) (domain.Photo, bool)
	Upsert(photo domain.Photo)
	Remove(id string)
	Clear()
	Replace(photos []domain.Photo)
	SizeSummary() int64
}

// SyncController reconciles the buffer against the photo store
type SyncController interface {
	Load(ctx context.Context)
	Refresh(ctx context.Context)
	Save(ctx context.Context, draft domain.PhotoDraft) (*domain.Photo, bool)
	Delete(ctx context.Context, id string)
	ClearAll(ctx context.Context)
	Photos() []domain.Photo
	Busy() bool
	LastError() error
	LastErrorKind() domain.Kind
	StorageInfo() domain.StorageInfo
	SizeSummary() int64
}

// GalleryPicker turns a file chosen by the user into a photo draft
type GalleryPicker interface {
	Pick(path string) (domain.PhotoDraft, error)
}
