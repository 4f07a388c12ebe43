package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImageStatus represents the status of a stored image
type ImageStatus string

const (
	ImageStatusUploading ImageStatus = "uploading"
	ImageStatusCompleted ImageStatus = "completed"
	ImageStatusFailed    ImageStatus = "failed"
)

// ImageMetadata represents a stored image on the storage service side
type ImageMetadata struct {
	ID           uuid.UUID
	ClientID     string
	Filename     string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Source       Source
	StorageKey   string
	Status       ImageStatus
	CapturedAt   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
