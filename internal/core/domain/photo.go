package domain

import (
	"fmt"
	"time"
)

// Source is the provenance of a photo
type Source string

const (
	SourceCamera  Source = "camera"
	SourceGallery Source = "gallery"
)

// ParseSource converts a wire value into a Source
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceCamera:
		return SourceCamera, nil
	case SourceGallery:
		return SourceGallery, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, s)
	}
}

// Label is the display name of the source
func (s Source) Label() string {
	switch s {
	case SourceCamera:
		return "Camera"
	case SourceGallery:
		return "Gallery"
	default:
		return "Unknown"
	}
}

// Photo represents a client visible photo record.
// Content is set for locally held payloads, URL for photos listed from the storage service.
type Photo struct {
	ID         string
	Name       string
	Content    []byte
	URL        string
	MimeType   string
	Size       int64
	Source     Source
	CapturedAt time.Time
}

// PhotoDraft is a photo that has not been assigned an identity yet
type PhotoDraft struct {
	Name     string
	Content  []byte
	MimeType string
	Source   Source
}

// StorageInfo is the durable storage usage reported by the storage service
type StorageInfo struct {
	Used      int64
	Available int64
}
