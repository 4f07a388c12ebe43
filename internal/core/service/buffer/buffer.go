package buffer

import (
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"sync"
)

type photoBuffer struct {
	mu     sync.RWMutex
	photos []domain.Photo
}

// NewPhotoBuffer creates an empty photo buffer
func NewPhotoBuffer() port.PhotoBuffer {
	return &photoBuffer{}
}

// List returns a copy of the held photos, most recent first
func (b *photoBuffer) List() []domain.Photo {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Photo, len(b.photos))
	copy(out, b.photos)
	return out
}

func (b *photoBuffer) Get(id string) (domain.Photo, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i := b.indexOf(id); i >= 0 {
		return b.photos[i], true
	}
	return domain.Photo{}, false
}

// Upsert replaces the photo with the same id in place, or inserts it at the front
func (b *photoBuffer) Upsert(photo domain.Photo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.indexOf(photo.ID); i >= 0 {
		b.photos[i] = photo
		return
	}
	b.photos = append([]domain.Photo{photo}, b.photos...)
}

// Remove is a no-op when id is absent
func (b *photoBuffer) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.indexOf(id); i >= 0 {
		b.photos = append(b.photos[:i:i], b.photos[i+1:]...)
	}
}

func (b *photoBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.photos = nil
}

// Replace swaps the whole content. Later duplicates of an id are dropped.
func (b *photoBuffer) Replace(photos []domain.Photo) {
	seen := make(map[string]struct{}, len(photos))
	next := make([]domain.Photo, 0, len(photos))
	for _, p := range photos {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		next = append(next, p)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.photos = next
}

// SizeSummary is the aggregate byte count of the held photos
func (b *photoBuffer) SizeSummary() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var total int64
	for _, p := range b.photos {
		total += p.Size
	}
	return total
}

func (b *photoBuffer) indexOf(id string) int {
	for i := range b.photos {
		if b.photos[i].ID == id {
			return i
		}
	}
	return -1
}
