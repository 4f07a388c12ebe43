package photosync

import (
	"log/slog"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"sync"

	"github.com/google/uuid"
)

type syncController struct {
	store  port.PhotoStore
	buffer port.PhotoBuffer
	logger *slog.Logger

	mu      sync.RWMutex
	busy    int
	lastErr error
	info    domain.StorageInfo
}

// NewSyncController creates a controller bound to one buffer and one photo store
func NewSyncController(store port.PhotoStore, buffer port.PhotoBuffer, logger *slog.Logger) port.SyncController {
	return &syncController{
		store:  store,
		buffer: buffer,
		logger: logger,
	}
}

// Photos returns the buffer content
func (c *syncController) Photos() []domain.Photo {
	return c.buffer.List()
}

// Busy reports whether an operation is in flight. It is advisory only.
func (c *syncController) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.busy > 0
}

// LastError is the outcome of the most recent failed step, nil when the last operation succeeded
func (c *syncController) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *syncController) LastErrorKind() domain.Kind {
	return domain.ErrorKind(c.LastError())
}

func (c *syncController) StorageInfo() domain.StorageInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.info
}

func (c *syncController) SizeSummary() int64 {
	return c.buffer.SizeSummary()
}

// begin raises the busy flag and clears the error slot for a new operation
func (c *syncController) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy++
	c.lastErr = nil
}

func (c *syncController) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy--
}

func (c *syncController) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}

func newPhotoID() string {
	return "photo_" + uuid.NewString()
}
