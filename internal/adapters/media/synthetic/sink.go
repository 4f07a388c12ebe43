package synthetic

import (
	"context"
	"fmt"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"sync"
)

// HeadlessSink is a frame sink without a display. Attach pulls one frame to prove the
// stream is renderable.
type HeadlessSink struct {
	mu       sync.Mutex
	attached port.Stream
}

func NewHeadlessSink() *HeadlessSink {
	return &HeadlessSink{}
}

func (h *HeadlessSink) Attach(ctx context.Context, stream port.Stream) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := stream.Frame(); err != nil {
		return fmt.Errorf("%w: first frame not renderable: %w", domain.ErrDeviceUnavailable, err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attached = stream
	return nil
}

func (h *HeadlessSink) Detach() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attached = nil
}

// Attached reports whether a stream is currently rendered
func (h *HeadlessSink) Attached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.attached != nil
}
