package photosync

import (
	"context"
	"fmt"
)

// Load performs the initial fetch when a screen mounts
func (c *syncController) Load(ctx context.Context) {
	c.Refresh(ctx)
}

// Refresh replaces the buffer with the canonical list. On failure the previous content stays.
func (c *syncController) Refresh(ctx context.Context) {
	c.begin()
	defer c.end()

	_ = c.refresh(ctx)
}

func (c *syncController) refresh(ctx context.Context) error {
	photos, err := c.store.List(ctx)
	if err != nil {
		err = fmt.Errorf("failed to load photos: %w", err)
		c.logger.Error("refresh failed", "error", err)
		c.setErr(err)
		return err
	}
	c.buffer.Replace(photos)

	info, err := c.store.StorageInfo(ctx)
	if err != nil {
		err = fmt.Errorf("failed to load storage info: %w", err)
		c.logger.Error("storage info failed", "error", err)
		c.setErr(err)
		return err
	}

	c.mu.Lock()
	c.info = info
	c.mu.Unlock()

	c.logger.Debug("photos refreshed", "count", len(photos), "used", info.Used)
	return nil
}
