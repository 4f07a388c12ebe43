package photosync

import (
	"context"
	"fmt"
)

// ClearAll bulk deletes every photo remotely then refreshes
func (c *syncController) ClearAll(ctx context.Context) {
	c.begin()
	defer c.end()

	if err := c.store.DeleteAll(ctx); err != nil {
		err = fmt.Errorf("failed to clear photos: %w", err)
		c.logger.Error("clear all failed", "error", err)
		c.setErr(err)
		return
	}
	c.logger.Info("all photos cleared")

	_ = c.refresh(ctx)
}
