package photosync

import (
	"context"
	"fmt"
)

// Delete removes a photo remotely then refreshes. A failed delete leaves the buffer untouched.
func (c *syncController) Delete(ctx context.Context, id string) {
	c.begin()
	defer c.end()

	if err := c.store.Delete(ctx, id); err != nil {
		err = fmt.Errorf("failed to delete photo %s: %w", id, err)
		c.logger.Error("delete failed", "error", err)
		c.setErr(err)
		return
	}
	c.logger.Info("photo deleted", "id", id)

	_ = c.refresh(ctx)
}
