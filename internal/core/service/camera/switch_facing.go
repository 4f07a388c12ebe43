package camera

import (
	"context"
	"snapbox/internal/core/domain"
)

// SwitchFacing toggles the facing mode. A live stream is torn down and reacquired with the
// opposite facing; otherwise only the preference for the next Start changes.
func (c *cameraService) SwitchFacing(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	next := c.facing.Opposite()
	c.facing = next
	streaming := c.state == domain.CameraStreaming && c.constraints != nil
	var want domain.CameraConstraints
	if streaming {
		want = *c.constraints
		want.FacingMode = next
	}
	c.mu.Unlock()

	c.logger.Info("switching camera", "facing", next, "restart", streaming)
	if !streaming {
		return
	}
	c.start(ctx, want)
}
