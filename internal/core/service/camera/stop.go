package camera

import "snapbox/internal/core/domain"

// Stop releases the stream and clears the render target. It is a no-op when idle.
func (c *cameraService) Stop() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.RLock()
	idle := c.state == domain.CameraIdle && c.stream == nil
	c.mu.RUnlock()
	if idle {
		return
	}

	c.detach(domain.CameraIdle)

	c.mu.Lock()
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Info("camera stopped")
}
