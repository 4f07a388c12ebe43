package camera

import (
	"context"
	"snapbox/internal/core/domain"
)

// Start acquires a stream for the given constraints (nil uses the remembered facing mode).
// Failures are recorded in the session, never returned.
func (c *cameraService) Start(ctx context.Context, constraints *domain.CameraConstraints) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.start(ctx, c.resolve(constraints))
}

func (c *cameraService) start(ctx context.Context, want domain.CameraConstraints) {
	c.mu.RLock()
	same := c.state == domain.CameraStreaming && c.constraints != nil && *c.constraints == want
	c.mu.RUnlock()
	if same {
		return
	}

	c.detach(domain.CameraStarting)

	c.mu.Lock()
	c.facing = want.FacingMode
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Info("starting camera", "facing", want.FacingMode, "width", want.Width, "height", want.Height)

	if err := c.devices.RequestPermission(ctx); err != nil {
		c.fail(classify(err, domain.ErrPermissionDenied))
		return
	}

	stream, err := c.devices.AcquireStream(ctx, want)
	if err != nil {
		c.fail(classify(err, domain.ErrDeviceUnavailable))
		return
	}

	if err := c.sink.Attach(ctx, stream); err != nil {
		if releaseErr := stream.Release(); releaseErr != nil {
			c.logger.Warn("failed to release camera stream", "error", releaseErr)
		}
		c.fail(classify(err, domain.ErrDeviceUnavailable))
		return
	}

	c.mu.Lock()
	c.stream = stream
	c.constraints = &want
	c.state = domain.CameraStreaming
	c.mu.Unlock()

	c.logger.Info("camera streaming", "facing", want.FacingMode)
}
