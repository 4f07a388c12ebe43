package camera

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"snapbox/internal/config"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"sync"
)

type cameraService struct {
	devices port.MediaDevices
	sink    port.FrameSink
	cfg     config.ClientConfig
	logger  *slog.Logger

	// opMu serializes Start, Stop and SwitchFacing so a new stream is only
	// acquired after the previous one has been released.
	opMu sync.Mutex

	mu          sync.RWMutex
	state       domain.CameraState
	facing      domain.FacingMode
	stream      port.Stream
	constraints *domain.CameraConstraints
	lastErr     error
}

// NewCameraService creates a new capture device adapter
func NewCameraService(devices port.MediaDevices, sink port.FrameSink, cfg config.ClientConfig, logger *slog.Logger) port.CameraService {
	facing, ok := domain.ParseFacingMode(cfg.Facing)
	if !ok {
		facing = domain.FacingRear
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &cameraService{
		devices: devices,
		sink:    sink,
		cfg:     cfg,
		logger:  logger,
		state:   domain.CameraIdle,
		facing:  facing,
	}
}

// State returns the current adapter state
func (c *cameraService) State() domain.CameraState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Session returns a snapshot of the camera session
func (c *cameraService) Session() domain.CameraSession {
	c.mu.RLock()
	defer c.mu.RUnlock()

	session := domain.CameraSession{
		State:       c.state,
		FacingMode:  c.facing,
		IsStreaming: c.state == domain.CameraStreaming,
		ErrorKind:   domain.ErrorKind(c.lastErr),
	}
	if c.lastErr != nil {
		session.LastError = c.lastErr.Error()
	}
	if c.constraints != nil {
		constraints := *c.constraints
		session.Constraints = &constraints
	}
	return session
}

// resolve fills missing constraint fields from the remembered facing mode and config
func (c *cameraService) resolve(constraints *domain.CameraConstraints) domain.CameraConstraints {
	c.mu.RLock()
	facing := c.facing
	c.mu.RUnlock()

	resolved := domain.DefaultConstraints(facing)
	if c.cfg.Width > 0 && c.cfg.Height > 0 {
		resolved.Width = c.cfg.Width
		resolved.Height = c.cfg.Height
	}
	if constraints == nil {
		return resolved
	}
	if constraints.FacingMode != "" {
		resolved.FacingMode = constraints.FacingMode
	}
	if constraints.Width > 0 {
		resolved.Width = constraints.Width
	}
	if constraints.Height > 0 {
		resolved.Height = constraints.Height
	}
	return resolved
}

// detach takes the held stream out of the session and releases it.
// The caller decides which state the adapter moves to.
func (c *cameraService) detach(next domain.CameraState) {
	c.mu.Lock()
	stream := c.stream
	c.stream = nil
	c.constraints = nil
	c.state = next
	c.mu.Unlock()

	if stream == nil {
		return
	}
	c.sink.Detach()
	if err := stream.Release(); err != nil {
		c.logger.Warn("failed to release camera stream", "error", err)
	}
}

func (c *cameraService) fail(err error) {
	c.mu.Lock()
	c.state = domain.CameraError
	c.lastErr = err
	c.mu.Unlock()

	c.logger.Warn("camera start failed", "error", err, "kind", domain.ErrorKind(err))
}

// classify keeps known camera failures and tags anything else with fallback
func classify(err error, fallback error) error {
	if errors.Is(err, domain.ErrPermissionDenied) || errors.Is(err, domain.ErrDeviceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", fallback, err)
}

type nopSink struct{}

func (nopSink) Attach(context.Context, port.Stream) error {
	return nil
}

func (nopSink) Detach() {}
