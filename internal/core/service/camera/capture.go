package camera

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"snapbox/internal/core/domain"
)

const defaultJPEGQuality = 80

// CapturePhoto encodes the current frame as a JPEG still at the stream's native resolution.
// It returns nil, nil when the adapter is not streaming.
func (c *cameraService) CapturePhoto() (*domain.Still, error) {
	c.mu.RLock()
	if c.state != domain.CameraStreaming || c.stream == nil {
		c.mu.RUnlock()
		return nil, nil
	}
	// the read lock keeps the stream from being released mid frame
	frame, err := c.stream.Frame()
	c.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("could not read frame: %w", err)
	}

	quality := c.cfg.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = defaultJPEGQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("could not encode frame: %w", err)
	}

	bounds := frame.Bounds()
	return &domain.Still{
		Data:     buf.Bytes(),
		MimeType: "image/jpeg",
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}
