// Package synthetic is a software camera. It renders a test pattern per facing mode and
// keeps count of live stream handles so callers can check for leaks.
package synthetic

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"sync"
)

// ErrStreamReleased is returned when a frame is read from a released stream
var ErrStreamReleased = errors.New("stream released")

// Device is a software implementation of port.MediaDevices
type Device struct {
	mu             sync.Mutex
	denyPermission bool
	unavailable    map[domain.FacingMode]bool
	live           int
	maxLive        int
	acquired       int
}

// NewDevice creates a device exposing a front and a rear camera
func NewDevice() *Device {
	return &Device{unavailable: make(map[domain.FacingMode]bool)}
}

// DenyPermission makes RequestPermission fail
func (d *Device) DenyPermission(deny bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.denyPermission = deny
}

// SetUnavailable removes or restores the camera with the given facing
func (d *Device) SetUnavailable(facing domain.FacingMode, unavailable bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unavailable[facing] = unavailable
}

// LiveStreams is the number of acquired, unreleased streams
func (d *Device) LiveStreams() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live
}

// MaxLiveStreams is the highest number of simultaneously live streams observed
func (d *Device) MaxLiveStreams() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxLive
}

// Acquisitions is the total number of streams handed out
func (d *Device) Acquisitions() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.acquired
}

func (d *Device) RequestPermission(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.denyPermission {
		return fmt.Errorf("%w: camera access refused", domain.ErrPermissionDenied)
	}
	return nil
}

func (d *Device) AcquireStream(ctx context.Context, constraints domain.CameraConstraints) (port.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if constraints.Width <= 0 || constraints.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid resolution %dx%d", domain.ErrDeviceUnavailable, constraints.Width, constraints.Height)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.unavailable[constraints.FacingMode] {
		return nil, fmt.Errorf("%w: no %s camera", domain.ErrDeviceUnavailable, constraints.FacingMode)
	}

	d.live++
	d.acquired++
	if d.live > d.maxLive {
		d.maxLive = d.live
	}
	return &stream{device: d, constraints: constraints}, nil
}

func (d *Device) release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.live--
}

type stream struct {
	device      *Device
	constraints domain.CameraConstraints

	mu       sync.Mutex
	released bool
	frames   int
}

func (s *stream) Constraints() domain.CameraConstraints {
	return s.constraints
}

func (s *stream) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil, ErrStreamReleased
	}
	s.frames++
	return testPattern(s.constraints, s.frames), nil
}

// Release is idempotent
func (s *stream) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true
	s.device.release()
	return nil
}

// testPattern draws a diagonal gradient tinted by facing, shifted by the frame counter
func testPattern(c domain.CameraConstraints, frame int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	tint := uint8(40)
	if c.FacingMode == domain.FacingFront {
		tint = 200
	}
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x + frame) * 255 / c.Width),
				G: uint8(y * 255 / c.Height),
				B: tint,
				A: 255,
			})
		}
	}
	return img
}
