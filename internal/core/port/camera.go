package port

import (
	"context"
	"image"
	"snapbox/internal/core/domain"
)

// MediaDevices is the platform media capability (getUserMedia, expo camera, v4l2, ...)
type MediaDevices interface {
	RequestPermission(ctx context.Context) error
	AcquireStream(ctx context.Context, constraints domain.CameraConstraints) (Stream, error)
}

// Stream is an exclusively owned live capture stream
type Stream interface {
	Constraints() domain.CameraConstraints
	Frame() (image.Image, error)
	Release() error
}

// FrameSink is a renderable surface for a stream.
// Attach returns once the first frame is renderable.
type FrameSink interface {
	Attach(ctx context.Context, stream Stream) error
	Detach()
}

// CameraService is the capture device adapter
type CameraService interface {
	Start(ctx context.Context, constraints *domain.CameraConstraints)
	Stop()
	CapturePhoto() (*domain.Still, error)
	SwitchFacing(ctx context.Context)
	State() domain.CameraState
	Session() domain.CameraSession
}
