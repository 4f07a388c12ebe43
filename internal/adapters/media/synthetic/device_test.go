package synthetic_test

import (
	"context"
	"snapbox/internal/adapters/media/synthetic"
	"snapbox/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevice_AcquireAndRelease(t *testing.T) {
	// Arrange
	ctx := context.Background()
	device := synthetic.NewDevice()
	constraints := domain.CameraConstraints{FacingMode: domain.FacingRear, Width: 32, Height: 24}

	// Act
	stream, err := device.AcquireStream(ctx, constraints)
	require.NoError(t, err)
	frame, frameErr := stream.Frame()

	// Assert
	require.NoError(t, frameErr)
	assert.Equal(t, 32, frame.Bounds().Dx())
	assert.Equal(t, 24, frame.Bounds().Dy())
	assert.Equal(t, 1, device.LiveStreams())

	require.NoError(t, stream.Release())
	require.NoError(t, stream.Release())
	assert.Equal(t, 0, device.LiveStreams())
	assert.Equal(t, 1, device.MaxLiveStreams())

	_, err = stream.Frame()
	assert.ErrorIs(t, err, synthetic.ErrStreamReleased)
}

func TestDevice_PermissionDenied(t *testing.T) {
	// Arrange
	device := synthetic.NewDevice()
	device.DenyPermission(true)

	// Act
	err := device.RequestPermission(context.Background())

	// Assert
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestDevice_Unavailable(t *testing.T) {
	// Arrange
	device := synthetic.NewDevice()
	device.SetUnavailable(domain.FacingFront, true)

	// Act
	_, err := device.AcquireStream(context.Background(), domain.DefaultConstraints(domain.FacingFront))

	// Assert
	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)
	assert.Equal(t, 0, device.LiveStreams())
	assert.Equal(t, 0, device.Acquisitions())
}

func TestHeadlessSink_AttachDetach(t *testing.T) {
	// Arrange
	ctx := context.Background()
	device := synthetic.NewDevice()
	sink := synthetic.NewHeadlessSink()
	stream, err := device.AcquireStream(ctx, domain.CameraConstraints{FacingMode: domain.FacingFront, Width: 8, Height: 8})
	require.NoError(t, err)

	// Act
	attachErr := sink.Attach(ctx, stream)

	// Assert
	require.NoError(t, attachErr)
	assert.True(t, sink.Attached())
	sink.Detach()
	assert.False(t, sink.Attached())

	require.NoError(t, stream.Release())
	assert.ErrorIs(t, sink.Attach(ctx, stream), domain.ErrDeviceUnavailable)
}
