package media

import (
	"context"
	"image"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockMediaDevices is a mock implementation of port.MediaDevices
type MockMediaDevices struct {
	mock.Mock
}

func NewMockMediaDevices() *MockMediaDevices {
	return &MockMediaDevices{}
}

func (m *MockMediaDevices) RequestPermission(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMediaDevices) AcquireStream(ctx context.Context, constraints domain.CameraConstraints) (port.Stream, error) {
	args := m.Called(ctx, constraints)
	stream, _ := args.Get(0).(port.Stream)
	return stream, args.Error(1)
}

// MockStream is a mock implementation of port.Stream
type MockStream struct {
	mock.Mock
}

func NewMockStream() *MockStream {
	return &MockStream{}
}

func (m *MockStream) Constraints() domain.CameraConstraints {
	args := m.Called()
	return args.Get(0).(domain.CameraConstraints)
}

func (m *MockStream) Frame() (image.Image, error) {
	args := m.Called()
	frame, _ := args.Get(0).(image.Image)
	return frame, args.Error(1)
}

func (m *MockStream) Release() error {
	args := m.Called()
	return args.Error(0)
}

// MockFrameSink is a mock implementation of port.FrameSink
type MockFrameSink struct {
	mock.Mock
}

func NewMockFrameSink() *MockFrameSink {
	return &MockFrameSink{}
}

func (m *MockFrameSink) Attach(ctx context.Context, stream port.Stream) error {
	args := m.Called(ctx, stream)
	return args.Error(0)
}

func (m *MockFrameSink) Detach() {
	m.Called()
}
