package image

import (
	"context"
	"io"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockImageService is a mock implementation of ImageService
type MockImageService struct {
	mock.Mock
}

// NewMockImageService creates a new MockImageService
func NewMockImageService() *MockImageService {
	return &MockImageService{}
}

func (m *MockImageService) UploadImage(ctx context.Context, req port.UploadRequest) (*domain.ImageMetadata, error) {
	args := m.Called(ctx, req)
	image, _ := args.Get(0).(*domain.ImageMetadata)
	return image, args.Error(1)
}

func (m *MockImageService) ListImages(ctx context.Context) ([]domain.ImageMetadata, error) {
	args := m.Called(ctx)
	images, _ := args.Get(0).([]domain.ImageMetadata)
	return images, args.Error(1)
}

func (m *MockImageService) GetImage(ctx context.Context, id uuid.UUID) (*domain.ImageMetadata, error) {
	args := m.Called(ctx, id)
	image, _ := args.Get(0).(*domain.ImageMetadata)
	return image, args.Error(1)
}

func (m *MockImageService) DeleteImage(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImageService) DeleteAllImages(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockImageService) StorageInfo(ctx context.Context) (domain.StorageInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StorageInfo), args.Error(1)
}

func (m *MockImageService) OpenImage(ctx context.Context, filename string) (io.ReadCloser, *domain.ImageMetadata, error) {
	args := m.Called(ctx, filename)
	rc, _ := args.Get(0).(io.ReadCloser)
	image, _ := args.Get(1).(*domain.ImageMetadata)
	return rc, image, args.Error(2)
}
