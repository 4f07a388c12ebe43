package photoapi

import (
	"context"
	"snapbox/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockPhotoStore is a mock implementation of port.PhotoStore
type MockPhotoStore struct {
	mock.Mock
}

// NewMockPhotoStore creates a new MockPhotoStore
func NewMockPhotoStore() *MockPhotoStore {
	return &MockPhotoStore{}
}

func (m *MockPhotoStore) Upload(ctx context.Context, photo domain.Photo) (*domain.Photo, error) {
	args := m.Called(ctx, photo)
	saved, _ := args.Get(0).(*domain.Photo)
	return saved, args.Error(1)
}

func (m *MockPhotoStore) List(ctx context.Context) ([]domain.Photo, error) {
	args := m.Called(ctx)
	photos, _ := args.Get(0).([]domain.Photo)
	return photos, args.Error(1)
}

func (m *MockPhotoStore) Get(ctx context.Context, id string) (*domain.Photo, error) {
	args := m.Called(ctx, id)
	photo, _ := args.Get(0).(*domain.Photo)
	return photo, args.Error(1)
}

func (m *MockPhotoStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPhotoStore) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPhotoStore) StorageInfo(ctx context.Context) (domain.StorageInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StorageInfo), args.Error(1)
}
