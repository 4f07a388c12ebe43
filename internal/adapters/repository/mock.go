package repository

import (
	"context"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockImageRepository struct {
	mock.Mock
}

func NewMockImageRepository() *MockImageRepository {
	return &MockImageRepository{}
}

func (m *MockImageRepository) Create(ctx context.Context, image domain.ImageMetadata) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ImageMetadata, error) {
	args := m.Called(ctx, id)
	image, _ := args.Get(0).(*domain.ImageMetadata)
	return image, args.Error(1)
}

func (m *MockImageRepository) FindByClientID(ctx context.Context, clientID string) (*domain.ImageMetadata, error) {
	args := m.Called(ctx, clientID)
	image, _ := args.Get(0).(*domain.ImageMetadata)
	return image, args.Error(1)
}

func (m *MockImageRepository) FindByStorageKey(ctx context.Context, storageKey string) (*domain.ImageMetadata, error) {
	args := m.Called(ctx, storageKey)
	image, _ := args.Get(0).(*domain.ImageMetadata)
	return image, args.Error(1)
}

func (m *MockImageRepository) FindByFilename(ctx context.Context, filename string) (*domain.ImageMetadata, error) {
	args := m.Called(ctx, filename)
	image, _ := args.Get(0).(*domain.ImageMetadata)
	return image, args.Error(1)
}

func (m *MockImageRepository) ListCompleted(ctx context.Context) ([]domain.ImageMetadata, error) {
	args := m.Called(ctx)
	images, _ := args.Get(0).([]domain.ImageMetadata)
	return images, args.Error(1)
}

func (m *MockImageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ImageStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockImageRepository) DeleteAll(ctx context.Context) ([]domain.ImageMetadata, error) {
	args := m.Called(ctx)
	images, _ := args.Get(0).([]domain.ImageMetadata)
	return images, args.Error(1)
}

func (m *MockImageRepository) SumSize(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImageRepository) FindStale(ctx context.Context, olderThan time.Time) ([]domain.ImageMetadata, error) {
	args := m.Called(ctx, olderThan)
	images, _ := args.Get(0).([]domain.ImageMetadata)
	return images, args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	imageRepo *MockImageRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		imageRepo: &MockImageRepository{},
	}
}

func (m *MockUnitOfWork) ImageRepo() port.ImageRepository {
	return m.imageRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetImageRepoMock() *MockImageRepository {
	return m.imageRepo
}
