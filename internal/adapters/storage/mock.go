package storage

import (
	"context"
	"io"
	"snapbox/internal/core/port"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockStorage) GetObjectInfo(ctx context.Context, key string) (*port.ObjectInfo, error) {
	args := m.Called(ctx, key)
	info, _ := args.Get(0).(*port.ObjectInfo)
	return info, args.Error(1)
}

func (m *MockStorage) GetHeaderBytes(ctx context.Context, key string, n int64) ([]byte, error) {
	args := m.Called(ctx, key, n)
	header, _ := args.Get(0).([]byte)
	return header, args.Error(1)
}

func (m *MockStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
