package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"snapbox/internal/config"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter, creating the bucket when missing
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// notFound maps a missing object to domain.ErrImageNotFound
func notFound(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrImageNotFound, resp.Key)
	}
	return err
}

// PutObject stores size bytes read from reader under key
func (a *Adapter) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	info, err := a.client.PutObject(ctx, a.config.BucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}

	a.logger.Info("object stored",
		slog.String("key", key),
		slog.Int64("size", info.Size),
		slog.String("bucket", a.config.BucketName))

	return nil
}

// GetObject retrieves an obj
func (a *Adapter) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := a.client.GetObject(ctx, a.config.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	// GetObject is lazy, stat surfaces a missing key before the caller starts streaming
	if _, err := object.Stat(); err != nil {
		object.Close()
		return nil, fmt.Errorf("failed to get object: %w", notFound(err))
	}
	return object, nil
}

// GetObjectInfo retrieves obj info
func (a *Adapter) GetObjectInfo(ctx context.Context, key string) (*port.ObjectInfo, error) {
	info, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object info: %w", notFound(err))
	}
	return &port.ObjectInfo{Key: info.Key, Size: info.Size, ContentType: info.ContentType}, nil
}

// GetHeaderBytes reads at most the first n bytes of an object
func (a *Adapter) GetHeaderBytes(ctx context.Context, key string, n int64) ([]byte, error) {
	opts := minio.GetObjectOptions{}
	err := opts.SetRange(0, n-1)
	if err != nil {
		return nil, fmt.Errorf("failed to set range: %w", err)
	}

	object, err := a.client.GetObject(ctx, a.config.BucketName, key, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get partial object: %w", err)
	}
	defer object.Close()

	buffer := make([]byte, n)
	numRead, err := io.ReadFull(object, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read header bytes: %w", notFound(err))
	}

	return buffer[:numRead], nil
}

// DeleteObject deletes an object from storage. Deleting a missing key succeeds.
func (a *Adapter) DeleteObject(ctx context.Context, key string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("key", key),
		slog.String("bucket", a.config.BucketName))

	return nil
}
