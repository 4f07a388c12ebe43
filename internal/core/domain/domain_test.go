package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"snapbox/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{-5, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{2097152, "2 MB"},
		{5 * 1024 * 1024, "5 MB"},
		{1073741824, "1 GB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3072 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.FormatSize(tt.bytes))
		})
	}
}

func TestParseSource(t *testing.T) {
	s, err := domain.ParseSource("camera")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceCamera, s)
	assert.Equal(t, "Camera", s.Label())

	s, err = domain.ParseSource("gallery")
	require.NoError(t, err)
	assert.Equal(t, "Gallery", s.Label())

	_, err = domain.ParseSource("Camera")
	assert.ErrorIs(t, err, domain.ErrInvalidSource)

	assert.Equal(t, "Unknown", domain.Source("scanner").Label())
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.Kind
	}{
		{"nil", nil, domain.KindNone},
		{"permission", fmt.Errorf("start: %w", domain.ErrPermissionDenied), domain.KindPermissionDenied},
		{"device", domain.ErrDeviceUnavailable, domain.KindDeviceUnavailable},
		{"network", fmt.Errorf("%w: dial tcp", domain.ErrNetwork), domain.KindNetwork},
		{"not found", &domain.RejectedError{Status: http.StatusNotFound}, domain.KindNotFound},
		{"rejected", &domain.RejectedError{Status: http.StatusBadRequest, Message: "bad"}, domain.KindServerRejected},
		{"wrapped rejected", fmt.Errorf("failed to save photo: %w", &domain.RejectedError{Status: http.StatusInsufficientStorage}), domain.KindServerRejected},
		{"unknown", errors.New("boom"), domain.KindServerRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ErrorKind(tt.err))
		})
	}
}

func TestRejectedError_Error(t *testing.T) {
	assert.Equal(t, "storage service returned 500", (&domain.RejectedError{Status: 500}).Error())
	assert.Equal(t, "storage service returned 400: only images", (&domain.RejectedError{Status: 400, Message: "only images"}).Error())
}

func TestClassifyBucketEvent(t *testing.T) {
	assert.Equal(t, domain.BucketEventObjectCreated, domain.ClassifyBucketEvent("s3:ObjectCreated:Put"))
	assert.Equal(t, domain.BucketEventObjectCreated, domain.ClassifyBucketEvent("s3:ObjectCreated:CompleteMultipartUpload"))
	assert.Equal(t, domain.BucketEventObjectRemoved, domain.ClassifyBucketEvent("s3:ObjectRemoved:Delete"))
	assert.Equal(t, domain.BucketEventUnknown, domain.ClassifyBucketEvent("s3:ObjectAccessed:Get"))
}
