package image_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	imagesvc "snapbox/internal/core/service/image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadImageV1(t *testing.T) {

	t.Run("success - camera capture with client id", func(t *testing.T) {
		// Arrange
		content := append([]byte{0xff, 0xd8, 0xff, 0xe0}, bytes.Repeat([]byte{1}, 2048)...)
		saved := storedImage("beach.jpg", int64(len(content)), domain.SourceCamera)
		saved.ClientID = "photo_3f1c"

		var received []byte
		mockService := imagesvc.NewMockImageService()
		mockService.On("UploadImage", mock.Anything, mock.MatchedBy(func(req port.UploadRequest) bool {
			return req.ClientID == "photo_3f1c" &&
				req.OriginalName == "beach.jpg" &&
				req.ContentType == "image/jpeg" &&
				req.Size == int64(len(content)) &&
				req.Source == "camera" &&
				req.CapturedAt != nil && req.CapturedAt.Equal(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
		})).Run(func(args mock.Arguments) {
			req := args.Get(1).(port.UploadRequest)
			received, _ = io.ReadAll(req.Body)
		}).Return(&saved, nil)

		form := uploadForm{
			filename:    "beach.jpg",
			contentType: "image/jpeg",
			content:     content,
			fields: map[string]string{
				"id":          "photo_3f1c",
				"source":      "camera",
				"captured_at": "2026-05-01T10:00:00Z",
			},
		}
		body, contentType := form.encode(t)
		req := httptest.NewRequest(http.MethodPost, "/api/upload-image", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		// Act
		newRouter(mockService).ServeHTTP(w, req)

		// Assert
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		resp := decode[imageEnvelope](t, w.Body)
		assert.True(t, resp.Success)
		assert.Equal(t, saved.ID.String(), resp.Data.ID)
		assert.Equal(t, "photo_3f1c", resp.Data.ClientID)
		assert.Equal(t, "beach.jpg", resp.Data.OriginalName)
		assert.Equal(t, publicBaseURL+"/uploads/"+saved.Filename, resp.Data.URL)
		assert.Equal(t, "camera", resp.Data.Source)
		require.NotNil(t, resp.Data.CapturedAt)
		assert.Equal(t, content, received)
		mockService.AssertExpectations(t)
	})

	t.Run("error - missing image part", func(t *testing.T) {
		// Arrange
		mockService := imagesvc.NewMockImageService()
		body, contentType := uploadForm{fields: map[string]string{"source": "gallery"}}.encode(t)
		req := httptest.NewRequest(http.MethodPost, "/api/upload-image", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		// Act
		newRouter(mockService).ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[imageEnvelope](t, w.Body)
		assert.False(t, resp.Success)
		assert.Equal(t, "no image file provided", resp.Message)
		mockService.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
	})

	t.Run("error - not multipart", func(t *testing.T) {
		// Arrange
		mockService := imagesvc.NewMockImageService()
		req := httptest.NewRequest(http.MethodPost, "/api/upload-image", bytes.NewBufferString(`{"image":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// Act
		newRouter(mockService).ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
	})

	t.Run("error - malformed captured_at", func(t *testing.T) {
		// Arrange
		mockService := imagesvc.NewMockImageService()
		body, contentType := uploadForm{
			filename:    "a.png",
			contentType: "image/png",
			content:     []byte("\x89PNG\r\n\x1a\n"),
			fields:      map[string]string{"captured_at": "yesterday"},
		}.encode(t)
		req := httptest.NewRequest(http.MethodPost, "/api/upload-image", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		// Act
		newRouter(mockService).ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything)
	})

	statusCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid file type", domain.ErrInvalidFileType, http.StatusBadRequest},
		{"file too big", domain.ErrFileSizeTooBig, http.StatusBadRequest},
		{"empty file", domain.ErrFileSizeTooSmall, http.StatusBadRequest},
		{"invalid source", domain.ErrInvalidSource, http.StatusBadRequest},
		{"duplicate client id", domain.ErrAlreadyExists, http.StatusConflict},
		{"quota exceeded", domain.ErrQuotaExceeded, http.StatusInsufficientStorage},
		{"storage down", assert.AnError, http.StatusServiceUnavailable},
	}
	for _, tc := range statusCases {
		t.Run("error - "+tc.name, func(t *testing.T) {
			// Arrange
			mockService := imagesvc.NewMockImageService()
			mockService.On("UploadImage", mock.Anything, mock.Anything).Return(nil, tc.err)

			body, contentType := uploadForm{
				filename:    "notes.txt",
				contentType: "text/plain",
				content:     []byte("hello"),
			}.encode(t)
			req := httptest.NewRequest(http.MethodPost, "/api/upload-image", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			// Act
			newRouter(mockService).ServeHTTP(w, req)

			// Assert
			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decode[imageEnvelope](t, w.Body)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
			assert.NotContains(t, resp.Message, assert.AnError.Error())
			mockService.AssertExpectations(t)
		})
	}
}
