package image_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"snapbox/internal/adapters/handlers/http/chi"
	imagev1 "snapbox/internal/adapters/handlers/http/chi/v1/image"
	"snapbox/internal/core/domain"
	imagesvc "snapbox/internal/core/service/image"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const publicBaseURL = "http://localhost:5000"

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newRouter(service *imagesvc.MockImageService) http.Handler {
	handler := imagev1.NewImageHandlerV1(service, publicBaseURL, discardLogger)
	return chi.NewRouter(discardLogger, handler, chi.RouterOptions{MaxBodyBytes: 11 << 20})
}

func storedImage(name string, size int64, source domain.Source) domain.ImageMetadata {
	id := uuid.New()
	return domain.ImageMetadata{
		ID:           id,
		Filename:     id.String() + ".jpg",
		OriginalName: name,
		MimeType:     "image/jpeg",
		SizeBytes:    size,
		Source:       source,
		StorageKey:   "images/" + id.String() + ".jpg",
		Status:       domain.ImageStatusCompleted,
		CapturedAt:   time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		CreatedAt:    time.Date(2026, 5, 1, 10, 0, 1, 0, time.UTC),
	}
}

type uploadForm struct {
	filename    string
	contentType string
	content     []byte
	fields      map[string]string
}

func (f uploadForm) encode(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if f.filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	for k, v := range f.fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

type imageEnvelope struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    imagev1.V1ImageResponse `json:"data"`
}

type listEnvelope struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Data    []imagev1.V1ImageResponse `json:"data"`
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}
