package image

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for the image routes
type HandlerV1 struct {
	imageService  port.ImageService
	publicBaseURL string
	logger        *slog.Logger
}

// NewImageHandlerV1 creates HandlerV1. publicBaseURL prefixes every image url.
func NewImageHandlerV1(service port.ImageService, publicBaseURL string, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		imageService:  service,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Routes exposes the JSON API routes, mounted under /api
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload-image", h.UploadImageV1)
	router.Get("/images", h.ListImagesV1)
	router.Delete("/images", h.DeleteAllImagesV1)
	router.Get("/images/{imageID}", h.GetImageV1)
	router.Delete("/images/{imageID}", h.DeleteImageV1)
	router.Get("/storage", h.StorageInfoV1)

	return router
}

// V1Response is the envelope of every JSON API response
type V1Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// V1ImageResponse is the wire form of a stored image
type V1ImageResponse struct {
	ID           string     `json:"id"`
	ClientID     string     `json:"client_id,omitempty"`
	Filename     string     `json:"filename"`
	OriginalName string     `json:"originalname"`
	Size         int64      `json:"size"`
	URL          string     `json:"url"`
	MimeType     string     `json:"mimetype"`
	Source       string     `json:"source"`
	CreatedAt    time.Time  `json:"created_at"`
	CapturedAt   *time.Time `json:"captured_at,omitempty"`
}

func (h *HandlerV1) toResponse(image domain.ImageMetadata) V1ImageResponse {
	resp := V1ImageResponse{
		ID:           image.ID.String(),
		ClientID:     image.ClientID,
		Filename:     image.Filename,
		OriginalName: image.OriginalName,
		Size:         image.SizeBytes,
		URL:          h.publicBaseURL + "/uploads/" + image.Filename,
		MimeType:     image.MimeType,
		Source:       string(image.Source),
		CreatedAt:    image.CreatedAt,
	}
	if !image.CapturedAt.IsZero() {
		capturedAt := image.CapturedAt
		resp.CapturedAt = &capturedAt
	}
	return resp
}

func (h *HandlerV1) writeJSON(w http.ResponseWriter, status int, resp V1Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

func (h *HandlerV1) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, V1Response{Success: false, Message: message})
}
