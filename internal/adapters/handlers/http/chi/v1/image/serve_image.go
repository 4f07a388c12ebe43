package image

import (
	"errors"
	"io"
	"net/http"
	"snapbox/internal/core/domain"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ServeImageV1 streams a stored object by filename
func (h *HandlerV1) ServeImageV1(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		http.Error(w, "filename is required", http.StatusBadRequest)
		return
	}

	body, image, err := h.imageService.OpenImage(r.Context(), filename)
	switch {
	case errors.Is(err, domain.ErrImageNotFound):
		http.Error(w, "image not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error opening image", "error", err, "filename", filename)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	case body == nil || image == nil:
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", image.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(image.SizeBytes, 10))
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Error("error streaming image", "error", err, "filename", filename)
	}
}
