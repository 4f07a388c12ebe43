package image

import (
	"errors"
	"net/http"
	"snapbox/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetImageV1 returns one image. Unknown and malformed ids are both 404.
func (h *HandlerV1) GetImageV1(w http.ResponseWriter, r *http.Request) {
	imageID, parseErr := uuid.Parse(chi.URLParam(r, "imageID"))
	if parseErr != nil {
		h.writeError(w, http.StatusNotFound, domain.ErrImageNotFound.Error())
		return
	}

	image, err := h.imageService.GetImage(r.Context(), imageID)
	switch {
	case errors.Is(err, domain.ErrImageNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		h.logger.Error("error getting image", "error", err, "image_id", imageID)
		h.writeError(w, http.StatusServiceUnavailable, "service unavailable")
	case image == nil:
		h.writeError(w, http.StatusNotFound, domain.ErrImageNotFound.Error())
	default:
		h.writeJSON(w, http.StatusOK, V1Response{Success: true, Data: h.toResponse(*image)})
	}
}
