package image

import (
	"errors"
	"net/http"
	"snapbox/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1DeleteAllResponse is the data of a bulk delete
type V1DeleteAllResponse struct {
	Deleted int `json:"deleted"`
}

// DeleteImageV1 removes one image and its object
func (h *HandlerV1) DeleteImageV1(w http.ResponseWriter, r *http.Request) {
	imageID, parseErr := uuid.Parse(chi.URLParam(r, "imageID"))
	if parseErr != nil {
		h.writeError(w, http.StatusNotFound, domain.ErrImageNotFound.Error())
		return
	}

	err := h.imageService.DeleteImage(r.Context(), imageID)
	switch {
	case errors.Is(err, domain.ErrImageNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		h.logger.Error("error deleting image", "error", err, "image_id", imageID)
		h.writeError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		h.writeJSON(w, http.StatusOK, V1Response{Success: true, Message: "image deleted"})
	}
}

// DeleteAllImagesV1 removes every image
func (h *HandlerV1) DeleteAllImagesV1(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.imageService.DeleteAllImages(r.Context())
	if err != nil {
		h.logger.Error("error deleting all images", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	h.writeJSON(w, http.StatusOK, V1Response{
		Success: true,
		Message: "all images deleted",
		Data:    V1DeleteAllResponse{Deleted: deleted},
	})
}
