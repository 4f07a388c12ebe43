package image

import "net/http"

// ListImagesV1 returns every completed image, newest first
func (h *HandlerV1) ListImagesV1(w http.ResponseWriter, r *http.Request) {
	images, err := h.imageService.ListImages(r.Context())
	if err != nil {
		h.logger.Error("error listing images", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	resp := make([]V1ImageResponse, 0, len(images))
	for _, image := range images {
		resp = append(resp, h.toResponse(image))
	}
	h.writeJSON(w, http.StatusOK, V1Response{Success: true, Data: resp})
}
