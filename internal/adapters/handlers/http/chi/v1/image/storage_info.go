package image

import "net/http"

// V1StorageResponse is the data of the storage usage endpoint
type V1StorageResponse struct {
	Used      int64 `json:"used"`
	Available int64 `json:"available"`
}

// StorageInfoV1 reports used and available bytes
func (h *HandlerV1) StorageInfoV1(w http.ResponseWriter, r *http.Request) {
	info, err := h.imageService.StorageInfo(r.Context())
	if err != nil {
		h.logger.Error("error computing storage info", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	h.writeJSON(w, http.StatusOK, V1Response{
		Success: true,
		Data:    V1StorageResponse{Used: info.Used, Available: info.Available},
	})
}
