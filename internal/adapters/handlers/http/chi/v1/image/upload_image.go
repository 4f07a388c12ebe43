package image

import (
	"errors"
	"net/http"
	"snapbox/internal/core/domain"
	"snapbox/internal/core/port"
	"time"
)

// multipartMemory is how much of an upload is kept in memory before spilling to disk
const multipartMemory = 8 << 20

// UploadImageV1 is the handler for the multipart image upload
func (h *HandlerV1) UploadImageV1(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, http.StatusBadRequest, domain.ErrFileSizeTooBig.Error())
			return
		}
		h.logger.Error("error parsing upload form", "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "no image file provided")
		return
	}
	defer file.Close()

	var capturedAt *time.Time
	if raw := r.FormValue("captured_at"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339Nano, raw)
		if parseErr != nil {
			h.writeError(w, http.StatusBadRequest, "invalid captured_at")
			return
		}
		capturedAt = &parsed
	}

	image, uploadErr := h.imageService.UploadImage(r.Context(), port.UploadRequest{
		ClientID:     r.FormValue("id"),
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Source:       r.FormValue("source"),
		CapturedAt:   capturedAt,
		Body:         file,
	})
	switch {
	case errors.Is(uploadErr, domain.ErrInvalidFileType),
		errors.Is(uploadErr, domain.ErrFileSizeTooBig),
		errors.Is(uploadErr, domain.ErrFileSizeTooSmall),
		errors.Is(uploadErr, domain.ErrInvalidSource):
		h.logger.Warn("upload rejected", "error", uploadErr, "filename", header.Filename)
		h.writeError(w, http.StatusBadRequest, uploadErr.Error())
	case errors.Is(uploadErr, domain.ErrAlreadyExists):
		h.writeError(w, http.StatusConflict, "image already uploaded")
	case errors.Is(uploadErr, domain.ErrQuotaExceeded):
		h.writeError(w, http.StatusInsufficientStorage, uploadErr.Error())
	case uploadErr != nil:
		h.logger.Error("error uploading image", "error", uploadErr)
		h.writeError(w, http.StatusServiceUnavailable, "service unavailable")
	case image == nil:
		h.logger.Error("upload returned no image")
		h.writeError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		h.writeJSON(w, http.StatusCreated, V1Response{
			Success: true,
			Message: "image uploaded",
			Data:    h.toResponse(*image),
		})
	}
}
