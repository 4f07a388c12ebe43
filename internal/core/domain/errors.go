package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrPermissionDenied is an error thrown when the platform refuses camera access
var ErrPermissionDenied = errors.New("permission denied")

// ErrDeviceUnavailable is an error thrown when no capture device matches the constraints
var ErrDeviceUnavailable = errors.New("device unavailable")

// ErrNetwork is an error thrown when the storage service could not be reached
var ErrNetwork = errors.New("network failure")

// ErrServerRejected is an error thrown when the storage service refuses a request
var ErrServerRejected = errors.New("server rejected request")

// ErrNotFound is an error thrown when the storage service does not know a photo
var ErrNotFound = errors.New("not found")

// ErrInvalidSource is an error thrown when a source tag is neither camera nor gallery
var ErrInvalidSource = errors.New("invalid source")

// ErrImageNotFound is an error thrown when image metadata is not found
var ErrImageNotFound = errors.New("image not found")

// ErrAlreadyExists is an error thrown when entity already exists
var ErrAlreadyExists = errors.New("already exists")

// ErrInvalidFileType is an error thrown when file type is invalid
var ErrInvalidFileType = errors.New("invalid file type")

// ErrFileSizeTooBig is an error thrown when file size is too big
var ErrFileSizeTooBig = errors.New("file size too big")

// ErrFileSizeTooSmall is an error thrown when file is empty
var ErrFileSizeTooSmall = errors.New("file size too small")

// ErrQuotaExceeded is an error thrown when an upload would exceed the storage quota
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrContentTypeMismatch is an error thrown when content type mismatch
var ErrContentTypeMismatch = errors.New("content type mismatch")

// ErrSizeMismatch is an error thrown when sizes mismatch
var ErrSizeMismatch = errors.New("size mismatch")

// RejectedError carries the message the storage service attached to a failed response
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("storage service returned %d", e.Status)
	}
	return fmt.Sprintf("storage service returned %d: %s", e.Status, e.Message)
}

// Unwrap maps 404 to ErrNotFound and everything else to ErrServerRejected
func (e *RejectedError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrServerRejected
}

// Kind is the closed set of failures surfaced to the UI
type Kind string

const (
	KindNone              Kind = ""
	KindPermissionDenied  Kind = "permission-denied"
	KindDeviceUnavailable Kind = "device-unavailable"
	KindNetwork           Kind = "network-failure"
	KindServerRejected    Kind = "server-rejected"
	KindNotFound          Kind = "not-found"
)

// ErrorKind classifies err. Unknown errors are reported as server rejections.
func ErrorKind(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrDeviceUnavailable):
		return KindDeviceUnavailable
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	default:
		return KindServerRejected
	}
}
