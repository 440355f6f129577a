package datasets

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/iris/pkg/storage"
)

// Domain errors for dataset operations.
var (
	ErrNotFound         = errors.New("dataset not found")
	ErrDuplicate        = errors.New("dataset already exists")
	ErrFileTooLarge     = errors.New("file exceeds maximum upload size")
	ErrInvalidFile      = errors.New("invalid file")
	ErrInvalidPurpose   = errors.New("purpose must be training, testing, or unknown")
	ErrAlreadyImported  = errors.New("dataset already imported")
	ErrImportInProgress = errors.New("dataset import in progress")
)

// MapHTTPStatus maps dataset domain errors to appropriate HTTP status codes.
// Blob storage errors map through storage.MapHTTPStatus.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrAlreadyImported) ||
		errors.Is(err, ErrImportInProgress) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrInvalidPurpose) {
		return http.StatusBadRequest
	}
	return storage.MapHTTPStatus(err)
}
