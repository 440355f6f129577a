package samples

import (
	"errors"
	"net/http"
)

// Domain errors for sample operations.
var (
	ErrNotFound      = errors.New("sample not found")
	ErrDuplicate     = errors.New("sample already exists")
	ErrInvalidSample = errors.New("invalid sample")
	ErrInvalidKind   = errors.New("operation not supported for sample kind")
)

// MapHTTPStatus maps sample domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidSample) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrInvalidKind) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
