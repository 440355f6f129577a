package classified

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/iris/internal/samples"
)

// Domain errors for classified sample operations.
var (
	ErrNotFound              = errors.New("classified sample not found")
	ErrDuplicate             = errors.New("classified sample already exists")
	ErrInvalidClassification = errors.New("classification required")
)

// MapHTTPStatus maps classified sample errors to appropriate HTTP status codes.
// Errors raised while loading the source sample map through samples.MapHTTPStatus.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidClassification) {
		return http.StatusBadRequest
	}
	return samples.MapHTTPStatus(err)
}
