package categories

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/catalog-admin/internal/validation"
)

// Domain errors for category operations.
var (
	ErrNotFound  = errors.New("category not found")
	ErrDuplicate = errors.New("category slug already exists")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
