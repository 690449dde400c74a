package products

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/catalog-admin/internal/validation"
)

// Domain errors for product operations.
var (
	ErrNotFound     = errors.New("product not found")
	ErrDuplicate    = errors.New("product slug or sku already exists")
	ErrUnknownKind  = errors.New("unknown product kind")
	ErrCategoryGone = errors.New("category does not exist")
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
	if errors.Is(err, ErrUnknownKind) || errors.Is(err, ErrCategoryGone) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
