package users

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/catalog-admin/internal/validation"
)

// Domain errors for account operations.
var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicate          = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
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
	if errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
