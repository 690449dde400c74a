package storage

import "errors"

var (
	// ErrNotFound indicates no content exists under the requested key.
	ErrNotFound = errors.New("storage: file not found")

	// ErrInvalidKey indicates a key that is empty or escapes the
	// storage root.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrPermissionDenied indicates the backend refused the operation.
	ErrPermissionDenied = errors.New("storage: permission denied")
)
