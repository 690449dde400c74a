// Package storage provides file persistence for catalog assets such as
// product datasheets. The default implementation writes to the local
// filesystem under a configured root directory.
package storage

import (
	"context"
	"io"

	"github.com/JaimeStill/catalog-admin/internal/lifecycle"
)

// System abstracts file storage for stored catalog assets.
type System interface {
	// Store persists content under the given key and returns the
	// storage path where it was written.
	Store(ctx context.Context, key string, content io.Reader) (string, error)

	// Retrieve opens the content stored under the given key. The
	// caller is responsible for closing the returned reader.
	Retrieve(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content stored under the given key. Deleting
	// a key that does not exist is not an error.
	Delete(ctx context.Context, key string) error

	// Start prepares the storage backend and registers lifecycle hooks.
	Start(lc *lifecycle.Coordinator) error
}
