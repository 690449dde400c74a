// Package datasheets manages uploaded product datasheets: PDF and image
// files stored on the blob backend with their metadata tracked in the
// database. PDF uploads get a page count extracted at upload time.
package datasheets

import (
	"time"

	"github.com/google/uuid"
)

// Datasheet is the stored metadata for an uploaded file. StoragePath is
// internal to the service and never serialized.
type Datasheet struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count,omitempty"`
	StoragePath string    `json:"-"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// CreateDatasheetCommand carries a validated upload into the repository.
type CreateDatasheetCommand struct {
	ProductID   uuid.UUID
	Filename    string
	ContentType string
	SizeBytes   int64
	PageCount   *int
	Data        []byte
}
