package datasheets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/catalog-admin/pkg/repository"
	"github.com/google/uuid"
)

const datasheetColumns = `id, product_id, file_name, content_type, size_bytes, page_count, storage_path, uploaded_at`

func scanDatasheet(s repository.Scanner) (Datasheet, error) {
	var d Datasheet
	err := s.Scan(
		&d.ID, &d.ProductID, &d.Filename, &d.ContentType,
		&d.SizeBytes, &d.PageCount, &d.StoragePath, &d.UploadedAt,
	)
	return d, err
}

// storageKey places each file under its datasheet id so uploads with the
// same filename never collide.
func storageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("datasheets/%s/%s", id.String(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
