package importer

import "errors"

// Domain errors for import operations.
var (
	ErrInvalidCSV  = errors.New("file is not valid CSV")
	ErrMissingFile = errors.New("multipart field 'file' is required")
)
