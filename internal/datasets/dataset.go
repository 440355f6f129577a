// Package datasets implements CSV dataset upload and import.
// Raw files live in blob storage; importing a dataset decodes its rows and
// stores them as samples of the dataset's purpose.
package datasets

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/iris/internal/samples"
)

// Dataset represents an uploaded CSV file and its blob storage reference.
// RowCount and ImportedAt are nil until the dataset is imported.
type Dataset struct {
	ID          uuid.UUID    `json:"id"`
	Filename    string       `json:"filename"`
	ContentType string       `json:"content_type"`
	SizeBytes   int64        `json:"size_bytes"`
	StorageKey  string       `json:"storage_key"`
	Purpose     samples.Kind `json:"purpose"`
	RowCount    *int         `json:"row_count"`
	UploadedAt  time.Time    `json:"uploaded_at"`
	ImportedAt  *time.Time   `json:"imported_at"`
}

// CreateCommand carries the data needed to upload and register a dataset.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	Purpose     samples.Kind
}

// ImportResult reports the outcome of importing a dataset.
type ImportResult struct {
	Dataset  *Dataset `json:"dataset"`
	Imported int      `json:"imported"`
}
