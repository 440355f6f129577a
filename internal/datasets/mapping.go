package datasets

import (
	"net/url"

	"github.com/JaimeStill/iris/internal/samples"
	"github.com/JaimeStill/iris/pkg/query"
	"github.com/JaimeStill/iris/pkg/repository"
)

const columns = `id, filename, content_type, size_bytes, storage_key, purpose,
		row_count, uploaded_at, imported_at`

var projection = query.
	NewProjectionMap("public", "datasets", "d").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("storage_key", "StorageKey").
	Project("purpose", "Purpose").
	Project("row_count", "RowCount").
	Project("uploaded_at", "UploadedAt").
	Project("imported_at", "ImportedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for dataset queries.
// Purpose uses exact matching; Filename uses case-insensitive contains matching.
type Filters struct {
	Purpose  *string `json:"purpose,omitempty"`
	Filename *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Purpose", f.Purpose).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("purpose"); samples.Kind(p).Valid() {
		f.Purpose = &p
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	return f
}

func scanDataset(s repository.Scanner) (Dataset, error) {
	var d Dataset
	var purpose string

	err := s.Scan(
		&d.ID,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.StorageKey,
		&purpose,
		&d.RowCount,
		&d.UploadedAt,
		&d.ImportedAt,
	)

	d.Purpose = samples.Kind(purpose)
	return d, err
}
