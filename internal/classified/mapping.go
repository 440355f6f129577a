package classified

import (
	"net/url"

	"github.com/JaimeStill/iris/pkg/query"
	"github.com/JaimeStill/iris/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "classified_samples", "cs").
	Project("id", "ID").
	Project("sepal_length", "SepalLength").
	Project("sepal_width", "SepalWidth").
	Project("petal_length", "PetalLength").
	Project("petal_width", "PetalWidth").
	Project("classification", "Classification").
	Project("classified_at", "ClassifiedAt")

var defaultSort = query.SortField{
	Field:      "ClassifiedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for classified sample queries.
type Filters struct {
	Classification *string `json:"classification,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Classification", f.Classification)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("classification"); c != "" {
		f.Classification = &c
	}

	return f
}

func scanResult(s repository.Scanner) (Result, error) {
	var r Result
	err := s.Scan(
		&r.ID,
		&r.SepalLength,
		&r.SepalWidth,
		&r.PetalLength,
		&r.PetalWidth,
		&r.Classification,
		&r.ClassifiedAt,
	)
	return r, err
}
