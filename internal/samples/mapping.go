package samples

import (
	"net/url"

	"github.com/JaimeStill/iris/pkg/query"
	"github.com/JaimeStill/iris/pkg/repository"
)

const columns = `id, kind, sepal_length, sepal_width, petal_length, petal_width,
		species, classification, created_at, updated_at`

var projection = query.
	NewProjectionMap("public", "samples", "s").
	Project("id", "ID").
	Project("kind", "Kind").
	Project("sepal_length", "SepalLength").
	Project("sepal_width", "SepalWidth").
	Project("petal_length", "PetalLength").
	Project("petal_width", "PetalWidth").
	Project("species", "Species").
	Project("classification", "Classification").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for sample queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	Kind           *Kind   `json:"kind,omitempty"`
	Species        *string `json:"species,omitempty"`
	Classification *string `json:"classification,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var kind *string
	if f.Kind != nil {
		k := string(*f.Kind)
		kind = &k
	}

	return b.
		WhereEquals("Kind", kind).
		WhereEquals("Species", f.Species).
		WhereEquals("Classification", f.Classification)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Unrecognized kinds are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if k := Kind(values.Get("kind")); k.Valid() {
		f.Kind = &k
	}

	if s := values.Get("species"); s != "" {
		f.Species = &s
	}

	if c := values.Get("classification"); c != "" {
		f.Classification = &c
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	var kind string

	err := s.Scan(
		&r.ID,
		&kind,
		&r.SepalLength,
		&r.SepalWidth,
		&r.PetalLength,
		&r.PetalWidth,
		&r.Species,
		&r.Classification,
		&r.CreatedAt,
		&r.UpdatedAt,
	)

	if err != nil {
		return r, err
	}

	r.Kind = Kind(kind)

	if r.Kind == KindTesting {
		m, err := r.Model()
		if err != nil {
			return r, err
		}
		matches := m.(TestingKnownSample).Matches()
		r.Matches = &matches
	}

	return r, nil
}
