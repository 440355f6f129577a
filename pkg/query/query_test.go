package query_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/iris/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "samples", "s").
		Project("id", "ID").
		Project("species", "Species").
		Project("created_at", "CreatedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMap(t *testing.T) {
	p := testProjection()

	if got := p.From(); got != "public.samples s" {
		t.Errorf("From() = %q, want public.samples s", got)
	}
	if got := p.Columns(); got != "s.id, s.species, s.created_at" {
		t.Errorf("Columns() = %q", got)
	}

	tests := []struct {
		name     string
		viewName string
		want     string
		wantOK   bool
	}{
		{"projected", "Species", "s.species", true},
		{"projected timestamp", "CreatedAt", "s.created_at", true},
		{"unprojected", "petal_width", "petal_width", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
			if _, ok := p.Lookup(tt.viewName); ok != tt.wantOK {
				t.Errorf("Lookup(%q) ok = %v, want %v", tt.viewName, ok, tt.wantOK)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "Species", []query.SortField{{Field: "Species"}}},
		{"single descending", "-CreatedAt", []query.SortField{{Field: "CreatedAt", Descending: true}}},
		{
			"mixed with blanks",
			" Species , ,-CreatedAt",
			[]query.SortField{{Field: "Species"}, {Field: "CreatedAt", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, query.ParseSortFields(tt.input)); diff != "" {
				t.Errorf("ParseSortFields() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	const sel = "SELECT s.id, s.species, s.created_at FROM public.samples s"
	defaultSort := query.SortField{Field: "CreatedAt", Descending: true}

	tests := []struct {
		name     string
		build    func(b *query.Builder) (string, []any)
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "build without conditions uses default sort",
			build:   (*query.Builder).Build,
			wantSQL: sel + " ORDER BY s.created_at DESC",
		},
		{
			name: "equals binds value",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereEquals("Species", "setosa").Build()
			},
			wantSQL:  sel + " WHERE s.species = $1 ORDER BY s.created_at DESC",
			wantArgs: []any{"setosa"},
		},
		{
			name: "nil equals skipped",
			build: func(b *query.Builder) (string, []any) {
				var species *string
				return b.WhereEquals("Species", species).BuildCount()
			},
			wantSQL: "SELECT COUNT(*) FROM public.samples s",
		},
		{
			name: "contains wraps pattern",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereContains("Species", ptr("vers")).BuildCount()
			},
			wantSQL:  "SELECT COUNT(*) FROM public.samples s WHERE s.species ILIKE $1",
			wantArgs: []any{"%vers%"},
		},
		{
			name: "empty contains skipped",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereContains("Species", ptr("")).BuildCount()
			},
			wantSQL: "SELECT COUNT(*) FROM public.samples s",
		},
		{
			name: "search ORs fields and numbers after earlier conditions",
			build: func(b *query.Builder) (string, []any) {
				return b.
					WhereEquals("ID", "abc").
					WhereSearch(ptr("set"), "Species", "CreatedAt").
					BuildCount()
			},
			wantSQL:  "SELECT COUNT(*) FROM public.samples s WHERE s.id = $1 AND (s.species ILIKE $2 OR s.created_at ILIKE $3)",
			wantArgs: []any{"abc", "%set%", "%set%"},
		},
		{
			name: "page with explicit sort",
			build: func(b *query.Builder) (string, []any) {
				return b.
					WhereContains("Species", ptr("a")).
					OrderByFields([]query.SortField{{Field: "Species"}}).
					BuildPage(3, 20)
			},
			wantSQL:  sel + " WHERE s.species ILIKE $1 ORDER BY s.species ASC LIMIT 20 OFFSET 40",
			wantArgs: []any{"%a%"},
		},
		{
			name: "unprojected sort fields dropped",
			build: func(b *query.Builder) (string, []any) {
				return b.OrderByFields([]query.SortField{{Field: "1; DROP TABLE samples"}}).Build()
			},
			wantSQL: sel + " ORDER BY s.created_at DESC",
		},
		{
			name: "single ignores conditions",
			build: func(b *query.Builder) (string, []any) {
				return b.WhereEquals("Species", "setosa").BuildSingle("ID", "abc")
			},
			wantSQL:  sel + " WHERE s.id = $1",
			wantArgs: []any{"abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(testProjection(), defaultSort)
			sql, args := tt.build(b)

			if sql != tt.wantSQL {
				t.Errorf("sql:\ngot  %s\nwant %s", sql, tt.wantSQL)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestBuilderCountAndPageShareArgs(t *testing.T) {
	b := query.NewBuilder(testProjection()).WhereEquals("Species", "setosa")

	_, countArgs := b.BuildCount()
	pageSQL, pageArgs := b.BuildPage(1, 10)

	if len(countArgs) != 1 || len(pageArgs) != 1 {
		t.Fatalf("args: count %v, page %v; want one each", countArgs, pageArgs)
	}
	want := "SELECT s.id, s.species, s.created_at FROM public.samples s WHERE s.species = $1 LIMIT 10 OFFSET 0"
	if pageSQL != want {
		t.Errorf("page sql:\ngot  %s\nwant %s", pageSQL, want)
	}
}
