package query

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// SortField is one ORDER BY term. Field is a view field name from the projection.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// Builder accumulates WHERE conditions and ordering for a projection.
// Arguments are numbered as conditions are added, so every query built
// from the same Builder shares one argument list.
type Builder struct {
	projection  *ProjectionMap
	where       []string
	args        []any
	sort        []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder for the projection. defaultSort applies
// when no explicit ordering is set.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// ParseSortFields parses "field,-other" into sort fields. A leading "-" sorts descending.
func ParseSortFields(s string) []SortField {
	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// Build returns the filtered and ordered SELECT.
func (b *Builder) Build() (string, []any) {
	var sb strings.Builder
	b.writeSelect(&sb)
	b.writeWhere(&sb)
	b.writeOrderBy(&sb)
	return sb.String(), slices.Clone(b.args)
}

// BuildCount returns a COUNT(*) over the filtered rows.
func (b *Builder) BuildCount() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(b.projection.From())
	b.writeWhere(&sb)
	return sb.String(), slices.Clone(b.args)
}

// BuildPage returns the filtered and ordered SELECT limited to one page.
// page is 1-based.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	var sb strings.Builder
	b.writeSelect(&sb)
	b.writeWhere(&sb)
	b.writeOrderBy(&sb)
	sb.WriteString(" LIMIT ")
	sb.WriteString(strconv.Itoa(pageSize))
	sb.WriteString(" OFFSET ")
	sb.WriteString(strconv.Itoa((page - 1) * pageSize))
	return sb.String(), slices.Clone(b.args)
}

// BuildSingle returns a SELECT of the row whose idField equals id.
// Conditions added to the Builder are not included.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	var sb strings.Builder
	b.writeSelect(&sb)
	sb.WriteString(" WHERE ")
	sb.WriteString(b.projection.Column(idField))
	sb.WriteString(" = $1")
	return sb.String(), []any{id}
}

// OrderByFields replaces the default ordering. Fields that are not
// projected are dropped when the query is built.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// WhereEquals adds "field = value". Nil values are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	b.where = append(b.where, b.projection.Column(field)+" = "+b.bind(value))
	return b
}

// WhereContains adds a case-insensitive substring match. Nil or empty values are ignored.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	b.where = append(b.where, b.projection.Column(field)+" ILIKE "+b.bind("%"+*value+"%"))
	return b
}

// WhereSearch matches search as a case-insensitive substring of any of fields.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	pattern := "%" + *search + "%"
	terms := make([]string, len(fields))
	for i, field := range fields {
		terms[i] = b.projection.Column(field) + " ILIKE " + b.bind(pattern)
	}

	b.where = append(b.where, "("+strings.Join(terms, " OR ")+")")
	return b
}

func (b *Builder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *Builder) writeSelect(sb *strings.Builder) {
	sb.WriteString("SELECT ")
	sb.WriteString(b.projection.Columns())
	sb.WriteString(" FROM ")
	sb.WriteString(b.projection.From())
}

func (b *Builder) writeWhere(sb *strings.Builder) {
	if len(b.where) == 0 {
		return
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(b.where, " AND "))
}

func (b *Builder) writeOrderBy(sb *strings.Builder) {
	terms := b.orderTerms(b.sort)
	if len(terms) == 0 {
		terms = b.orderTerms(b.defaultSort)
	}
	if len(terms) == 0 {
		return
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(strings.Join(terms, ", "))
}

// orderTerms only emits projected columns; sort fields arrive from query strings.
func (b *Builder) orderTerms(fields []SortField) []string {
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		col, ok := b.projection.Lookup(f.Field)
		if !ok {
			continue
		}
		if f.Descending {
			terms = append(terms, col+" DESC")
		} else {
			terms = append(terms, col+" ASC")
		}
	}
	return terms
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
