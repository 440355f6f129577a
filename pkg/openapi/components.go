package openapi

import "maps"

// NewComponents creates Components with the shared error schema and the
// responses every resource reuses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":      ResponseJSON("Invalid request", "Error"),
			"NotFound":        ResponseJSON("Resource not found", "Error"),
			"Conflict":        ResponseJSON("Resource conflicts with current state", "Error"),
			"PayloadTooLarge": ResponseJSON("Request body exceeds the upload limit", "Error"),
			"NoContent":       {Description: "Deleted"},
		},
	}
}

// AddSchemas merges schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}

// PageSchema describes a pagination envelope whose data items reference item.
func PageSchema(item string) *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"data":        {Type: "array", Items: SchemaRef(item)},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	}
}

// PageParams returns the query parameters shared by list endpoints, followed by extra.
func PageParams(extra ...*Parameter) []*Parameter {
	params := []*Parameter{
		QueryParam("page", "integer", "Page number (1-indexed)", false),
		QueryParam("page_size", "integer", "Results per page", false),
		QueryParam("search", "string", "Search query", false),
		QueryParam("sort", "string", "Comma-separated sort fields, - prefix for descending", false),
	}
	return append(params, extra...)
}
