package openapi

const (
	schemaRefPrefix   = "#/components/schemas/"
	responseRefPrefix = "#/components/responses/"

	mediaJSON      = "application/json"
	mediaMultipart = "multipart/form-data"
)

func content(mediaType string, schema *Schema) map[string]*MediaType {
	return map[string]*MediaType{mediaType: {Schema: schema}}
}

// SchemaRef points at a component schema.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: schemaRefPrefix + name}
}

// ResponseRef points at a component response.
func ResponseRef(name string) *Response {
	return &Response{Ref: responseRefPrefix + name}
}

func RequestBodyJSON(schemaName string, required bool) *RequestBody {
	return &RequestBody{Required: required, Content: content(mediaJSON, SchemaRef(schemaName))}
}

// RequestBodyMultipart describes a form upload; required names the mandatory fields.
func RequestBodyMultipart(fields map[string]*Schema, required ...string) *RequestBody {
	form := &Schema{Type: "object", Properties: fields, Required: required}
	return &RequestBody{Required: true, Content: content(mediaMultipart, form)}
}

func ResponseJSON(description, schemaName string) *Response {
	return &Response{Description: description, Content: content(mediaJSON, SchemaRef(schemaName))}
}

// ResponseText describes a string body such as a repr or a CSV download.
func ResponseText(description, mediaType, format string) *Response {
	return &Response{
		Description: description,
		Content:     content(mediaType, &Schema{Type: "string", Format: format}),
	}
}

// PathParam is a required UUID path segment.
func PathParam(name, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string", Format: "uuid"},
	}
}

func QueryParam(name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}
