package api

import (
	"maps"

	"github.com/JaimeStill/iris/internal/config"
	"github.com/JaimeStill/iris/pkg/openapi"
)

// NewSpec builds the OpenAPI document describing every API route.
// Paths are relative to the module base path, which is published as the server URL.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(schemas())
	spec.Components.AddResponses(map[string]*openapi.Response{
		"Repr": openapi.ResponseText("Debug rendering of the sample", "text/plain", ""),
	})

	addSamplePaths(spec)
	addClassifiedPaths(spec)
	addDatasetPaths(spec)

	return spec
}

func addSamplePaths(spec *openapi.Spec) {
	tags := []string{"Samples"}
	id := openapi.PathParam("id", "Sample ID")

	spec.Paths["/samples"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List samples",
			Tags:    tags,
			Parameters: openapi.PageParams(
				openapi.QueryParam("kind", "string", "training, testing, or unknown", false),
				openapi.QueryParam("species", "string", "Exact species", false),
				openapi.QueryParam("classification", "string", "Exact classification", false),
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of samples", "SamplePage"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create a sample",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("CreateSample", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created sample", "SampleRecord"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/samples/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search samples",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("SampleSearch", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of samples", "SamplePage"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/samples/summary"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Summarize testing sample classifications",
			Tags:    tags,
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Classification summary", "Summary"),
			},
		},
	}

	spec.Paths["/samples/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a sample",
			Tags:       tags,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Sample", "SampleRecord"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a sample",
			Tags:       tags,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				204: openapi.ResponseRef("NoContent"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/samples/{id}/repr"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Render a sample for debugging",
			Tags:       tags,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseRef("Repr"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/samples/{id}/classification"] = &openapi.PathItem{
		Put: &openapi.Operation{
			Summary:     "Record a classification on a testing sample",
			Tags:        tags,
			Parameters:  []*openapi.Parameter{id},
			RequestBody: openapi.RequestBodyJSON("ClassifySample", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Classified testing sample", "SampleRecord"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}
}

func addClassifiedPaths(spec *openapi.Spec) {
	tags := []string{"Classified"}
	id := openapi.PathParam("id", "Classified sample ID")

	spec.Paths["/classified"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List classified samples",
			Tags:    tags,
			Parameters: openapi.PageParams(
				openapi.QueryParam("classification", "string", "Exact classification", false),
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of classified samples", "ClassifiedPage"),
			},
		},
	}

	spec.Paths["/classified/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search classified samples",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("ClassifiedSearch", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of classified samples", "ClassifiedPage"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/classified/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a classified sample",
			Tags:       tags,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Classified sample", "ClassifiedSample"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Classify an unknown sample",
			Description: "The path id names the unknown sample. Its measurements are copied into a new classified sample.",
			Tags:        tags,
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Unknown sample ID")},
			RequestBody: openapi.RequestBodyJSON("ClassifySample", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Classified sample", "ClassifiedSample"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a classified sample",
			Tags:       tags,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				204: openapi.ResponseRef("NoContent"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/classified/{id}/repr"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Render a classified sample for debugging",
			Tags:       tags,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseRef("Repr"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func addDatasetPaths(spec *openapi.Spec) {
	tags := []string{"Datasets"}
	id := openapi.PathParam("id", "Dataset ID")

	spec.Paths["/datasets"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List datasets",
			Tags:    tags,
			Parameters: openapi.PageParams(
				openapi.QueryParam("purpose", "string", "training, testing, or unknown", false),
				openapi.QueryParam("filename", "string", "Filename contains", false),
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of datasets", "DatasetPage"),
			},
		},
		Post: &openapi.Operation{
			Summary: "Upload a CSV dataset",
			Tags:    tags,
			RequestBody: openapi.RequestBodyMultipart(
				map[string]*openapi.Schema{
					"file":    {Type: "string", Format: "binary"},
					"purpose": kindSchema(),
				},
				"file", "purpose",
			),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Uploaded dataset", "Dataset"),
				400: openapi.ResponseRef("BadRequest"),
				413: openapi.ResponseRef("PayloadTooLarge"),
			},
		},
	}

	spec.Paths["/datasets/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search datasets",
			Tags:        tags,
			RequestBody: openapi.RequestBodyJSON("DatasetSearch", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of datasets", "DatasetPage"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/datasets/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a dataset",
			Tags:       tags,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Dataset", "Dataset"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a dataset and its blob",
			Tags:       tags,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				204: openapi.ResponseRef("NoContent"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/datasets/{id}/download"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Download the raw dataset file",
			Tags:       tags,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseText("Dataset file", "text/csv", "binary"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/datasets/{id}/import"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Import dataset rows as samples",
			Tags:       tags,
			Parameters: []*openapi.Parameter{id},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Import result", "ImportResult"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}
}

func kindSchema() *openapi.Schema {
	return &openapi.Schema{
		Type: "string",
		Enum: []any{"training", "testing", "unknown"},
	}
}

func measurementProperties() map[string]*openapi.Schema {
	zero := 0.0
	measurement := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "number", Format: "double", Description: desc, Minimum: &zero}
	}
	return map[string]*openapi.Schema{
		"sepal_length": measurement("Sepal length in centimeters"),
		"sepal_width":  measurement("Sepal width in centimeters"),
		"petal_length": measurement("Petal length in centimeters"),
		"petal_width":  measurement("Petal width in centimeters"),
	}
}

func withMeasurements(props map[string]*openapi.Schema) map[string]*openapi.Schema {
	maps.Copy(props, measurementProperties())
	return props
}

func schemas() map[string]*openapi.Schema {
	nullableString := &openapi.Schema{Type: "string", Description: "Null when absent"}
	timestamp := &openapi.Schema{Type: "string", Format: "date-time"}
	uuid := &openapi.Schema{Type: "string", Format: "uuid"}

	return map[string]*openapi.Schema{
		"SampleRecord": {
			Type: "object",
			Properties: withMeasurements(map[string]*openapi.Schema{
				"id":             uuid,
				"kind":           kindSchema(),
				"species":        nullableString,
				"classification": nullableString,
				"matches":        {Type: "boolean", Description: "Present on testing samples"},
				"created_at":     timestamp,
				"updated_at":     timestamp,
			}),
		},
		"CreateSample": {
			Type: "object",
			Properties: withMeasurements(map[string]*openapi.Schema{
				"kind":    kindSchema(),
				"species": {Type: "string", Description: "Required for training and testing samples"},
			}),
			Required: []string{"kind", "sepal_length", "sepal_width", "petal_length", "petal_width"},
		},
		"ClassifySample": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"classification": {Type: "string"},
			},
			Required: []string{"classification"},
		},
		"SampleSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":           {Type: "integer"},
				"page_size":      {Type: "integer"},
				"search":         {Type: "string"},
				"sort":           {Type: "string"},
				"kind":           kindSchema(),
				"species":        {Type: "string"},
				"classification": {Type: "string"},
			},
		},
		"SamplePage": openapi.PageSchema("SampleRecord"),
		"Summary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"total":      {Type: "integer"},
				"classified": {Type: "integer"},
				"matched":    {Type: "integer"},
				"accuracy":   {Type: "number", Description: "matched / classified, 0 when nothing is classified"},
			},
		},
		"ClassifiedSample": {
			Type: "object",
			Properties: withMeasurements(map[string]*openapi.Schema{
				"id":             uuid,
				"classification": {Type: "string"},
				"classified_at":  timestamp,
			}),
		},
		"ClassifiedSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":           {Type: "integer"},
				"page_size":      {Type: "integer"},
				"search":         {Type: "string"},
				"sort":           {Type: "string"},
				"classification": {Type: "string"},
			},
		},
		"ClassifiedPage": openapi.PageSchema("ClassifiedSample"),
		"Dataset": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           uuid,
				"filename":     {Type: "string"},
				"content_type": {Type: "string"},
				"size_bytes":   {Type: "integer"},
				"storage_key":  {Type: "string"},
				"purpose":      kindSchema(),
				"row_count":    {Type: "integer", Description: "Null until imported"},
				"uploaded_at":  timestamp,
				"imported_at":  {Type: "string", Format: "date-time", Description: "Null until imported"},
			},
		},
		"DatasetSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      {Type: "integer"},
				"page_size": {Type: "integer"},
				"search":    {Type: "string"},
				"sort":      {Type: "string"},
				"purpose":   kindSchema(),
				"filename":  {Type: "string"},
			},
		},
		"DatasetPage": openapi.PageSchema("Dataset"),
		"ImportResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"dataset":  openapi.SchemaRef("Dataset"),
				"imported": {Type: "integer"},
			},
		},
	}
}
