package importer

import "github.com/JaimeStill/catalog-admin/pkg/openapi"

type spec struct {
	Import *openapi.Operation
	Export *openapi.Operation
}

var Spec = spec{
	Import: &openapi.Operation{
		Summary: "Import products from CSV",
		Description: "Upserts products by SKU from a multipart CSV upload. " +
			"Invalid rows are skipped and reported per line; valid rows always apply.",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Import report", "ImportReport"),
			400: openapi.ResponseRef("BadRequest"),
			413: {Description: "File exceeds the upload size limit"},
		},
	},
	Export: &openapi.Operation{
		Summary:     "Export products as CSV",
		Description: "Streams the catalog as a CSV attachment ordered by SKU",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("active", "boolean", "Export active products only", false),
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "CSV document"},
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ImportReport": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"created": {Type: "integer"},
				"updated": {Type: "integer"},
				"failed":  {Type: "integer"},
				"errors": {
					Type:  "array",
					Items: openapi.SchemaRef("ImportRowError"),
				},
			},
		},
		"ImportRowError": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"line":    {Type: "integer", Description: "1-based file line; the header is line 1"},
				"field":   {Type: "string"},
				"message": {Type: "string"},
			},
		},
	}
}
