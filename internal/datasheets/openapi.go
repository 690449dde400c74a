package datasheets

import "github.com/JaimeStill/catalog-admin/pkg/openapi"

type spec struct {
	ListForProduct *openapi.Operation
	Upload         *openapi.Operation
	Download       *openapi.Operation
	Delete         *openapi.Operation
}

var Spec = spec{
	ListForProduct: &openapi.Operation{
		Summary:     "List product datasheets",
		Description: "Returns the datasheets attached to a product, newest first",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Product UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Datasheets for the product", "DatasheetList"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Upload: &openapi.Operation{
		Summary:     "Upload datasheet",
		Description: "Attaches a file to a product. PDF uploads record their page count.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Product UUID"),
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Uploaded datasheet", "Datasheet"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: {Description: "File exceeds the upload size limit"},
		},
	},
	Download: &openapi.Operation{
		Summary:     "Download datasheet",
		Description: "Streams the file as an attachment with its original filename",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Datasheet UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "File content"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete datasheet",
		Description: "Removes the datasheet record and its stored file",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Datasheet UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Datasheet deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Datasheet": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"product_id":   {Type: "string", Format: "uuid"},
				"file_name":    {Type: "string"},
				"content_type": {Type: "string", Example: "application/pdf"},
				"size_bytes":   {Type: "integer"},
				"page_count":   {Type: "integer", Description: "Present for PDF uploads"},
				"uploaded_at":  {Type: "string", Format: "date-time"},
			},
		},
		"DatasheetList": {
			Type:  "array",
			Items: openapi.SchemaRef("Datasheet"),
		},
	}
}
