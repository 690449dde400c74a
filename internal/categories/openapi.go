package categories

import "github.com/JaimeStill/catalog-admin/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List categories",
		Description: "Returns a paginated list of categories ordered by position",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("limit", "integer", "Maximum results per page", false),
			openapi.QueryParam("offset", "integer", "Number of results to skip", false),
			openapi.QueryParam("search", "string", "Search query (matches name, slug)", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("active", "boolean", "Filter by active state", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of categories", "CategoryPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Get category",
		Description: "Returns a single category",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Category", "Category"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create category",
		Description: "Creates a category. A blank slug is derived from the name.",
		RequestBody: openapi.RequestBodyJSON("CreateCategoryCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created category", "Category"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update category",
		Description: "Updates category fields",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateCategoryCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated category", "Category"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete category",
		Description: "Removes a category. Products referencing it are detached, not deleted.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Category UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Category deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Category": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"slug":        {Type: "string"},
				"description": {Type: "string"},
				"position":    {Type: "integer"},
				"active":      {Type: "boolean"},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"CreateCategoryCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string", Example: "Audio"},
				"slug":        {Type: "string", Example: "audio", Description: "Derived from name when omitted"},
				"description": {Type: "string"},
				"position":    {Type: "integer"},
			},
		},
		"UpdateCategoryCommand": {
			Type:     "object",
			Required: []string{"name", "slug"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"slug":        {Type: "string"},
				"description": {Type: "string"},
				"position":    {Type: "integer"},
				"active":      {Type: "boolean"},
			},
		},
		"CategoryPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":   {Type: "array", Items: openapi.SchemaRef("Category")},
				"total":  {Type: "integer"},
				"limit":  {Type: "integer"},
				"offset": {Type: "integer"},
			},
		},
	}
}
