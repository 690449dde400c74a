package products

import "github.com/JaimeStill/catalog-admin/pkg/openapi"

type spec struct {
	List       *openapi.Operation
	Find       *openapi.Operation
	Create     *openapi.Operation
	Update     *openapi.Operation
	Delete     *openapi.Operation
	Activate   *openapi.Operation
	Deactivate *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List products",
		Description: "Returns a paginated list of product summaries with the category resolved to its name",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("limit", "integer", "Maximum results per page", false),
			openapi.QueryParam("offset", "integer", "Number of results to skip", false),
			openapi.QueryParam("search", "string", "Search query (matches name, sku, slug)", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("kind", "string", "Filter by product kind", false),
			openapi.QueryParam("category", "string", "Filter by category UUID", false),
			openapi.QueryParam("active", "boolean", "Filter by active state", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of product summaries", "ProductPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Get product",
		Description: "Returns a full product record including kind-specific attributes",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Product UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product", "Product"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create product",
		Description: "Creates a product. Attributes are validated against the kind's schema; a blank slug is derived from the name.",
		RequestBody: openapi.RequestBodyJSON("CreateProductCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created product", "Product"),
			400: openapi.ResponseJSON("Validation failure", "ValidationError"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update product",
		Description: "Updates a product. The kind is immutable; attributes are validated against the stored kind.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Product UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateProductCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated product", "Product"),
			400: openapi.ResponseJSON("Validation failure", "ValidationError"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete product",
		Description: "Removes a product and its datasheets",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Product UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Product deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Activate: &openapi.Operation{
		Summary:     "Activate product",
		Description: "Makes the product visible to the storefront",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Product UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated product", "Product"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Deactivate: &openapi.Operation{
		Summary:     "Deactivate product",
		Description: "Hides the product from the storefront without deleting it",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Product UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated product", "Product"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Product": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"kind":        {Type: "string", Enum: []string{"physical", "digital"}},
				"name":        {Type: "string"},
				"slug":        {Type: "string"},
				"sku":         {Type: "string"},
				"description": {Type: "string"},
				"price":       {Type: "string", Description: "Decimal price, e.g. \"19.99\""},
				"currency":    {Type: "string", Example: "USD"},
				"active":      {Type: "boolean"},
				"category_id": {Type: "string", Format: "uuid"},
				"attributes":  {Type: "object", Description: "Kind-specific attributes"},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"ProductSummary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"kind":          {Type: "string", Enum: []string{"physical", "digital"}},
				"name":          {Type: "string"},
				"slug":          {Type: "string"},
				"sku":           {Type: "string"},
				"price":         {Type: "string"},
				"currency":      {Type: "string"},
				"active":        {Type: "boolean"},
				"category_name": {Type: "string"},
				"updated_at":    {Type: "string", Format: "date-time"},
			},
		},
		"CreateProductCommand": {
			Type:     "object",
			Required: []string{"kind", "name", "sku"},
			Properties: map[string]*openapi.Schema{
				"kind":        {Type: "string", Enum: []string{"physical", "digital"}},
				"name":        {Type: "string", Example: "Studio Headphones"},
				"slug":        {Type: "string", Description: "Derived from name when omitted"},
				"sku":         {Type: "string", Example: "SH-100"},
				"description": {Type: "string"},
				"price":       {Type: "string", Example: "149.00"},
				"currency":    {Type: "string", Example: "USD"},
				"category_id": {Type: "string", Format: "uuid"},
				"attributes": {
					Type:        "object",
					Description: "physical: weight_grams (required), width_mm, height_mm, depth_mm; digital: file_format (required), download_size_bytes",
				},
			},
		},
		"UpdateProductCommand": {
			Type:     "object",
			Required: []string{"name", "slug", "sku"},
			Properties: map[string]*openapi.Schema{
				"kind":        {Type: "string", Description: "Must match the stored kind"},
				"name":        {Type: "string"},
				"slug":        {Type: "string"},
				"sku":         {Type: "string"},
				"description": {Type: "string"},
				"price":       {Type: "string"},
				"currency":    {Type: "string"},
				"category_id": {Type: "string", Format: "uuid"},
				"attributes":  {Type: "object"},
				"active":      {Type: "boolean"},
			},
		},
		"ValidationError": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"fields": {
					Type:        "object",
					Description: "Field name to error messages",
				},
			},
		},
		"ProductPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":   {Type: "array", Items: openapi.SchemaRef("ProductSummary")},
				"total":  {Type: "integer"},
				"limit":  {Type: "integer"},
				"offset": {Type: "integer"},
			},
		},
	}
}
