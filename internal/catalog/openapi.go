package catalog

import "github.com/JaimeStill/catalog-admin/pkg/openapi"

type spec struct {
	ListProducts *openapi.Operation
	FindProduct  *openapi.Operation
}

var Spec = spec{
	ListProducts: &openapi.Operation{
		Summary:     "Browse active products",
		Description: "Public product listing. Only active products appear; first pages are served from cache when available.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("limit", "integer", "Maximum results per page", false),
			openapi.QueryParam("offset", "integer", "Number of results to skip", false),
			openapi.QueryParam("search", "string", "Search query (matches name, sku, slug)", false),
			openapi.QueryParam("category", "string", "Filter by category UUID", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of product summaries", "ProductPageResult"),
		},
	},
	FindProduct: &openapi.Operation{
		Summary:     "Get product by slug",
		Description: "Public product detail. Inactive and unknown slugs report not found.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("slug", "Product slug"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product", "Product"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
