package pagination

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/catalog-admin/pkg/query"
)

// PageRequest represents a client request for a page of data with optional
// search and sorting.
type PageRequest struct {
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Search *string           `json:"search,omitempty"`
	Sort   []query.SortField `json:"sort,omitempty"`
}

// Normalize adjusts the request to ensure valid pagination values based on
// the config: non-positive limits fall back to the default, limits above the
// maximum are clamped, and negative offsets reset to zero.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Limit < 1 {
		r.Limit = cfg.DefaultLimit
	}
	if r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: limit, offset, search, sort (comma-separated, "-"
// prefix for descending). The result is normalized according to the provided
// config.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	limit, _ := strconv.Atoi(values.Get("limit"))
	offset, _ := strconv.Atoi(values.Get("offset"))

	var search *string
	if s := values.Get("search"); s != "" {
		search = &s
	}

	req := PageRequest{
		Limit:  limit,
		Offset: offset,
		Search: search,
		Sort:   query.ParseSortFields(values.Get("sort")),
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPageResult creates a PageResult for the given request. Nil data becomes
// an empty slice so responses always carry an array.
func NewPageResult[T any](data []T, total int, req PageRequest) PageResult[T] {
	if data == nil {
		data = []T{}
	}
	return PageResult[T]{
		Data:   data,
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
}

// HasPrev reports whether a previous page exists.
func (p PageResult[T]) HasPrev() bool {
	return p.Offset > 0
}

// HasNext reports whether a further page exists.
func (p PageResult[T]) HasNext() bool {
	return p.Offset+p.Limit < p.Total
}

// PrevOffset returns the offset of the previous page, clamped at zero.
func (p PageResult[T]) PrevOffset() int {
	prev := p.Offset - p.Limit
	if prev < 0 {
		prev = 0
	}
	return prev
}

// NextOffset returns the offset of the next page. Only meaningful when
// HasNext reports true.
func (p PageResult[T]) NextOffset() int {
	return p.Offset + p.Limit
}
