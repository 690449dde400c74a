package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/query"
)

func strPtr(s string) *string { return &s }

func TestPageRequestNormalize(t *testing.T) {
	cfg := pagination.Config{DefaultLimit: 20, MaxLimit: 100}

	tests := []struct {
		name       string
		req        pagination.PageRequest
		wantLimit  int
		wantOffset int
	}{
		{
			name:       "zero limit falls back to default",
			req:        pagination.PageRequest{Limit: 0, Offset: 40},
			wantLimit:  20,
			wantOffset: 40,
		},
		{
			name:       "negative limit falls back to default",
			req:        pagination.PageRequest{Limit: -5, Offset: 0},
			wantLimit:  20,
			wantOffset: 0,
		},
		{
			name:       "limit above max is clamped",
			req:        pagination.PageRequest{Limit: 500, Offset: 0},
			wantLimit:  100,
			wantOffset: 0,
		},
		{
			name:       "negative offset resets to zero",
			req:        pagination.PageRequest{Limit: 10, Offset: -3},
			wantLimit:  10,
			wantOffset: 0,
		},
		{
			name:       "valid values pass through",
			req:        pagination.PageRequest{Limit: 50, Offset: 25},
			wantLimit:  50,
			wantOffset: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Normalize(cfg)

			if req.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", req.Limit, tt.wantLimit)
			}
			if req.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", req.Offset, tt.wantOffset)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	cfg := pagination.Config{DefaultLimit: 20, MaxLimit: 100}

	tests := []struct {
		name  string
		query string
		want  pagination.PageRequest
	}{
		{
			name:  "empty query uses defaults",
			query: "",
			want:  pagination.PageRequest{Limit: 20, Offset: 0},
		},
		{
			name:  "limit and offset parsed",
			query: "limit=10&offset=30",
			want:  pagination.PageRequest{Limit: 10, Offset: 30},
		},
		{
			name:  "invalid limit uses default",
			query: "limit=abc&offset=5",
			want:  pagination.PageRequest{Limit: 20, Offset: 5},
		},
		{
			name:  "limit clamped to max",
			query: "limit=9999",
			want:  pagination.PageRequest{Limit: 100, Offset: 0},
		},
		{
			name:  "search captured",
			query: "search=widget",
			want:  pagination.PageRequest{Limit: 20, Offset: 0, Search: strPtr("widget")},
		},
		{
			name:  "sort parsed with direction",
			query: "sort=name,-updated_at",
			want: pagination.PageRequest{
				Limit:  20,
				Offset: 0,
				Sort: []query.SortField{
					{Field: "name"},
					{Field: "updated_at", Desc: true},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery() error = %v", err)
			}

			got := pagination.PageRequestFromQuery(values, cfg)

			if got.Limit != tt.want.Limit {
				t.Errorf("Limit = %d, want %d", got.Limit, tt.want.Limit)
			}
			if got.Offset != tt.want.Offset {
				t.Errorf("Offset = %d, want %d", got.Offset, tt.want.Offset)
			}
			if (got.Search == nil) != (tt.want.Search == nil) {
				t.Fatalf("Search = %v, want %v", got.Search, tt.want.Search)
			}
			if got.Search != nil && *got.Search != *tt.want.Search {
				t.Errorf("Search = %q, want %q", *got.Search, *tt.want.Search)
			}
			if len(got.Sort) != len(tt.want.Sort) {
				t.Fatalf("len(Sort) = %d, want %d", len(got.Sort), len(tt.want.Sort))
			}
			for i, field := range got.Sort {
				if field != tt.want.Sort[i] {
					t.Errorf("Sort[%d] = %+v, want %+v", i, field, tt.want.Sort[i])
				}
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	req := pagination.PageRequest{Limit: 10, Offset: 20}

	t.Run("nil data becomes empty slice", func(t *testing.T) {
		result := pagination.NewPageResult[string](nil, 0, req)
		if result.Data == nil {
			t.Error("Data = nil, want empty slice")
		}
		if len(result.Data) != 0 {
			t.Errorf("len(Data) = %d, want 0", len(result.Data))
		}
	})

	t.Run("carries request pagination", func(t *testing.T) {
		result := pagination.NewPageResult([]string{"a", "b"}, 42, req)
		if result.Total != 42 {
			t.Errorf("Total = %d, want 42", result.Total)
		}
		if result.Limit != 10 {
			t.Errorf("Limit = %d, want 10", result.Limit)
		}
		if result.Offset != 20 {
			t.Errorf("Offset = %d, want 20", result.Offset)
		}
	})
}

func TestPageResultNavigation(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		total      int
		wantPrev   bool
		wantNext   bool
		prevOffset int
		nextOffset int
	}{
		{
			name:       "first page of many",
			limit:      10,
			offset:     0,
			total:      35,
			wantPrev:   false,
			wantNext:   true,
			prevOffset: 0,
			nextOffset: 10,
		},
		{
			name:       "middle page",
			limit:      10,
			offset:     10,
			total:      35,
			wantPrev:   true,
			wantNext:   true,
			prevOffset: 0,
			nextOffset: 20,
		},
		{
			name:       "last page",
			limit:      10,
			offset:     30,
			total:      35,
			wantPrev:   true,
			wantNext:   false,
			prevOffset: 20,
			nextOffset: 40,
		},
		{
			name:       "single page",
			limit:      10,
			offset:     0,
			total:      5,
			wantPrev:   false,
			wantNext:   false,
			prevOffset: 0,
			nextOffset: 10,
		},
		{
			name:       "prev offset clamped at zero",
			limit:      10,
			offset:     5,
			total:      35,
			wantPrev:   true,
			wantNext:   true,
			prevOffset: 0,
			nextOffset: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.PageResult[int]{
				Data:   []int{},
				Total:  tt.total,
				Limit:  tt.limit,
				Offset: tt.offset,
			}

			if got := result.HasPrev(); got != tt.wantPrev {
				t.Errorf("HasPrev() = %v, want %v", got, tt.wantPrev)
			}
			if got := result.HasNext(); got != tt.wantNext {
				t.Errorf("HasNext() = %v, want %v", got, tt.wantNext)
			}
			if got := result.PrevOffset(); got != tt.prevOffset {
				t.Errorf("PrevOffset() = %d, want %d", got, tt.prevOffset)
			}
			if got := result.NextOffset(); got != tt.nextOffset {
				t.Errorf("NextOffset() = %d, want %d", got, tt.nextOffset)
			}
		})
	}
}
