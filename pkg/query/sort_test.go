package query_test

import (
	"testing"

	"github.com/JaimeStill/catalog-admin/pkg/query"
)

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []query.SortField
	}{
		{
			name: "empty expression",
			expr: "",
			want: nil,
		},
		{
			name: "single ascending field",
			expr: "name",
			want: []query.SortField{{Field: "name"}},
		},
		{
			name: "descending prefix",
			expr: "-created_at",
			want: []query.SortField{{Field: "created_at", Desc: true}},
		},
		{
			name: "mixed directions",
			expr: "name,-updated_at",
			want: []query.SortField{
				{Field: "name"},
				{Field: "updated_at", Desc: true},
			},
		},
		{
			name: "whitespace trimmed",
			expr: " name , -sku ",
			want: []query.SortField{
				{Field: "name"},
				{Field: "sku", Desc: true},
			},
		},
		{
			name: "empty segments skipped",
			expr: ",,name,",
			want: []query.SortField{{Field: "name"}},
		},
		{
			name: "only separators yields nil",
			expr: ",,",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.expr)

			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, field := range got {
				if field != tt.want[i] {
					t.Errorf("field[%d] = %+v, want %+v", i, field, tt.want[i])
				}
			}
		})
	}
}
