package query_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/catalog-admin/pkg/query"
)

func builderProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "products", "p").
		Project("id", "id").
		Project("sku", "sku").
		Project("name", "name").
		Project("active", "active")
}

func newBuilder() *query.Builder {
	return query.NewBuilder(builderProjection(), query.SortField{Field: "name"})
}

func TestBuilderBuild(t *testing.T) {
	sql, args := newBuilder().Build()

	want := "SELECT p.id, p.sku, p.name, p.active FROM public.products p ORDER BY p.name ASC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("len(args) = %d, want 0", len(args))
	}
}

func TestBuilderWhereEquals(t *testing.T) {
	active := true

	tests := []struct {
		name     string
		value    any
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "plain value",
			value:    true,
			wantSQL:  "SELECT COUNT(*) FROM public.products p WHERE p.active = $1",
			wantArgs: []any{true},
		},
		{
			name:     "non-nil pointer dereferenced",
			value:    &active,
			wantSQL:  "SELECT COUNT(*) FROM public.products p WHERE p.active = $1",
			wantArgs: []any{true},
		},
		{
			name:     "nil pointer ignored",
			value:    (*bool)(nil),
			wantSQL:  "SELECT COUNT(*) FROM public.products p",
			wantArgs: nil,
		},
		{
			name:     "nil ignored",
			value:    nil,
			wantSQL:  "SELECT COUNT(*) FROM public.products p",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := newBuilder().WhereEquals("active", tt.value).BuildCount()

			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuilderWhereContains(t *testing.T) {
	term := "widget"
	empty := ""

	t.Run("value wrapped in wildcards", func(t *testing.T) {
		sql, args := newBuilder().WhereContains("name", &term).BuildCount()

		want := "SELECT COUNT(*) FROM public.products p WHERE p.name ILIKE $1"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if !reflect.DeepEqual(args, []any{"%widget%"}) {
			t.Errorf("args = %v, want [%%widget%%]", args)
		}
	})

	t.Run("nil ignored", func(t *testing.T) {
		sql, _ := newBuilder().WhereContains("name", nil).BuildCount()
		if sql != "SELECT COUNT(*) FROM public.products p" {
			t.Errorf("sql = %q, want no WHERE clause", sql)
		}
	})

	t.Run("empty ignored", func(t *testing.T) {
		sql, _ := newBuilder().WhereContains("name", &empty).BuildCount()
		if sql != "SELECT COUNT(*) FROM public.products p" {
			t.Errorf("sql = %q, want no WHERE clause", sql)
		}
	})
}

func TestBuilderWhereIn(t *testing.T) {
	sql, args := newBuilder().WhereIn("sku", []any{"A-1", "A-2", "A-3"}).BuildCount()

	want := "SELECT COUNT(*) FROM public.products p WHERE p.sku IN ($1, $2, $3)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"A-1", "A-2", "A-3"}) {
		t.Errorf("args = %v", args)
	}

	sql, _ = newBuilder().WhereIn("sku", nil).BuildCount()
	if sql != "SELECT COUNT(*) FROM public.products p" {
		t.Errorf("empty values should be ignored, got %q", sql)
	}
}

func TestBuilderWhereSearch(t *testing.T) {
	term := "gizmo"
	sql, args := newBuilder().WhereSearch(&term, "name", "sku").BuildCount()

	want := "SELECT COUNT(*) FROM public.products p WHERE (p.name ILIKE $1 OR p.sku ILIKE $2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"%gizmo%", "%gizmo%"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuilderParameterNumbering(t *testing.T) {
	term := "bolt"
	sql, args := newBuilder().
		WhereEquals("active", true).
		WhereSearch(&term, "name", "sku").
		WhereIn("sku", []any{"B-1", "B-2"}).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.products p WHERE p.active = $1 AND (p.name ILIKE $2 OR p.sku ILIKE $3) AND p.sku IN ($4, $5)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 5 {
		t.Errorf("len(args) = %d, want 5", len(args))
	}
}

func TestBuilderOrderByFields(t *testing.T) {
	t.Run("explicit sort overrides default", func(t *testing.T) {
		sql, _ := newBuilder().
			OrderByFields([]query.SortField{{Field: "sku", Desc: true}, {Field: "name"}}).
			Build()

		want := "SELECT p.id, p.sku, p.name, p.active FROM public.products p ORDER BY p.sku DESC, p.name ASC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("empty sort keeps default", func(t *testing.T) {
		sql, _ := newBuilder().OrderByFields(nil).Build()
		want := "SELECT p.id, p.sku, p.name, p.active FROM public.products p ORDER BY p.name ASC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("unregistered fields are dropped", func(t *testing.T) {
		sql, _ := newBuilder().
			OrderByFields([]query.SortField{{Field: "updated_at"}, {Field: "sku", Desc: true}}).
			Build()

		want := "SELECT p.id, p.sku, p.name, p.active FROM public.products p ORDER BY p.sku DESC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("only unregistered fields keeps default", func(t *testing.T) {
		sql, _ := newBuilder().
			OrderByFields([]query.SortField{{Field: "password_hash"}}).
			Build()

		want := "SELECT p.id, p.sku, p.name, p.active FROM public.products p ORDER BY p.name ASC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})
}

// Sort names arrive verbatim from query strings on public endpoints, so
// anything that is not a projected view name must never render into the
// ORDER BY clause.
func TestBuilderOrderByRejectsExpressions(t *testing.T) {
	hostile := []string{
		"(SELECT pg_sleep(10))",
		"name; DROP TABLE products",
		"1=1",
		"p.name ASC --",
	}

	for _, expr := range hostile {
		t.Run(expr, func(t *testing.T) {
			sql, _ := newBuilder().
				OrderByFields(query.ParseSortFields(expr)).
				BuildPage(20, 0)

			want := "SELECT p.id, p.sku, p.name, p.active FROM public.products p ORDER BY p.name ASC LIMIT 20 OFFSET 0"
			if sql != want {
				t.Errorf("sql = %q, want %q", sql, want)
			}
		})
	}
}

func TestProjectionMapHas(t *testing.T) {
	pm := builderProjection()

	if !pm.Has("sku") {
		t.Error("Has(sku) = false, want true")
	}
	if pm.Has("p.sku") {
		t.Error("Has(p.sku) = true, want false")
	}
	if pm.Has("(SELECT 1)") {
		t.Error("Has expression = true, want false")
	}
}

func TestBuilderBuildPage(t *testing.T) {
	sql, args := newBuilder().WhereEquals("active", true).BuildPage(25, 50)

	want := "SELECT p.id, p.sku, p.name, p.active FROM public.products p WHERE p.active = $1 ORDER BY p.name ASC LIMIT 25 OFFSET 50"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{true}) {
		t.Errorf("args = %v, want [true]", args)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	sku := "C-9"
	sql, args := newBuilder().BuildSingle("sku", &sku)

	want := "SELECT p.id, p.sku, p.name, p.active FROM public.products p WHERE p.sku = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"C-9"}) {
		t.Errorf("args = %v, want [C-9]", args)
	}
}

func TestBuilderJoin(t *testing.T) {
	pm := query.NewProjectionMap("public", "products", "p").
		Project("id", "id").
		ProjectExpr("c.name", "category_name")

	sql, _ := query.NewBuilder(pm, query.SortField{Field: "id"}).
		Join("LEFT JOIN public.categories c ON c.id = p.category_id").
		Build()

	want := "SELECT p.id, c.name FROM public.products p LEFT JOIN public.categories c ON c.id = p.category_id ORDER BY p.id ASC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}
