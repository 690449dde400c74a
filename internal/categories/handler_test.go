package categories_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/categories"
	"github.com/JaimeStill/catalog-admin/pkg/openapi"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/routes"
	"github.com/google/uuid"
)

type fakeSystem struct {
	items    []categories.Category
	category *categories.Category
	err      error

	createdCmd *categories.CreateCategoryCommand
	updatedCmd *categories.UpdateCategoryCommand
	deletedID  *uuid.UUID
}

func (f *fakeSystem) List(ctx context.Context, page pagination.PageRequest, filters categories.Filters) (*pagination.PageResult[categories.Category], error) {
	if f.err != nil {
		return nil, f.err
	}
	result := pagination.NewPageResult(f.items, len(f.items), page)
	return &result, nil
}

func (f *fakeSystem) Find(ctx context.Context, id uuid.UUID) (*categories.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.category, nil
}

func (f *fakeSystem) Create(ctx context.Context, cmd categories.CreateCategoryCommand) (*categories.Category, error) {
	f.createdCmd = &cmd
	if f.err != nil {
		return nil, f.err
	}
	return f.category, nil
}

func (f *fakeSystem) Update(ctx context.Context, id uuid.UUID, cmd categories.UpdateCategoryCommand) (*categories.Category, error) {
	f.updatedCmd = &cmd
	if f.err != nil {
		return nil, f.err
	}
	return f.category, nil
}

func (f *fakeSystem) Delete(ctx context.Context, id uuid.UUID) error {
	f.deletedID = &id
	return f.err
}

func categoryMux(t *testing.T, sys categories.System) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := categories.NewHandler(sys, logger, pagination.Config{DefaultLimit: 20, MaxLimit: 100})

	mux := http.NewServeMux()
	routes.Register(mux, "/api", openapi.NewSpec("test", "0.0.0"), h.Routes())
	return mux
}

func asRole(req *http.Request, role auth.Role) *http.Request {
	p := &auth.Principal{UserID: uuid.New(), Username: "tester", Role: role}
	return req.WithContext(auth.WithPrincipal(req.Context(), p))
}

func TestListCategories(t *testing.T) {
	sys := &fakeSystem{items: []categories.Category{
		{ID: uuid.New(), Name: "Audio", Slug: "audio", Position: 0},
		{ID: uuid.New(), Name: "Books", Slug: "books", Position: 1},
	}}
	mux := categoryMux(t, sys)

	req := asRole(httptest.NewRequest(http.MethodGet, "/categories", nil), auth.RoleViewer)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var result pagination.PageResult[categories.Category]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(result.Data) != 2 {
		t.Errorf("len(Data) = %d, want 2", len(result.Data))
	}
}

func TestFindCategory(t *testing.T) {
	category := &categories.Category{ID: uuid.New(), Name: "Audio", Slug: "audio"}

	t.Run("found", func(t *testing.T) {
		mux := categoryMux(t, &fakeSystem{category: category})

		req := asRole(httptest.NewRequest(http.MethodGet, "/categories/"+category.ID.String(), nil), auth.RoleViewer)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mux := categoryMux(t, &fakeSystem{err: categories.ErrNotFound})

		req := asRole(httptest.NewRequest(http.MethodGet, "/categories/"+uuid.NewString(), nil), auth.RoleViewer)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestCreateCategory(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		sys := &fakeSystem{category: &categories.Category{ID: uuid.New(), Name: "Audio", Slug: "audio"}}
		mux := categoryMux(t, sys)

		body := `{"name":"Audio","position":1}`
		req := asRole(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body)), auth.RoleEditor)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if sys.createdCmd == nil || sys.createdCmd.Name != "Audio" {
			t.Errorf("createdCmd = %+v", sys.createdCmd)
		}
	})

	t.Run("duplicate slug conflict", func(t *testing.T) {
		mux := categoryMux(t, &fakeSystem{err: categories.ErrDuplicate})

		body := `{"name":"Audio"}`
		req := asRole(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body)), auth.RoleEditor)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
		}
	})

	t.Run("viewer forbidden", func(t *testing.T) {
		sys := &fakeSystem{}
		mux := categoryMux(t, sys)

		req := asRole(httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Audio"}`)), auth.RoleViewer)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	sys := &fakeSystem{category: &categories.Category{ID: uuid.New(), Name: "Audio Gear", Slug: "audio"}}
	mux := categoryMux(t, sys)

	body := `{"name":"Audio Gear","slug":"audio","active":true}`
	req := asRole(httptest.NewRequest(http.MethodPut, "/categories/"+uuid.NewString(), strings.NewReader(body)), auth.RoleEditor)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if sys.updatedCmd == nil || sys.updatedCmd.Name != "Audio Gear" {
		t.Errorf("updatedCmd = %+v", sys.updatedCmd)
	}
}

func TestDeleteCategory(t *testing.T) {
	t.Run("admin deletes", func(t *testing.T) {
		sys := &fakeSystem{}
		mux := categoryMux(t, sys)
		id := uuid.New()

		req := asRole(httptest.NewRequest(http.MethodDelete, "/categories/"+id.String(), nil), auth.RoleAdmin)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
		}
		if sys.deletedID == nil || *sys.deletedID != id {
			t.Errorf("deletedID = %v, want %v", sys.deletedID, id)
		}
	})

	t.Run("editor forbidden", func(t *testing.T) {
		mux := categoryMux(t, &fakeSystem{})

		req := asRole(httptest.NewRequest(http.MethodDelete, "/categories/"+uuid.NewString(), nil), auth.RoleEditor)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})
}

func TestCategoryMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: categories.ErrNotFound, want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("find: %w", categories.ErrNotFound), want: http.StatusNotFound},
		{name: "duplicate", err: categories.ErrDuplicate, want: http.StatusConflict},
		{name: "unexpected", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categories.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
