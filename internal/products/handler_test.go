package products_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/products"
	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/JaimeStill/catalog-admin/pkg/openapi"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/routes"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeSystem struct {
	summaries []products.ProductSummary
	product   *products.Product
	err       error

	createdCmd *products.CreateProductCommand
	updatedCmd *products.UpdateProductCommand
	deletedID  *uuid.UUID
	setActive  *bool
}

func (f *fakeSystem) List(ctx context.Context, page pagination.PageRequest, filters products.Filters) (*pagination.PageResult[products.ProductSummary], error) {
	if f.err != nil {
		return nil, f.err
	}
	result := pagination.NewPageResult(f.summaries, len(f.summaries), page)
	return &result, nil
}

func (f *fakeSystem) Find(ctx context.Context, id uuid.UUID) (*products.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeSystem) FindBySlug(ctx context.Context, slug string) (*products.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeSystem) Create(ctx context.Context, cmd products.CreateProductCommand) (*products.Product, error) {
	f.createdCmd = &cmd
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeSystem) Update(ctx context.Context, id uuid.UUID, cmd products.UpdateProductCommand) (*products.Product, error) {
	f.updatedCmd = &cmd
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeSystem) Delete(ctx context.Context, id uuid.UUID) error {
	f.deletedID = &id
	return f.err
}

func (f *fakeSystem) SetActive(ctx context.Context, id uuid.UUID, active bool) (*products.Product, error) {
	f.setActive = &active
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeSystem) UpsertBySKU(ctx context.Context, cmd products.CreateProductCommand) (*products.Product, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.product, true, nil
}

func sampleProduct() *products.Product {
	return &products.Product{
		ID:         uuid.New(),
		Kind:       products.KindPhysical,
		Name:       "Studio Headphones",
		Slug:       "studio-headphones",
		SKU:        "SH-100",
		Price:      decimal.RequireFromString("149.00"),
		Currency:   "USD",
		Active:     true,
		Attributes: json.RawMessage(`{"weight_grams":250}`),
	}
}

func productMux(t *testing.T, sys products.System) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := products.NewHandler(sys, logger, pagination.Config{DefaultLimit: 20, MaxLimit: 100})

	mux := http.NewServeMux()
	routes.Register(mux, "/api", openapi.NewSpec("test", "0.0.0"), h.Routes())
	return mux
}

func asRole(req *http.Request, role auth.Role) *http.Request {
	p := &auth.Principal{UserID: uuid.New(), Username: "tester", Role: role}
	return req.WithContext(auth.WithPrincipal(req.Context(), p))
}

func TestListProducts(t *testing.T) {
	sys := &fakeSystem{summaries: []products.ProductSummary{
		{ID: uuid.New(), Kind: products.KindPhysical, Name: "Headphones", SKU: "SH-100"},
		{ID: uuid.New(), Kind: products.KindDigital, Name: "Field Guide", SKU: "FG-1"},
	}}
	mux := productMux(t, sys)

	req := asRole(httptest.NewRequest(http.MethodGet, "/products", nil), auth.RoleViewer)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var result pagination.PageResult[products.ProductSummary]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(result.Data) != 2 {
		t.Errorf("len(Data) = %d, want 2", len(result.Data))
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
}

func TestListRequiresPrincipal(t *testing.T) {
	mux := productMux(t, &fakeSystem{})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestFindProduct(t *testing.T) {
	product := sampleProduct()

	t.Run("found", func(t *testing.T) {
		mux := productMux(t, &fakeSystem{product: product})

		req := asRole(httptest.NewRequest(http.MethodGet, "/products/"+product.ID.String(), nil), auth.RoleViewer)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var got products.Product
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if got.ID != product.ID {
			t.Errorf("ID = %v, want %v", got.ID, product.ID)
		}
		if !got.Price.Equal(product.Price) {
			t.Errorf("Price = %v, want %v", got.Price, product.Price)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		mux := productMux(t, &fakeSystem{})

		req := asRole(httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil), auth.RoleViewer)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mux := productMux(t, &fakeSystem{err: products.ErrNotFound})

		req := asRole(httptest.NewRequest(http.MethodGet, "/products/"+uuid.NewString(), nil), auth.RoleViewer)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestCreateProduct(t *testing.T) {
	body := `{
		"kind": "physical",
		"name": "Studio Headphones",
		"sku": "SH-100",
		"price": "149.00",
		"attributes": {"weight_grams": 250}
	}`

	t.Run("created", func(t *testing.T) {
		sys := &fakeSystem{product: sampleProduct()}
		mux := productMux(t, sys)

		req := asRole(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), auth.RoleEditor)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		if sys.createdCmd == nil {
			t.Fatal("Create was not invoked")
		}
		if sys.createdCmd.SKU != "SH-100" {
			t.Errorf("cmd.SKU = %q, want SH-100", sys.createdCmd.SKU)
		}
		if !sys.createdCmd.Price.Equal(decimal.RequireFromString("149.00")) {
			t.Errorf("cmd.Price = %v, want 149.00", sys.createdCmd.Price)
		}
	})

	t.Run("viewer forbidden", func(t *testing.T) {
		sys := &fakeSystem{product: sampleProduct()}
		mux := productMux(t, sys)

		req := asRole(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), auth.RoleViewer)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
		if sys.createdCmd != nil {
			t.Error("Create should not run for viewers")
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		verr := validation.NewError()
		verr.Add("name", "is required")
		mux := productMux(t, &fakeSystem{err: verr})

		req := asRole(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), auth.RoleEditor)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}

		var failure validation.Error
		if err := json.NewDecoder(rec.Body).Decode(&failure); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(failure.Fields["name"]) == 0 {
			t.Errorf("Fields = %v, want name error", failure.Fields)
		}
	})

	t.Run("duplicate conflict", func(t *testing.T) {
		mux := productMux(t, &fakeSystem{err: products.ErrDuplicate})

		req := asRole(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), auth.RoleEditor)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
		}
	})

	t.Run("unknown json field rejected", func(t *testing.T) {
		mux := productMux(t, &fakeSystem{})

		req := asRole(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"bogus":true}`)), auth.RoleEditor)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestUpdateProduct(t *testing.T) {
	sys := &fakeSystem{product: sampleProduct()}
	mux := productMux(t, sys)

	body := `{
		"name": "Studio Headphones Mk II",
		"slug": "studio-headphones",
		"sku": "SH-100",
		"price": "159.00",
		"attributes": {"weight_grams": 260}
	}`

	req := asRole(httptest.NewRequest(http.MethodPut, "/products/"+uuid.NewString(), strings.NewReader(body)), auth.RoleEditor)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if sys.updatedCmd == nil {
		t.Fatal("Update was not invoked")
	}
	if sys.updatedCmd.Name != "Studio Headphones Mk II" {
		t.Errorf("cmd.Name = %q", sys.updatedCmd.Name)
	}
}

func TestDeleteProduct(t *testing.T) {
	t.Run("admin deletes", func(t *testing.T) {
		sys := &fakeSystem{}
		mux := productMux(t, sys)
		id := uuid.New()

		req := asRole(httptest.NewRequest(http.MethodDelete, "/products/"+id.String(), nil), auth.RoleAdmin)
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
		sys := &fakeSystem{}
		mux := productMux(t, sys)

		req := asRole(httptest.NewRequest(http.MethodDelete, "/products/"+uuid.NewString(), nil), auth.RoleEditor)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
		if sys.deletedID != nil {
			t.Error("Delete should not run for editors")
		}
	})
}

func TestActivateDeactivate(t *testing.T) {
	t.Run("activate", func(t *testing.T) {
		sys := &fakeSystem{product: sampleProduct()}
		mux := productMux(t, sys)

		req := asRole(httptest.NewRequest(http.MethodPost, "/products/"+uuid.NewString()+"/activate", nil), auth.RoleEditor)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if sys.setActive == nil || !*sys.setActive {
			t.Errorf("setActive = %v, want true", sys.setActive)
		}
	})

	t.Run("deactivate", func(t *testing.T) {
		sys := &fakeSystem{product: sampleProduct()}
		mux := productMux(t, sys)

		req := asRole(httptest.NewRequest(http.MethodPost, "/products/"+uuid.NewString()+"/deactivate", nil), auth.RoleEditor)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if sys.setActive == nil || *sys.setActive {
			t.Errorf("setActive = %v, want false", sys.setActive)
		}
	})
}
