package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/categories"
	"github.com/JaimeStill/catalog-admin/internal/config"
	"github.com/JaimeStill/catalog-admin/internal/dashboard"
	"github.com/JaimeStill/catalog-admin/internal/datasheets"
	"github.com/JaimeStill/catalog-admin/internal/products"
	"github.com/JaimeStill/catalog-admin/internal/users"
	"github.com/JaimeStill/catalog-admin/pkg/module"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/google/uuid"
)

const (
	dashBase      = "/dashboard"
	testSecret    = "dashboard-test-secret"
	sessionCookie = "catalog_session"
)

var errNotImplemented = errors.New("not implemented in fake")

type fakeUsers struct {
	result *users.LoginResult
	err    error

	loginCmd *users.LoginCommand
}

func (f *fakeUsers) List(_ context.Context, _ pagination.PageRequest, _ users.Filters) (*pagination.PageResult[users.User], error) {
	return nil, errNotImplemented
}

func (f *fakeUsers) Find(_ context.Context, _ uuid.UUID) (*users.User, error) {
	return nil, errNotImplemented
}

func (f *fakeUsers) Login(_ context.Context, cmd users.LoginCommand) (*users.LoginResult, error) {
	f.loginCmd = &cmd
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeUsers) Create(_ context.Context, _ users.CreateUserCommand) (*users.User, error) {
	return nil, errNotImplemented
}

func (f *fakeUsers) Update(_ context.Context, _ uuid.UUID, _ users.UpdateUserCommand) (*users.User, error) {
	return nil, errNotImplemented
}

func (f *fakeUsers) Delete(_ context.Context, _ uuid.UUID) error {
	return errNotImplemented
}

type fakeProducts struct {
	summaries []products.ProductSummary
	total     int
	product   *products.Product
	err       error

	listPage    *pagination.PageRequest
	listFilters *products.Filters
	createdCmd  *products.CreateProductCommand
	updatedCmd  *products.UpdateProductCommand
}

func (f *fakeProducts) List(_ context.Context, page pagination.PageRequest, filters products.Filters) (*pagination.PageResult[products.ProductSummary], error) {
	f.listPage = &page
	f.listFilters = &filters
	if f.err != nil {
		return nil, f.err
	}
	total := f.total
	if total == 0 {
		total = len(f.summaries)
	}
	result := pagination.NewPageResult(f.summaries, total, page)
	return &result, nil
}

func (f *fakeProducts) Find(_ context.Context, _ uuid.UUID) (*products.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeProducts) FindBySlug(_ context.Context, _ string) (*products.Product, error) {
	return nil, errNotImplemented
}

func (f *fakeProducts) Create(_ context.Context, cmd products.CreateProductCommand) (*products.Product, error) {
	f.createdCmd = &cmd
	if f.err != nil {
		return nil, f.err
	}
	if f.product != nil {
		return f.product, nil
	}
	return &products.Product{ID: uuid.New(), Kind: products.Kind(cmd.Kind), Name: cmd.Name, SKU: cmd.SKU}, nil
}

func (f *fakeProducts) Update(_ context.Context, _ uuid.UUID, cmd products.UpdateProductCommand) (*products.Product, error) {
	f.updatedCmd = &cmd
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

func (f *fakeProducts) Delete(_ context.Context, _ uuid.UUID) error {
	return errNotImplemented
}

func (f *fakeProducts) SetActive(_ context.Context, _ uuid.UUID, _ bool) (*products.Product, error) {
	return nil, errNotImplemented
}

func (f *fakeProducts) UpsertBySKU(_ context.Context, _ products.CreateProductCommand) (*products.Product, bool, error) {
	return nil, false, errNotImplemented
}

type fakeCategories struct {
	items    []categories.Category
	total    int
	category *categories.Category
	err      error

	createdCmd *categories.CreateCategoryCommand
	updatedCmd *categories.UpdateCategoryCommand
}

func (f *fakeCategories) List(_ context.Context, page pagination.PageRequest, _ categories.Filters) (*pagination.PageResult[categories.Category], error) {
	if f.err != nil {
		return nil, f.err
	}
	total := f.total
	if total == 0 {
		total = len(f.items)
	}
	result := pagination.NewPageResult(f.items, total, page)
	return &result, nil
}

func (f *fakeCategories) Find(_ context.Context, _ uuid.UUID) (*categories.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.category, nil
}

func (f *fakeCategories) Create(_ context.Context, cmd categories.CreateCategoryCommand) (*categories.Category, error) {
	f.createdCmd = &cmd
	if f.err != nil {
		return nil, f.err
	}
	return &categories.Category{ID: uuid.New(), Name: cmd.Name, Position: cmd.Position}, nil
}

func (f *fakeCategories) Update(_ context.Context, _ uuid.UUID, cmd categories.UpdateCategoryCommand) (*categories.Category, error) {
	f.updatedCmd = &cmd
	if f.err != nil {
		return nil, f.err
	}
	return f.category, nil
}

func (f *fakeCategories) Delete(_ context.Context, _ uuid.UUID) error {
	return errNotImplemented
}

type fakeDatasheets struct {
	sheets []datasheets.Datasheet
	err    error
}

func (f *fakeDatasheets) ListForProduct(_ context.Context, _ uuid.UUID) ([]datasheets.Datasheet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sheets, nil
}

func (f *fakeDatasheets) Find(_ context.Context, _ uuid.UUID) (*datasheets.Datasheet, error) {
	return nil, errNotImplemented
}

func (f *fakeDatasheets) Create(_ context.Context, _ datasheets.CreateDatasheetCommand) (*datasheets.Datasheet, error) {
	return nil, errNotImplemented
}

func (f *fakeDatasheets) Open(_ context.Context, _ uuid.UUID) (*datasheets.Datasheet, io.ReadCloser, error) {
	return nil, nil, errNotImplemented
}

func (f *fakeDatasheets) Delete(_ context.Context, _ uuid.UUID) error {
	return errNotImplemented
}

type domainFixture struct {
	users      *fakeUsers
	products   *fakeProducts
	categories *fakeCategories
	datasheets *fakeDatasheets
}

func newDomain() *domainFixture {
	return &domainFixture{
		users:      &fakeUsers{},
		products:   &fakeProducts{},
		categories: &fakeCategories{},
		datasheets: &fakeDatasheets{},
	}
}

func newDashboard(t *testing.T, d *domainFixture) http.Handler {
	t.Helper()

	authCfg := &config.AuthConfig{
		TokenSecret: testSecret,
		TokenTTL:    "12h",
		CookieName:  sessionCookie,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mod, err := dashboard.NewModule(dashBase, authCfg, pagination.Config{DefaultLimit: 20, MaxLimit: 100}, logger, dashboard.Domain{
		Users:      d.users,
		Products:   d.products,
		Categories: d.categories,
		Datasheets: d.datasheets,
	})
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	rt := module.NewRouter()
	rt.Mount(mod)
	return rt
}

// session issues a signed token for the role and wraps it in the cookie
// the dashboard reads.
func session(t *testing.T, role auth.Role) *http.Cookie {
	t.Helper()

	token, err := auth.NewTokens(testSecret, time.Hour).Issue(auth.Principal{
		UserID:   uuid.New(),
		Username: "tester",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("issue session token: %v", err)
	}
	return &http.Cookie{Name: sessionCookie, Value: token}
}

func get(target string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func postForm(target string, form url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestDashboardRequiresSession(t *testing.T) {
	t.Run("browser redirects to sign-in", func(t *testing.T) {
		h := newDashboard(t, newDomain())
		rec := serve(h, get("/dashboard/products", nil))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		want := "/dashboard/login?next=%2Fdashboard%2Fproducts"
		if got := rec.Header().Get("Location"); got != want {
			t.Errorf("Location = %q, want %q", got, want)
		}
	})

	t.Run("json clients get 401", func(t *testing.T) {
		h := newDashboard(t, newDomain())
		req := get("/dashboard/products", nil)
		req.Header.Set("Accept", "application/json")
		rec := serve(h, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("garbage session redirects", func(t *testing.T) {
		h := newDashboard(t, newDomain())
		rec := serve(h, get("/dashboard/products", &http.Cookie{Name: sessionCookie, Value: "not-a-token"}))

		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
	})

	t.Run("bearer token is accepted", func(t *testing.T) {
		h := newDashboard(t, newDomain())
		req := get("/dashboard/products", nil)
		req.Header.Set("Authorization", "Bearer "+session(t, auth.RoleViewer).Value)
		rec := serve(h, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestLoginForm(t *testing.T) {
	t.Run("renders the sign-in form", func(t *testing.T) {
		h := newDashboard(t, newDomain())
		rec := serve(h, get("/dashboard/login", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		body := rec.Body.String()
		for _, want := range []string{`name="email"`, `name="password"`, `action="/dashboard/login"`} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
	})

	t.Run("signed-in visitors bounce to next", func(t *testing.T) {
		h := newDashboard(t, newDomain())
		rec := serve(h, get("/dashboard/login?next=/dashboard/categories", session(t, auth.RoleEditor)))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if got := rec.Header().Get("Location"); got != "/dashboard/categories" {
			t.Errorf("Location = %q, want %q", got, "/dashboard/categories")
		}
	})
}

func TestDashboardLogin(t *testing.T) {
	account := users.User{
		ID:       uuid.New(),
		Username: "admin",
		Email:    "admin@example.com",
		Role:     auth.RoleAdmin,
		Active:   true,
	}

	t.Run("success sets the session and redirects", func(t *testing.T) {
		d := newDomain()
		d.users.result = &users.LoginResult{Token: "issued-token", User: account}
		h := newDashboard(t, d)

		form := url.Values{
			"email":    {"  admin@example.com  "},
			"password": {"s3cret-pass"},
			"next":     {"/dashboard/categories"},
		}
		rec := serve(h, postForm("/dashboard/login", form, nil))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if got := rec.Header().Get("Location"); got != "/dashboard/categories" {
			t.Errorf("Location = %q, want %q", got, "/dashboard/categories")
		}
		if d.users.loginCmd == nil || d.users.loginCmd.Email != "admin@example.com" {
			t.Errorf("login command = %+v, want trimmed email", d.users.loginCmd)
		}

		cookie := findCookie(t, rec.Result().Cookies(), sessionCookie)
		if cookie.Value != "issued-token" {
			t.Errorf("session cookie = %q, want %q", cookie.Value, "issued-token")
		}
		if !cookie.HttpOnly {
			t.Error("session cookie should be http-only")
		}
	})

	t.Run("bad credentials re-render the form", func(t *testing.T) {
		d := newDomain()
		d.users.err = users.ErrInvalidCredentials
		h := newDashboard(t, d)

		form := url.Values{"email": {"admin@example.com"}, "password": {"wrong"}}
		rec := serve(h, postForm("/dashboard/login", form, nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Invalid email or password.") {
			t.Error("body missing the failure message")
		}
		if !strings.Contains(body, `value="admin@example.com"`) {
			t.Error("body should echo the email back into the form")
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Errorf("cookies = %v, want none", rec.Result().Cookies())
		}
	})

	t.Run("negotiated failure returns json", func(t *testing.T) {
		d := newDomain()
		d.users.err = users.ErrInvalidCredentials
		h := newDashboard(t, d)

		form := url.Values{"email": {"admin@example.com"}, "password": {"wrong"}}
		rec := serve(h, postForm("/dashboard/login?format=json", form, nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
	})

	t.Run("off-site next falls back to the root", func(t *testing.T) {
		d := newDomain()
		d.users.result = &users.LoginResult{Token: "issued-token", User: account}
		h := newDashboard(t, d)

		form := url.Values{
			"email":    {"admin@example.com"},
			"password": {"s3cret-pass"},
			"next":     {"https://evil.example/phish"},
		}
		rec := serve(h, postForm("/dashboard/login", form, nil))

		if got := rec.Header().Get("Location"); got != "/dashboard/" {
			t.Errorf("Location = %q, want %q", got, "/dashboard/")
		}
	})

	t.Run("scheme-relative next falls back to the root", func(t *testing.T) {
		d := newDomain()
		d.users.result = &users.LoginResult{Token: "issued-token", User: account}
		h := newDashboard(t, d)

		form := url.Values{
			"email":    {"admin@example.com"},
			"password": {"s3cret-pass"},
			"next":     {"//evil.example/phish"},
		}
		rec := serve(h, postForm("/dashboard/login", form, nil))

		if got := rec.Header().Get("Location"); got != "/dashboard/" {
			t.Errorf("Location = %q, want %q", got, "/dashboard/")
		}
	})
}

func TestLogout(t *testing.T) {
	h := newDashboard(t, newDomain())

	rec := serve(h, postForm("/dashboard/logout", url.Values{}, session(t, auth.RoleAdmin)))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/dashboard/login" {
		t.Errorf("Location = %q, want %q", got, "/dashboard/login")
	}

	cookie := findCookie(t, rec.Result().Cookies(), sessionCookie)
	if cookie.Value != "" {
		t.Errorf("cookie value = %q, want empty", cookie.Value)
	}
	if cookie.MaxAge != -1 {
		t.Errorf("cookie MaxAge = %d, want -1", cookie.MaxAge)
	}
}

func TestDashboardRoot(t *testing.T) {
	type card struct {
		Label  string `json:"label"`
		URL    string `json:"url"`
		Count  int    `json:"count"`
		CanAdd bool   `json:"can_add"`
		AddURL string `json:"add_url"`
	}

	counted := func() *domainFixture {
		d := newDomain()
		d.products.total = 3
		d.categories.total = 12
		return d
	}

	t.Run("admin cards carry counts and add links", func(t *testing.T) {
		h := newDashboard(t, counted())
		req := get("/dashboard/", session(t, auth.RoleAdmin))
		req.Header.Set("Accept", "application/json")
		rec := serve(h, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var cards []card
		if err := json.NewDecoder(rec.Body).Decode(&cards); err != nil {
			t.Fatalf("decode cards: %v", err)
		}
		want := []card{
			{Label: "Products", URL: "/dashboard/products", Count: 3, CanAdd: true, AddURL: "/dashboard/products/add"},
			{Label: "Categories", URL: "/dashboard/categories", Count: 12, CanAdd: true, AddURL: "/dashboard/categories/add"},
		}
		if len(cards) != len(want) {
			t.Fatalf("len(cards) = %d, want %d", len(cards), len(want))
		}
		for i := range want {
			if cards[i] != want[i] {
				t.Errorf("cards[%d] = %+v, want %+v", i, cards[i], want[i])
			}
		}
	})

	t.Run("viewer cards hide add links", func(t *testing.T) {
		h := newDashboard(t, counted())
		req := get("/dashboard/", session(t, auth.RoleViewer))
		req.Header.Set("Accept", "application/json")
		rec := serve(h, req)

		var cards []card
		if err := json.NewDecoder(rec.Body).Decode(&cards); err != nil {
			t.Fatalf("decode cards: %v", err)
		}
		if len(cards) != 2 {
			t.Fatalf("len(cards) = %d, want 2", len(cards))
		}
		for _, c := range cards {
			if c.CanAdd || c.AddURL != "" {
				t.Errorf("card %q should not offer add: %+v", c.Label, c)
			}
		}
	})

	t.Run("html renders a card per entity", func(t *testing.T) {
		h := newDashboard(t, counted())
		rec := serve(h, get("/dashboard/", session(t, auth.RoleAdmin)))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		body := rec.Body.String()
		for _, want := range []string{
			`<h2><a href="/dashboard/products">Products</a></h2>`,
			`<h2><a href="/dashboard/categories">Categories</a></h2>`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
	})
}

func TestDashboardNotFound(t *testing.T) {
	h := newDashboard(t, newDomain())

	rec := serve(h, get("/dashboard/missing", session(t, auth.RoleAdmin)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "page not found") {
		t.Error("body missing the not-found message")
	}
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name   string
		target string
		accept string
		want   bool
	}{
		{name: "format query", target: "/dashboard/products?format=json", want: true},
		{name: "json accept", target: "/dashboard/products", accept: "application/json", want: true},
		{name: "browser accept", target: "/dashboard/products", accept: "text/html,application/xhtml+xml,application/json;q=0.8", want: false},
		{name: "no preference", target: "/dashboard/products", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if got := dashboard.Negotiate(req); got != tt.want {
				t.Errorf("Negotiate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistryRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rend, err := dashboard.NewRenderer(dashBase, logger)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	d := newDomain()
	cfg := pagination.Config{DefaultLimit: 20, MaxLimit: 100}

	reg := dashboard.NewRegistry()
	reg.Register(dashboard.NewProductsEntity(rend, d.products, d.categories, d.datasheets, cfg, logger))
	reg.Register(dashboard.NewCategoriesEntity(rend, d.categories, cfg, logger))

	table := reg.Routes()

	want := []struct {
		method   string
		pattern  string
		codename string
	}{
		{"GET", "/products", "view_product"},
		{"GET", "/products/add", "add_product"},
		{"POST", "/products/add", "add_product"},
		{"GET", "/products/{id}/change", "view_product"},
		{"POST", "/products/{id}/change", "change_product"},
		{"GET", "/products/{id}/datasheets", "view_datasheet"},
		{"GET", "/categories", "view_category"},
		{"GET", "/categories/add", "add_category"},
		{"POST", "/categories/add", "add_category"},
		{"GET", "/categories/{id}/change", "view_category"},
		{"POST", "/categories/{id}/change", "change_category"},
	}

	if len(table) != len(want) {
		t.Fatalf("len(routes) = %d, want %d", len(table), len(want))
	}
	for i, w := range want {
		got := table[i]
		if got.Method != w.method || got.Pattern != w.pattern || got.Codename != w.codename {
			t.Errorf("routes[%d] = %s %s (%s), want %s %s (%s)",
				i, got.Method, got.Pattern, got.Codename, w.method, w.pattern, w.codename)
		}
		if got.Handler == nil {
			t.Errorf("routes[%d] %s %s has no handler", i, w.method, w.pattern)
		}
	}
}
