package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/categories"
	"github.com/JaimeStill/catalog-admin/internal/datasheets"
	"github.com/JaimeStill/catalog-admin/internal/products"
	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/JaimeStill/catalog-admin/pkg/decode"
	"github.com/JaimeStill/catalog-admin/pkg/handlers"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/JaimeStill/catalog-admin/pkg/routes"
	"github.com/docker/go-units"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type productsEntity struct {
	rend       *Renderer
	sys        products.System
	categories categories.System
	datasheets datasheets.System
	pagination pagination.Config
	logger     *slog.Logger
}

// NewProductsEntity adapts the product system to the dashboard. The
// category system feeds the form's category selector and the datasheet
// system backs the per-product datasheets view.
func NewProductsEntity(rend *Renderer, sys products.System, categories categories.System, datasheets datasheets.System, pagination pagination.Config, logger *slog.Logger) Entity {
	return &productsEntity{
		rend:       rend,
		sys:        sys,
		categories: categories,
		datasheets: datasheets,
		pagination: pagination,
		logger:     logger,
	}
}

func (e *productsEntity) Prefix() string { return "/products" }

func (e *productsEntity) Names() (string, string) { return "product", "products" }

func (e *productsEntity) Columns() []Column {
	return []Column{
		{Name: "name", Label: "Name", Link: true},
		{Name: "sku", Label: "SKU"},
		{Name: "kind", Label: "Kind"},
		{Name: "price", Label: "Price"},
		{Name: "active", Label: "Active"},
	}
}

func (e *productsEntity) Count(ctx context.Context) (int, error) {
	result, err := e.sys.List(ctx, pagination.PageRequest{Limit: 1}, products.Filters{})
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

func (e *productsEntity) Extra() []EntityRoute {
	return []EntityRoute{
		{
			Route: routes.Route{
				Method:  "GET",
				Pattern: e.Prefix() + "/{id}/datasheets",
				Handler: e.Datasheets,
			},
			Codename: auth.Codename(auth.ActionView, "datasheet"),
		},
	}
}

func (e *productsEntity) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), e.pagination)
	filters := products.FiltersFromQuery(r.URL.Query())

	result, err := e.sys.List(r.Context(), page, filters)
	if err != nil {
		e.rend.Fail(w, r, http.StatusInternalServerError, err)
		return
	}

	if Negotiate(r) {
		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}

	principal, _ := auth.PrincipalFrom(r.Context())
	base := e.rend.BasePath() + e.Prefix()

	var search string
	if page.Search != nil {
		search = *page.Search
	}
	prev, next := pageNavURLs(result, base, search)

	pg := pageFrom(r)
	pg.Breadcrumbs = []Crumb{
		{Label: "Dashboard", URL: e.rend.BasePath() + "/"},
		{Label: "Products"},
	}

	e.rend.HTML(w, http.StatusOK, "list.html", "Products", listPage{
		Page:     pg,
		Singular: "product",
		Plural:   "products",
		Columns:  e.Columns(),
		Rows: buildRows(e.Columns(), result.Data, base,
			func(p products.ProductSummary) string { return p.ID.String() },
			productCells),
		Total:        result.Total,
		Search:       search,
		ShowControls: true,
		CanAdd:       principal.Can(auth.Codename(auth.ActionAdd, "product")),
		ListURL:      base,
		AddURL:       base + "/add",
		PrevURL:      prev,
		NextURL:      next,
	})
}

func productCells(p products.ProductSummary) []string {
	return []string{
		p.Name,
		p.SKU,
		string(p.Kind),
		p.Price.StringFixed(2) + " " + p.Currency,
		activeLabel(p.Active),
	}
}

func (e *productsEntity) New(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = string(products.KindPhysical)
	}
	if _, err := products.ParseKind(kind); err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	values := url.Values{}
	values.Set("currency", "USD")

	if Negotiate(r) {
		cats, err := e.categoryList(r.Context())
		if err != nil {
			handlers.RespondError(w, e.logger, http.StatusInternalServerError, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]any{
			"kind":   kind,
			"fields": e.fields(kind, values, nil, false, cats),
		})
		return
	}

	e.renderForm(w, r, http.StatusOK, modeAdd, kind, nil, values, nil)
}

func (e *productsEntity) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}
	form := r.PostForm

	verr := validation.NewError()
	values := productCommandValues(form, verr)

	cmd, err := decode.FromForm[products.CreateProductCommand](values)
	if err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	if kind, kerr := products.ParseKind(cmd.Kind); kerr == nil {
		serializer, _ := products.SerializerFor(kind)
		cmd.Attributes = attributesFromForm(form, serializer, verr)
	}

	if _, err := cmd.Validate(); err != nil && !mergeValidation(verr, err) {
		e.rend.Fail(w, r, http.StatusInternalServerError, err)
		return
	}

	renderInvalid := func(verr *validation.Error) {
		e.renderForm(w, r, http.StatusBadRequest, modeAdd, cmd.Kind, nil, form, verr)
	}

	if verr.HasErrors() {
		if Negotiate(r) {
			handlers.RespondJSON(w, http.StatusBadRequest, verr)
			return
		}
		renderInvalid(verr)
		return
	}

	result, err := e.sys.Create(r.Context(), cmd)
	if err != nil {
		e.formFailure(w, r, renderInvalid, err)
		return
	}

	if Negotiate(r) {
		handlers.RespondJSON(w, http.StatusCreated, result)
		return
	}
	http.Redirect(w, r, e.rend.BasePath()+e.Prefix(), http.StatusSeeOther)
}

func (e *productsEntity) Change(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	product, err := e.sys.Find(r.Context(), id)
	if err != nil {
		e.rend.Fail(w, r, products.MapHTTPStatus(err), err)
		return
	}

	if Negotiate(r) {
		handlers.RespondJSON(w, http.StatusOK, product)
		return
	}

	e.renderForm(w, r, http.StatusOK, modeChange, string(product.Kind), product, productFormValues(product), nil)
}

func (e *productsEntity) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	current, err := e.sys.Find(r.Context(), id)
	if err != nil {
		e.rend.Fail(w, r, products.MapHTTPStatus(err), err)
		return
	}

	if err := r.ParseForm(); err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}
	form := r.PostForm

	verr := validation.NewError()
	values := productCommandValues(form, verr)

	cmd, err := decode.FromForm[products.UpdateProductCommand](values, "active")
	if err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	serializer, _ := products.SerializerFor(current.Kind)
	cmd.Attributes = attributesFromForm(form, serializer, verr)

	if _, err := cmd.Validate(current.Kind); err != nil && !mergeValidation(verr, err) {
		e.rend.Fail(w, r, http.StatusInternalServerError, err)
		return
	}

	renderInvalid := func(verr *validation.Error) {
		e.renderForm(w, r, http.StatusBadRequest, modeChange, string(current.Kind), current, form, verr)
	}

	if verr.HasErrors() {
		if Negotiate(r) {
			handlers.RespondJSON(w, http.StatusBadRequest, verr)
			return
		}
		renderInvalid(verr)
		return
	}

	result, err := e.sys.Update(r.Context(), id, cmd)
	if err != nil {
		e.formFailure(w, r, renderInvalid, err)
		return
	}

	if Negotiate(r) {
		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, e.rend.BasePath()+e.Prefix(), http.StatusSeeOther)
}

// Datasheets renders the datasheets attached to one product.
func (e *productsEntity) Datasheets(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	product, err := e.sys.Find(r.Context(), id)
	if err != nil {
		e.rend.Fail(w, r, products.MapHTTPStatus(err), err)
		return
	}

	sheets, err := e.datasheets.ListForProduct(r.Context(), id)
	if err != nil {
		e.rend.Fail(w, r, http.StatusInternalServerError, err)
		return
	}

	if Negotiate(r) {
		handlers.RespondJSON(w, http.StatusOK, sheets)
		return
	}

	columns := []Column{
		{Name: "file_name", Label: "File"},
		{Name: "content_type", Label: "Type"},
		{Name: "size", Label: "Size"},
		{Name: "pages", Label: "Pages"},
		{Name: "uploaded_at", Label: "Uploaded"},
	}

	base := e.rend.BasePath() + e.Prefix()
	pg := pageFrom(r)
	pg.Breadcrumbs = []Crumb{
		{Label: "Dashboard", URL: e.rend.BasePath() + "/"},
		{Label: "Products", URL: base},
		{Label: product.Name, URL: base + "/" + product.ID.String() + "/change"},
		{Label: "Datasheets"},
	}

	e.rend.HTML(w, http.StatusOK, "list.html", "Datasheets", listPage{
		Page:     pg,
		Singular: "datasheet",
		Plural:   "datasheets",
		Columns:  columns,
		Rows: buildRows(columns, sheets, "",
			func(d datasheets.Datasheet) string { return d.ID.String() },
			datasheetCells),
		Total:   len(sheets),
		ListURL: base,
	})
}

func datasheetCells(d datasheets.Datasheet) []string {
	var pages string
	if d.PageCount != nil {
		pages = strconv.Itoa(*d.PageCount)
	}
	return []string{
		d.Filename,
		d.ContentType,
		units.HumanSize(float64(d.SizeBytes)),
		pages,
		d.UploadedAt.Format("2006-01-02 15:04"),
	}
}

// renderForm renders the product form in either mode: blank or bound
// fields from values, inline errors from verr.
func (e *productsEntity) renderForm(w http.ResponseWriter, r *http.Request, status int, mode formMode, kind string, record *products.Product, values url.Values, verr *validation.Error) {
	cats, err := e.categoryList(r.Context())
	if err != nil {
		e.rend.Fail(w, r, http.StatusInternalServerError, err)
		return
	}

	principal, _ := auth.PrincipalFrom(r.Context())
	base := e.rend.BasePath() + e.Prefix()
	fields := e.fields(kind, values, verr, mode == modeChange, cats)

	fp := formPage{
		Page:       pageFrom(r),
		Singular:   "product",
		Plural:     "products",
		CancelURL:  base,
		Fields:     fields,
		FormErrors: formLevelErrors(verr, fields),
		CanSubmit:  true,
	}

	var title string
	switch mode {
	case modeAdd:
		title = "Add product"
		fp.Action = base + "/add"
		fp.KindOptions = e.kindOptions(kind, base)
		fp.Breadcrumbs = []Crumb{
			{Label: "Dashboard", URL: e.rend.BasePath() + "/"},
			{Label: "Products", URL: base},
			{Label: "Add"},
		}
	case modeChange:
		title = record.Name
		change := base + "/" + record.ID.String()
		fp.Action = change + "/change"
		fp.CanSubmit = principal.Can(auth.Codename(auth.ActionChange, "product"))
		fp.ExtraLinks = []extraLink{
			{Label: "Datasheets", URL: change + "/datasheets"},
		}
		fp.Breadcrumbs = []Crumb{
			{Label: "Dashboard", URL: e.rend.BasePath() + "/"},
			{Label: "Products", URL: base},
			{Label: record.Name},
		}
	}

	e.rend.HTML(w, status, "form.html", title, fp)
}

// formFailure maps a mutation failure onto the form: validation errors
// re-render inline, integrity errors become form messages, anything
// else falls back to the negotiated error response.
func (e *productsEntity) formFailure(w http.ResponseWriter, r *http.Request, render func(*validation.Error), err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		if Negotiate(r) {
			handlers.RespondJSON(w, http.StatusBadRequest, verr)
			return
		}
		render(verr)
		return
	}

	if Negotiate(r) {
		handlers.RespondError(w, e.logger, products.MapHTTPStatus(err), err)
		return
	}

	switch {
	case errors.Is(err, products.ErrDuplicate):
		verr := validation.NewError()
		verr.Add("", "A product with this slug or SKU already exists.")
		render(verr)
	case errors.Is(err, products.ErrCategoryGone):
		verr := validation.NewError()
		verr.Add("category_id", "no longer exists")
		render(verr)
	default:
		e.rend.Fail(w, r, products.MapHTTPStatus(err), err)
	}
}

func (e *productsEntity) fields(kind string, values url.Values, verr *validation.Error, withActive bool, cats []categories.Category) []Field {
	fields := []Field{
		{Name: "kind", Type: "hidden", Value: kind},
		{Name: "name", Label: "Name", Type: "text", Required: true, Value: values.Get("name"), Errors: fieldErrors(verr, "name")},
		{Name: "slug", Label: "Slug", Type: "text", Value: values.Get("slug"), Errors: fieldErrors(verr, "slug")},
		{Name: "sku", Label: "SKU", Type: "text", Required: true, Value: values.Get("sku"), Errors: fieldErrors(verr, "sku")},
		{Name: "description", Label: "Description", Type: "textarea", Value: values.Get("description"), Errors: fieldErrors(verr, "description")},
		{Name: "price", Label: "Price", Type: "text", Value: values.Get("price"), Errors: fieldErrors(verr, "price")},
		{Name: "currency", Label: "Currency", Type: "text", Value: values.Get("currency"), Errors: fieldErrors(verr, "currency")},
		categoryField(values.Get("category_id"), cats, verr),
	}

	if serializer, err := products.SerializerFor(products.Kind(kind)); err == nil {
		for _, af := range serializer.AttributeFields() {
			fields = append(fields, Field{
				Name:     af.Name,
				Label:    af.Label,
				Type:     af.Type,
				Required: af.Required,
				Value:    values.Get(af.Name),
				Errors:   fieldErrors(verr, af.Name),
			})
		}
	}

	if withActive {
		fields = append(fields, Field{
			Name:    "active",
			Label:   "Active",
			Type:    "checkbox",
			Checked: values.Get("active") != "",
			Errors:  fieldErrors(verr, "active"),
		})
	}

	return fields
}

func (e *productsEntity) kindOptions(current, base string) []kindOption {
	opts := make([]kindOption, 0, len(products.Kinds()))
	for _, k := range products.Kinds() {
		opts = append(opts, kindOption{
			Label:   displayTitle(string(k)),
			URL:     base + "/add?kind=" + string(k),
			Current: string(k) == current,
		})
	}
	return opts
}

func (e *productsEntity) categoryList(ctx context.Context) ([]categories.Category, error) {
	result, err := e.categories.List(ctx, pagination.PageRequest{Limit: e.pagination.MaxLimit}, categories.Filters{})
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}

func categoryField(selected string, cats []categories.Category, verr *validation.Error) Field {
	options := make([]Option, 0, len(cats)+1)
	options = append(options, Option{Value: "", Label: "(no category)", Selected: selected == ""})
	for _, c := range cats {
		options = append(options, Option{
			Value:    c.ID.String(),
			Label:    c.Name,
			Selected: selected == c.ID.String(),
		})
	}
	return Field{
		Name:    "category_id",
		Label:   "Category",
		Type:    "select",
		Options: options,
		Errors:  fieldErrors(verr, "category_id"),
	}
}

// productFormValues binds a stored record to form inputs, flattening
// the attribute payload into its per-field inputs.
func productFormValues(p *products.Product) url.Values {
	v := url.Values{}
	v.Set("kind", string(p.Kind))
	v.Set("name", p.Name)
	v.Set("slug", p.Slug)
	v.Set("sku", p.SKU)
	if p.Description != nil {
		v.Set("description", *p.Description)
	}
	v.Set("price", p.Price.String())
	v.Set("currency", p.Currency)
	if p.CategoryID != nil {
		v.Set("category_id", p.CategoryID.String())
	}
	if p.Active {
		v.Set("active", "on")
	}

	if len(p.Attributes) > 0 {
		var attrs map[string]any
		if err := json.Unmarshal(p.Attributes, &attrs); err == nil {
			for name, value := range attrs {
				v.Set(name, attributeText(value))
			}
		}
	}
	return v
}

func attributeText(value any) string {
	switch t := value.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// productCommandValues strips cells the decoder cannot represent,
// recording field errors for them, so one bad cell fails its field
// instead of the whole decode.
func productCommandValues(form url.Values, verr *validation.Error) url.Values {
	values := url.Values{}
	for key, vals := range form {
		values[key] = vals
	}

	if price := strings.TrimSpace(values.Get("price")); price != "" {
		if _, err := decimal.NewFromString(price); err != nil {
			verr.Add("price", "must be a decimal number")
			values.Del("price")
		}
	}
	if cat := strings.TrimSpace(values.Get("category_id")); cat != "" {
		if _, err := uuid.Parse(cat); err != nil {
			verr.Add("category_id", "must be a valid category")
			values.Del("category_id")
		}
	}
	return values
}

// attributesFromForm folds the kind's attribute inputs into the JSON
// payload the serializer validates. Number inputs that do not parse
// fail their own field rather than the whole payload.
func attributesFromForm(values url.Values, serializer products.Serializer, verr *validation.Error) json.RawMessage {
	attrs := make(map[string]any)
	for _, f := range serializer.AttributeFields() {
		raw := strings.TrimSpace(values.Get(f.Name))
		if raw == "" {
			continue
		}

		if f.Type == "number" {
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
				attrs[f.Name] = n
				continue
			}
			if fl, err := strconv.ParseFloat(raw, 64); err == nil {
				attrs[f.Name] = fl
				continue
			}
			verr.Add(f.Name, "must be a number")
			continue
		}

		attrs[f.Name] = raw
	}

	if len(attrs) == 0 {
		return nil
	}
	payload, _ := json.Marshal(attrs)
	return payload
}
