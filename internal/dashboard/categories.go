package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/categories"
	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/JaimeStill/catalog-admin/pkg/decode"
	"github.com/JaimeStill/catalog-admin/pkg/handlers"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
	"github.com/google/uuid"
)

type categoriesEntity struct {
	rend       *Renderer
	sys        categories.System
	pagination pagination.Config
	logger     *slog.Logger
}

// NewCategoriesEntity adapts the category system to the dashboard.
func NewCategoriesEntity(rend *Renderer, sys categories.System, pagination pagination.Config, logger *slog.Logger) Entity {
	return &categoriesEntity{
		rend:       rend,
		sys:        sys,
		pagination: pagination,
		logger:     logger,
	}
}

func (e *categoriesEntity) Prefix() string { return "/categories" }

func (e *categoriesEntity) Names() (string, string) { return "category", "categories" }

func (e *categoriesEntity) Columns() []Column {
	return []Column{
		{Name: "name", Label: "Name", Link: true},
		{Name: "slug", Label: "Slug"},
		{Name: "position", Label: "Position"},
		{Name: "active", Label: "Active"},
	}
}

func (e *categoriesEntity) Count(ctx context.Context) (int, error) {
	result, err := e.sys.List(ctx, pagination.PageRequest{Limit: 1}, categories.Filters{})
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

func (e *categoriesEntity) Extra() []EntityRoute { return nil }

func (e *categoriesEntity) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), e.pagination)
	filters := categories.FiltersFromQuery(r.URL.Query())

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
		{Label: "Categories"},
	}

	e.rend.HTML(w, http.StatusOK, "list.html", "Categories", listPage{
		Page:     pg,
		Singular: "category",
		Plural:   "categories",
		Columns:  e.Columns(),
		Rows: buildRows(e.Columns(), result.Data, base,
			func(c categories.Category) string { return c.ID.String() },
			categoryCells),
		Total:        result.Total,
		Search:       search,
		ShowControls: true,
		CanAdd:       principal.Can(auth.Codename(auth.ActionAdd, "category")),
		ListURL:      base,
		AddURL:       base + "/add",
		PrevURL:      prev,
		NextURL:      next,
	})
}

func categoryCells(c categories.Category) []string {
	return []string{
		c.Name,
		c.Slug,
		strconv.Itoa(c.Position),
		activeLabel(c.Active),
	}
}

func (e *categoriesEntity) New(w http.ResponseWriter, r *http.Request) {
	if Negotiate(r) {
		handlers.RespondJSON(w, http.StatusOK, map[string]any{
			"fields": e.fields(url.Values{}, nil, false),
		})
		return
	}
	e.renderForm(w, r, http.StatusOK, modeAdd, nil, url.Values{}, nil)
}

func (e *categoriesEntity) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}
	form := r.PostForm

	verr := validation.NewError()
	values := categoryCommandValues(form, verr)

	cmd, err := decode.FromForm[categories.CreateCategoryCommand](values, "position")
	if err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	if err := cmd.Validate(); err != nil && !mergeValidation(verr, err) {
		e.rend.Fail(w, r, http.StatusInternalServerError, err)
		return
	}

	renderInvalid := func(verr *validation.Error) {
		e.renderForm(w, r, http.StatusBadRequest, modeAdd, nil, form, verr)
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

func (e *categoriesEntity) Change(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	category, err := e.sys.Find(r.Context(), id)
	if err != nil {
		e.rend.Fail(w, r, categories.MapHTTPStatus(err), err)
		return
	}

	if Negotiate(r) {
		handlers.RespondJSON(w, http.StatusOK, category)
		return
	}

	e.renderForm(w, r, http.StatusOK, modeChange, category, categoryFormValues(category), nil)
}

func (e *categoriesEntity) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	current, err := e.sys.Find(r.Context(), id)
	if err != nil {
		e.rend.Fail(w, r, categories.MapHTTPStatus(err), err)
		return
	}

	if err := r.ParseForm(); err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}
	form := r.PostForm

	verr := validation.NewError()
	values := categoryCommandValues(form, verr)

	cmd, err := decode.FromForm[categories.UpdateCategoryCommand](values, "position", "active")
	if err != nil {
		e.rend.Fail(w, r, http.StatusBadRequest, err)
		return
	}

	if err := cmd.Validate(); err != nil && !mergeValidation(verr, err) {
		e.rend.Fail(w, r, http.StatusInternalServerError, err)
		return
	}

	renderInvalid := func(verr *validation.Error) {
		e.renderForm(w, r, http.StatusBadRequest, modeChange, current, form, verr)
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

func (e *categoriesEntity) renderForm(w http.ResponseWriter, r *http.Request, status int, mode formMode, record *categories.Category, values url.Values, verr *validation.Error) {
	principal, _ := auth.PrincipalFrom(r.Context())
	base := e.rend.BasePath() + e.Prefix()
	fields := e.fields(values, verr, mode == modeChange)

	fp := formPage{
		Page:       pageFrom(r),
		Singular:   "category",
		Plural:     "categories",
		CancelURL:  base,
		Fields:     fields,
		FormErrors: formLevelErrors(verr, fields),
		CanSubmit:  true,
	}

	var title string
	switch mode {
	case modeAdd:
		title = "Add category"
		fp.Action = base + "/add"
		fp.Breadcrumbs = []Crumb{
			{Label: "Dashboard", URL: e.rend.BasePath() + "/"},
			{Label: "Categories", URL: base},
			{Label: "Add"},
		}
	case modeChange:
		title = record.Name
		fp.Action = base + "/" + record.ID.String() + "/change"
		fp.CanSubmit = principal.Can(auth.Codename(auth.ActionChange, "category"))
		fp.Breadcrumbs = []Crumb{
			{Label: "Dashboard", URL: e.rend.BasePath() + "/"},
			{Label: "Categories", URL: base},
			{Label: record.Name},
		}
	}

	e.rend.HTML(w, status, "form.html", title, fp)
}

func (e *categoriesEntity) formFailure(w http.ResponseWriter, r *http.Request, render func(*validation.Error), err error) {
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
		handlers.RespondError(w, e.logger, categories.MapHTTPStatus(err), err)
		return
	}

	if errors.Is(err, categories.ErrDuplicate) {
		verr := validation.NewError()
		verr.Add("", "A category with this slug already exists.")
		render(verr)
		return
	}

	e.rend.Fail(w, r, categories.MapHTTPStatus(err), err)
}

func (e *categoriesEntity) fields(values url.Values, verr *validation.Error, withActive bool) []Field {
	fields := []Field{
		{Name: "name", Label: "Name", Type: "text", Required: true, Value: values.Get("name"), Errors: fieldErrors(verr, "name")},
		{Name: "slug", Label: "Slug", Type: "text", Value: values.Get("slug"), Errors: fieldErrors(verr, "slug")},
		{Name: "description", Label: "Description", Type: "textarea", Value: values.Get("description"), Errors: fieldErrors(verr, "description")},
		{Name: "position", Label: "Position", Type: "number", Value: values.Get("position"), Errors: fieldErrors(verr, "position")},
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

func categoryFormValues(c *categories.Category) url.Values {
	v := url.Values{}
	v.Set("name", c.Name)
	v.Set("slug", c.Slug)
	if c.Description != nil {
		v.Set("description", *c.Description)
	}
	v.Set("position", strconv.Itoa(c.Position))
	if c.Active {
		v.Set("active", "on")
	}
	return v
}

// categoryCommandValues strips cells the decoder cannot represent,
// recording field errors for them.
func categoryCommandValues(form url.Values, verr *validation.Error) url.Values {
	values := url.Values{}
	for key, vals := range form {
		values[key] = vals
	}

	if position := strings.TrimSpace(values.Get("position")); position != "" {
		if _, err := strconv.Atoi(position); err != nil {
			verr.Add("position", "must be a whole number")
			values.Del("position")
		}
	}
	return values
}
