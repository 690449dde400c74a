package dashboard

import (
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/JaimeStill/catalog-admin/internal/auth"
	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/JaimeStill/catalog-admin/pkg/pagination"
)

// Page carries the fields every dashboard view renders: the signed-in
// principal for the user bar and the breadcrumb trail.
type Page struct {
	User        *auth.Principal
	Breadcrumbs []Crumb
}

// Crumb is one breadcrumb. The current page carries no URL.
type Crumb struct {
	Label string
	URL   string
}

// pageFrom builds the shared view fields from the request context.
func pageFrom(r *http.Request) Page {
	principal, _ := auth.PrincipalFrom(r.Context())
	return Page{User: principal}
}

type rootPage struct {
	Page
	Cards []entityCard
}

type entityCard struct {
	Label  string `json:"label"`
	URL    string `json:"url"`
	Count  int    `json:"count"`
	CanAdd bool   `json:"can_add"`
	AddURL string `json:"add_url,omitempty"`
}

type listPage struct {
	Page
	Singular     string
	Plural       string
	Columns      []Column
	Rows         []TableRow
	Total        int
	Search       string
	ShowControls bool
	CanAdd       bool
	ListURL      string
	AddURL       string
	PrevURL      string
	NextURL      string
}

// Cell is one rendered table cell. A non-empty Href wraps the value in
// a link.
type Cell struct {
	Value string
	Href  string
}

type TableRow struct {
	Cells []Cell
}

// buildRows aligns record display values with the entity's columns,
// linking flagged columns to the record's change form.
func buildRows[T any](columns []Column, items []T, changeBase string, id func(T) string, cells func(T) []string) []TableRow {
	rows := make([]TableRow, 0, len(items))
	for _, item := range items {
		values := cells(item)
		row := TableRow{Cells: make([]Cell, 0, len(columns))}
		for i, col := range columns {
			var value string
			if i < len(values) {
				value = values[i]
			}
			cell := Cell{Value: value}
			if col.Link && changeBase != "" {
				cell.Href = changeBase + "/" + id(item) + "/change"
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// pageNavURLs derives the previous/next links for a list view,
// preserving the limit and search terms. Empty strings hide the
// controls.
func pageNavURLs[T any](result *pagination.PageResult[T], listURL, search string) (prev, next string) {
	if result.HasPrev() {
		prev = listNavURL(listURL, result.Limit, result.PrevOffset(), search)
	}
	if result.HasNext() {
		next = listNavURL(listURL, result.Limit, result.NextOffset(), search)
	}
	return prev, next
}

func listNavURL(base string, limit, offset int, search string) string {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("offset", strconv.Itoa(offset))
	if search != "" {
		v.Set("search", search)
	}
	return base + "?" + v.Encode()
}

type formPage struct {
	Page
	Singular    string
	Plural      string
	Action      string
	CancelURL   string
	Fields      []Field
	FormErrors  []string
	KindOptions []kindOption
	ExtraLinks  []extraLink
	CanSubmit   bool
}

// Field is one form input, bound to its submitted or stored value and
// any validation errors. The JSON shape backs negotiated form views.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Value    string   `json:"value,omitempty"`
	Checked  bool     `json:"checked,omitempty"`
	Required bool     `json:"required,omitempty"`
	Options  []Option `json:"options,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// kindOption is one entry in the product add view's kind selector.
type kindOption struct {
	Label   string
	URL     string
	Current bool
}

type extraLink struct {
	Label string
	URL   string
}

type loginPage struct {
	Page
	Next  string
	Email string
	Error string
}

type errorPage struct {
	Page
	Heading string
	Message string
}

// fieldErrors pulls the messages for one field out of a validation
// error.
func fieldErrors(verr *validation.Error, name string) []string {
	if verr == nil {
		return nil
	}
	return verr.Fields[name]
}

// formLevelErrors collects messages for fields the form does not
// render, so no failure is silently dropped.
func formLevelErrors(verr *validation.Error, fields []Field) []string {
	if verr == nil {
		return nil
	}

	rendered := make(map[string]bool, len(fields))
	for _, f := range fields {
		rendered[f.Name] = true
	}

	names := make([]string, 0, len(verr.Fields))
	for name := range verr.Fields {
		if !rendered[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var messages []string
	for _, name := range names {
		for _, msg := range verr.Fields[name] {
			if name == "" {
				messages = append(messages, msg)
			} else {
				messages = append(messages, name+" "+msg)
			}
		}
	}
	return messages
}

// displayTitle capitalizes a display name for headings.
func displayTitle(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

type formMode string

const (
	modeAdd    formMode = "add"
	modeChange formMode = "change"
)

// mergeValidation folds a validation failure into verr, skipping fields
// the form pass already rejected so one bad input reports once. Other
// errors pass through untouched and the caller handles them.
func mergeValidation(verr *validation.Error, err error) bool {
	var v *validation.Error
	if !errors.As(err, &v) {
		return false
	}
	for field, messages := range v.Fields {
		if len(verr.Fields[field]) > 0 {
			continue
		}
		for _, message := range messages {
			verr.Add(field, message)
		}
	}
	return true
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
