// Package importer moves products in and out of the catalog as CSV:
// bulk imports upserted by SKU with per-row error reporting, and
// exports of the full catalog for offline editing.
package importer

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/JaimeStill/catalog-admin/internal/products"
	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/shopspring/decimal"
)

// Row is the CSV wire format. Cells ride as strings so a bad cell fails
// its row, not the whole file. Category references the category by slug
// and attributes carry the kind-specific JSON object.
type Row struct {
	SKU         string `csv:"sku"`
	Kind        string `csv:"kind"`
	Name        string `csv:"name"`
	Description string `csv:"description"`
	Price       string `csv:"price"`
	Currency    string `csv:"currency"`
	Active      string `csv:"active"`
	Category    string `csv:"category"`
	Attributes  string `csv:"attributes"`
}

// command converts the row into an upsert command, recording cell-level
// parse failures. Category resolution is left to the caller.
func (r Row) command() (products.CreateProductCommand, *validation.Error) {
	verr := validation.NewError()

	cmd := products.CreateProductCommand{
		Kind:     strings.TrimSpace(r.Kind),
		Name:     strings.TrimSpace(r.Name),
		SKU:      strings.TrimSpace(r.SKU),
		Currency: strings.ToUpper(strings.TrimSpace(r.Currency)),
	}

	if desc := strings.TrimSpace(r.Description); desc != "" {
		cmd.Description = &desc
	}

	if price := strings.TrimSpace(r.Price); price != "" {
		parsed, err := decimal.NewFromString(price)
		if err != nil {
			verr.Add("price", "must be a decimal number")
		} else {
			cmd.Price = parsed
		}
	}

	if attrs := strings.TrimSpace(r.Attributes); attrs != "" {
		cmd.Attributes = json.RawMessage(attrs)
	}

	if cell := strings.TrimSpace(r.Active); cell != "" {
		if _, err := strconv.ParseBool(cell); err != nil {
			verr.Add("active", "must be true or false")
		}
	}

	return cmd, verr
}

// active reports the parsed active cell. A blank or malformed cell
// reports ok false; malformed cells have already failed the row.
func (r Row) active() (value, ok bool) {
	cell := strings.TrimSpace(r.Active)
	if cell == "" {
		return false, false
	}
	active, err := strconv.ParseBool(cell)
	if err != nil {
		return false, false
	}
	return active, true
}

// RowError locates a single import failure. Line counts from the start
// of the file, so the first data row is line 2.
type RowError struct {
	Line    int    `json:"line"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Report summarizes an import run.
type Report struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors"`
}

// fail records a validation failure as one row error per field message,
// ordered by field name for stable output.
func (rep *Report) fail(line int, verr *validation.Error) {
	rep.Failed++

	fields := make([]string, 0, len(verr.Fields))
	for field := range verr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		for _, message := range verr.Fields[field] {
			rep.Errors = append(rep.Errors, RowError{Line: line, Field: field, Message: message})
		}
	}
}
