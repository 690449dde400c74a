package importer

import (
	"testing"

	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/shopspring/decimal"
)

func TestRowCommand(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		row := Row{
			SKU:         " WID-001 ",
			Kind:        "physical",
			Name:        " Widget ",
			Description: "A fine widget",
			Price:       "19.99",
			Currency:    "usd",
			Attributes:  `{"weight_grams":250}`,
		}

		cmd, verr := row.command()
		if verr.HasErrors() {
			t.Fatalf("command() errors = %v, want none", verr.Fields)
		}
		if cmd.SKU != "WID-001" {
			t.Errorf("SKU = %q, want %q", cmd.SKU, "WID-001")
		}
		if cmd.Name != "Widget" {
			t.Errorf("Name = %q, want %q", cmd.Name, "Widget")
		}
		if cmd.Currency != "USD" {
			t.Errorf("Currency = %q, want %q", cmd.Currency, "USD")
		}
		if cmd.Description == nil || *cmd.Description != "A fine widget" {
			t.Errorf("Description = %v, want A fine widget", cmd.Description)
		}
		if !cmd.Price.Equal(decimal.RequireFromString("19.99")) {
			t.Errorf("Price = %s, want 19.99", cmd.Price)
		}
		if string(cmd.Attributes) != `{"weight_grams":250}` {
			t.Errorf("Attributes = %s", cmd.Attributes)
		}
	})

	t.Run("blank description stays nil", func(t *testing.T) {
		cmd, _ := Row{SKU: "WID-001", Kind: "physical", Name: "Widget", Description: "  "}.command()
		if cmd.Description != nil {
			t.Errorf("Description = %q, want nil", *cmd.Description)
		}
	})

	t.Run("malformed price", func(t *testing.T) {
		_, verr := Row{SKU: "WID-001", Price: "nineteen"}.command()
		assertRowError(t, verr, "price", "must be a decimal number")
	})

	t.Run("malformed active", func(t *testing.T) {
		_, verr := Row{SKU: "WID-001", Active: "maybe"}.command()
		assertRowError(t, verr, "active", "must be true or false")
	})

	t.Run("blank price keeps zero", func(t *testing.T) {
		cmd, verr := Row{SKU: "WID-001", Price: ""}.command()
		if verr.HasErrors() {
			t.Fatalf("command() errors = %v, want none", verr.Fields)
		}
		if !cmd.Price.IsZero() {
			t.Errorf("Price = %s, want 0", cmd.Price)
		}
	})
}

func TestRowActive(t *testing.T) {
	tests := []struct {
		name      string
		cell      string
		wantValue bool
		wantOK    bool
	}{
		{name: "blank", cell: ""},
		{name: "true", cell: "true", wantValue: true, wantOK: true},
		{name: "false", cell: "false", wantValue: false, wantOK: true},
		{name: "numeric true", cell: "1", wantValue: true, wantOK: true},
		{name: "padded", cell: " true ", wantValue: true, wantOK: true},
		{name: "malformed", cell: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := Row{Active: tt.cell}.active()
			if value != tt.wantValue || ok != tt.wantOK {
				t.Errorf("active() = (%t, %t), want (%t, %t)", value, ok, tt.wantValue, tt.wantOK)
			}
		})
	}
}

func TestReportFail(t *testing.T) {
	verr := validation.NewError()
	verr.Add("price", "must be a decimal number")
	verr.Add("active", "must be true or false")
	verr.Add("active", "second message")

	report := &Report{Errors: []RowError{}}
	report.fail(4, verr)

	if report.Failed != 1 {
		t.Errorf("Failed = %d, want 1", report.Failed)
	}

	want := []RowError{
		{Line: 4, Field: "active", Message: "must be true or false"},
		{Line: 4, Field: "active", Message: "second message"},
		{Line: 4, Field: "price", Message: "must be a decimal number"},
	}
	if len(report.Errors) != len(want) {
		t.Fatalf("len(Errors) = %d, want %d: %v", len(report.Errors), len(want), report.Errors)
	}
	for i, e := range report.Errors {
		if e != want[i] {
			t.Errorf("Errors[%d] = %+v, want %+v", i, e, want[i])
		}
	}
}

func assertRowError(t *testing.T, verr *validation.Error, field, message string) {
	t.Helper()
	messages, ok := verr.Fields[field]
	if !ok {
		t.Fatalf("Fields missing %q: %v", field, verr.Fields)
	}
	for _, m := range messages {
		if m == message {
			return
		}
	}
	t.Errorf("Fields[%q] = %v, want %q", field, messages, message)
}
