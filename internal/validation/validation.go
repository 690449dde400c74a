// Package validation runs struct tag validation over command payloads and
// converts failures into a field error map suitable for JSON responses and
// form re-rendering.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so errors line up with payloads
	// and form inputs.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return v
}

// Error carries validation failures keyed by field name. Each field can
// accumulate multiple messages.
type Error struct {
	Fields map[string][]string `json:"fields"`
}

// NewError creates an empty validation error.
func NewError() *Error {
	return &Error{Fields: make(map[string][]string)}
}

func (e *Error) Error() string {
	return "validation failed"
}

// Add appends a message for the named field.
func (e *Error) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Merge folds another error's fields into this one.
func (e *Error) Merge(other *Error) {
	if other == nil {
		return
	}
	for field, messages := range other.Fields {
		for _, message := range messages {
			e.Add(field, message)
		}
	}
}

// HasErrors reports whether any field failed.
func (e *Error) HasErrors() bool {
	return len(e.Fields) > 0
}

// Struct validates v against its struct tags. Returns nil when valid,
// otherwise an *Error with human-readable per-field messages.
func Struct(v any) *Error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	result := NewError()

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		result.Add("", err.Error())
		return result
	}

	for _, f := range failures {
		result.Add(f.Field(), message(f))
	}

	return result
}

func message(f validator.FieldError) string {
	switch f.Tag() {
	case "required":
		return "is required"
	case "min":
		if f.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", f.Param())
		}
		return fmt.Sprintf("must be at least %s", f.Param())
	case "max":
		if f.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", f.Param())
		}
		return fmt.Sprintf("must not exceed %s", f.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", f.Param())
	case "email":
		return "must be a valid email address"
	case "slug":
		return "must contain only lowercase letters, numbers, and hyphens"
	case "iso4217":
		return "must be a valid ISO 4217 currency code"
	case "gt":
		return fmt.Sprintf("must be greater than %s", f.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", f.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		if f.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", f.Tag(), f.Param())
		}
		return fmt.Sprintf("failed %s validation", f.Tag())
	}
}
