package products

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/JaimeStill/catalog-admin/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PhysicalAttributes describe a shippable product.
type PhysicalAttributes struct {
	WeightGrams int `json:"weight_grams" validate:"required,gt=0"`
	WidthMM     int `json:"width_mm,omitempty" validate:"omitempty,gt=0"`
	HeightMM    int `json:"height_mm,omitempty" validate:"omitempty,gt=0"`
	DepthMM     int `json:"depth_mm,omitempty" validate:"omitempty,gt=0"`
}

// DigitalAttributes describe a downloadable product.
type DigitalAttributes struct {
	FileFormat        string `json:"file_format" validate:"required,min=2,max=16"`
	DownloadSizeBytes int64  `json:"download_size_bytes,omitempty" validate:"omitempty,gte=0"`
}

// AttributeField describes one kind-specific form input for the
// dashboard's add and change views.
type AttributeField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Serializer validates and normalizes the kind-specific attribute payload
// of a product and describes its form fields.
type Serializer interface {
	Kind() Kind

	// ValidateAttributes parses the raw payload, records field errors,
	// and returns the normalized JSON to store. Unknown fields are
	// dropped during normalization.
	ValidateAttributes(raw json.RawMessage, verr *validation.Error) json.RawMessage

	// AttributeFields lists the attribute inputs in display order.
	AttributeFields() []AttributeField
}

// SerializerFor returns the serializer for a kind.
func SerializerFor(kind Kind) (Serializer, error) {
	switch kind {
	case KindPhysical:
		return physicalSerializer{}, nil
	case KindDigital:
		return digitalSerializer{}, nil
	default:
		return nil, ErrUnknownKind
	}
}

type physicalSerializer struct{}

func (physicalSerializer) Kind() Kind { return KindPhysical }

func (physicalSerializer) ValidateAttributes(raw json.RawMessage, verr *validation.Error) json.RawMessage {
	var attrs PhysicalAttributes
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &attrs); err != nil {
			verr.Add("attributes", "must be a JSON object")
			return nil
		}
	}

	verr.Merge(validation.Struct(attrs))
	if verr.HasErrors() {
		return nil
	}

	normalized, _ := json.Marshal(attrs)
	return normalized
}

func (physicalSerializer) AttributeFields() []AttributeField {
	return []AttributeField{
		{Name: "weight_grams", Label: "Weight (g)", Type: "number", Required: true},
		{Name: "width_mm", Label: "Width (mm)", Type: "number"},
		{Name: "height_mm", Label: "Height (mm)", Type: "number"},
		{Name: "depth_mm", Label: "Depth (mm)", Type: "number"},
	}
}

type digitalSerializer struct{}

func (digitalSerializer) Kind() Kind { return KindDigital }

func (digitalSerializer) ValidateAttributes(raw json.RawMessage, verr *validation.Error) json.RawMessage {
	var attrs DigitalAttributes
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &attrs); err != nil {
			verr.Add("attributes", "must be a JSON object")
			return nil
		}
	}

	verr.Merge(validation.Struct(attrs))
	if verr.HasErrors() {
		return nil
	}

	normalized, _ := json.Marshal(attrs)
	return normalized
}

func (digitalSerializer) AttributeFields() []AttributeField {
	return []AttributeField{
		{Name: "file_format", Label: "File format", Type: "text", Required: true},
		{Name: "download_size_bytes", Label: "Download size (bytes)", Type: "number"},
	}
}

// CreateProductCommand contains the data needed to create a product.
// A blank slug is derived from the name; currency defaults to USD.
type CreateProductCommand struct {
	Kind        string          `json:"kind" validate:"required"`
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Slug        string          `json:"slug,omitempty" validate:"omitempty,slug,max=220"`
	SKU         string          `json:"sku" validate:"required,min=2,max=64"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty" validate:"omitempty,iso4217"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
}

// Validate checks the command and returns the normalized attribute
// payload for its kind.
func (c CreateProductCommand) Validate() (json.RawMessage, error) {
	verr := validation.NewError()
	verr.Merge(validation.Struct(c))

	if c.Price.IsNegative() {
		verr.Add("price", "must not be negative")
	}

	var attrs json.RawMessage
	if c.Kind != "" {
		kind, err := ParseKind(c.Kind)
		if err != nil {
			verr.Add("kind", "must be one of: physical, digital")
		} else {
			serializer, _ := SerializerFor(kind)
			attrs = serializer.ValidateAttributes(c.Attributes, verr)
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return attrs, nil
}

// UpdateProductCommand contains the data needed to update a product. Kind
// is carried for form round-trips but must match the stored record.
type UpdateProductCommand struct {
	Kind        string          `json:"kind,omitempty"`
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Slug        string          `json:"slug" validate:"required,slug,max=220"`
	SKU         string          `json:"sku" validate:"required,min=2,max=64"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty" validate:"omitempty,iso4217"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
	Active      bool            `json:"active,omitempty"`
}

// Validate checks the command against the stored kind and returns the
// normalized attribute payload. A command kind that differs from the
// stored kind is a field error: kind is immutable after creation.
func (c UpdateProductCommand) Validate(kind Kind) (json.RawMessage, error) {
	verr := validation.NewError()
	verr.Merge(validation.Struct(c))

	if c.Price.IsNegative() {
		verr.Add("price", "must not be negative")
	}

	if c.Kind != "" && Kind(c.Kind) != kind {
		verr.Add("kind", "cannot be changed")
	}

	serializer, err := SerializerFor(kind)
	if err != nil {
		return nil, err
	}
	attrs := serializer.ValidateAttributes(c.Attributes, verr)

	if verr.HasErrors() {
		return nil, verr
	}
	return attrs, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a display name.
func slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
