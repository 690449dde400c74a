package openapi

import (
	"encoding/json"
	"net/http"
	"os"
)

// NewSpec creates a Spec with the given title and version and empty paths
// and components.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI: "3.1.0",
		Info: &Info{
			Title:   title,
			Version: version,
		},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

// SetDescription sets the API description.
func (s *Spec) SetDescription(description string) {
	s.Info.Description = description
}

// AddServer appends a server URL to the spec.
func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddOperation registers an operation under the given path and HTTP method.
// The path item is created on first use; unknown methods are ignored.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	if op == nil {
		return
	}

	item := s.Paths[path]
	if item == nil {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// MarshalJSON serializes the spec as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// WriteJSON serializes the spec and writes it to the given file path.
func WriteJSON(spec *Spec, path string) error {
	data, err := MarshalJSON(spec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ServeSpec returns a handler that serves pre-marshaled spec bytes as JSON.
func ServeSpec(data []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// DefaultResponses returns the reusable error responses referenced across
// operation tables.
func DefaultResponses() map[string]*Response {
	return map[string]*Response{
		"BadRequest":   {Description: "Malformed request or validation failure", Content: errorContent()},
		"Unauthorized": {Description: "Missing or invalid credentials", Content: errorContent()},
		"Forbidden":    {Description: "Insufficient permissions", Content: errorContent()},
		"NotFound":     {Description: "Resource not found", Content: errorContent()},
		"Conflict":     {Description: "Resource conflict", Content: errorContent()},
	}
}

func errorContent() map[string]*MediaType {
	return map[string]*MediaType{
		"application/json": {
			Schema: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string"},
				},
			},
		},
	}
}
