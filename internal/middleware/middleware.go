// Package middleware provides the HTTP middleware stack shared by the
// service's modules: request logging, CORS, path normalization, and
// authentication.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// System composes middleware into a single application order.
type System interface {
	// Use appends middleware to the stack. The first registered middleware
	// is the outermost wrapper.
	Use(mw Middleware)

	// Apply wraps the handler with the registered middleware stack.
	Apply(handler http.Handler) http.Handler
}

type system struct {
	stack []Middleware
}

// New creates an empty middleware system.
func New() System {
	return &system{}
}

func (s *system) Use(mw Middleware) {
	s.stack = append(s.stack, mw)
}

func (s *system) Apply(handler http.Handler) http.Handler {
	for i := len(s.stack) - 1; i >= 0; i-- {
		handler = s.stack[i](handler)
	}
	return handler
}
