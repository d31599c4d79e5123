// Package middleware provides HTTP middleware chaining for the service:
// request logging, CORS, and path canonicalization.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// System collects middleware and applies them to a handler. The first
// middleware registered with Use becomes the outermost wrapper.
type System interface {
	Use(m Middleware)
	Apply(handler http.Handler) http.Handler
}

type chain struct {
	stack []Middleware
}

// New creates an empty middleware system.
func New() System {
	return &chain{stack: []Middleware{}}
}

// Use appends middleware to the chain.
func (c *chain) Use(m Middleware) {
	c.stack = append(c.stack, m)
}

// Apply wraps the handler with every registered middleware, innermost last.
func (c *chain) Apply(handler http.Handler) http.Handler {
	for i := len(c.stack) - 1; i >= 0; i-- {
		handler = c.stack[i](handler)
	}
	return handler
}
