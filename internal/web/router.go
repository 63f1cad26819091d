// Package web exposes the HTTP surface: the contract API, the template
// administration endpoints and the print route consumed by the headless
// rasterizer.
package web

import (
	"log"
	"net/http"
	"runtime/debug"
	"strings"
)

// HandlerWrapper wraps an http.Handler with additional logic, middleware
// style; wrappers compose by nesting.
type HandlerWrapper interface {
	Wrap(http.Handler) http.Handler
}

// WrapperFunc adapts a plain function to HandlerWrapper.
type WrapperFunc func(http.Handler) http.Handler

func (f WrapperFunc) Wrap(h http.Handler) http.Handler { return f(h) }

// Router registers method-qualified patterns on a ServeMux, applying
// wrappers innermost-last.
type Router struct {
	*http.ServeMux
	wrappers []HandlerWrapper
}

// NewRouter creates a router with the given global wrappers.
func NewRouter(wrappers ...HandlerWrapper) *Router {
	return &Router{ServeMux: http.NewServeMux(), wrappers: wrappers}
}

// Handle registers a "<METHOD> <path>" pattern.
func (r *Router) Handle(pattern string, handler http.Handler, wrappers ...HandlerWrapper) {
	if strings.Contains(pattern, "//") {
		log.Fatalf("[ERROR] can't register route pattern %s", pattern)
	}
	wrapped := handler
	for i := len(wrappers) - 1; i >= 0; i-- {
		wrapped = wrappers[i].Wrap(wrapped)
	}
	for i := len(r.wrappers) - 1; i >= 0; i-- {
		wrapped = r.wrappers[i].Wrap(wrapped)
	}
	r.ServeMux.Handle(pattern, wrapped)
}

// HandleFunc registers a handler function under a pattern.
func (r *Router) HandleFunc(pattern string, fn func(http.ResponseWriter, *http.Request), wrappers ...HandlerWrapper) {
	r.Handle(pattern, http.HandlerFunc(fn), wrappers...)
}

// Recover converts handler panics into logged 500 responses.
func Recover(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[PANIC] recovered: %v\n%s", rec, debug.Stack())
				WriteErrorJSON(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		inner.ServeHTTP(w, r)
	})
}
