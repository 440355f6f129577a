// Package routes declares HTTP routes as nested prefix groups and registers
// them on a ServeMux.
package routes

import (
	"iter"
	"net/http"
)

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group collects routes under a shared prefix. Children inherit the prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// All yields every route in the group and its children as a full ServeMux
// pattern such as "GET /samples/{id}".
func (g Group) All() iter.Seq2[string, http.HandlerFunc] {
	return func(yield func(string, http.HandlerFunc) bool) {
		g.walk("", yield)
	}
}

func (g Group) walk(parent string, yield func(string, http.HandlerFunc) bool) bool {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		if !yield(r.Method+" "+prefix+r.Pattern, r.Handler) {
			return false
		}
	}
	for _, child := range g.Children {
		if !child.walk(prefix, yield) {
			return false
		}
	}
	return true
}

// Register adds every route of groups to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		for pattern, handler := range g.All() {
			mux.HandleFunc(pattern, handler)
		}
	}
}
