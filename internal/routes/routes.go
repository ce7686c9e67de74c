// Package routes maps request paths to preview pages.
package routes

import (
	"sort"

	"github.com/floatplane/mitsuqtt-preview/internal/templates"
)

// Kind is what a resolved path asks the server to do.
type Kind int

const (
	KindNotFound Kind = iota
	KindStatic
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindRender:
		return "render"
	default:
		return "not found"
	}
}

// Action is the outcome of resolving a path.
type Action struct {
	Kind    Kind
	View    string            // KindRender
	Context templates.Context // KindRender
	File    string            // KindStatic, relative to the statics directory
}

// Route is one entry of the table. Exactly one of View or File is set.
type Route struct {
	Path    string
	View    string
	File    string
	Context func() templates.Context
}

// Table resolves exact request paths. It is built once and never modified.
type Table struct {
	routes map[string]Route
}

// NewTable builds a table from routes. A later route with the same path
// replaces an earlier one.
func NewTable(routes []Route) *Table {
	t := &Table{routes: make(map[string]Route, len(routes))}
	for _, r := range routes {
		t.routes[r.Path] = r
	}
	return t
}

// Resolve looks path up verbatim: case-sensitive, no trailing-slash folding,
// no patterns.
func (t *Table) Resolve(path string) Action {
	r, ok := t.routes[path]
	if !ok {
		return Action{Kind: KindNotFound}
	}
	if r.File != "" {
		return Action{Kind: KindStatic, File: r.File}
	}
	ctx := templates.Context{}
	if r.Context != nil {
		ctx = r.Context()
	}
	return Action{Kind: KindRender, View: r.View, Context: ctx}
}

// Paths returns every registered path in sorted order.
func (t *Table) Paths() []string {
	paths := make([]string, 0, len(t.routes))
	for p := range t.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}
