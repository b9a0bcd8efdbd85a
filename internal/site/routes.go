package site

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateRoute is returned when a table is built with the same path twice.
	ErrDuplicateRoute = errors.New("duplicate route")
	// ErrInvalidRoute is returned for paths that are not in normalized form.
	ErrInvalidRoute = errors.New("route path is not normalized")
)

// Route binds a normalized path to the page rendered for it.
type Route struct {
	Path string
	Page *Page
}

// Table is an immutable route table. It has no mutation API; build a new one instead.
type Table struct {
	routes   []Route
	index    map[string]*Page
	notFound *Page
}

// NewTable builds a table from routes in declaration order.
// notFound is rendered for every path the table does not know.
func NewTable(notFound *Page, routes ...Route) (*Table, error) {
	if notFound == nil {
		return nil, errors.New("route table requires a not-found page")
	}

	t := &Table{
		routes:   make([]Route, 0, len(routes)),
		index:    make(map[string]*Page, len(routes)),
		notFound: notFound,
	}

	for _, r := range routes {
		if r.Page == nil {
			return nil, fmt.Errorf("route %q has no page", r.Path)
		}

		if Normalize(r.Path) != r.Path {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRoute, r.Path)
		}

		if _, ok := t.index[r.Path]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRoute, r.Path)
		}

		t.index[r.Path] = r.Page
		t.routes = append(t.routes, r)
	}

	return t, nil
}

// Lookup returns the page registered for the normalized form of path.
func (t *Table) Lookup(path string) (*Page, bool) {
	page, ok := t.index[Normalize(path)]
	return page, ok
}

// Resolve is Lookup with the not-found fallback applied.
func (t *Table) Resolve(path string) *Page {
	if page, ok := t.Lookup(path); ok {
		return page
	}

	return t.notFound
}

// NotFound returns the fallback page.
func (t *Table) NotFound() *Page {
	return t.notFound
}

// Paths returns the registered paths in declaration order.
func (t *Table) Paths() []string {
	paths := make([]string, len(t.routes))
	for i, r := range t.routes {
		paths[i] = r.Path
	}

	return paths
}

// Routes returns a copy of the registered routes.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Pages returns every page the table can render, the not-found page last.
func (t *Table) Pages() []*Page {
	pages := make([]*Page, 0, len(t.routes)+1)
	for _, r := range t.routes {
		pages = append(pages, r.Page)
	}

	return append(pages, t.notFound)
}

var defaultTable = mustTable(NewTable(NotFoundPage,
	Route{Path: "/", Page: HomePage},
	Route{Path: "/training", Page: TrainingPage},
	Route{Path: "/schedule", Page: SchedulePage},
	Route{Path: "/contacts", Page: ContactsPage},
	Route{Path: "/faq", Page: FAQPage},
	Route{Path: "/privacy-policy", Page: PrivacyPolicyPage},
))

// DefaultTable returns the club site's route table.
func DefaultTable() *Table {
	return defaultTable
}

func mustTable(t *Table, err error) *Table {
	if err != nil {
		panic(err)
	}

	return t
}
