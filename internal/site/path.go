package site

import (
	"strings"

	m "smashers.dev/pkg/sitegen/internal/model"
)

// Normalize reduces a raw URL to the pathname used for route lookup.
// Anything from the first '?' or '#' is dropped, trailing slashes are removed,
// and the result always starts with '/'. Normalize(Normalize(p)) == Normalize(p).
func Normalize(raw string) string {
	p := raw
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return p
}

// ParseContext splits a raw URL into a render context.
func ParseContext(raw string) m.RenderContext {
	rest := raw

	var search, hash string
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		hash = rest[i:]
		rest = rest[:i]
	}

	if i := strings.IndexByte(rest, '?'); i >= 0 {
		search = rest[i:]
		rest = rest[:i]
	}

	return m.RenderContext{
		Pathname: Normalize(rest),
		Search:   search,
		Hash:     hash,
	}
}
