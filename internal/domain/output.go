package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	m "smashers.dev/pkg/sitegen/internal/model"
	"smashers.dev/pkg/sitegen/internal/site"
)

const indexFile = "index.html"

// OutputPath maps a route to the file it is written to: "/" is
// <outDir>/index.html and "/a/b" is <outDir>/a/b/index.html.
func OutputPath(outDir m.Path, route string) (m.Path, error) {
	p := site.Normalize(route)
	if p == "/" {
		return m.Path(filepath.Join(string(outDir), indexFile)), nil
	}

	rel := strings.TrimPrefix(p, "/")
	for _, segment := range strings.Split(rel, "/") {
		if segment == "" || segment == "." || segment == ".." || strings.ContainsRune(segment, '\\') {
			return "", fmt.Errorf("%w: %q", ErrInvalidRoute, route)
		}
	}

	return m.Path(filepath.Join(string(outDir), filepath.FromSlash(rel), indexFile)), nil
}
