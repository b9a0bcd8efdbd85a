package domain

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"smashers.dev/pkg/sitegen/internal/adapter"
	m "smashers.dev/pkg/sitegen/internal/model"
	"smashers.dev/pkg/sitegen/internal/site"
)

// PageRenderer renders a single page for a render context.
type PageRenderer interface {
	Render(page *site.Page, ctx m.RenderContext) (string, error)
}

// RenderEntry turns a raw URL into the markup placed inside the mount point.
type RenderEntry interface {
	RenderForPath(rawURL string) (string, error)
}

// EntryFactory builds the render entry used by a run.
type EntryFactory func(ctx context.Context, args GenerateArgs) (RenderEntry, error)

type renderEntry struct {
	table    *site.Table
	renderer PageRenderer
}

// NewRenderEntry creates a RenderEntry resolving paths against table.
func NewRenderEntry(table *site.Table, renderer PageRenderer) RenderEntry {
	return &renderEntry{table: table, renderer: renderer}
}

func (e *renderEntry) RenderForPath(rawURL string) (string, error) {
	ctx := site.ParseContext(rawURL)

	page, ok := e.table.Lookup(ctx.Pathname)
	if !ok {
		slog.Debug("No route matched, rendering not-found page", "path", ctx.Pathname)

		page = e.table.NotFound()
	}

	out, err := e.renderer.Render(page, ctx)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", ctx.Pathname, err)
	}

	return out, nil
}

// NewSiteRenderEntry returns the EntryFactory for the club site. Page templates
// come from args.PagesDir when set, otherwise from the embedded assets, and
// args.DataFile, when set, supplies the pricing snapshot.
func NewSiteRenderEntry(fsAdapter adapter.SiteFSAdapter) EntryFactory {
	return func(_ context.Context, args GenerateArgs) (RenderEntry, error) {
		var assets fs.FS = site.Assets()
		if args.PagesDir != "" {
			assets = os.DirFS(string(args.PagesDir))
		}

		state, err := site.LoadState(assets)
		if err != nil {
			slog.Error("Failed to load site content", "pages", args.PagesDir, "error", err)
			return nil, fmt.Errorf("load content: %w", err)
		}

		if args.DataFile != "" {
			data, err := fsAdapter.ReadFile(args.DataFile)
			if err != nil {
				return nil, fmt.Errorf("read data file: %w", err)
			}

			snap, err := site.DecodeSnapshot(data)
			if err != nil {
				return nil, err
			}

			state = state.WithSnapshot(snap)
		}

		table := site.DefaultTable()

		renderer, err := site.NewRenderer(assets, state, table.Pages())
		if err != nil {
			slog.Error("Failed to parse page templates", "pages", args.PagesDir, "error", err)
			return nil, fmt.Errorf("parse templates: %w", err)
		}

		return NewRenderEntry(table, renderer), nil
	}
}
