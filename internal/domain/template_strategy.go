package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"smashers.dev/pkg/sitegen/internal/adapter"
	m "smashers.dev/pkg/sitegen/internal/model"
)

type templateStrategy struct {
	adapter.SiteFSAdapter
	newEntry EntryFactory

	entry    RenderEntry
	template []byte
	mountID  string
}

// NewTemplateStrategy creates the in-process rendering strategy. Each route is
// rendered by the entry built with newEntry and spliced into the compiled shell.
func NewTemplateStrategy(fsAdapter adapter.SiteFSAdapter, newEntry EntryFactory) Strategy {
	return &templateStrategy{
		SiteFSAdapter: fsAdapter,
		newEntry:      newEntry,
	}
}

func (s *templateStrategy) Kind() m.StrategyKind {
	return m.StrategyTemplate
}

// templatePath returns the compiled HTML shell, <OutDir>/index.html unless overridden.
func (s *templateStrategy) templatePath(args GenerateArgs) m.Path {
	if args.Template != "" {
		return args.Template
	}

	return s.JoinPath(string(args.OutDir), indexFile)
}

func (s *templateStrategy) Prepare(ctx context.Context, args GenerateArgs) error {
	templatePath := s.templatePath(args)

	info, err := s.FileInfo(templatePath)
	if err != nil || info.IsDir() {
		slog.Error("Compiled template missing", "path", templatePath, "error", err)

		return &PreconditionError{
			Artifact: "compiled html template",
			Path:     templatePath,
			Hint:     "build the client bundle first",
			Err:      errors.Join(ErrTemplateMissing, err),
		}
	}

	if args.PagesDir != "" {
		info, err := s.FileInfo(args.PagesDir)
		if err != nil || !info.IsDir() {
			slog.Error("Page template directory missing", "path", args.PagesDir, "error", err)

			return &PreconditionError{
				Artifact: "page template directory",
				Path:     args.PagesDir,
				Err:      errors.Join(ErrPagesMissing, err),
			}
		}
	}

	template, err := s.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	if _, err := locateMount(template, args.Mount()); err != nil {
		slog.Error("Template has no mount point", "path", templatePath, "mount", args.Mount(), "error", err)
		return fmt.Errorf("template %s: %w", templatePath, err)
	}

	entry, err := s.newEntry(ctx, args)
	if err != nil {
		return fmt.Errorf("build render entry: %w", err)
	}

	s.entry = entry
	s.template = template
	s.mountID = args.Mount()

	return nil
}

func (s *templateStrategy) Document(ctx context.Context, route string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.entry == nil {
		return "", errors.New("template strategy is not prepared")
	}

	fragment, err := s.entry.RenderForPath(route)
	if err != nil {
		return "", err
	}

	return SpliceMount(s.template, s.mountID, fragment)
}

func (s *templateStrategy) Close(_ context.Context) error {
	s.entry = nil
	s.template = nil

	return nil
}
