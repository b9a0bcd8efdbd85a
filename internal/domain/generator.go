package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"smashers.dev/pkg/sitegen/internal/adapter"
	"smashers.dev/pkg/sitegen/internal/controller"
	m "smashers.dev/pkg/sitegen/internal/model"
	"smashers.dev/pkg/sitegen/internal/site"
)

const outputPerm fs.FileMode = 0o644

var tracer = otel.Tracer("smashers.dev/pkg/sitegen/internal/domain")

// Generator pre-renders the site's routes into static files.
type Generator interface {
	Generate(ctx context.Context, args GenerateArgs) (m.Summary, error)
}

type generator struct {
	adapter.SiteFSAdapter
	adapter.ManifestStore
	controller.UI

	strategies map[m.StrategyKind]Strategy
	now        func() time.Time
}

// NewGenerator creates a Generator able to run any of the given strategies.
func NewGenerator(
	fsAdapter adapter.SiteFSAdapter,
	manifestStore adapter.ManifestStore,
	ui controller.UI,
	strategies ...Strategy,
) Generator {
	g := &generator{
		SiteFSAdapter: fsAdapter,
		ManifestStore: manifestStore,
		UI:            ui,
		strategies:    make(map[m.StrategyKind]Strategy, len(strategies)),
		now:           time.Now,
	}

	for _, s := range strategies {
		g.strategies[s.Kind()] = s
	}

	return g
}

// Generate runs every route through the selected strategy in list order and
// stops at the first failure. Strategy resources are released on every path.
func (g *generator) Generate(ctx context.Context, args GenerateArgs) (summary m.Summary, err error) {
	summary = m.Summary{
		RunID:    uuid.NewString(),
		Strategy: args.Strategy,
		State:    m.NotStarted,
		DryRun:   args.DryRun,
	}

	strategy, ok := g.strategies[args.Strategy]
	if !ok {
		return summary, fmt.Errorf("%w: %q", ErrUnknownStrategy, args.Strategy)
	}

	routes, err := plannedRoutes(args)
	if err != nil {
		return summary, err
	}

	ctx, span := tracer.Start(ctx, "sitegen.generate", trace.WithAttributes(
		attribute.String("sitegen.run_id", summary.RunID),
		attribute.String("sitegen.strategy", string(args.Strategy)),
		attribute.Int("sitegen.routes", len(routes)),
	))
	defer span.End()

	startOptions := []controller.StartOption{controller.WithRouteCount(len(routes))}
	if args.DryRun {
		startOptions = append(startOptions, controller.WithDryRun())
	}

	if err := g.Start(ctx, startOptions...); err != nil {
		slog.Error("Failed to start generator UI", "error", err)
		return summary, fmt.Errorf("start ui: %w", err)
	}

	summary.State = m.Running
	summary.Started = g.now()

	slog.Info("Generation started", "run", summary.RunID, "strategy", args.Strategy, "routes", len(routes))

	err = g.run(ctx, strategy, args, routes, &summary)

	summary.Finished = g.now()
	if err != nil {
		summary.State = m.Failed

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("Generation failed", "run", summary.RunID, "error", err)
	} else {
		summary.State = m.Succeeded

		err = g.saveManifest(ctx, args, summary)
	}

	g.DisplaySummary(ctx, summary)
	g.Close(ctx)

	return summary, err
}

func (g *generator) run(
	ctx context.Context,
	strategy Strategy,
	args GenerateArgs,
	routes []string,
	summary *m.Summary,
) (err error) {
	defer func() {
		if closeErr := strategy.Close(ctx); closeErr != nil {
			slog.Error("Failed to release strategy resources", "strategy", strategy.Kind(), "error", closeErr)
			err = errors.Join(err, fmt.Errorf("close %s strategy: %w", strategy.Kind(), closeErr))
		}
	}()

	if err := strategy.Prepare(ctx, args); err != nil {
		return err
	}

	for _, route := range routes {
		result, err := g.generateRoute(ctx, strategy, args, route)
		if err != nil {
			return fmt.Errorf("route %s: %w", route, err)
		}

		summary.Routes = append(summary.Routes, result)
	}

	return nil
}

func (g *generator) generateRoute(ctx context.Context, strategy Strategy, args GenerateArgs, route string) (m.RouteResult, error) {
	ctx, span := tracer.Start(ctx, "sitegen.route", trace.WithAttributes(attribute.String("sitegen.route", route)))
	defer span.End()

	g.DisplayRouteStarted(ctx, route)

	result := m.RouteResult{Route: route}

	target, err := OutputPath(args.OutDir, route)
	if err != nil {
		return result, err
	}

	result.File = target

	document, err := strategy.Document(ctx, route)
	if err != nil {
		span.RecordError(err)
		return result, err
	}

	if args.Verify {
		if err := verifyHydration(document, args.Mount()); err != nil {
			span.RecordError(err)
			return result, err
		}
	}

	content := []byte(document)
	result.Bytes = len(content)

	if args.DryRun {
		result.Diff, err = g.diffExisting(target, content)
		if err != nil {
			return result, err
		}

		result.Changed = result.Diff != ""
		g.DisplayRouteCompleted(ctx, result)

		return result, nil
	}

	if err := g.WriteFile(target, content, outputPerm); err != nil {
		slog.Error("Failed to write route", "route", route, "file", target, "error", err)
		return result, fmt.Errorf("write %s: %w", target, err)
	}

	result.Hash, err = g.HashFile(target)
	if err != nil {
		return result, fmt.Errorf("hash %s: %w", target, err)
	}

	slog.Info("Route generated", "route", route, "file", target, "bytes", result.Bytes)
	g.DisplayRouteCompleted(ctx, result)

	return result, nil
}

func (g *generator) saveManifest(ctx context.Context, args GenerateArgs, summary m.Summary) error {
	if args.DryRun || args.Manifest == "" {
		return nil
	}

	if err := g.SaveManifest(ctx, args.Manifest, summary.Manifest()); err != nil {
		slog.Error("Failed to save manifest", "path", args.Manifest, "error", err)
		return fmt.Errorf("save manifest: %w", err)
	}

	return nil
}

// diffExisting returns a unified diff between the file at target and content.
// A missing file diffs against empty content.
func (g *generator) diffExisting(target m.Path, content []byte) (string, error) {
	var previous []byte

	if _, err := g.FileInfo(target); err == nil {
		previous, err = g.ReadFile(target)
		if err != nil {
			return "", fmt.Errorf("read existing %s: %w", target, err)
		}
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(previous)),
		B:        difflib.SplitLines(string(content)),
		FromFile: string(target),
		ToFile:   string(target) + " (generated)",
		Context:  2,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", target, err)
	}

	return diff, nil
}

func verifyHydration(document, mountID string) error {
	mode, err := DetectBootstrap(document, mountID)
	if err != nil {
		return err
	}

	if mode != BootstrapHydrate {
		return fmt.Errorf("%w: #%s would be rendered from scratch", ErrEmptyMount, mountID)
	}

	return nil
}

// plannedRoutes normalizes the route list and rejects routes that cannot be
// written or that would overwrite each other.
func plannedRoutes(args GenerateArgs) ([]string, error) {
	raw := args.RouteList()
	routes := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, r := range raw {
		route := site.Normalize(r)
		if _, err := OutputPath(args.OutDir, route); err != nil {
			return nil, err
		}

		if _, ok := seen[route]; ok {
			return nil, fmt.Errorf("%w: %q listed twice", ErrInvalidRoute, route)
		}

		if _, ok := site.DefaultTable().Lookup(route); !ok {
			slog.Warn("Route is not in the route table, the not-found page will be written", "route", route)
		}

		seen[route] = struct{}{}
		routes = append(routes, route)
	}

	return routes, nil
}
