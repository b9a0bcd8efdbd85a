package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"smashers.dev/pkg/sitegen/internal/adapter"
	m "smashers.dev/pkg/sitegen/internal/model"
	"smashers.dev/pkg/sitegen/internal/site"
)

type headlessStrategy struct {
	adapter.SiteFSAdapter
	adapter.BrowserLauncher
	newServer adapter.StaticServerFactory

	server  adapter.StaticServer
	browser adapter.Browser
	baseURL string
}

// NewHeadlessStrategy creates the strategy that serves the built site locally
// and snapshots each route from a headless browser.
func NewHeadlessStrategy(
	fsAdapter adapter.SiteFSAdapter,
	launcher adapter.BrowserLauncher,
	newServer adapter.StaticServerFactory,
) Strategy {
	return &headlessStrategy{
		SiteFSAdapter:   fsAdapter,
		BrowserLauncher: launcher,
		newServer:       newServer,
	}
}

func (s *headlessStrategy) Kind() m.StrategyKind {
	return m.StrategyHeadless
}

func (s *headlessStrategy) Prepare(ctx context.Context, args GenerateArgs) error {
	index := s.JoinPath(string(args.OutDir), indexFile)

	info, err := s.FileInfo(args.OutDir)
	if err == nil && info.IsDir() {
		info, err = s.FileInfo(index)
	}

	if err != nil || info.IsDir() {
		slog.Error("Build directory missing", "path", args.OutDir, "error", err)

		return &PreconditionError{
			Artifact: "build directory",
			Path:     args.OutDir,
			Hint:     "build the client bundle first",
			Err:      errors.Join(ErrBuildDirMissing, err),
		}
	}

	port := args.Headless.Port
	if port < 0 {
		port = DefaultHeadlessPort
	}

	s.server = s.newServer(adapter.StaticServerOptions{
		Root: args.OutDir,
		Addr: net.JoinHostPort("127.0.0.1", strconv.Itoa(port)),
	})

	baseURL, err := s.server.Start(ctx)
	if err != nil {
		slog.Error("Failed to start static server", "port", port, "error", err)
		return fmt.Errorf("start static server: %w", err)
	}

	s.baseURL = baseURL
	slog.Info("Static server started", "url", baseURL, "root", args.OutDir)

	browser, err := s.Launch(ctx, adapter.BrowserOptions{
		Restricted:        args.Headless.Restricted,
		Bin:               args.Headless.Bin,
		MountID:           args.Mount(),
		NavigationTimeout: orDefault(args.Headless.NavigationTimeout, DefaultNavigationTimeout),
		ReadinessTimeout:  orDefault(args.Headless.ReadinessTimeout, DefaultReadinessTimeout),
		NetworkIdle:       orDefault(args.Headless.NetworkIdle, DefaultNetworkIdle),
		MinTextLength:     orDefault(args.Headless.MinTextLength, DefaultMinTextLength),
	})
	if err != nil {
		slog.Error("Failed to launch browser", "restricted", args.Headless.Restricted, "error", err)
		return fmt.Errorf("launch browser: %w", err)
	}

	s.browser = browser

	return nil
}

func (s *headlessStrategy) Document(ctx context.Context, route string) (document string, err error) {
	if s.browser == nil {
		return "", errors.New("headless strategy is not prepared")
	}

	path := site.Normalize(route)

	tab, err := s.browser.NewTab(ctx)
	if err != nil {
		return "", fmt.Errorf("open tab: %w", err)
	}

	defer func() {
		if closeErr := tab.Close(); closeErr != nil {
			slog.Error("Failed to close tab", "route", path, "error", closeErr)
			err = errors.Join(err, fmt.Errorf("close tab: %w", closeErr))
		}
	}()

	if err := tab.Navigate(ctx, s.baseURL+path); err != nil {
		return "", fmt.Errorf("navigate to %s: %w", path, err)
	}

	if err := tab.WaitForContent(ctx); err != nil {
		if !errors.Is(err, adapter.ErrContentTimeout) {
			return "", fmt.Errorf("wait for content on %s: %w", path, err)
		}

		slog.Warn("Content readiness timed out, capturing anyway", "route", path)
	}

	document, err = tab.Document(ctx)
	if err != nil {
		return "", fmt.Errorf("capture %s: %w", path, err)
	}

	return document, nil
}

func (s *headlessStrategy) Close(ctx context.Context) error {
	var errs []error

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}

		s.browser = nil
	}

	if s.server != nil {
		if err := s.server.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close static server: %w", err))
		}

		s.server = nil
	}

	return errors.Join(errs...)
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}

	return v
}
