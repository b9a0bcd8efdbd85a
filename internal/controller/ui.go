// Package controller provides the operator-facing output of the site generator.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "smashers.dev/pkg/sitegen/internal/model"
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	routes int
	dryRun bool
}

// WithRouteCount sets the number of routes the run will generate.
func WithRouteCount(n int) StartOption {
	return func(c *StartConfig) {
		c.routes = n
	}
}

// WithDryRun marks the run as a dry run.
func WithDryRun() StartOption {
	return func(c *StartConfig) {
		c.dryRun = true
	}
}

func newStartConfig(options []StartOption) StartConfig {
	var cfg StartConfig
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// RouteInfo is one row of the route listing.
type RouteInfo struct {
	Path string
	Page string
	File m.Path
	// Hash is the sha256 recorded by the last run, if any.
	Hash string
}

// UI displays the progress and outcome of generator runs.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayRouteStarted(ctx context.Context, route string)
	DisplayRouteCompleted(ctx context.Context, result m.RouteResult)
	DisplaySummary(ctx context.Context, summary m.Summary)
	DisplayRoutes(ctx context.Context, routes []RouteInfo)
}

// NewUI returns the interactive UI for terminals and the plain one otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
