package domain

import (
	"context"
	"time"

	m "smashers.dev/pkg/sitegen/internal/model"
	"smashers.dev/pkg/sitegen/internal/site"
)

// Defaults shared by both strategies.
const (
	DefaultMountID           = "root"
	DefaultHeadlessPort      = 4173
	DefaultNavigationTimeout = 20 * time.Second
	DefaultReadinessTimeout  = 8 * time.Second
	DefaultNetworkIdle       = 500 * time.Millisecond
	DefaultMinTextLength     = 50
)

// Strategy produces the full HTML document for a route. The generator owns
// iteration, writes and cleanup; a strategy only acquires resources in
// Prepare, renders in Document and releases everything in Close.
type Strategy interface {
	Kind() m.StrategyKind
	Prepare(ctx context.Context, args GenerateArgs) error
	Document(ctx context.Context, route string) (string, error)
	// Close must be safe to call after a failed or skipped Prepare.
	Close(ctx context.Context) error
}

// HeadlessArgs configures the headless strategy.
type HeadlessArgs struct {
	Port              int
	NavigationTimeout time.Duration
	ReadinessTimeout  time.Duration
	NetworkIdle       time.Duration
	MinTextLength     int
	Restricted        bool
	Bin               string
}

// GenerateArgs contains the arguments of a generation run.
type GenerateArgs struct {
	Strategy m.StrategyKind
	Routes   []string
	OutDir   m.Path
	Template m.Path
	MountID  string
	PagesDir m.Path
	DataFile m.Path
	Manifest m.Path
	Verify   bool
	DryRun   bool
	Headless HeadlessArgs
}

// Mount returns the mount element id.
func (a GenerateArgs) Mount() string {
	if a.MountID == "" {
		return DefaultMountID
	}

	return a.MountID
}

// RouteList returns the configured routes or every route of the site table.
func (a GenerateArgs) RouteList() []string {
	if len(a.Routes) == 0 {
		return site.DefaultTable().Paths()
	}

	return a.Routes
}
