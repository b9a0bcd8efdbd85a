package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "smashers.dev/pkg/sitegen/internal/model"
)

// SimpleUI implements UI with plain line output through the cobra command.
type SimpleUI struct {
	cmd    *cobra.Command
	config StartConfig
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.config = newStartConfig(options)

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayRouteStarted is silent; SimpleUI prints one line per finished route.
func (s *SimpleUI) DisplayRouteStarted(_ context.Context, _ string) {}

// DisplayRouteCompleted prints the route and the file it was written to.
func (s *SimpleUI) DisplayRouteCompleted(ctx context.Context, result m.RouteResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	if !s.config.dryRun {
		s.printf("[sitegen] %s -> %s\n", result.Route, result.File)
		return
	}

	if !result.Changed {
		s.printf("[sitegen] %s -> %s %s\n", result.Route, result.File, mutedStyle.Render("(unchanged)"))
		return
	}

	s.printf("[sitegen] %s -> %s %s\n%s", result.Route, result.File, changedStyle.Render("(changed)"), result.Diff)
}

// DisplaySummary prints the summary table of the run.
func (s *SimpleUI) DisplaySummary(_ context.Context, summary m.Summary) {
	s.printf("\n%s", renderSummaryTable(summary))
	s.printf("Run %s %s\n", summary.RunID, formatState(summary.State))
}

// DisplayRoutes prints the route listing.
func (s *SimpleUI) DisplayRoutes(_ context.Context, routes []RouteInfo) {
	s.printf("%s", renderRoutesTable(routes))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
