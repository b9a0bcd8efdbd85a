package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	m "smashers.dev/pkg/sitegen/internal/model"
)

// TUI implements UI with a Bubble Tea progress view.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}

	// Diffs collected in dry-run mode are printed once the program exits.
	dryRun bool
	diffs  []m.RouteResult
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

type routeStartedMsg struct {
	route string
}

type routeCompletedMsg struct {
	result m.RouteResult
}

type summaryMsg struct {
	summary m.Summary
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return fmt.Errorf("tui already started")
	}

	cfg := newStartConfig(options)
	program := tea.NewProgram(
		newProgressModel(cfg),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	done := make(chan struct{})

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Error("TUI stopped", "error", err)
		}
	}()

	t.program = program
	t.done = done
	t.dryRun = cfg.dryRun
	t.diffs = nil

	return nil
}

// Close stops the program, waits for its final frame and then prints the
// diffs collected during a dry run.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done, diffs := t.program, t.done, t.diffs
	t.program, t.done, t.diffs = nil, nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done

	for _, r := range diffs {
		_, _ = fmt.Fprintf(t.output, "\n%s %s\n%s", changedStyle.Render("~"), r.Route, r.Diff)
	}
}

// DisplayRouteStarted shows the route being generated.
func (t *TUI) DisplayRouteStarted(_ context.Context, route string) {
	t.send(routeStartedMsg{route: route})
}

// DisplayRouteCompleted advances the progress bar.
func (t *TUI) DisplayRouteCompleted(_ context.Context, result m.RouteResult) {
	t.mu.Lock()
	if t.dryRun && result.Changed {
		t.diffs = append(t.diffs, result)
	}
	t.mu.Unlock()

	t.send(routeCompletedMsg{result: result})
}

// DisplaySummary renders the summary table as the final frame.
func (t *TUI) DisplaySummary(_ context.Context, summary m.Summary) {
	t.send(summaryMsg{summary: summary})
}

// DisplayRoutes prints the route listing; it is short enough to skip the program.
func (t *TUI) DisplayRoutes(_ context.Context, routes []RouteInfo) {
	_, _ = fmt.Fprint(t.output, renderRoutesTable(routes))
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

type progressModel struct {
	spinner  spinner.Model
	progress progress.Model
	config   StartConfig

	current   string
	completed []m.RouteResult
	summary   *m.Summary
}

func newProgressModel(cfg StartConfig) progressModel {
	return progressModel{
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(titleStyle)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		config:   cfg,
	}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case routeStartedMsg:
		pm.current = msg.route
		return pm, nil

	case routeCompletedMsg:
		pm.completed = append(pm.completed, msg.result)
		pm.current = ""

		return pm, nil

	case summaryMsg:
		pm.summary = &msg.summary
		return pm, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return pm, tea.Quit
		}

		return pm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

func (pm progressModel) View() string {
	var b strings.Builder

	title := "sitegen"
	if pm.config.dryRun {
		title += " (dry run)"
	}

	b.WriteString(titleStyle.Render(title) + "\n\n")

	for _, r := range pm.completed {
		mark := okStyle.Render("✓")
		if pm.config.dryRun && r.Changed {
			mark = changedStyle.Render("~")
		}

		fmt.Fprintf(&b, "  %s %s %s\n", mark, r.Route, mutedStyle.Render("-> "+string(r.File)))
	}

	if pm.summary != nil {
		b.WriteString("\n" + renderSummaryTable(*pm.summary))
		fmt.Fprintf(&b, "Run %s %s\n", pm.summary.RunID, formatState(pm.summary.State))

		return b.String()
	}

	if pm.current != "" {
		fmt.Fprintf(&b, "  %s %s\n", pm.spinner.View(), pm.current)
	}

	if pm.config.routes > 0 {
		ratio := float64(len(pm.completed)) / float64(pm.config.routes)
		fmt.Fprintf(&b, "\n  %s %d/%d\n", pm.progress.ViewAs(ratio), len(pm.completed), pm.config.routes)
	}

	return b.String()
}
