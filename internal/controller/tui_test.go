package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "smashers.dev/pkg/sitegen/internal/model"
)

func TestProgressModel_Update(t *testing.T) {
	var model tea.Model = newProgressModel(newStartConfig([]StartOption{WithRouteCount(2)}))

	model, _ = model.Update(routeStartedMsg{route: "/faq"})
	assert.Contains(t, model.View(), "/faq")
	assert.Contains(t, model.View(), "0/2")

	model, _ = model.Update(routeCompletedMsg{result: m.RouteResult{Route: "/faq", File: "dist/faq/index.html"}})
	assert.Contains(t, model.View(), "dist/faq/index.html")
	assert.Contains(t, model.View(), "1/2")

	model, cmd := model.Update(summaryMsg{summary: m.Summary{RunID: "run-9", State: m.Failed}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, model.View(), "Run run-9")
}

func TestProgressModel_CtrlCQuits(t *testing.T) {
	model := newProgressModel(StartConfig{})

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTUI_RunLifecycle(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewTUI(out)
	ctx := context.Background()

	require.NoError(t, ui.Start(ctx, WithRouteCount(1)))
	require.Error(t, ui.Start(ctx))

	ui.DisplayRouteStarted(ctx, "/")
	ui.DisplayRouteCompleted(ctx, m.RouteResult{Route: "/", File: "dist/index.html"})
	ui.DisplaySummary(ctx, m.Summary{RunID: "run-1", State: m.Succeeded})
	ui.Close(ctx)
	ui.Close(ctx)

	assert.Contains(t, out.String(), "run-1")
}

func TestTUI_DryRunPrintsDiffAfterClose(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewTUI(out)
	ctx := context.Background()

	require.NoError(t, ui.Start(ctx, WithRouteCount(2), WithDryRun()))

	ui.DisplayRouteCompleted(ctx, m.RouteResult{
		Route:   "/faq",
		File:    "dist/faq/index.html",
		Changed: true,
		Diff:    "--- dist/faq/index.html\n+++ dist/faq/index.html (generated)\n+<h1>FAQ</h1>\n",
	})
	ui.DisplayRouteCompleted(ctx, m.RouteResult{
		Route: "/",
		File:  "dist/index.html",
		Diff:  "+unchanged routes never print this\n",
	})
	ui.DisplaySummary(ctx, m.Summary{RunID: "run-2", State: m.Succeeded, DryRun: true})
	ui.Close(ctx)

	output := out.String()
	assert.Contains(t, output, "+<h1>FAQ</h1>")
	assert.NotContains(t, output, "unchanged routes never print this")
	assert.Greater(t, strings.LastIndex(output, "+<h1>FAQ</h1>"), strings.Index(output, "run-2"))
}

func TestTUI_DiffsOnlyInDryRun(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewTUI(out)
	ctx := context.Background()

	require.NoError(t, ui.Start(ctx, WithRouteCount(1)))
	ui.DisplayRouteCompleted(ctx, m.RouteResult{Route: "/", Changed: true, Diff: "+not a dry run\n"})
	ui.DisplaySummary(ctx, m.Summary{RunID: "run-3", State: m.Succeeded})
	ui.Close(ctx)

	assert.NotContains(t, out.String(), "+not a dry run")
}

func TestTUI_DisplayRoutes(t *testing.T) {
	out := &bytes.Buffer{}

	NewTUI(out).DisplayRoutes(context.Background(), []RouteInfo{{Path: "/", Page: "home", File: "dist/index.html"}})

	assert.Contains(t, out.String(), "dist/index.html")
}
