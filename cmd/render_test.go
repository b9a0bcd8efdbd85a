package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smashers.dev/pkg/sitegen/internal/domain"
)

func TestRenderCmd_PrintsFragment(t *testing.T) {
	cmd, out := newTestRootCmd(t, newRenderCmd())
	cmd.SetArgs(withLogFile(t, "render", "/faq/?utm_source=test#top"))

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, `data-page="faq"`)
	assert.Contains(t, output, "faq-item")
	assert.NotContains(t, output, "<html")
}

func TestRenderCmd_UnknownPathRendersNotFound(t *testing.T) {
	cmd, out := newTestRootCmd(t, newRenderCmd())
	cmd.SetArgs(withLogFile(t, "render", "/no-such-page"))

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `data-page="not-found"`)
	assert.Contains(t, out.String(), "/no-such-page")
}

func TestRenderCmd_RequiresURL(t *testing.T) {
	cmd, _ := newTestRootCmd(t, newRenderCmd())
	cmd.SetArgs(withLogFile(t, "render"))

	require.Error(t, cmd.Execute())
}

func TestRenderCmd_EntryError(t *testing.T) {
	original := renderEntry
	renderEntry = func(context.Context, domain.GenerateArgs) (domain.RenderEntry, error) {
		return nil, errors.New("templates broken")
	}
	t.Cleanup(func() { renderEntry = original })

	cmd, out := newTestRootCmd(t, newRenderCmd())
	cmd.SetArgs(withLogFile(t, "render", "/"))

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "templates broken")
	assert.Empty(t, out.String())
}
