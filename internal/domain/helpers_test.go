package domain

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"smashers.dev/pkg/sitegen/internal/adapter"
	"smashers.dev/pkg/sitegen/internal/controller"
	m "smashers.dev/pkg/sitegen/internal/model"
)

// newDist creates a build directory holding the compiled shell from testdata.
func newDist(t *testing.T) m.Path {
	t.Helper()

	shell, err := os.ReadFile(filepath.Join("testdata", "index.html"))
	require.NoError(t, err)

	dist := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.MkdirAll(dist, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), shell, 0o644))

	return m.Path(dist)
}

func newTestUI() (controller.UI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	return controller.NewSimpleUI(cmd), out
}

func newTemplateGenerator(t *testing.T) (Generator, *bytes.Buffer) {
	t.Helper()

	fsAdapter := adapter.NewLocalSiteFSAdapter()
	ui, out := newTestUI()

	return NewGenerator(
		fsAdapter,
		adapter.NewLocalManifestStore(),
		ui,
		NewTemplateStrategy(fsAdapter, NewSiteRenderEntry(fsAdapter)),
	), out
}

func parseDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	return doc
}

func readOutput(t *testing.T, path m.Path) string {
	t.Helper()

	data, err := os.ReadFile(string(path))
	require.NoError(t, err)

	return string(data)
}
