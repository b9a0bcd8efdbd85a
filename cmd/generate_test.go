package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smashers.dev/pkg/sitegen/internal/controller"
	"smashers.dev/pkg/sitegen/internal/domain"
	domainmocks "smashers.dev/pkg/sitegen/internal/domain/mocks"
	m "smashers.dev/pkg/sitegen/internal/model"
)

const testShell = `<!doctype html>
<html lang="ru">
<head><meta charset="utf-8"><title>Smashers</title></head>
<body><div id="root"></div><script type="module" src="/assets/index.js"></script></body>
</html>
`

func writeShell(t *testing.T) string {
	t.Helper()

	dist := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.MkdirAll(dist, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), []byte(testShell), 0o644))

	return dist
}

func useGenerator(t *testing.T, g domain.Generator) {
	t.Helper()

	original := generator
	generator = g
	t.Cleanup(func() { generator = original })
}

func TestGenerateCmd_PassesArgs(t *testing.T) {
	mockGenerator := domainmocks.NewMockGenerator(t)
	useGenerator(t, mockGenerator)

	cmd, _ := newTestRootCmd(t, newGenerateCmd())

	mockGenerator.EXPECT().
		Generate(mock.Anything, mock.MatchedBy(func(args domain.GenerateArgs) bool {
			return args.Strategy == m.StrategyHeadless &&
				args.OutDir == m.Path("build") &&
				len(args.Routes) == 2 &&
				args.Routes[0] == "/" &&
				args.Routes[1] == "/faq" &&
				args.Verify &&
				!args.DryRun &&
				args.DataFile == m.Path("data.json") &&
				args.Headless.Port == domain.DefaultHeadlessPort
		})).
		Return(m.Summary{State: m.Succeeded}, nil)

	cmd.SetArgs(withLogFile(t,
		"generate",
		"--dist", "build",
		"--strategy", "headless",
		"--route", "/",
		"--route", "/faq",
		"--verify",
		"--data", "data.json",
	))

	require.NoError(t, cmd.Execute())
}

func TestGenerateCmd_DryRun(t *testing.T) {
	mockGenerator := domainmocks.NewMockGenerator(t)
	useGenerator(t, mockGenerator)

	cmd, _ := newTestRootCmd(t, newGenerateCmd())

	mockGenerator.EXPECT().
		Generate(mock.Anything, mock.MatchedBy(func(args domain.GenerateArgs) bool {
			return args.DryRun && args.Strategy == m.StrategyTemplate
		})).
		Return(m.Summary{State: m.Succeeded, DryRun: true}, nil)

	cmd.SetArgs(withLogFile(t, "generate", "--strategy", "template", "--dry-run"))

	require.NoError(t, cmd.Execute())
}

func TestGenerateCmd_PropagatesError(t *testing.T) {
	mockGenerator := domainmocks.NewMockGenerator(t)
	useGenerator(t, mockGenerator)

	cmd, _ := newTestRootCmd(t, newGenerateCmd())

	precondition := &domain.PreconditionError{Artifact: "compiled html template", Path: "dist/index.html", Err: domain.ErrTemplateMissing}
	mockGenerator.EXPECT().
		Generate(mock.Anything, mock.Anything).
		Return(m.Summary{State: m.Failed}, precondition)

	cmd.SetArgs(withLogFile(t, "generate", "--strategy", "template"))

	err := cmd.Execute()

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTemplateMissing))
}

func TestGenerateCmd_RejectsArgs(t *testing.T) {
	cmd, _ := newTestRootCmd(t, newGenerateCmd())
	cmd.SetArgs(withLogFile(t, "generate", "extra"))

	require.Error(t, cmd.Execute())
}

func TestGenerateCmd_EndToEnd(t *testing.T) {
	dist := writeShell(t)
	manifestPath := filepath.Join(t.TempDir(), "manifest.json")
	t.Setenv("SITEGEN_MANIFEST", manifestPath)

	cmd, out := newTestRootCmd(t, newGenerateCmd())
	useGenerator(t, domain.NewGenerator(
		fsAdapter,
		manifestStore,
		controller.NewSimpleUI(cmd),
		domain.NewTemplateStrategy(fsAdapter, renderEntry),
	))

	cmd.SetArgs(withLogFile(t, "generate", "--dist", dist, "--strategy", "template", "--verify"))

	require.NoError(t, cmd.Execute())

	for _, file := range []string{"index.html", "faq/index.html", "privacy-policy/index.html"} {
		content, err := os.ReadFile(filepath.Join(dist, filepath.FromSlash(file)))
		require.NoError(t, err, file)

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
		require.NoError(t, err)
		assert.Positive(t, doc.Find("#root").Children().Length(), file)
	}

	manifest, err := manifestStore.LoadManifest(context.Background(), m.Path(manifestPath))
	require.NoError(t, err)
	assert.Equal(t, m.StrategyTemplate, manifest.Strategy)
	assert.Len(t, manifest.Routes, len(domain.GenerateArgs{}.RouteList()))
	assert.Contains(t, out.String(), "faq")
}
