package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInitCmd_WritesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd, out := newTestRootCmd(t, newInitCmd())
	cmd.SetArgs(withLogFile(t, "init"))

	err = cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Wrote "+configFileName)

	targetPath := filepath.Join(tempDir, configFileName)
	t.Cleanup(func() { _ = os.Remove(targetPath) })
	info, err := os.Stat(targetPath)
	require.NoError(t, err)
	require.False(t, info.IsDir())

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)

	var written map[string]any
	require.NoError(t, yaml.Unmarshal(contents, &written))

	for _, key := range []string{distConfigKey, mountIDConfigKey, routesConfigKey, strategyConfigKey, manifestConfigKey, "headless", "api", "serve", "log"} {
		assert.Contains(t, written, key)
	}
	assert.Equal(t, "root", written[mountIDConfigKey])
	assert.Equal(t, defaultManifest, written[manifestConfigKey])

	headless, ok := written["headless"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, headless, "nav_timeout")
	assert.Contains(t, headless, "min_text")
}

func TestInitCmd_ErrorsWhenFileExists(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("existing: true\n"), 0o644))
	t.Cleanup(func() { _ = os.Remove(targetPath) })

	cmd, _ := newTestRootCmd(t, newInitCmd())
	cmd.SetArgs(withLogFile(t, "init"))

	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "existing: true\n", string(contents))
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("existing: true\n"), 0o644))

	cmd, _ := newTestRootCmd(t, newInitCmd())
	cmd.SetArgs(withLogFile(t, "init", "--force"))

	require.NoError(t, cmd.Execute())

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "strategy:")
	assert.Contains(t, string(contents), "headless:")
}
