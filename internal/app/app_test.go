package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
generator {
  package    = "ui"
  output_dir = "gen"
}

catalog "gtk" {
  path = "catalogs/gtk.yaml"
}
`

const testCatalog = `
imports:
  gtk: example.com/ui/gtk

widgets:
  gtk.Window:
    child_method: SetChild
  gtk.Box:
    child_method: Append
`

const testView = `
#[root]
main_window = gtk.Window {
    set_title: "demo",
    gtk.Box {
        set_spacing: 5
    }
}
`

func writeProject(t *testing.T, view string) string {
	t.Helper()
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("viewgen.hcl", testManifest)
	write("catalogs/gtk.yaml", testCatalog)
	write("ui/main_window.view", view)
	return dir
}

func newTestApp(t *testing.T, dir string, mutate func(*Config)) *App {
	t.Helper()
	cfg := Config{
		SourcePath: filepath.Join(dir, "ui"),
		ProjectDir: dir,
		LogLevel:   "error",
		NoCache:    true,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	a, err := NewApp(&bytes.Buffer{}, validated)
	require.NoError(t, err)
	return a
}

func TestRun_GeneratesOutput(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, testView)
	a := newTestApp(t, dir, nil)

	result, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.False(t, result.HasErrors())

	outPath := filepath.Join(dir, "gen", "main_window_view.go")
	assert.Equal(t, outPath, result.Files[0].OutputPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "// Code generated by viewgen from")
	assert.Contains(t, out, "package ui")
	assert.Contains(t, out, "func BuildMainWindow() *gtk.Window {")
	assert.Contains(t, out, "main_window.SetChild(box)")
}

func TestRun_CheckOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, testView)
	a := newTestApp(t, dir, func(cfg *Config) { cfg.CheckOnly = true })

	result, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.HasErrors())
	assert.NotEmpty(t, result.Files[0].Output)

	_, err = os.Stat(filepath.Join(dir, "gen", "main_window_view.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ParseErrorsAreReportedNotWritten(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, "gtk.Window { set_title: }")
	a := newTestApp(t, dir, nil)

	result, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.HasErrors())

	// The broken source is available for diagnostic snippets.
	assert.Contains(t, result.Sources, filepath.Join(dir, "ui", "main_window.view"))

	_, err = os.Stat(filepath.Join(dir, "gen", "main_window_view.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_SecondRunHitsCache(t *testing.T) {
	t.Parallel()

	dir := writeProject(t, testView)
	cacheDir := filepath.Join(dir, ".cache")
	mutate := func(cfg *Config) {
		cfg.NoCache = false
		cfg.CacheDir = cacheDir
	}

	first, err := newTestApp(t, dir, mutate).Run(context.Background())
	require.NoError(t, err)
	require.False(t, first.HasErrors())
	assert.False(t, first.Files[0].FromCache)

	second, err := newTestApp(t, dir, mutate).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, second.Files, 1)
	assert.True(t, second.Files[0].FromCache)
	assert.Equal(t, first.Files[0].Output, second.Files[0].Output)
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	assert.Error(t, err)

	cfg, err := NewConfig(Config{SourcePath: "ui"})
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.ProjectDir)
}
