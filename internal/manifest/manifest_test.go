package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingManifestUsesDefaults(t *testing.T) {
	t.Parallel()

	m, err := Load(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "ui", m.Package)
	assert.Equal(t, ".", m.OutputDir)
	assert.Empty(t, m.CatalogPaths)
}

func TestLoad_ReadsManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := `
generator {
  package    = "widgets"
  output_dir = "gen"
  header     = "Edit ui/*.view instead."
}

catalog "gtk" {
  path = "catalogs/gtk.yaml"
}

catalog "adw" {
  path = "catalogs/adw.yaml"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, Filename), []byte(src), 0o644))

	m, err := Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "widgets", m.Package)
	assert.Equal(t, "gen", m.OutputDir)
	assert.Equal(t, "Edit ui/*.view instead.", m.Header)
	require.Len(t, m.CatalogPaths, 2)
	assert.Equal(t, filepath.Join(dir, "catalogs", "gtk.yaml"), m.CatalogPaths[0])
	assert.Equal(t, filepath.Join(dir, "catalogs", "adw.yaml"), m.CatalogPaths[1])
}

func TestLoad_PartialGeneratorBlockKeepsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := `
generator {
  package = "widgets"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, Filename), []byte(src), 0o644))

	m, err := Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "widgets", m.Package)
	assert.Equal(t, ".", m.OutputDir)
}

func TestLoad_InvalidManifestFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Filename), []byte("generator {"), 0o644))

	_, err := Load(context.Background(), dir)
	assert.Error(t, err)
}
