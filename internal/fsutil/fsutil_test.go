package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("gtk.Box {}"), 0o644))
}

func TestFindSourceFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.view"))
	writeFile(t, filepath.Join(dir, "a.view"))
	writeFile(t, filepath.Join(dir, "nested", "c.view"))
	writeFile(t, filepath.Join(dir, "ignored.txt"))

	files, err := FindSourceFiles(dir)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.view"),
		filepath.Join(dir, "b.view"),
		filepath.Join(dir, "nested", "c.view"),
	}
	assert.Equal(t, want, files)
}

func TestFindSourceFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.view")
	writeFile(t, path)

	files, err := FindSourceFiles(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFindSourceFiles_RejectsOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path)

	_, err := FindSourceFiles(path)
	assert.Error(t, err)
}

func TestFindSourceFiles_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := FindSourceFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
