package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		dir, err := Dir("/tmp/custom")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom", dir)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("VIEWGEN_CACHE_DIR", "/tmp/from-env")
		dir, err := Dir("")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/from-env", dir)
	})
}

func TestHash(t *testing.T) {
	t.Parallel()

	a := Hash([]byte("gtk.Box {}"))
	b := Hash([]byte("gtk.Box { }"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Hash([]byte("gtk.Box {}")))
	assert.Len(t, a, 64)
}

func TestCache_Roundtrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c, err := Open(ctx, filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	defer c.Close()

	src := []byte("gtk.Box {}")
	output := []byte("package ui\n")

	// Miss before store.
	_, ok, err := c.Lookup(ctx, "ui/a.view", Hash(src))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Store(ctx, "ui/a.view", Hash(src), output))

	got, ok, err := c.Lookup(ctx, "ui/a.view", Hash(src))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, output, got)

	// A changed source misses even though the path is cached.
	_, ok, err = c.Lookup(ctx, "ui/a.view", Hash([]byte("changed")))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_StoreReplacesOlderHash(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c, err := Open(ctx, filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Store(ctx, "ui/a.view", "h1", []byte("v1")))
	require.NoError(t, c.Store(ctx, "ui/a.view", "h2", []byte("v2")))

	_, ok, err := c.Lookup(ctx, "ui/a.view", "h1")
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err := c.Lookup(ctx, "ui/a.view", "h2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), got)
}

func TestCache_ReopenKeepsEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "cache")

	c, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, c.Store(ctx, "ui/a.view", "h", []byte("v")))
	require.NoError(t, c.Close())

	c, err = Open(ctx, dir)
	require.NoError(t, err)
	defer c.Close()

	got, ok, err := c.Lookup(ctx, "ui/a.view", "h")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}
