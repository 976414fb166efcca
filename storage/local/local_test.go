package local_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filegate/storage"
	"github.com/dmitrymomot/filegate/storage/local"
)

func TestWriteReadDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := local.New()
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")

	require.NoError(t, store.Write(ctx, path, []byte("hello")))

	rc, err := store.Read(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(ctx, path))

	_, err = store.Read(ctx, path)
	assert.ErrorIs(t, err, storage.ErrNotExist)
}

func TestWriteReplacesAtomically(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := local.New()
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")

	require.NoError(t, store.Write(ctx, path, []byte("first version, longer")))
	require.NoError(t, store.Write(ctx, path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "note.txt", entries[0].Name())
}

func TestStat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := local.New()
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")

	require.NoError(t, store.Write(ctx, path, []byte("12345")))

	info, err := store.Stat(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "note.txt", info.Name)
	assert.Equal(t, int64(5), info.Size)
	assert.False(t, info.IsDir)
	assert.False(t, info.CreatedAt.IsZero())

	_, err = store.Stat(ctx, filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, storage.ErrNotExist)
}

func TestList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := local.New()

	t.Run("entries", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, store.Write(ctx, filepath.Join(dir, "a.txt"), []byte("a")))
		require.NoError(t, store.MkdirAll(ctx, filepath.Join(dir, "sub")))

		entries, err := store.List(ctx, dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		byName := map[string]storage.FileInfo{}
		for _, e := range entries {
			byName[e.Name] = e
		}
		assert.False(t, byName["a.txt"].IsDir)
		assert.Equal(t, int64(1), byName["a.txt"].Size)
		assert.True(t, byName["sub"].IsDir)
	})

	t.Run("missing_directory", func(t *testing.T) {
		t.Parallel()

		_, err := store.List(ctx, filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, storage.ErrNotExist)
	})

	t.Run("path_is_a_file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "f")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, err := store.List(ctx, path)
		assert.ErrorIs(t, err, storage.ErrNotDirectory)
	})
}

func TestRename(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := local.New()
	dir := t.TempDir()

	oldpath := filepath.Join(dir, "old.txt")
	newpath := filepath.Join(dir, "new.txt")
	require.NoError(t, store.Write(ctx, oldpath, []byte("x")))

	require.NoError(t, store.Rename(ctx, oldpath, newpath))

	_, err := os.Stat(oldpath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(newpath)
	assert.NoError(t, err)

	err = store.Rename(ctx, oldpath, newpath)
	assert.ErrorIs(t, err, storage.ErrNotExist)
}
