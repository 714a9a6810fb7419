package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/file"
)

func newLocalStore(t *testing.T) (*file.LocalStore, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "avatars"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "avatars", "42.png"),
		[]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, 0o644))

	store, err := file.NewLocalStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewLocalStore(t *testing.T) {
	t.Parallel()

	t.Run("empty base dir", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewLocalStore("")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("missing base dir", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewLocalStore(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, file.ErrFailedToStatPath)
	})

	t.Run("base dir is a file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "plain.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, err := file.NewLocalStore(path)
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}

func TestLocalStore_Stat(t *testing.T) {
	t.Parallel()
	store, _ := newLocalStore(t)

	t.Run("existing file", func(t *testing.T) {
		t.Parallel()
		info, err := store.Stat(context.Background(), "avatars/42.png")
		require.NoError(t, err)
		assert.Equal(t, "42.png", info.Filename)
		assert.Equal(t, int64(8), info.Size)
		assert.Equal(t, "image/png", info.MIMEType)
		assert.True(t, info.IsImage())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := store.Stat(context.Background(), "avatars/43.png")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, err := store.Stat(context.Background(), "avatars")
		assert.ErrorIs(t, err, file.ErrIsDirectory)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		_, err := store.Stat(context.Background(), "../../../etc/passwd")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.Stat(ctx, "avatars/42.png")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalStore_Exists(t *testing.T) {
	t.Parallel()
	store, _ := newLocalStore(t)

	ok, err := store.Exists(context.Background(), "/avatars/42.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(context.Background(), "avatars/43.png")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Exists(context.Background(), "avatars")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Exists(context.Background(), "../secret")
	assert.ErrorIs(t, err, file.ErrInvalidPath)
}
