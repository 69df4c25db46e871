package fsutil_test

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "app.properties")
		content := []byte("app.name=demo\n")
		require.NoError(t, os.WriteFile(path, content, 0o640))

		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, content, got)
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(content)), info.Size)
		assert.Equal(t, os.FileMode(0o640), info.Mode.Perm())
		assert.Equal(t, sha256.Sum256(content), info.Hash)
		assert.False(t, info.ModTime.IsZero())
	})

	t.Run("reads empty file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.properties")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, info.Size)
	})

	t.Run("missing file wraps ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.properties"))
		require.Error(t, err)
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory wraps ErrIsDirectory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("oversized file wraps ErrTooLarge", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "huge.properties")
		file, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, file.Truncate(fsutil.MaxFileSize+1))
		require.NoError(t, file.Close())

		_, _, err = fsutil.ReadFile(context.Background(), path)
		assert.ErrorIs(t, err, fsutil.ErrTooLarge)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "app.properties")
		require.NoError(t, os.WriteFile(path, []byte("a=1"), 0o600))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
