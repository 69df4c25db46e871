package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/fsutil"
)

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.properties")
	require.NoError(t, os.WriteFile(path, []byte("a:1\n"), 0o640))

	created, err := fsutil.CreateBackup(ctx, path, []byte("a:1\n"), 0o640)
	require.NoError(t, err)
	assert.True(t, created)

	backup := fsutil.BackupPath(path)
	assert.Equal(t, path+".propslint.bak", backup)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "a:1\n", string(data))

	stat, err := os.Stat(backup)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), stat.Mode().Perm())

	created, err = fsutil.CreateBackup(ctx, path, []byte("a=1\n"), 0o640)
	require.NoError(t, err)
	assert.False(t, created, "an existing backup is kept")

	data, err = os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "a:1\n", string(data))
}

func TestFileInfoChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.properties")
	require.NoError(t, os.WriteFile(path, []byte("a=1\n"), 0o600))

	_, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	changed, err := info.Changed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	// Same size, new content and a later mtime.
	require.NoError(t, os.WriteFile(path, []byte("a=2\n"), 0o600))
	later := info.ModTime.Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err = info.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, os.WriteFile(path, []byte("a=10\n"), 0o600))
	changed, err = info.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, os.Remove(path))
	_, err = info.Changed(ctx)
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}
