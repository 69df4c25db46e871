package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/runner"
)

// layout creates the named files (content "k=v") under a fresh temp dir.
func layout(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		writeFile(t, dir, name, "k=v\n")
	}
	return dir
}

func relAll(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    []string
		opts     runner.Options
		expected []string
	}{
		{
			name:     "default extension only",
			files:    []string{"a.properties", "b.md", "c.PROPERTIES", "sub/d.properties"},
			expected: []string{"a.properties", "c.PROPERTIES", "sub/d.properties"},
		},
		{
			name:     "custom extensions",
			files:    []string{"a.properties", "b.props", "c.txt"},
			opts:     runner.Options{Extensions: []string{".props"}},
			expected: []string{"b.props"},
		},
		{
			name:     "hidden files and directories are skipped",
			files:    []string{".hidden.properties", ".git/config.properties", "visible.properties"},
			expected: []string{"visible.properties"},
		},
		{
			name:     "vendored directories are skipped",
			files:    []string{"app.properties", "vendor/lib.properties", "node_modules/x/y.properties"},
			expected: []string{"app.properties"},
		},
		{
			name:     "vendored directories can be included",
			files:    []string{"app.properties", "vendor/lib.properties"},
			opts:     runner.Options{IncludeVendored: true},
			expected: []string{"app.properties", "vendor/lib.properties"},
		},
		{
			name:     "exclude base-name pattern",
			files:    []string{"app.properties", "app-test.properties", "sub/other-test.properties"},
			opts:     runner.Options{ExcludeGlobs: []string{"*-test.properties"}},
			expected: []string{"app.properties"},
		},
		{
			name:     "exclude directory tree",
			files:    []string{"src/a.properties", "build/gen/b.properties", "build.properties"},
			opts:     runner.Options{ExcludeGlobs: []string{"build/**"}},
			expected: []string{"build.properties", "src/a.properties"},
		},
		{
			name:     "exclude directory anywhere",
			files:    []string{"a/target/x.properties", "target/y.properties", "a/z.properties"},
			opts:     runner.Options{ExcludeGlobs: []string{"**/target"}},
			expected: []string{"a/z.properties"},
		},
		{
			name:     "include narrows the walk",
			files:    []string{"config/app.properties", "config/db.properties", "other/app.properties"},
			opts:     runner.Options{IncludeGlobs: []string{"config/*"}},
			expected: []string{"config/app.properties", "config/db.properties"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := layout(t, testCase.files...)
			opts := testCase.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, relAll(t, dir, files))
		})
	}
}

func TestDiscover_DetectContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "app.cfgx", "# settings\nserver.port=8080\napp.name = demo\n")
	writeFile(t, dir, "notes.txt", "just some prose.\nnothing else here.\n")
	writeFile(t, dir, "main.properties", "a=1\n")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.properties"}, relAll(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, DetectContent: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.cfgx", "main.properties"}, relAll(t, dir, files))
}

func TestDiscover_ExplicitFileIgnoresExtension(t *testing.T) {
	t.Parallel()

	dir := layout(t, "app.conf", "skip.conf")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		Paths:        []string{"app.conf", "skip.conf"},
		ExcludeGlobs: []string{"skip.*"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.conf"}, relAll(t, dir, files))
}

func TestDiscover_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	dir := layout(t, "z.properties", "a.properties", "m/b.properties")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"z.properties", ".", "m", "a.properties"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.properties", "m/b.properties", "z.properties"}, relAll(t, dir, files))

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f), "%s is not absolute", f)
	}
}

func TestDiscover_DefaultsToCurrentDirectory(t *testing.T) {
	t.Parallel()

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: filepath.Join("testdata", "tree"),
	})
	require.NoError(t, err)

	abs, err := filepath.Abs(filepath.Join("testdata", "tree"))
	require.NoError(t, err)
	assert.Equal(t, []string{"app.properties", "nested/db.properties"}, relAll(t, abs, files))
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"missing"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude pattern")
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	target := layout(t, "linked.properties")
	dir := layout(t, "own.properties")
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "linked.properties", filepath.Base(files[0]))
}
