package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupSuffix is appended to a file's path to name its sidecar backup.
const BackupSuffix = ".propslint.bak"

// BackupPath returns the sidecar backup path of path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup writes original next to path unless a backup is already
// there. An existing backup is never overwritten, so it keeps the content
// from before the first fix. It reports whether a backup was written.
func CreateBackup(ctx context.Context, path string, original []byte, mode os.FileMode) (bool, error) {
	backup := BackupPath(path)

	_, err := os.Lstat(backup)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup %s: %w", backup, err)
	}

	if err := WriteAtomic(ctx, backup, original, mode.Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}

// Changed reports whether the file at fi.Path no longer matches what was
// read. Size and modification time are checked first; the hash settles
// the rest.
func (fi *FileInfo) Changed(ctx context.Context) (bool, error) {
	stat, err := os.Stat(fi.Path)
	if err != nil {
		return false, classify(fi.Path, err)
	}
	if stat.Size() != fi.Size {
		return true, nil
	}
	if stat.ModTime().Equal(fi.ModTime) {
		return false, nil
	}

	_, current, err := ReadFile(ctx, fi.Path)
	if err != nil {
		return false, err
	}

	return current.Hash != fi.Hash, nil
}
