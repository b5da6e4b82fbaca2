//go:build !windows

package hardlink

import (
	"fmt"
	"os"
	"syscall"
)

// Count returns the number of directory entries that refer to the file at path.
// Symlinks are not followed.
func Count(path string) (uint64, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	stat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, fmt.Errorf("cannot convert to syscall.Stat_t for %s", path)
	}

	return uint64(stat.Nlink), nil
}

// IsShared reports whether the file at path has other hardlinks, i.e. removing
// path will not release its data.
func IsShared(path string) (bool, error) {
	count, err := Count(path)
	if err != nil {
		return false, err
	}
	return count > 1, nil
}
