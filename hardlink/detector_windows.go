//go:build windows

package hardlink

import "errors"

// ErrUnsupported is returned on platforms without link count support.
var ErrUnsupported = errors.New("hardlink detection not supported on Windows")

// Count returns the number of hardlinks for a file
// Windows implementation - returns error as not supported
func Count(path string) (uint64, error) {
	return 0, ErrUnsupported
}

// IsShared reports whether the file has other hardlinks
// Windows implementation - returns error as not supported
func IsShared(path string) (bool, error) {
	return false, ErrUnsupported
}
