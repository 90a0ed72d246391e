package inode

import (
	filepath "path" // force forward slash separators on all OSs.
)

// Abs returns name if name is an absolute path. If name is a relative
// path then an absolute path is constructed by using cwd as the current
// working directory. The result is always cleaned.
func Abs(cwd, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(cwd, name)
}

// Base returns the last element of a slash separated name.
func Base(name string) string {
	return filepath.Base(name)
}
