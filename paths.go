package reliablefile

import (
	stdpath "path"
	"path/filepath"
	"strings"
)

// VFSPrefix marks a path that lives in the Box's sealed in-memory platform.
const VFSPrefix = "vfs://"

// ConvertVFSPath strips VFSPrefix from path, rooting the remainder at "/".
// The bool reports whether path was a VFS path.
func ConvertVFSPath(path string) (string, bool) {
	if IsVFSPath(path) {
		return "/" + strings.TrimLeft(path[len(VFSPrefix):], "/"), true
	}
	return path, false
}

func IsVFSPath(path string) bool {
	return strings.HasPrefix(path, VFSPrefix)
}

// MakeVFSPath is the inverse of ConvertVFSPath.
func MakeVFSPath(path string) string {
	return VFSPrefix + strings.TrimLeft(path, "/")
}

// Clean is filepath.Clean for host paths and path.Clean for VFS paths.
func Clean(path string) string {
	if vfsPath, ok := ConvertVFSPath(path); ok {
		return MakeVFSPath(stdpath.Clean(vfsPath))
	}
	return filepath.Clean(path)
}

// Join joins elem the way the first element's platform expects. Later
// elements are used as plain path components.
func Join(elem ...string) string {
	if len(elem) == 0 {
		return ""
	}
	if vfsPath, ok := ConvertVFSPath(elem[0]); ok {
		parts := append([]string{vfsPath}, elem[1:]...)
		return MakeVFSPath(stdpath.Join(parts...))
	}
	return filepath.Join(elem...)
}

// Dir returns all but the last element of path, keeping VFS paths in the
// VFS.
func Dir(path string) string {
	if vfsPath, ok := ConvertVFSPath(path); ok {
		return MakeVFSPath(stdpath.Dir(vfsPath))
	}
	return filepath.Dir(path)
}

// Base returns the last element of path.
func Base(path string) string {
	if vfsPath, ok := ConvertVFSPath(path); ok {
		return stdpath.Base(vfsPath)
	}
	return filepath.Base(path)
}
