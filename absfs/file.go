package absfs

import (
	"io/fs"
	"strconv"
	"syscall"
)

// Handle is an opaque reference to an open platform file. Its numeric value
// only has meaning to the Platform that returned it.
type Handle int

// InvalidHandle is never returned by a successful Open.
const InvalidHandle Handle = -1

// Valid reports whether h may refer to a live platform file.
func (h Handle) Valid() bool {
	return h != InvalidHandle
}

func (h Handle) String() string {
	if !h.Valid() {
		return "invalid"
	}
	return strconv.Itoa(int(h))
}

// InvalidPlatform is a Platform on which every operation fails with
// syscall.EBADF. It mimics the behavior of the os package when a file was
// never opened and is useful as a zero value for callers that must hold
// some Platform.
type InvalidPlatform struct {

	// Path is reported in the *fs.PathError returned from Open.
	Path string
}

func (p InvalidPlatform) Open(name string, flag int, perm fs.FileMode) (Handle, error) {
	if name == "" {
		name = p.Path
	}
	return InvalidHandle, &fs.PathError{Op: "open", Path: name, Err: syscall.EBADF}
}

func (InvalidPlatform) Read(h Handle, p []byte) (int, error) {
	return -1, syscall.EBADF
}

func (InvalidPlatform) Write(h Handle, p []byte) (int, error) {
	return -1, syscall.EBADF
}

func (InvalidPlatform) Seek(h Handle, offset int64, whence int) (int64, error) {
	return -1, syscall.EBADF
}

func (p InvalidPlatform) Stat(h Handle) (fs.FileInfo, error) {
	return nil, &fs.PathError{Op: "stat", Path: p.Path, Err: syscall.EBADF}
}

func (InvalidPlatform) Close(h Handle) error {
	return syscall.EBADF
}
