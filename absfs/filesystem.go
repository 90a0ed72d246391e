package absfs

import "io/fs"

// Platform is the set of raw file primitives a reliable file is built on.
// Every method maps onto a single system call and performs no retrying of
// its own; errors are returned as syscall.Errno values, either bare or
// wrapped in a *fs.PathError.
type Platform interface {
	// Open opens the named file with the given open(2) style flags and
	// creation permission. On failure it returns InvalidHandle and an error.
	Open(name string, flag int, perm fs.FileMode) (Handle, error)

	// Read reads up to len(p) bytes into p. It returns the number of bytes
	// read, which is zero at end of file. Unlike io.Reader, end of file is
	// not reported as an error. On failure it returns -1 and the error.
	Read(h Handle, p []byte) (int, error)

	// Write writes up to len(p) bytes from p. It may write fewer bytes than
	// requested without returning an error. On failure it returns -1 and the
	// error.
	Write(h Handle, p []byte) (int, error)

	// Seek sets the offset for the next Read or Write on h to offset,
	// interpreted according to whence: io.SeekStart, io.SeekCurrent or
	// io.SeekEnd. It returns the new offset, or -1 and an error.
	Seek(h Handle, offset int64, whence int) (int64, error)

	// Stat returns metadata for the file referenced by h.
	Stat(h Handle) (fs.FileInfo, error)

	// Close releases h. Closing an unknown handle reports syscall.EBADF.
	Close(h Handle) error
}
