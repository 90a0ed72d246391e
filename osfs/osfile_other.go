//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package osfs

import (
	"errors"
	"io"
	stdfs "io/fs"
	"os"
	"sync"
	"syscall"

	"github.com/capnspacehook/reliablefile/absfs"
)

// FileSystem keeps a table of *os.File values keyed by handle.
type FileSystem struct {
	mtx   sync.RWMutex
	files map[absfs.Handle]*os.File
	next  absfs.Handle
}

func newFS() *FileSystem {
	return &FileSystem{
		files: make(map[absfs.Handle]*os.File),
		next:  3,
	}
}

func (fs *FileSystem) Open(name string, flag int, perm stdfs.FileMode) (absfs.Handle, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return absfs.InvalidHandle, err
	}

	fs.mtx.Lock()
	defer fs.mtx.Unlock()

	h := fs.next
	fs.next++
	fs.files[h] = f

	return h, nil
}

func (fs *FileSystem) Read(h absfs.Handle, p []byte) (int, error) {
	f, err := fs.file(h)
	if err != nil {
		return -1, err
	}
	n, err := f.Read(p)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	if err != nil {
		return -1, err
	}
	return n, nil
}

func (fs *FileSystem) Write(h absfs.Handle, p []byte) (int, error) {
	f, err := fs.file(h)
	if err != nil {
		return -1, err
	}
	n, err := f.Write(p)
	if err != nil && n == 0 {
		return -1, err
	}
	// a short write is reported as progress; the caller writes the rest
	return n, nil
}

func (fs *FileSystem) Seek(h absfs.Handle, offset int64, whence int) (int64, error) {
	f, err := fs.file(h)
	if err != nil {
		return -1, err
	}
	off, err := f.Seek(offset, whence)
	if err != nil {
		return -1, err
	}
	return off, nil
}

func (fs *FileSystem) Stat(h absfs.Handle) (stdfs.FileInfo, error) {
	f, err := fs.file(h)
	if err != nil {
		return nil, err
	}
	return f.Stat()
}

func (fs *FileSystem) Close(h absfs.Handle) error {
	fs.mtx.Lock()
	f, ok := fs.files[h]
	delete(fs.files, h)
	fs.mtx.Unlock()

	if !ok {
		return syscall.EBADF
	}
	return f.Close()
}

func (fs *FileSystem) file(h absfs.Handle) (*os.File, error) {
	fs.mtx.RLock()
	defer fs.mtx.RUnlock()

	f, ok := fs.files[h]
	if !ok {
		return nil, syscall.EBADF
	}
	return f, nil
}
