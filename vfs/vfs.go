package vfs

import (
	"io"
	stdfs "io/fs"
	"os"
	"sync"
	"syscall"

	"github.com/capnspacehook/reliablefile/absfs"
	"github.com/capnspacehook/reliablefile/inode"
)

const (
	PathSeparator = '/'

	tempDir = "/tmp"

	_O_ACCESS = 0x3 // masks the access mode (os.O_RDONLY, os.O_WRONLY, or os.O_RDWR)
)

// FileSystem is an in-memory absfs.Platform. File contents are kept sealed
// with a per-file key and are only decrypted for the duration of a single
// Read or Write call. Names form a flat namespace rooted at "/"; relative
// names are resolved against it.
type FileSystem struct {
	mtx sync.RWMutex

	ino   inode.Ino
	names inode.Table
	data  map[uint64]*sealedFile

	handles map[absfs.Handle]*file
	next    absfs.Handle
}

var _ absfs.Platform = (*FileSystem)(nil)

func NewFS() *FileSystem {
	return &FileSystem{
		data:    make(map[uint64]*sealedFile),
		handles: make(map[absfs.Handle]*file),
		next:    3, // mirror the first descriptor a process usually gets
	}
}

func (fs *FileSystem) Open(name string, flag int, perm stdfs.FileMode) (absfs.Handle, error) {
	if name == "" {
		return absfs.InvalidHandle, &stdfs.PathError{Op: "open", Path: name, Err: syscall.ENOENT}
	}
	abs := inode.Abs("/", name)
	if abs == "/" {
		return absfs.InvalidHandle, &stdfs.PathError{Op: "open", Path: name, Err: syscall.EISDIR}
	}

	fs.mtx.Lock()
	defer fs.mtx.Unlock()

	access := flag & _O_ACCESS
	create := flag&os.O_CREATE != 0
	truncate := flag&os.O_TRUNC != 0

	node, err := fs.names.Resolve(abs)
	exists := err == nil

	// error if it does not exist, and we are not allowed to create it.
	if !exists && !create {
		return absfs.InvalidHandle, &stdfs.PathError{Op: "open", Path: name, Err: syscall.ENOENT}
	}
	if exists {
		// err if exclusive create is required
		if create && flag&os.O_EXCL != 0 {
			return absfs.InvalidHandle, &stdfs.PathError{Op: "open", Path: name, Err: syscall.EEXIST}
		}
		if truncate && access != os.O_RDONLY {
			if err := fs.data[node.Ino].reset(); err != nil {
				return absfs.InvalidHandle, &stdfs.PathError{Op: "open", Path: name, Err: err}
			}
			node.Resize(0)
		}
	} else {
		node = fs.ino.New(perm)
		fs.names.Link(abs, node)
		fs.data[node.Ino] = new(sealedFile)
	}

	h := fs.next
	fs.next++
	fs.handles[h] = &file{
		name:  abs,
		flags: flag,
		node:  node,
		data:  fs.data[node.Ino],
	}

	return h, nil
}

func (fs *FileSystem) Read(h absfs.Handle, p []byte) (int, error) {
	f, err := fs.file(h)
	if err != nil {
		return -1, err
	}
	return f.read(p)
}

func (fs *FileSystem) Write(h absfs.Handle, p []byte) (int, error) {
	f, err := fs.file(h)
	if err != nil {
		return -1, err
	}
	return f.write(p)
}

func (fs *FileSystem) Seek(h absfs.Handle, offset int64, whence int) (int64, error) {
	f, err := fs.file(h)
	if err != nil {
		return -1, err
	}
	return f.seek(offset, whence)
}

func (fs *FileSystem) Stat(h absfs.Handle) (stdfs.FileInfo, error) {
	f, err := fs.file(h)
	if err != nil {
		return nil, &stdfs.PathError{Op: "stat", Path: h.String(), Err: err}
	}
	return &inode.Stat{Filename: inode.Base(f.name), Node: f.node}, nil
}

func (fs *FileSystem) Close(h absfs.Handle) error {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()

	f, ok := fs.handles[h]
	if !ok {
		return syscall.EBADF
	}
	delete(fs.handles, h)

	// the last handle on an unlinked file releases its contents
	if f.node.Nlink == 0 && !fs.inUse(f.node) {
		f.data.wipe()
		delete(fs.data, f.node.Ino)
	}

	return nil
}

// Remove unlinks name. Open handles to the file keep working until closed.
func (fs *FileSystem) Remove(name string) error {
	abs := inode.Abs("/", name)

	fs.mtx.Lock()
	defer fs.mtx.Unlock()

	node, err := fs.names.Resolve(abs)
	if err != nil {
		return &stdfs.PathError{Op: "remove", Path: name, Err: err}
	}
	if err := fs.names.Unlink(abs); err != nil {
		return &stdfs.PathError{Op: "remove", Path: name, Err: err}
	}
	if node.Nlink == 0 && !fs.inUse(node) {
		fs.data[node.Ino].wipe()
		delete(fs.data, node.Ino)
	}

	return nil
}

// Exists reports whether name is linked in the file system.
func (fs *FileSystem) Exists(name string) bool {
	fs.mtx.RLock()
	defer fs.mtx.RUnlock()

	_, err := fs.names.Resolve(inode.Abs("/", name))
	return err == nil
}

// OpenHandles returns the number of handles that have not been closed.
func (fs *FileSystem) OpenHandles() int {
	fs.mtx.RLock()
	defer fs.mtx.RUnlock()

	return len(fs.handles)
}

// Purge wipes the contents and keys of every file, unlinks every name and
// invalidates every open handle. Other FileSystems are unaffected.
func (fs *FileSystem) Purge() {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()

	for ino, data := range fs.data {
		data.wipe()
		delete(fs.data, ino)
	}
	fs.names = nil
	clear(fs.handles)
}

func (fs *FileSystem) TempDir() string {
	return tempDir
}

func (fs *FileSystem) file(h absfs.Handle) (*file, error) {
	fs.mtx.RLock()
	defer fs.mtx.RUnlock()

	f, ok := fs.handles[h]
	if !ok {
		return nil, syscall.EBADF
	}
	return f, nil
}

func (fs *FileSystem) inUse(node *inode.Inode) bool {
	for _, f := range fs.handles {
		if f.node == node {
			return true
		}
	}
	return false
}

func validWhence(whence int) bool {
	switch whence {
	case io.SeekStart, io.SeekCurrent, io.SeekEnd:
		return true
	}
	return false
}
