//go:build linux || darwin || freebsd || netbsd || openbsd

package osfs

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"

	"github.com/capnspacehook/reliablefile/absfs"
	"github.com/capnspacehook/reliablefile/inode"
)

// FileSystem hands out raw file descriptors as handles.
type FileSystem struct{}

func newFS() *FileSystem {
	return &FileSystem{}
}

func (*FileSystem) Open(name string, flag int, perm fs.FileMode) (absfs.Handle, error) {
	fd, err := unix.Open(name, flag|unix.O_CLOEXEC, uint32(perm.Perm()))
	if err != nil {
		return absfs.InvalidHandle, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return absfs.Handle(fd), nil
}

func (*FileSystem) Read(h absfs.Handle, p []byte) (int, error) {
	n, err := unix.Read(int(h), p)
	if err != nil {
		return -1, err
	}
	return n, nil
}

func (*FileSystem) Write(h absfs.Handle, p []byte) (int, error) {
	n, err := unix.Write(int(h), p)
	if err != nil {
		return -1, err
	}
	return n, nil
}

func (*FileSystem) Seek(h absfs.Handle, offset int64, whence int) (int64, error) {
	off, err := unix.Seek(int(h), offset, whence)
	if err != nil {
		return -1, err
	}
	return off, nil
}

func (*FileSystem) Stat(h absfs.Handle) (fs.FileInfo, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(h), &st); err != nil {
		return nil, &fs.PathError{Op: "fstat", Path: h.String(), Err: err}
	}

	node := &inode.Inode{
		Ino:   uint64(st.Ino),
		Mode:  fileMode(uint32(st.Mode)),
		Nlink: uint64(st.Nlink),
		Size:  st.Size,
		Atime: time.Unix(st.Atim.Unix()),
		Mtime: time.Unix(st.Mtim.Unix()),
		Ctime: time.Unix(st.Ctim.Unix()),
	}
	return &inode.Stat{Filename: h.String(), Node: node}, nil
}

func (*FileSystem) Close(h absfs.Handle) error {
	return unix.Close(int(h))
}

func fileMode(mode uint32) fs.FileMode {
	m := fs.FileMode(mode & 0o777)
	switch mode & unix.S_IFMT {
	case unix.S_IFBLK:
		m |= fs.ModeDevice
	case unix.S_IFCHR:
		m |= fs.ModeDevice | fs.ModeCharDevice
	case unix.S_IFDIR:
		m |= fs.ModeDir
	case unix.S_IFIFO:
		m |= fs.ModeNamedPipe
	case unix.S_IFLNK:
		m |= fs.ModeSymlink
	case unix.S_IFSOCK:
		m |= fs.ModeSocket
	}
	if mode&unix.S_ISGID != 0 {
		m |= fs.ModeSetgid
	}
	if mode&unix.S_ISUID != 0 {
		m |= fs.ModeSetuid
	}
	if mode&unix.S_ISVTX != 0 {
		m |= fs.ModeSticky
	}
	return m
}
