package osfs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/matryer/is"

	"github.com/capnspacehook/reliablefile/absfs"
)

func TestOpenReadWrite(t *testing.T) {
	is := is.New(t)

	fs := NewFS()
	name := filepath.Join(t.TempDir(), "osfs")

	h, err := fs.Open(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	is.NoErr(err)
	is.True(h.Valid())

	n, err := fs.Write(h, []byte("hello, world\n"))
	is.NoErr(err)
	is.Equal(n, 13)

	info, err := fs.Stat(h)
	is.NoErr(err)
	is.Equal(info.Size(), int64(13))
	is.True(info.Mode().IsRegular())

	off, err := fs.Seek(h, 7, io.SeekStart)
	is.NoErr(err)
	is.Equal(off, int64(7))

	buf := make([]byte, 16)
	n, err = fs.Read(h, buf)
	is.NoErr(err)
	is.Equal(string(buf[:n]), "world\n")

	// end of file is a zero count, not an error
	n, err = fs.Read(h, buf)
	is.NoErr(err)
	is.Equal(n, 0)

	is.NoErr(fs.Close(h))

	data, err := os.ReadFile(name)
	is.NoErr(err)
	is.Equal(string(data), "hello, world\n")
}

func TestOpenErrors(t *testing.T) {
	fs := NewFS()
	dir := t.TempDir()

	h, err := fs.Open(filepath.Join(dir, "missing"), os.O_RDONLY, 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Open missing file: %v; want ErrNotExist", err)
	}
	if h != absfs.InvalidHandle {
		t.Fatalf("failed Open returned handle %v", h)
	}

	name := filepath.Join(dir, "exists")
	if err := os.WriteFile(name, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = fs.Open(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("exclusive Open of existing file: %v; want ErrExist", err)
	}
}

func TestSeekInvalid(t *testing.T) {
	is := is.New(t)

	fs := NewFS()
	h, err := fs.Open(filepath.Join(t.TempDir(), "seek"), os.O_RDWR|os.O_CREATE, 0o600)
	is.NoErr(err)
	defer fs.Close(h)

	off, err := fs.Seek(h, -1, io.SeekStart)
	is.Equal(off, int64(-1))
	is.True(errors.Is(err, syscall.EINVAL))
}

func TestClosedHandle(t *testing.T) {
	is := is.New(t)

	fs := NewFS()
	h, err := fs.Open(filepath.Join(t.TempDir(), "closed"), os.O_RDWR|os.O_CREATE, 0o600)
	is.NoErr(err)
	is.NoErr(fs.Close(h))

	n, err := fs.Read(h, make([]byte, 1))
	is.Equal(n, -1)
	is.True(errors.Is(err, syscall.EBADF))

	n, err = fs.Write(h, []byte("x"))
	is.Equal(n, -1)
	is.True(errors.Is(err, syscall.EBADF))

	is.True(errors.Is(fs.Close(h), syscall.EBADF))
}
