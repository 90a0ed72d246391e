// Package ioutil implements whole-file helpers on top of reliable.File. Every
// transfer goes through ReadInto and WriteFrom, so a helper either moves the
// whole file or reports a *reliable.Error.
package ioutil

import (
	"os"
	"path/filepath"

	"github.com/capnspacehook/reliablefile/absfs"
	"github.com/capnspacehook/reliablefile/reliable"
)

// copyChunk is the largest buffer CopyFile moves per ReadInto.
const copyChunk = 32 * 1024

// Opener opens reliable files by name.
type Opener interface {
	Open(name string, mode reliable.AccessMode, flags reliable.CreationFlags) (*reliable.File, error)
}

// PlatformOpener opens files on Platform with Config.
type PlatformOpener struct {
	Platform absfs.Platform
	Config   reliable.Config
}

func (o PlatformOpener) Open(name string, mode reliable.AccessMode, flags reliable.CreationFlags) (*reliable.File, error) {
	return reliable.Open(o.Platform, name, mode, flags, o.Config)
}

// TempDir returns the platform's temporary directory, or os.TempDir if the
// platform doesn't name one.
func (o PlatformOpener) TempDir() string {
	if p, ok := o.Platform.(interface{ TempDir() string }); ok {
		return p.TempDir()
	}
	return os.TempDir()
}

// Join joins path elements the way the platform expects, using
// filepath.Join unless the platform provides its own.
func (o PlatformOpener) Join(elem ...string) string {
	if p, ok := o.Platform.(interface{ Join(elem ...string) string }); ok {
		return p.Join(elem...)
	}
	return filepath.Join(elem...)
}

// ReadFile reads the whole named file.
func ReadFile(o Opener, name string) ([]byte, error) {
	f, err := o.Open(name, reliable.ReadOnly, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	size, err := f.Length()
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if err := f.ReadInto(data); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFile writes data to the named file, creating it if necessary and
// replacing any previous contents.
func WriteFile(o Opener, name string, data []byte) error {
	f, err := o.Open(name, reliable.WriteOnly, reliable.Create)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.WriteFrom(data)
}

// AppendFile adds data to the end of the named file, creating it if
// necessary.
func AppendFile(o Opener, name string, data []byte) error {
	f, err := o.Open(name, reliable.WriteOnly, reliable.Create|reliable.Append)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.WriteFrom(data)
}

// CopyFile copies the contents of src, opened with from, into dst, opened
// with to, and returns the number of bytes copied. The openers may belong to
// different platforms.
func CopyFile(to Opener, dst string, from Opener, src string) (int64, error) {
	in, err := from.Open(src, reliable.ReadOnly, 0)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	remaining, err := in.Length()
	if err != nil {
		return 0, err
	}

	out, err := to.Open(dst, reliable.WriteOnly, reliable.Create)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	buf := make([]byte, min(remaining, copyChunk))
	var copied int64
	for remaining > 0 {
		chunk := buf[:min(remaining, int64(len(buf)))]
		if err := in.ReadInto(chunk); err != nil {
			return copied, err
		}
		if err := out.WriteFrom(chunk); err != nil {
			return copied, err
		}
		copied += int64(len(chunk))
		remaining -= int64(len(chunk))
	}
	return copied, nil
}
