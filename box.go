// Package reliablefile routes reliable file access between the host file
// system and a sealed in-memory one. Paths starting with "vfs://" are kept
// in memory, encrypted at rest; every other path goes to the operating
// system.
package reliablefile

import (
	"fmt"
	stdfs "io/fs"

	"github.com/capnspacehook/reliablefile/absfs"
	"github.com/capnspacehook/reliablefile/ioutil"
	"github.com/capnspacehook/reliablefile/osfs"
	"github.com/capnspacehook/reliablefile/reliable"
	"github.com/capnspacehook/reliablefile/vfs"
)

type platform interface {
	absfs.Platform
	Remove(name string) error
	TempDir() string
}

// vfsPlatform serves "vfs://" names from the in-memory file system. Files
// opened through it keep the prefixed name, so File.Name can be handed back
// to the Box.
type vfsPlatform struct {
	*vfs.FileSystem
}

func (p vfsPlatform) Open(name string, flag int, perm stdfs.FileMode) (absfs.Handle, error) {
	vfsName, _ := ConvertVFSPath(name)
	return p.FileSystem.Open(vfsName, flag, perm)
}

func (p vfsPlatform) Remove(name string) error {
	vfsName, _ := ConvertVFSPath(name)
	return p.FileSystem.Remove(vfsName)
}

func (p vfsPlatform) TempDir() string {
	return MakeVFSPath(p.FileSystem.TempDir())
}

func (vfsPlatform) Join(elem ...string) string {
	return Join(elem...)
}

type Box struct {
	osfs   *osfs.FileSystem
	vfs    vfsPlatform
	config reliable.Config
}

var _ ioutil.Opener = (*Box)(nil)

// NewBox returns a Box whose files are configured by opts.
func NewBox(opts ...reliable.Option) (*Box, error) {
	config, err := reliable.NewConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("configuring box: %w", err)
	}

	box := new(Box)
	box.osfs = osfs.NewFS()
	box.vfs = vfsPlatform{vfs.NewFS()}
	box.config = config

	return box, nil
}

func (b *Box) route(name string) platform {
	if IsVFSPath(name) {
		return b.vfs
	}
	return b.osfs
}

func (b *Box) opener(name string) ioutil.PlatformOpener {
	return ioutil.PlatformOpener{Platform: b.route(name), Config: b.config}
}

// Open opens name with the given access mode and creation flags.
func (b *Box) Open(name string, mode reliable.AccessMode, flags reliable.CreationFlags) (*reliable.File, error) {
	return reliable.Open(b.route(name), name, mode, flags, b.config)
}

// Create creates or truncates name and opens it for reading and writing.
func (b *Box) Create(name string) (*reliable.File, error) {
	return b.Open(name, reliable.ReadWrite, reliable.Create|reliable.Truncate)
}

// With opens name, passes it to fn and closes it when fn returns or panics.
func (b *Box) With(name string, mode reliable.AccessMode, flags reliable.CreationFlags, fn func(*reliable.File) error) error {
	f, err := b.Open(name, mode, flags)
	if err != nil {
		return err
	}
	defer f.Close()

	return fn(f)
}

func (b *Box) Remove(name string) error {
	return b.route(name).Remove(name)
}

// TempDir returns the temporary directory of the in-memory platform when
// vfsMode is set, and of the host otherwise.
func (b *Box) TempDir(vfsMode bool) string {
	if vfsMode {
		return b.vfs.TempDir()
	}
	return b.osfs.TempDir()
}

// ioutil methods

func (b *Box) ReadFile(filename string) ([]byte, error) {
	return ioutil.ReadFile(b.opener(filename), filename)
}

func (b *Box) WriteFile(filename string, data []byte) error {
	return ioutil.WriteFile(b.opener(filename), filename, data)
}

func (b *Box) AppendFile(filename string, data []byte) error {
	return ioutil.AppendFile(b.opener(filename), filename, data)
}

// CopyFile copies src to dst. Either may be a VFS path.
func (b *Box) CopyFile(dst, src string) (int64, error) {
	return ioutil.CopyFile(b.opener(dst), dst, b.opener(src), src)
}

// TempFile creates a temporary file in dir. An empty dir selects the host's
// temporary directory and "vfs://" selects the in-memory one. The name of
// the returned file keeps its "vfs://" prefix.
func (b *Box) TempFile(dir, prefix string) (*reliable.File, error) {
	if dir == VFSPrefix {
		dir = b.TempDir(true)
	}
	return ioutil.TempFile(b.opener(dir), dir, prefix)
}

// Close wipes the contents and keys of every in-memory file held by this
// Box. Open VFS files become unusable. Host files and other Boxes are not
// affected.
func (b *Box) Close() {
	b.vfs.Purge()
}
