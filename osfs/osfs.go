// Package osfs provides the absfs.Platform backed by the host operating
// system. On unix systems every method is a single raw system call; other
// systems go through a table of *os.File values.
package osfs

import (
	"os"

	"github.com/capnspacehook/reliablefile/absfs"
)

var _ absfs.Platform = (*FileSystem)(nil)

func NewFS() *FileSystem {
	return newFS()
}

func (*FileSystem) TempDir() string {
	return os.TempDir()
}

// Remove deletes the named file.
func (*FileSystem) Remove(name string) error {
	return os.Remove(name)
}
