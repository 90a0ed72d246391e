package ioutil

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/awnumar/fastrand"

	"github.com/capnspacehook/reliablefile/reliable"
)

const maxTempTries = 10000

func nextSuffix() string {
	return hex.EncodeToString(fastrand.Bytes(6))
}

// TempFile creates a new file in dir with a name beginning with prefix,
// opens it for reading and writing and returns it. If dir is empty the
// opener's TempDir is used when it has one, os.TempDir otherwise. Names are
// joined with the opener's Join when it has one.
// Concurrent callers will not choose the same file. The caller can use
// f.Name() to find the pathname of the file and must remove it when it is no
// longer needed.
func TempFile(o Opener, dir, prefix string) (f *reliable.File, err error) {
	if dir == "" {
		dir = os.TempDir()
		if t, ok := o.(interface{ TempDir() string }); ok {
			dir = t.TempDir()
		}
	}

	join := filepath.Join
	if j, ok := o.(interface{ Join(elem ...string) string }); ok {
		join = j.Join
	}

	for range maxTempTries {
		name := join(dir, prefix+nextSuffix())
		f, err = o.Open(name, reliable.ReadWrite, reliable.Create|reliable.Exclusive)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		break
	}
	return
}
