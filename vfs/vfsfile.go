package vfs

import (
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/awnumar/fastrand"
	"github.com/awnumar/memguard"
	"github.com/awnumar/memguard/core"

	"github.com/capnspacehook/reliablefile/inode"
)

const keySize = 32

// sealedFile holds the encrypted contents of one inode. Every handle open on
// the inode shares it.
type sealedFile struct {
	mtx sync.RWMutex

	ciphertext []byte
	key        *memguard.Enclave
}

// open decrypts the contents into a fresh slice the caller must wipe.
func (s *sealedFile) open() ([]byte, error) {
	if len(s.ciphertext) == 0 {
		return nil, nil
	}

	key, err := s.key.Open()
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	plaintext := make([]byte, len(s.ciphertext)-core.Overhead)
	if _, err := core.Decrypt(s.ciphertext, key.Bytes(), plaintext); err != nil {
		core.Wipe(plaintext)
		return nil, err
	}

	return plaintext, nil
}

// seal replaces the contents with plaintext under a new key. plaintext is
// left untouched.
func (s *sealedFile) seal(plaintext []byte) error {
	if len(plaintext) == 0 {
		s.ciphertext = nil
		s.key = nil
		return nil
	}

	newKey := memguard.NewBufferFromBytes(fastrand.Bytes(keySize))
	ciphertext, err := core.Encrypt(plaintext, newKey.Bytes())
	if err != nil {
		newKey.Destroy()
		return err
	}

	s.ciphertext = ciphertext
	s.key = newKey.Seal()

	return nil
}

func (s *sealedFile) reset() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.seal(nil)
}

func (s *sealedFile) wipe() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	core.Wipe(s.ciphertext)
	s.ciphertext = nil
	s.key = nil
}

// file is the per-handle state: the open flags and the cursor.
type file struct {
	name   string
	flags  int
	node   *inode.Inode
	data   *sealedFile
	offset int64
}

func (f *file) read(p []byte) (int, error) {
	if f.flags&_O_ACCESS == os.O_WRONLY {
		return -1, syscall.EBADF
	}
	if len(p) == 0 {
		return 0, nil
	}

	f.data.mtx.RLock()
	defer f.data.mtx.RUnlock()

	plaintext, err := f.data.open()
	if err != nil {
		return -1, err
	}
	defer core.Wipe(plaintext)

	f.node.Touch()
	if f.offset >= int64(len(plaintext)) {
		return 0, nil
	}

	n := copy(p, plaintext[f.offset:])
	f.offset += int64(n)

	return n, nil
}

func (f *file) write(p []byte) (int, error) {
	if f.flags&_O_ACCESS == os.O_RDONLY {
		return -1, syscall.EBADF
	}

	f.data.mtx.Lock()
	defer f.data.mtx.Unlock()

	plaintext, err := f.data.open()
	if err != nil {
		return -1, err
	}

	if f.flags&os.O_APPEND != 0 {
		f.offset = int64(len(plaintext))
	}

	if end := f.offset + int64(len(p)); end > int64(len(plaintext)) {
		grown := make([]byte, end)
		core.Copy(grown, plaintext)
		core.Wipe(plaintext)
		plaintext = grown
	}
	defer core.Wipe(plaintext)

	n := copy(plaintext[f.offset:], p)
	if err := f.data.seal(plaintext); err != nil {
		return -1, err
	}
	f.offset += int64(n)
	f.node.Resize(int64(len(plaintext)))

	return n, nil
}

func (f *file) seek(offset int64, whence int) (int64, error) {
	if !validWhence(whence) {
		return -1, syscall.EINVAL
	}

	var base int64
	switch whence {
	case io.SeekCurrent:
		base = f.offset
	case io.SeekEnd:
		f.node.RLock()
		base = f.node.Size
		f.node.RUnlock()
	}

	off := base + offset
	if off < 0 {
		return -1, syscall.EINVAL
	}
	f.offset = off

	return off, nil
}
