// Package faultfs wraps an absfs.Platform and injects scripted faults into
// its calls: transient and fatal errors, short transfers and premature end
// of file. Each call of an operation consumes the next queued fault for that
// operation; once the queue is empty calls pass straight through.
package faultfs

import (
	"fmt"
	stdfs "io/fs"
	"sync"
	"syscall"

	"github.com/capnspacehook/reliablefile/absfs"
)

type Op int

const (
	OpOpen Op = iota
	OpRead
	OpWrite
	OpSeek
	OpStat
	OpClose
)

var opNames = [...]string{"open", "read", "write", "seek", "stat", "close"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// Fault describes the outcome of one intercepted call.
type Fault struct {
	// Err fails the call with Err without reaching the wrapped platform.
	Err error

	// Limit caps a read or write to at most Limit bytes. The capped call
	// does reach the wrapped platform.
	Limit int

	// Zero makes a read or write report zero bytes transferred without
	// reaching the wrapped platform. For reads this looks like end of file.
	Zero bool
}

// Interrupted fails a call with EINTR.
func Interrupted() Fault { return Fault{Err: syscall.EINTR} }

// WouldBlock fails a call with EAGAIN.
func WouldBlock() Fault { return Fault{Err: syscall.EAGAIN} }

// Fail fails a call with err.
func Fail(err error) Fault { return Fault{Err: err} }

// Short lets at most n bytes through.
func Short(n int) Fault { return Fault{Limit: n} }

// EOF reports zero bytes transferred.
func EOF() Fault { return Fault{Zero: true} }

// Repeat returns n copies of f.
func Repeat(f Fault, n int) []Fault {
	faults := make([]Fault, n)
	for i := range faults {
		faults[i] = f
	}
	return faults
}

type FileSystem struct {
	base absfs.Platform

	mtx    sync.Mutex
	faults map[Op][]Fault
	calls  map[Op]int
}

var _ absfs.Platform = (*FileSystem)(nil)

func New(base absfs.Platform) *FileSystem {
	return &FileSystem{
		base:   base,
		faults: make(map[Op][]Fault),
		calls:  make(map[Op]int),
	}
}

// Inject queues faults for op behind any already queued.
func (fs *FileSystem) Inject(op Op, faults ...Fault) {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()

	fs.faults[op] = append(fs.faults[op], faults...)
}

// Calls returns how many times op has been called, faulted or not.
func (fs *FileSystem) Calls(op Op) int {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()

	return fs.calls[op]
}

// Pending returns how many faults are still queued for op.
func (fs *FileSystem) Pending(op Op) int {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()

	return len(fs.faults[op])
}

// Reset drops queued faults and zeroes the call counters.
func (fs *FileSystem) Reset() {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()

	fs.faults = make(map[Op][]Fault)
	fs.calls = make(map[Op]int)
}

func (fs *FileSystem) next(op Op) (Fault, bool) {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()

	fs.calls[op]++
	queue := fs.faults[op]
	if len(queue) == 0 {
		return Fault{}, false
	}
	fs.faults[op] = queue[1:]
	return queue[0], true
}

func (fs *FileSystem) Open(name string, flag int, perm stdfs.FileMode) (absfs.Handle, error) {
	if f, ok := fs.next(OpOpen); ok && f.Err != nil {
		return absfs.InvalidHandle, &stdfs.PathError{Op: "open", Path: name, Err: f.Err}
	}
	return fs.base.Open(name, flag, perm)
}

func (fs *FileSystem) Read(h absfs.Handle, p []byte) (int, error) {
	f, ok := fs.next(OpRead)
	if ok {
		switch {
		case f.Err != nil:
			return -1, f.Err
		case f.Zero:
			return 0, nil
		case f.Limit > 0 && f.Limit < len(p):
			p = p[:f.Limit]
		}
	}
	return fs.base.Read(h, p)
}

func (fs *FileSystem) Write(h absfs.Handle, p []byte) (int, error) {
	f, ok := fs.next(OpWrite)
	if ok {
		switch {
		case f.Err != nil:
			return -1, f.Err
		case f.Zero:
			return 0, nil
		case f.Limit > 0 && f.Limit < len(p):
			p = p[:f.Limit]
		}
	}
	return fs.base.Write(h, p)
}

func (fs *FileSystem) Seek(h absfs.Handle, offset int64, whence int) (int64, error) {
	if f, ok := fs.next(OpSeek); ok && f.Err != nil {
		return -1, f.Err
	}
	return fs.base.Seek(h, offset, whence)
}

func (fs *FileSystem) Stat(h absfs.Handle) (stdfs.FileInfo, error) {
	if f, ok := fs.next(OpStat); ok && f.Err != nil {
		return nil, &stdfs.PathError{Op: "stat", Path: h.String(), Err: f.Err}
	}
	return fs.base.Stat(h)
}

// Close always closes the wrapped handle; an injected error is reported
// after the handle has been released.
func (fs *FileSystem) Close(h absfs.Handle) error {
	err := fs.base.Close(h)
	if f, ok := fs.next(OpClose); ok && f.Err != nil {
		return f.Err
	}
	return err
}
