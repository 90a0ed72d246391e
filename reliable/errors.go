package reliable

import (
	"errors"
	"io"
	"strconv"
	"syscall"
)

// Error kinds. Every error returned by a File is an *Error whose Kind is one
// of these, so callers can test with errors.Is.
var (
	ErrOpen           = errors.New("open failed")
	ErrRead           = errors.New("read failed")
	ErrUnexpectedEOF  = errors.New("unexpected end of file")
	ErrRetryExhausted = errors.New("retry budget exhausted")
	ErrWrite          = errors.New("write failed")
	ErrSeek           = errors.New("seek failed")
	ErrStat           = errors.New("stat failed")
	ErrNotOpen        = errors.New("file not open")
)

// Error records a failed File operation and the path it was applied to.
type Error struct {
	Op       string
	Path     string
	Kind     error
	Attempts int   // platform calls made; zero for operations that don't retry
	Err      error // underlying platform error, if any
}

func (e *Error) Error() string {
	s := e.Op + " " + e.Path + ": " + e.Kind.Error()
	if e.Attempts > 0 {
		s += " after " + strconv.Itoa(e.Attempts) + " attempts"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notOpen(op, path string) error {
	return &Error{Op: op, Path: path, Kind: ErrNotOpen, Err: syscall.EBADF}
}

func unexpectedEOF(op, path string, attempts int) error {
	return &Error{Op: op, Path: path, Kind: ErrUnexpectedEOF, Attempts: attempts, Err: io.ErrUnexpectedEOF}
}

var errAlreadyOpen = errors.New("file already open")
