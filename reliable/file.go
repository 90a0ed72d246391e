// Package reliable provides File, a single platform file handle whose reads
// and writes either move exactly the requested number of bytes or fail with
// a classified *Error. Partial transfers are resumed and interrupted or
// would-block calls are retried within a configured attempt budget.
package reliable

import (
	"io"
	"log/slog"
	"syscall"

	"github.com/capnspacehook/reliablefile/absfs"
)

// File owns at most one platform handle. The zero value is not usable;
// create one with New or Open. A File must not be copied or used from more
// than one goroutine at a time.
type File struct {
	platform absfs.Platform
	config   Config
	logger   *slog.Logger

	handle absfs.Handle
	name   string
	flags  Flags
}

// New returns a closed File bound to p.
func New(p absfs.Platform, cfg Config) *File {
	if cfg.MaxReadAttempts < 1 {
		cfg.MaxReadAttempts = DefaultMaxAttempts
	}
	if cfg.Perm == 0 {
		cfg.Perm = DefaultPerm
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultConfig().Logger
	}
	return &File{
		platform: p,
		config:   cfg,
		logger:   cfg.Logger,
		handle:   absfs.InvalidHandle,
	}
}

// Open is New followed by (*File).Open.
func Open(p absfs.Platform, path string, mode AccessMode, flags CreationFlags, cfg Config) (*File, error) {
	f := New(p, cfg)
	if err := f.Open(path, mode, flags); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) IsOpen() bool {
	return f.handle.Valid()
}

// Name returns the path most recently passed to Open.
func (f *File) Name() string {
	return f.name
}

// Open acquires a handle for path. Write-only opens truncate the file unless
// flags include Append.
func (f *File) Open(path string, mode AccessMode, flags CreationFlags) error {
	if f.IsOpen() {
		return &Error{Op: "open", Path: path, Kind: ErrOpen, Err: errAlreadyOpen}
	}
	if !mode.valid() {
		return &Error{Op: "open", Path: path, Kind: ErrOpen, Err: syscall.EINVAL}
	}

	flag := OpenFlags(mode, flags)
	h, err := f.platform.Open(path, int(flag), f.config.Perm)
	if err != nil {
		return &Error{Op: "open", Path: path, Kind: ErrOpen, Err: err}
	}
	if !h.Valid() {
		return &Error{Op: "open", Path: path, Kind: ErrOpen, Err: syscall.EBADF}
	}

	f.handle = h
	f.name = path
	f.flags = flag
	f.logger.Debug("opened file", "path", path, "flags", flag, "handle", h)
	return nil
}

// ReadInto fills buf completely or returns an error. Reaching end of file
// first fails with ErrUnexpectedEOF. The contents of buf are undefined after
// a failure and the file offset may have advanced.
func (f *File) ReadInto(buf []byte) error {
	if !f.IsOpen() {
		return notOpen("read", f.name)
	}
	return f.transfer("read", ErrRead, f.config.MaxReadAttempts, buf, f.platform.Read)
}

// WriteFrom writes all of buf or returns an error. An empty buf makes no
// platform call.
func (f *File) WriteFrom(buf []byte) error {
	if !f.IsOpen() {
		return notOpen("write", f.name)
	}
	return f.transfer("write", ErrWrite, f.config.MaxWriteAttempts, buf, f.platform.Write)
}

func (f *File) transfer(op string, kind error, budget int, buf []byte, call func(absfs.Handle, []byte) (int, error)) error {
	var (
		total int
		try   = attempts{max: budget}
	)
	for total < len(buf) {
		if !try.left() {
			return &Error{Op: op, Path: f.name, Kind: ErrRetryExhausted, Attempts: try.tries, Err: try.last}
		}
		try.use()

		n, err := call(f.handle, buf[total:])
		switch {
		case err != nil:
			if !try.retry(err) {
				return &Error{Op: op, Path: f.name, Kind: kind, Attempts: try.tries, Err: err}
			}
			f.logger.Debug("retrying "+op, "path", f.name, "attempt", try.tries, "err", err)
		case n < 0:
			return &Error{Op: op, Path: f.name, Kind: kind, Attempts: try.tries, Err: syscall.EIO}
		case n == 0 && kind == ErrRead:
			return unexpectedEOF(op, f.name, try.tries)
		case n == 0:
			return &Error{Op: op, Path: f.name, Kind: kind, Attempts: try.tries, Err: io.ErrShortWrite}
		case n > len(buf)-total:
			return &Error{Op: op, Path: f.name, Kind: kind, Attempts: try.tries, Err: syscall.EOVERFLOW}
		default:
			total += n
		}
	}
	return nil
}

// SeekTo moves the file offset and returns the new absolute offset. On
// failure the offset returned is -1.
func (f *File) SeekTo(offset int64, whence Whence) (int64, error) {
	if !f.IsOpen() {
		return -1, notOpen("seek", f.name)
	}
	if !whence.valid() {
		return -1, &Error{Op: "seek", Path: f.name, Kind: ErrSeek, Err: syscall.EINVAL}
	}

	off, err := f.platform.Seek(f.handle, offset, int(whence))
	if err != nil {
		return -1, &Error{Op: "seek", Path: f.name, Kind: ErrSeek, Err: err}
	}
	if off < 0 {
		return -1, &Error{Op: "seek", Path: f.name, Kind: ErrSeek, Err: syscall.EINVAL}
	}
	return off, nil
}

// Length returns the current size of the file.
func (f *File) Length() (int64, error) {
	if !f.IsOpen() {
		return 0, notOpen("stat", f.name)
	}

	info, err := f.platform.Stat(f.handle)
	if err != nil {
		return 0, &Error{Op: "stat", Path: f.name, Kind: ErrStat, Err: err}
	}
	return info.Size(), nil
}

// Close releases the handle. It is safe to call on a closed File. Errors
// from the platform are logged and passed to Config.OnCloseError but not
// returned.
func (f *File) Close() {
	if !f.IsOpen() {
		return
	}

	h := f.handle
	f.handle = absfs.InvalidHandle
	if err := f.platform.Close(h); err != nil {
		f.logger.Warn("error closing file", "path", f.name, "handle", h, "err", err)
		if f.config.OnCloseError != nil {
			f.config.OnCloseError(f.name, err)
		}
		return
	}
	f.logger.Debug("closed file", "path", f.name, "handle", h)
}
