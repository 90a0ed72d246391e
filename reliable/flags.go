package reliable

import (
	"io"
	"os"
	"strconv"
	"strings"
)

const O_ACCESS = 0x3 // masks the access mode (O_RDONLY, O_WRONLY, or O_RDWR)

// AccessMode selects how a file is opened. Exactly one must be given.
type AccessMode int

const (
	ReadOnly  = AccessMode(os.O_RDONLY) // open the file read-only.
	WriteOnly = AccessMode(os.O_WRONLY) // open the file write-only.
	ReadWrite = AccessMode(os.O_RDWR)   // open the file read-write.
)

func (m AccessMode) valid() bool {
	switch m {
	case ReadOnly, WriteOnly, ReadWrite:
		return true
	}
	return false
}

func (m AccessMode) String() string {
	switch m {
	case ReadOnly:
		return "O_RDONLY"
	case WriteOnly:
		return "O_WRONLY"
	case ReadWrite:
		return "O_RDWR"
	}
	return "AccessMode(" + strconv.Itoa(int(m)) + ")"
}

// CreationFlags may be or'ed together to control how a file is opened.
type CreationFlags int

const (
	Append    = CreationFlags(os.O_APPEND) // append data to the file when writing.
	Create    = CreationFlags(os.O_CREATE) // create a new file if none exists.
	Exclusive = CreationFlags(os.O_EXCL)   // used with Create, file must not exist.
	Sync      = CreationFlags(os.O_SYNC)   // open for synchronous I/O.
	Truncate  = CreationFlags(os.O_TRUNC)  // truncate file when opened.

	allCreationFlags = Append | Create | Exclusive | Sync | Truncate
)

var creationNames = []struct {
	flag CreationFlags
	name string
}{
	{Append, "O_APPEND"},
	{Create, "O_CREATE"},
	{Exclusive, "O_EXCL"},
	{Sync, "O_SYNC"},
	{Truncate, "O_TRUNC"},
}

// String renders only the creation bits, e.g. "O_CREATE|O_EXCL".
func (f CreationFlags) String() string {
	var out []string
	for _, c := range creationNames {
		if f&c.flag != 0 {
			out = append(out, c.name)
		}
	}
	return strings.Join(out, "|")
}

// Flags is the combined open(2) flag word handed to a platform.
type Flags int

// OpenFlags combines an access mode and creation flags into the flag word
// passed to the platform. A write-only open always truncates the file unless
// the caller asked to append.
func OpenFlags(mode AccessMode, flags CreationFlags) Flags {
	if mode == WriteOnly && flags&Append == 0 {
		flags |= Truncate
	}
	return Flags(int(mode) | int(flags&allCreationFlags))
}

func (f Flags) Access() AccessMode {
	return AccessMode(int(f) & O_ACCESS)
}

func (f Flags) Creation() CreationFlags {
	return CreationFlags(f) & allCreationFlags
}

func (f Flags) String() string {
	var out []string
	flags := int(f)
	switch flags & O_ACCESS {
	case os.O_RDONLY:
		out = append(out, "O_RDONLY")
	case os.O_RDWR:
		out = append(out, "O_RDWR")
	case os.O_WRONLY:
		out = append(out, "O_WRONLY")
	}
	if creation := f.Creation().String(); creation != "" {
		out = append(out, creation)
	}
	return strings.Join(out, "|")
}

// Whence is the reference point for a seek offset.
type Whence int

const (
	FromStart   = Whence(io.SeekStart)
	FromCurrent = Whence(io.SeekCurrent)
	FromEnd     = Whence(io.SeekEnd)
)

func (w Whence) valid() bool {
	switch w {
	case FromStart, FromCurrent, FromEnd:
		return true
	}
	return false
}

func (w Whence) String() string {
	switch w {
	case FromStart:
		return "FromStart"
	case FromCurrent:
		return "FromCurrent"
	case FromEnd:
		return "FromEnd"
	}
	return "Whence(" + strconv.Itoa(int(w)) + ")"
}
