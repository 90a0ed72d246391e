package reliable

import (
	"fmt"
	"io/fs"
)

const (
	OS_READ        = 04
	OS_WRITE       = 02
	OS_EX          = 01
	OS_USER_SHIFT  = 6
	OS_GROUP_SHIFT = 3
	OS_OTH_SHIFT   = 0

	OS_USER_R  = OS_READ << OS_USER_SHIFT
	OS_USER_W  = OS_WRITE << OS_USER_SHIFT
	OS_USER_X  = OS_EX << OS_USER_SHIFT
	OS_USER_RW = OS_USER_R | OS_USER_W

	OS_GROUP_R  = OS_READ << OS_GROUP_SHIFT
	OS_GROUP_W  = OS_WRITE << OS_GROUP_SHIFT
	OS_GROUP_X  = OS_EX << OS_GROUP_SHIFT
	OS_GROUP_RW = OS_GROUP_R | OS_GROUP_W

	OS_OTH_R = OS_READ << OS_OTH_SHIFT
	OS_OTH_W = OS_WRITE << OS_OTH_SHIFT
	OS_OTH_X = OS_EX << OS_OTH_SHIFT

	// DefaultPerm is used when a file is created and no permission was
	// configured: read and write for owner and group.
	DefaultPerm fs.FileMode = OS_USER_RW | OS_GROUP_RW
)

var typeBits = map[byte]fs.FileMode{
	'-': 0,
	'd': fs.ModeDir,
	'a': fs.ModeAppend,
	'l': fs.ModeExclusive,
	'T': fs.ModeTemporary,
	'L': fs.ModeSymlink,
	'D': fs.ModeDevice,
	'p': fs.ModeNamedPipe,
	'S': fs.ModeSocket,
	'u': fs.ModeSetuid,
	'g': fs.ModeSetgid,
	'c': fs.ModeCharDevice,
	't': fs.ModeSticky,
}

var permBits = [9]struct {
	char byte
	bit  fs.FileMode
}{
	{'r', OS_USER_R}, {'w', OS_USER_W}, {'x', OS_USER_X},
	{'r', OS_GROUP_R}, {'w', OS_GROUP_W}, {'x', OS_GROUP_X},
	{'r', OS_OTH_R}, {'w', OS_OTH_W}, {'x', OS_OTH_X},
}

// ParseFileMode parses the ten character form printed by ls, e.g.
// "-rw-rw----".
func ParseFileMode(input string) (fs.FileMode, error) {
	if len(input) != 10 {
		return 0, fmt.Errorf("parse file mode %q: want 10 characters, got %d", input, len(input))
	}

	mode, ok := typeBits[input[0]]
	if !ok {
		return 0, fmt.Errorf("parse file mode %q: unknown type %q", input, input[0])
	}

	for i, p := range permBits {
		switch input[i+1] {
		case p.char:
			mode |= p.bit
		case '-':
		default:
			return 0, fmt.Errorf("parse file mode %q: unexpected %q at position %d", input, input[i+1], i+1)
		}
	}
	return mode, nil
}
