package reliable

import (
	"io/fs"
	"sort"

	"github.com/xtgo/set"
)

var (
	everyAccess   = []AccessMode{ReadOnly, WriteOnly, ReadWrite}
	everyCreation = []CreationFlags{Append, Create, Exclusive, Sync, Truncate}
)

// EveryCreation returns every combination of creation flags, including none.
func EveryCreation() []CreationFlags {
	combos := make([]CreationFlags, 0, 1<<len(everyCreation))
	for i := 0; i < 1<<len(everyCreation); i++ {
		var flags CreationFlags
		for bit, flag := range everyCreation {
			if i&(1<<bit) != 0 {
				flags |= flag
			}
		}
		combos = append(combos, flags)
	}
	return combos
}

// ForEveryOpen calls fn with every access mode and creation flag pairing,
// stopping at the first error.
func ForEveryOpen(fn func(mode AccessMode, flags CreationFlags) error) error {
	for _, mode := range everyAccess {
		for _, flags := range EveryCreation() {
			if err := fn(mode, flags); err != nil {
				return err
			}
		}
	}
	return nil
}

// EveryFlags returns the distinct flag words OpenFlags can hand to a
// platform, in ascending order.
func EveryFlags() []Flags {
	var ints sort.IntSlice
	_ = ForEveryOpen(func(mode AccessMode, flags CreationFlags) error {
		ints = append(ints, int(OpenFlags(mode, flags)))
		return nil
	})

	sort.Sort(ints)
	ints = ints[:set.Uniq(ints)]

	out := make([]Flags, len(ints))
	for i := range ints {
		out[i] = Flags(ints[i])
	}
	return out
}

// EveryPerm returns all 512 permission bit patterns in ascending order.
func EveryPerm() []fs.FileMode {
	ints := make(sort.IntSlice, 0, 512)
	shifts := []uint{OS_OTH_SHIFT, OS_GROUP_SHIFT, OS_USER_SHIFT}
	perms := []uint{OS_EX, OS_WRITE, OS_READ}

	for i := 0; i < 512; i++ {
		var mode uint
		for s, shift := range shifts {
			for p, perm := range perms {
				if (i>>(uint(s)*3))&(1<<uint(p)) != 0 {
					mode |= perm << shift
				}
			}
		}
		ints = append(ints, int(mode))
	}

	sort.Sort(ints)
	ints = ints[:set.Uniq(ints)]

	modes := make([]fs.FileMode, len(ints))
	for i := range ints {
		modes[i] = fs.FileMode(ints[i])
	}
	return modes
}
