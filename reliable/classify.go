package reliable

import (
	"errors"
	"syscall"
)

// Class tells a retry loop what to do with a failed platform call.
type Class int

const (
	Fatal Class = iota
	Transient
)

func (c Class) String() string {
	if c == Transient {
		return "transient"
	}
	return "fatal"
}

// Classify reports whether err is worth retrying. Interrupted system calls
// and would-block conditions are transient; everything else is fatal.
func Classify(err error) Class {
	switch {
	case err == nil:
		return Fatal
	case errors.Is(err, syscall.EINTR), errors.Is(err, syscall.EAGAIN), errors.Is(err, syscall.EWOULDBLOCK):
		return Transient
	}
	return Fatal
}

// attempts counts platform calls against a budget. A max of zero or less
// never runs out.
type attempts struct {
	max   int
	tries int
	last  error
}

func (a *attempts) left() bool {
	return a.max <= 0 || a.tries < a.max
}

func (a *attempts) use() {
	a.tries++
}

// retry records a transient failure. It returns false for fatal errors.
func (a *attempts) retry(err error) bool {
	if Classify(err) != Transient {
		return false
	}
	a.last = err
	return true
}
