package subtitle

import (
	"errors"
	"fmt"
)

var (
	// ErrIO: the script could not be read, decoded, encoded or written.
	ErrIO = errors.New("subtitle io")
	// ErrMalformedEvent: a Dialogue line has no usable splice point.
	ErrMalformedEvent = errors.New("malformed dialogue event")
)

// IOError describes a failed file operation on a script.
type IOError struct {
	Op   string // read, decode, encode or write
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// MalformedEventError is returned for a Dialogue line that lacks the
// ",Default" splice marker.
type MalformedEventError struct {
	Index int
	Line  string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf(
		"dialogue event %d has no %q splice marker: %q",
		e.Index,
		spliceMarker,
		e.Line,
	)
}

func (e *MalformedEventError) Is(target error) bool {
	return target == ErrMalformedEvent
}
