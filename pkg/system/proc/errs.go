package proc

import "errors"

var (
	// ErrInvalidData indicates that a /proc file was malformed or a
	// required field was absent.
	ErrInvalidData = errors.New("proc: invalid data")

	// ErrInvalidInput indicates that an input could not be decoded into
	// the requested value type (run state letter, tty shape, ...).
	ErrInvalidInput = errors.New("proc: invalid input")

	// ErrUnsupported indicates that the requested field or operation is
	// not available on this platform.
	ErrUnsupported = errors.New("proc: unsupported on this platform")
)
