package match

import (
	"errors"
	"fmt"
)

// CodeError carries the process exit code alongside the message. The
// tools exit 0 when at least one process matched, 1 on no match or a
// runtime failure, and 2 on a usage error.
type CodeError struct {
	Code int
	Msg  string
}

func (e *CodeError) Error() string { return e.Msg }

// Usagef builds a usage error (exit 2).
func Usagef(format string, a ...any) *CodeError {
	return &CodeError{Code: 2, Msg: fmt.Sprintf(format, a...)}
}

// Failf builds a runtime error (exit 1).
func Failf(format string, a ...any) *CodeError {
	return &CodeError{Code: 1, Msg: fmt.Sprintf(format, a...)}
}

// ExitCode maps an error from settings construction or the engine to
// the exit code the tool should return.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return 1
}
