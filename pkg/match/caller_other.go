//go:build !linux

package match

import (
	"errors"
	"os"
)

func callerPid() int { return os.Getpid() }

func callerPgid() (uint64, error) {
	return 0, errors.ErrUnsupported
}

func callerSid() (uint64, error) {
	return 0, errors.ErrUnsupported
}
