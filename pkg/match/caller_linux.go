//go:build linux

package match

import (
	"os"

	"golang.org/x/sys/unix"
)

func callerPid() int { return os.Getpid() }

func callerPgid() (uint64, error) {
	return uint64(unix.Getpgrp()), nil
}

func callerSid() (uint64, error) {
	sid, err := unix.Getsid(0)
	if err != nil {
		return 0, err
	}
	return uint64(sid), nil
}
