//go:build linux

package pidfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckLocked probes whether the file at path is held by an advisory
// lock. It tests with both an fcntl F_GETLK read-lock query and a
// non-blocking flock attempt; either reporting a holder counts as
// locked. Unheld files return ErrNotLocked. The probe descriptor is
// released on every path.
func CheckLocked(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("pidfile: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	fd := int(f.Fd())

	// fcntl sees POSIX record locks
	flk := unix.Flock_t{Type: unix.F_RDLCK, Whence: 0, Start: 0, Len: 0}
	if err := unix.FcntlFlock(uintptr(fd), unix.F_GETLK, &flk); err == nil && flk.Type != unix.F_UNLCK {
		return nil
	}

	// flock sees BSD locks; a shared lock we can take means nobody
	// holds the file exclusively
	if err := unix.Flock(fd, unix.LOCK_SH|unix.LOCK_NB); err != nil {
		if err == unix.EWOULDBLOCK {
			return nil
		}
		return fmt.Errorf("pidfile: flock probe: %w", err)
	}
	_ = unix.Flock(fd, unix.LOCK_UN)

	return ErrNotLocked
}
