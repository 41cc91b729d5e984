//go:build linux

package signals

import "golang.org/x/sys/unix"

// Send delivers signal sig to pid. Signal 0 only probes for existence
// and permission, as with kill(2).
func Send(pid, sig int) error {
	return unix.Kill(pid, unix.Signal(sig))
}
