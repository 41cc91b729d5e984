package proc

import (
	"os"
	"strconv"
)

// Procfs is the default mount point of the proc filesystem. The mount
// point can be overridden by setting the PROC env var (useful for tests
// pointing at a synthetic tree).
const Procfs = "/proc"

// Root returns the procfs root directory currently in effect.
func Root() string {
	if v := os.Getenv("PROC"); v != "" {
		return v
	}
	return Procfs
}

// ClockTicks returns the number of jiffies (clock ticks) per second.
// It first checks the env var CLK_TCK (useful for testing), otherwise
// falls back to 100 (common default).
//
// Note: On real systems, the authoritative way is `sysconf(_SC_CLK_TCK)`,
// but calling that requires cgo. For portability in a pure-Go library,
// this simplified approach is acceptable.
func ClockTicks() int {
	v, _ := strconv.Atoi(os.Getenv("CLK_TCK"))
	if v > 0 {
		return v
	}
	return 100
}

// Exists reports whether a given PID currently exists in procfs.
func Exists(pid int) bool {
	_, err := os.Stat(Root() + "/" + strconv.Itoa(pid))
	return err == nil
}
