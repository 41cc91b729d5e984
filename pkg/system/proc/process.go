package proc

import (
	"fmt"
	"strconv"
	"strings"
)

// Process is a single-snapshot view of one pid. The raw contents of
// cmdline, status and stat are captured at construction time and the
// record never re-reads the kernel afterwards; a fresh enumeration is
// required to observe newer state.
//
// Derived views (Status, Stat, thread ids, start time) materialize on
// first use and are frozen for the lifetime of the record, so a record
// can be freely shared across predicates.
type Process struct {
	Pid int
	// Cmdline is /proc/<pid>/cmdline with NUL separators replaced by
	// spaces and the trailing NUL stripped. Empty for kernel threads.
	Cmdline string

	statusRaw string
	statRaw   string

	statusMap  map[string]string
	statFields []string

	startTime   uint64
	startTimeOK bool

	threadIDs []int
}

// newSnapshot builds a record from already-captured file contents.
func newSnapshot(pid int, cmdline, statusRaw, statRaw string) *Process {
	return &Process{
		Pid:       pid,
		Cmdline:   strings.TrimRight(strings.ReplaceAll(cmdline, "\x00", " "), " \n"),
		statusRaw: statusRaw,
		statRaw:   statRaw,
	}
}

// StatusRaw returns the verbatim snapshot of /proc/<pid>/status.
func (p *Process) StatusRaw() string { return p.statusRaw }

// StatRaw returns the verbatim snapshot of /proc/<pid>/stat.
func (p *Process) StatRaw() string { return p.statRaw }

// Status returns the keyed view of the status file: one entry per
// "Key:\tValue" line, value left-trimmed. The map is built once and
// must not be mutated by callers.
func (p *Process) Status() map[string]string {
	if p.statusMap == nil {
		m := make(map[string]string)
		for _, line := range strings.Split(p.statusRaw, "\n") {
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			m[key] = strings.TrimLeft(value, " \t")
		}
		p.statusMap = m
	}
	return p.statusMap
}

// Stat returns the positional view of the stat file, with the comm
// field extracted verbatim even if it contains spaces or parentheses.
func (p *Process) Stat() []string {
	if p.statFields == nil {
		p.statFields = statSplit(p.statRaw)
	}
	return p.statFields
}

// statSplit splits one /proc/<pid>/stat line. The comm field is wrapped
// in parentheses and may contain arbitrary bytes including spaces,
// parentheses and newlines, so the split is anchored on the first '('
// and the last ')'. Degrades to a plain whitespace split if parentheses
// are absent (real kernels always include them).
func statSplit(stat string) []string {
	left := strings.Index(stat, "(")
	right := strings.LastIndex(stat, ")")
	if left < 1 || right < left {
		return strings.Fields(stat)
	}

	fields := make([]string, 0, 52)
	fields = append(fields, strings.TrimRight(stat[:left], " "))
	fields = append(fields, stat[left+1:right])
	fields = append(fields, strings.Fields(stat[right+1:])...)
	return fields
}

// Name returns the comm value from the status file, up to 15 bytes as
// recorded by the kernel.
func (p *Process) Name() (string, error) {
	name, ok := p.Status()["Name"]
	if !ok {
		return "", fmt.Errorf("%w: no Name in status of pid %d", ErrInvalidData, p.Pid)
	}
	return name, nil
}

func (p *Process) numericStatField(index int) (uint64, error) {
	fields := p.Stat()
	if index >= len(fields) {
		return 0, fmt.Errorf("%w: stat of pid %d has no field %d", ErrInvalidData, p.Pid, index)
	}
	v, err := strconv.ParseUint(fields[index], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: stat field %d of pid %d: %q", ErrInvalidData, index, p.Pid, fields[index])
	}
	return v, nil
}

// PPid returns the parent pid, the fourth field of stat.
func (p *Process) PPid() (uint64, error) { return p.numericStatField(3) }

// Pgid returns the process group id, the fifth field of stat.
func (p *Process) Pgid() (uint64, error) { return p.numericStatField(4) }

// Sid returns the session id, the sixth field of stat.
func (p *Process) Sid() (uint64, error) { return p.numericStatField(5) }

// StartTime returns the process start time in clock ticks since boot,
// the 22nd field of stat. Cached after the first call.
func (p *Process) StartTime() (uint64, error) {
	if p.startTimeOK {
		return p.startTime, nil
	}
	t, err := p.numericStatField(21)
	if err != nil {
		return 0, err
	}
	p.startTime = t
	p.startTimeOK = true
	return t, nil
}

// State returns the run state letter of stat field 3 decoded as a
// RunState.
func (p *Process) State() (RunState, error) {
	fields := p.Stat()
	if len(fields) < 3 {
		return 0, fmt.Errorf("%w: stat of pid %d has no state field", ErrInvalidData, p.Pid)
	}
	return ParseRunState(fields[2])
}

func (p *Process) credField(key string, index int) (uint32, error) {
	value, ok := p.Status()[key]
	if !ok {
		return 0, fmt.Errorf("%w: no %s in status of pid %d", ErrInvalidData, key, p.Pid)
	}
	parts := strings.Fields(value)
	if index >= len(parts) {
		return 0, fmt.Errorf("%w: %s of pid %d has %d fields", ErrInvalidData, key, p.Pid, len(parts))
	}
	v, err := strconv.ParseUint(parts[index], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s of pid %d: %q", ErrInvalidData, key, p.Pid, parts[index])
	}
	return uint32(v), nil
}

// UID returns the real user id (first component of the Uid line).
func (p *Process) UID() (uint32, error) { return p.credField("Uid", 0) }

// EUID returns the effective user id.
func (p *Process) EUID() (uint32, error) { return p.credField("Uid", 1) }

// SUID returns the saved user id.
func (p *Process) SUID() (uint32, error) { return p.credField("Uid", 2) }

// GID returns the real group id (first component of the Gid line).
func (p *Process) GID() (uint32, error) { return p.credField("Gid", 0) }

// EGID returns the effective group id.
func (p *Process) EGID() (uint32, error) { return p.credField("Gid", 1) }

// SGID returns the saved group id.
func (p *Process) SGID() (uint32, error) { return p.credField("Gid", 2) }

func (p *Process) hexStatusField(key string) (uint64, error) {
	value, ok := p.Status()[key]
	if !ok {
		return 0, fmt.Errorf("%w: no %s in status of pid %d", ErrInvalidData, key, p.Pid)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(value), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s of pid %d: %q", ErrInvalidData, key, p.Pid, value)
	}
	return v, nil
}

// SignalsCaughtMask returns SigCgt as a 64-bit mask where bit k
// corresponds to signal k+1.
func (p *Process) SignalsCaughtMask() (uint64, error) { return p.hexStatusField("SigCgt") }

// SignalsPendingMask returns SigPnd.
func (p *Process) SignalsPendingMask() (uint64, error) { return p.hexStatusField("SigPnd") }

// SignalsBlockedMask returns SigBlk.
func (p *Process) SignalsBlockedMask() (uint64, error) { return p.hexStatusField("SigBlk") }

// SignalsIgnoredMask returns SigIgn.
func (p *Process) SignalsIgnoredMask() (uint64, error) { return p.hexStatusField("SigIgn") }
