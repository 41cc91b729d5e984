package proc

import "fmt"

// RunState is the scheduler state of a process, field 3 of
// /proc/<pid>/stat. Each variant is bijective with one kernel letter.
//
// https://www.man7.org/linux/man-pages/man5/proc_pid_stat.5.html
type RunState int

const (
	// Running: `R`
	Running RunState = iota
	// Sleeping: `S`
	Sleeping
	// UninterruptibleWait: `D`
	UninterruptibleWait
	// Zombie: `Z`
	Zombie
	// Stopped (on a signal): `T`
	Stopped
	// TraceStopped: `t`
	TraceStopped
	// Dead: `X`
	Dead
	// Idle: `I`
	Idle
)

var runStateLetters = map[byte]RunState{
	'R': Running,
	'S': Sleeping,
	'D': UninterruptibleWait,
	'Z': Zombie,
	'T': Stopped,
	't': TraceStopped,
	'X': Dead,
	'I': Idle,
}

func (r RunState) String() string {
	switch r {
	case Running:
		return "R"
	case Sleeping:
		return "S"
	case UninterruptibleWait:
		return "D"
	case Zombie:
		return "Z"
	case Stopped:
		return "T"
	case TraceStopped:
		return "t"
	case Dead:
		return "X"
	case Idle:
		return "I"
	default:
		return "?"
	}
}

// ParseRunState decodes a single kernel state letter. Parsing is strict:
// any string of length != 1 or an unknown letter fails.
func ParseRunState(s string) (RunState, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: run state %q", ErrInvalidInput, s)
	}
	st, ok := runStateLetters[s[0]]
	if !ok {
		return 0, fmt.Errorf("%w: run state %q", ErrInvalidInput, s)
	}
	return st, nil
}
