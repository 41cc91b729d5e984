package proc

import (
	"fmt"
	"strconv"
	"strings"
)

// TeletypeKind enumerates the terminal device families a process can be
// attached to.
type TeletypeKind int

const (
	// TeletypeUnknown means the process has no resolvable controlling
	// terminal. Displays as "?".
	TeletypeUnknown TeletypeKind = iota
	// TeletypeTTY is a numbered virtual console (/dev/ttyN, major 4).
	TeletypeTTY
	// TeletypeTTYS is a numbered serial line (/dev/ttySN, major 5).
	TeletypeTTYS
	// TeletypePts is a numbered pseudo-terminal (/dev/pts/N, majors 136-143).
	TeletypePts
)

// Teletype identifies the controlling terminal of a process. Equality is
// structural, so the value can be used directly as a map key.
type Teletype struct {
	Kind TeletypeKind
	Num  uint64
}

// Unknown is the Teletype of a process without a controlling terminal.
var Unknown = Teletype{Kind: TeletypeUnknown}

func (t Teletype) String() string {
	switch t.Kind {
	case TeletypeTTY:
		return fmt.Sprintf("/dev/tty%d", t.Num)
	case TeletypeTTYS:
		return fmt.Sprintf("/dev/ttyS%d", t.Num)
	case TeletypePts:
		return fmt.Sprintf("/dev/pts/%d", t.Num)
	default:
		return "?"
	}
}

// ParseTeletype decodes a terminal from its device path or short name.
// Accepted shapes: "?", "/dev/pts/0", "pts/0", "/dev/ttyS1", "ttyS1",
// "/dev/tty2", "tty2".
func ParseTeletype(s string) (Teletype, error) {
	if s == "?" {
		return Unknown, nil
	}

	rest := strings.TrimPrefix(s, "/dev/")
	// pts has a directory component unlike the others
	if num, ok := strings.CutPrefix(rest, "pts/"); ok {
		n, err := strconv.ParseUint(num, 10, 64)
		if err != nil {
			return Unknown, fmt.Errorf("%w: %q", ErrInvalidInput, s)
		}
		return Teletype{Kind: TeletypePts, Num: n}, nil
	}
	// ttyS before tty: the serial prefix contains the console prefix
	if num, ok := strings.CutPrefix(rest, "ttyS"); ok {
		n, err := strconv.ParseUint(num, 10, 64)
		if err != nil {
			return Unknown, fmt.Errorf("%w: %q", ErrInvalidInput, s)
		}
		return Teletype{Kind: TeletypeTTYS, Num: n}, nil
	}
	if num, ok := strings.CutPrefix(rest, "tty"); ok {
		n, err := strconv.ParseUint(num, 10, 64)
		if err != nil {
			return Unknown, fmt.Errorf("%w: %q", ErrInvalidInput, s)
		}
		return Teletype{Kind: TeletypeTTY, Num: n}, nil
	}

	return Unknown, fmt.Errorf("%w: %q", ErrInvalidInput, s)
}

// TeletypeFromNr decodes the tty_nr field of /proc/<pid>/stat.
//
// The kernel packs the device number as major = (n>>8)&0xFFF and
// minor = (n&0xFF) | ((n>>12)&0xFFF00). Major 4 is a virtual console,
// major 5 a serial line, majors 136-143 are the pts range where the
// terminal number is (major-136)*256 + minor.
func TeletypeFromNr(n uint64) Teletype {
	if n == 0 {
		return Unknown
	}

	major := (n >> 8) & 0xFFF
	minor := (n & 0xFF) | ((n >> 12) & 0xFFF00)

	switch {
	case major == 4:
		return Teletype{Kind: TeletypeTTY, Num: minor}
	case major == 5:
		return Teletype{Kind: TeletypeTTYS, Num: minor}
	case major >= 136 && major <= 143:
		return Teletype{Kind: TeletypePts, Num: (major-136)*256 + minor}
	default:
		return Unknown
	}
}
