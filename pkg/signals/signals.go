// Package signals maps between canonical signal names and numbers and
// renders the list and table layouts used by the signal-sending tools.
package signals

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknown is returned when a signal name or number is not in the catalog.
var ErrUnknown = errors.New("signals: unknown signal")

// names holds the canonical catalog in kernel order; names[i] is signal i+1.
var names = []string{
	"HUP", "INT", "QUIT", "ILL", "TRAP", "ABRT", "BUS", "FPE",
	"KILL", "USR1", "SEGV", "USR2", "PIPE", "ALRM", "TERM", "STKFLT",
	"CHLD", "CONT", "STOP", "TSTP", "TTIN", "TTOU", "URG", "XCPU",
	"XFSZ", "VTALRM", "PROF", "WINCH", "POLL", "PWR", "SYS",
}

// Names returns the catalog in kernel order. Callers must not modify it.
func Names() []string { return names }

// ByNameOrValue resolves a signal given as a decimal number, a bare name,
// or a SIG-prefixed name. Matching is case-insensitive.
func ByNameOrValue(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n == 0 {
			return 0, nil
		}
		if n < 0 || n > len(names) {
			return 0, fmt.Errorf("%w: %d", ErrUnknown, n)
		}
		return n, nil
	}
	name := strings.ToUpper(s)
	name = strings.TrimPrefix(name, "SIG")
	for i, n := range names {
		if n == name {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknown, s)
}

// NameByValue returns the canonical name for a signal number.
func NameByValue(n int) (string, error) {
	if n < 1 || n > len(names) {
		return "", fmt.Errorf("%w: %d", ErrUnknown, n)
	}
	return names[n-1], nil
}

// FormatList renders the catalog as space-separated names, 16 per line.
func FormatList() string {
	var b strings.Builder
	for i, n := range names {
		if i > 0 {
			if i%16 == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(n)
	}
	b.WriteByte('\n')
	return b.String()
}

// FormatTable renders the catalog as numbered rows of seven columns,
// each cell laid out as "%2d %-8s" with trailing padding trimmed.
func FormatTable() string {
	var row, b strings.Builder
	for i, n := range names {
		fmt.Fprintf(&row, "%2d %-8s", i+1, n)
		if i%7 == 6 || i == len(names)-1 {
			b.WriteString(strings.TrimRight(row.String(), " "))
			b.WriteByte('\n')
			row.Reset()
		}
	}
	return b.String()
}
