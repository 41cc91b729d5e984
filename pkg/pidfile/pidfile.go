// Package pidfile reads PID files the tolerant way the matcher needs:
// the first integer token wins, anything else means "no pid". It also
// provides a best-effort advisory-lock probe for daemon pidfiles.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrNoPid indicates the file held no leading integer token.
	ErrNoPid = errors.New("pidfile: no pid in file")

	// ErrNotLocked indicates the lock probe found the file unheld.
	ErrNotLocked = errors.New("pidfile: file is not locked")
)

// Read extracts the pid from the file at path. The content may carry
// leading spaces or tabs and arbitrary trailing text; the first token
// must be an optionally-signed decimal integer terminated by whitespace
// or end of input. Empty, non-numeric or hex content yields ErrNoPid.
func Read(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("pidfile: %w", err)
	}
	return parse(string(raw))
}

func parse(content string) (int, error) {
	rest := strings.TrimLeft(content, " \t")

	end := 0
	if end < len(rest) && rest[end] == '-' {
		end++
	}
	digits := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
		digits++
	}
	if digits == 0 {
		return 0, ErrNoPid
	}
	// the token must end at whitespace or end of input; "0x42" is not a pid
	if end < len(rest) {
		switch rest[end] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			return 0, ErrNoPid
		}
	}

	pid, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, ErrNoPid
	}
	return pid, nil
}
