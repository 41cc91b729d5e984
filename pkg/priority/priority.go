// Package priority models the niceness adjustment expressions accepted
// by the renice-style tools: a leading '+' adds to the current value, a
// leading '-' subtracts, and a bare number sets it outright.
package priority

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalid is returned when an expression is not a signed or bare integer.
var ErrInvalid = errors.New("priority: invalid adjustment")

type Kind int

const (
	Increase Kind = iota
	Decrease
	To
)

// Priority is a parsed niceness adjustment.
type Priority struct {
	Kind Kind
	N    int
}

// Default is the adjustment applied when none is given.
var Default = Priority{Kind: Increase, N: 4}

// Parse interprets s as "+N", "-N", or "N".
func Parse(s string) (Priority, error) {
	if s == "" {
		return Priority{}, fmt.Errorf("%w: empty", ErrInvalid)
	}
	kind := To
	num := s
	switch s[0] {
	case '+':
		kind = Increase
		num = s[1:]
	case '-':
		kind = Decrease
		num = s[1:]
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return Priority{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return Priority{Kind: kind, N: n}, nil
}

// Apply computes the new niceness given the current one.
func (p Priority) Apply(current int) int {
	switch p.Kind {
	case Increase:
		return current + p.N
	case Decrease:
		return current - p.N
	default:
		return p.N
	}
}

func (p Priority) String() string {
	switch p.Kind {
	case Increase:
		return fmt.Sprintf("+%d", p.N)
	case Decrease:
		return fmt.Sprintf("-%d", p.N)
	default:
		return strconv.Itoa(p.N)
	}
}
