package util

import (
	"fmt"
	"os/user"
	"strconv"
	"strings"
)

// SplitList splits a comma or whitespace separated argument list into
// its non-empty tokens. "1,2 3" and "1, 2,3" both yield three tokens.
func SplitList(arg string) []string {
	fields := strings.FieldsFunc(arg, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ParsePIDs parses a comma or whitespace separated list of decimal
// process ids. PIDs must be positive.
func ParsePIDs(arg string) ([]int, error) {
	toks := SplitList(arg)
	pids := make([]int, 0, len(toks))
	for _, tok := range toks {
		pid, err := strconv.Atoi(tok)
		if err != nil || pid <= 0 {
			return nil, fmt.Errorf("invalid process id: %q", tok)
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

// LookupUserID resolves a user name or decimal uid to a numeric uid.
func LookupUserID(name string) (uint64, error) {
	if uid, err := strconv.ParseUint(name, 10, 32); err == nil {
		return uid, nil
	}
	u, err := user.Lookup(name)
	if err != nil {
		return 0, fmt.Errorf("invalid user name: %s: %w", name, err)
	}
	uid, err := strconv.ParseUint(u.Uid, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user name: %s: %w", name, err)
	}
	return uid, nil
}

// LookupGroupID resolves a group name or decimal gid to a numeric gid.
func LookupGroupID(name string) (uint64, error) {
	if gid, err := strconv.ParseUint(name, 10, 32); err == nil {
		return gid, nil
	}
	g, err := user.LookupGroup(name)
	if err != nil {
		return 0, fmt.Errorf("invalid group name: %s: %w", name, err)
	}
	gid, err := strconv.ParseUint(g.Gid, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid group name: %s: %w", name, err)
	}
	return gid, nil
}

// LookupIDs resolves each token of a comma separated list through
// lookup, deduplicating while preserving first-seen order.
func LookupIDs(arg string, lookup func(string) (uint64, error)) ([]uint64, error) {
	toks := SplitList(arg)
	seen := make(map[uint64]struct{}, len(toks))
	ids := make([]uint64, 0, len(toks))
	for _, tok := range toks {
		id, err := lookup(tok)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
