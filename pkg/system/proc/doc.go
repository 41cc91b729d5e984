// Package proc enumerates live processes and exposes a uniform,
// lazily-populated view of each one: identifiers, credentials,
// controlling terminal, run state, scheduling ids, threads, namespaces,
// signal masks and cgroup membership.
//
// # Model
//
//   - Process is a single snapshot of one pid. The raw cmdline, status
//     and stat contents are captured at Open time; derived views
//     (Status map, positional Stat fields, start time, thread ids) are
//     materialized on first use and frozen afterwards. A record never
//     re-reads the kernel; call Walk or FromPid again to observe newer
//     state.
//
//   - Walk yields one record per entry of the procfs root whose name
//     parses as a positive integer. WalkThreads descends one level
//     further and yields one record per /proc/<pid>/task/<tid>.
//     Ordering is unspecified; callers that need ordering impose it.
//
//   - Teletype and RunState are total decoders from the kernel-reported
//     shapes (device paths, tty_nr packing, state letters) to the
//     domain values used by predicates and formatters.
//
// # Parsing pitfalls handled here
//
// The comm field of /proc/<pid>/stat is wrapped in parentheses and may
// contain spaces, parentheses and newlines; the split is anchored on
// the first '(' and the last ')'. cmdline is NUL-separated with a
// trailing NUL. status values are left-trimmed after the colon. Signal
// masks are base-16 with bit k meaning signal k+1.
//
// # Races
//
// Process state is inherently racy: a pid can vanish between
// enumeration and an accessor call. Enumeration skips pids that die
// mid-walk, and accessors return errors rather than panic; callers
// treat such errors as a non-match and continue.
//
// # Testing
//
// The PROC env var overrides the procfs root so tests can point the
// package at a synthetic tree (see proc_test.go); CLK_TCK overrides
// the tick rate the same way.
package proc
