package match

import (
	"sort"
	"strings"

	"github.com/ja7ad/procfind/pkg/pidfile"
	"github.com/ja7ad/procfind/pkg/system/proc"
)

// Find enumerates live processes and returns the ones selected by the
// settings, in enumeration order unless newest or oldest narrows the
// result to a single record. An empty result is not an error; callers
// derive the exit code from the result length.
func (s *Settings) Find() ([]*proc.Process, error) {
	if s.logpidfile {
		if err := pidfile.CheckLocked(s.pidfilePath); err != nil {
			return nil, Failf("pidfile not locked")
		}
	}

	var procs []*proc.Process
	var err error
	if s.threads {
		procs, err = proc.WalkThreads()
	} else {
		procs, err = proc.Walk()
	}
	if err != nil {
		return nil, Failf("reading process information failed: %s", err)
	}

	excluded := s.excludedPids(procs)

	matched := make([]*proc.Process, 0, len(procs))
	for _, p := range procs {
		if _, skip := excluded[p.Pid]; skip {
			continue
		}
		if s.matches(p) != s.inverse {
			matched = append(matched, p)
		}
	}

	if s.newest || s.oldest {
		matched = selectExtreme(matched, s.newest)
	}

	if len(matched) == 0 && !s.full && len(s.patternText) > 15 {
		return nil, Failf("pattern that searches for process name longer than 15 characters will result in zero matches\n"+
			"Try `%s -f' option to match against the complete command line.", s.program)
	}
	return matched, nil
}

// excludedPids is the caller itself plus, when requested, every
// ancestor of the caller reachable through ppid links.
func (s *Settings) excludedPids(procs []*proc.Process) map[int]struct{} {
	self := callerPid()
	excluded := map[int]struct{}{self: {}}
	if !s.ignoreAncestors {
		return excluded
	}

	byPid := make(map[int]*proc.Process, len(procs))
	for _, p := range procs {
		byPid[p.Pid] = p
	}

	pid := self
	for pid > 1 {
		p, ok := byPid[pid]
		if !ok {
			break
		}
		ppid, err := p.PPid()
		if err != nil || ppid == 0 {
			break
		}
		next := int(ppid)
		if _, seen := excluded[next]; seen {
			break
		}
		excluded[next] = struct{}{}
		pid = next
	}
	return excluded
}

// matches evaluates every active predicate against one record. Absent
// predicates are vacuously true; a field that cannot be read makes its
// predicate false rather than failing the run.
func (s *Settings) matches(p *proc.Process) bool {
	if s.runstates != "" {
		state, err := p.State()
		if err != nil || !strings.Contains(s.runstates, state.String()) {
			return false
		}
	}

	if !s.patternMatches(p) {
		return false
	}

	if !statFieldInSet(s.parents, p.PPid) ||
		!statFieldInSet(s.pgroups, p.Pgid) ||
		!statFieldInSet(s.sessions, p.Sid) {
		return false
	}

	if !credInSet(s.uids, p.UID) ||
		!credInSet(s.euids, p.EUID) ||
		!credInSet(s.gids, p.GID) {
		return false
	}

	if s.terminals != nil {
		if _, ok := s.terminals[p.TTY()]; !ok {
			return false
		}
	}

	if s.olderSet {
		start, err := p.StartTime()
		if err != nil || start < s.older {
			return false
		}
	}

	if s.cgroups != nil {
		path, err := p.CgroupV2Path()
		if err != nil {
			return false
		}
		if _, ok := s.cgroups[path]; !ok {
			return false
		}
	}

	if len(s.envs) > 0 && !s.envMatches(p) {
		return false
	}

	if s.nsRef != nil {
		got, err := p.Namespaces()
		if err != nil || !s.nsRef.Matches(got) {
			return false
		}
	}

	if s.requireHandler {
		mask, err := p.SignalsCaughtMask()
		if err != nil {
			return false
		}
		bit := uint(63)
		if s.signal > 0 {
			bit = uint(s.signal - 1)
		}
		if mask&(uint64(1)<<bit) == 0 {
			return false
		}
	}

	if s.pidfileSet && p.Pid != s.pidfilePid {
		return false
	}
	return true
}

func (s *Settings) patternMatches(p *proc.Process) bool {
	if s.patternText == "" {
		return true
	}
	var target string
	if s.full {
		target = p.Cmdline
	} else {
		name, err := p.Name()
		if err != nil {
			return false
		}
		target = name
	}
	if s.ignoreCase {
		target = strings.ToLower(target)
	}
	return s.re.MatchString(target)
}

// envMatches is true when any env predicate holds: the key exists and,
// if a value was given, equals it. Multiple predicates combine with OR.
func (s *Settings) envMatches(p *proc.Process) bool {
	env, err := p.Environ()
	if err != nil {
		return false
	}
	for _, pred := range s.envs {
		got, ok := env[pred.key]
		if !ok {
			continue
		}
		if !pred.hasValue || got == pred.value {
			return true
		}
	}
	return false
}

func statFieldInSet(set map[uint64]struct{}, field func() (uint64, error)) bool {
	if set == nil {
		return true
	}
	v, err := field()
	if err != nil {
		return false
	}
	_, ok := set[v]
	return ok
}

func credInSet(set map[uint64]struct{}, field func() (uint32, error)) bool {
	if set == nil {
		return true
	}
	v, err := field()
	if err != nil {
		return false
	}
	_, ok := set[uint64(v)]
	return ok
}

// selectExtreme narrows matched to the single newest or oldest record:
// sort by start time descending, take the extreme, and break start-time
// ties by pid, descending for newest and ascending for oldest.
func selectExtreme(matched []*proc.Process, newest bool) []*proc.Process {
	if len(matched) == 0 {
		return matched
	}
	start := func(p *proc.Process) uint64 {
		t, err := p.StartTime()
		if err != nil {
			return 0
		}
		return t
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return start(matched[i]) > start(matched[j])
	})

	pivot := start(matched[0])
	if !newest {
		pivot = start(matched[len(matched)-1])
	}

	tied := make([]*proc.Process, 0, len(matched))
	for _, p := range matched {
		if start(p) == pivot {
			tied = append(tied, p)
		}
	}
	sort.Slice(tied, func(i, j int) bool {
		if newest {
			return tied[i].Pid > tied[j].Pid
		}
		return tied[i].Pid < tied[j].Pid
	})
	return tied[:1]
}
