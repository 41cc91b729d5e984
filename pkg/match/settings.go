// Package match implements the process selection engine shared by the
// pid tools: it turns command-line options into a frozen Settings
// record and evaluates every live process against it.
package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ja7ad/procfind/pkg/pidfile"
	"github.com/ja7ad/procfind/pkg/signals"
	"github.com/ja7ad/procfind/pkg/system/cgroup"
	"github.com/ja7ad/procfind/pkg/system/ns"
	"github.com/ja7ad/procfind/pkg/system/proc"
	"github.com/ja7ad/procfind/pkg/system/util"
)

// Options holds the raw command-line inputs common to the matching
// tools. List-valued options are comma separated strings; zero values
// mean the option was not given unless a *Set flag says otherwise.
type Options struct {
	// Program is the utility name used in error hints.
	Program string

	// Patterns are the positional arguments; at most one is allowed.
	Patterns []string

	Full            bool
	Exact           bool
	IgnoreCase      bool
	Inverse         bool
	Newest          bool
	Oldest          bool
	Older           uint64
	OlderSet        bool
	Parent          string
	Pgroup          string
	Session         string
	Group           string
	UID             string
	EUID            string
	Terminal        string
	Cgroup          string
	Env             []string
	Pidfile         string
	Logpidfile      bool
	IgnoreAncestors bool
	RequireHandler  bool
	Signal          string
	NsPid           int
	NsList          string
	Runstates       string
	Threads         bool
}

type envPredicate struct {
	key      string
	value    string
	hasValue bool
}

// Settings is the frozen form of Options: names resolved to numeric
// ids, the pattern compiled, zero pgroup/session replaced by the
// caller's own ids. Construct with NewSettings; immutable afterwards.
type Settings struct {
	program     string
	re          *regexp.Regexp
	patternText string

	full            bool
	exact           bool
	ignoreCase      bool
	inverse         bool
	newest          bool
	oldest          bool
	threads         bool
	ignoreAncestors bool
	requireHandler  bool
	logpidfile      bool

	older    uint64
	olderSet bool

	parents  map[uint64]struct{}
	pgroups  map[uint64]struct{}
	sessions map[uint64]struct{}
	gids     map[uint64]struct{}
	uids     map[uint64]struct{}
	euids    map[uint64]struct{}

	terminals map[proc.Teletype]struct{}
	cgroups   map[string]struct{}
	envs      []envPredicate
	runstates string

	signal int

	pidfilePath string
	pidfilePid  int
	pidfileSet  bool

	nsRef ns.Namespace
}

// Signal returns the resolved signal number (default TERM).
func (s *Settings) Signal() int { return s.signal }

// Threads reports whether thread-level enumeration was requested.
func (s *Settings) Threads() bool { return s.threads }

// NewSettings validates and resolves opts. Usage problems return a
// CodeError with code 2, runtime problems code 1.
func NewSettings(opts Options) (*Settings, error) {
	if len(opts.Patterns) > 1 {
		return nil, Usagef("only one pattern can be provided\nTry `%s --help' for more information.", opts.Program)
	}

	s := &Settings{
		program:         opts.Program,
		full:            opts.Full,
		exact:           opts.Exact,
		ignoreCase:      opts.IgnoreCase,
		inverse:         opts.Inverse,
		newest:          opts.Newest,
		oldest:          opts.Oldest,
		threads:         opts.Threads,
		ignoreAncestors: opts.IgnoreAncestors,
		requireHandler:  opts.RequireHandler,
		logpidfile:      opts.Logpidfile,
		older:           opts.Older,
		olderSet:        opts.OlderSet,
		runstates:       opts.Runstates,
	}

	if len(opts.Patterns) == 1 {
		s.patternText = opts.Patterns[0]
	}
	pattern := s.patternText
	if opts.IgnoreCase {
		pattern = strings.ToLower(pattern)
	}
	if opts.Exact {
		pattern = "^" + pattern + "$"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, Usagef("%s", err.Error())
	}
	s.re = re

	for i := range opts.Runstates {
		if _, err := proc.ParseRunState(opts.Runstates[i : i+1]); err != nil {
			return nil, Usagef("invalid run state: %q", opts.Runstates[i])
		}
	}

	if s.parents, err = parsePidSet(opts.Parent, nil); err != nil {
		return nil, Usagef("invalid parent list: %s\nTry `%s --help' for more information.", opts.Parent, opts.Program)
	}
	if s.pgroups, err = parsePidSet(opts.Pgroup, callerPgid); err != nil {
		return nil, Usagef("invalid process group list: %s\nTry `%s --help' for more information.", opts.Pgroup, opts.Program)
	}
	if s.sessions, err = parsePidSet(opts.Session, callerSid); err != nil {
		return nil, Usagef("invalid session list: %s\nTry `%s --help' for more information.", opts.Session, opts.Program)
	}

	if s.gids, err = parseIDSet(opts.Group, util.LookupGroupID); err != nil {
		return nil, Usagef("%s\nTry `%s --help' for more information.", err, opts.Program)
	}
	if s.uids, err = parseIDSet(opts.UID, util.LookupUserID); err != nil {
		return nil, Usagef("%s\nTry `%s --help' for more information.", err, opts.Program)
	}
	if s.euids, err = parseIDSet(opts.EUID, util.LookupUserID); err != nil {
		return nil, Usagef("%s\nTry `%s --help' for more information.", err, opts.Program)
	}

	if opts.Terminal != "" {
		s.terminals = make(map[proc.Teletype]struct{})
		for _, tok := range util.SplitList(opts.Terminal) {
			tty, err := proc.ParseTeletype(tok)
			if err != nil {
				// unrecognised terminal names never match anything
				continue
			}
			s.terminals[tty] = struct{}{}
		}
	}

	if opts.Cgroup != "" {
		if v, _, err := cgroup.Detect(); err == nil && v != cgroup.V2 && v != cgroup.Hybrid {
			return nil, Failf("cgroup v2 is not mounted")
		}
		s.cgroups = make(map[string]struct{})
		for _, tok := range util.SplitList(opts.Cgroup) {
			s.cgroups[tok] = struct{}{}
		}
	}

	for _, arg := range opts.Env {
		for _, tok := range util.SplitList(arg) {
			key, value, found := strings.Cut(tok, "=")
			s.envs = append(s.envs, envPredicate{key: key, value: value, hasValue: found})
		}
	}

	sig := opts.Signal
	if sig == "" {
		sig = "TERM"
	}
	if s.signal, err = signals.ByNameOrValue(sig); err != nil {
		return nil, Failf("Unknown signal '%s'", opts.Signal)
	}

	if opts.Logpidfile && opts.Pidfile == "" {
		return nil, Usagef("-L without -F makes no sense\nTry `%s --help' for more information.", opts.Program)
	}
	if opts.Pidfile != "" {
		pid, err := pidfile.Read(opts.Pidfile)
		if err != nil {
			return nil, Failf("pidfile not valid\nTry `%s --help' for more information.", opts.Program)
		}
		s.pidfilePath = opts.Pidfile
		s.pidfilePid = pid
		s.pidfileSet = true
	}

	if opts.NsPid != 0 {
		kinds := util.SplitList(opts.NsList)
		for _, kind := range kinds {
			if !ns.IsKind(kind) {
				return nil, Usagef("invalid namespace: %s\nTry `%s --help' for more information.", kind, opts.Program)
			}
		}
		ref, err := ns.FromPid(proc.Root(), opts.NsPid)
		if err != nil {
			return nil, Failf("opening namespace files for pid %d failed", opts.NsPid)
		}
		if len(kinds) > 0 {
			ref.Filter(kinds)
		}
		s.nsRef = ref
	}

	if !s.anyCriteria() {
		return nil, Usagef("no matching criteria specified\nTry `%s --help' for more information.", opts.Program)
	}
	return s, nil
}

func (s *Settings) anyCriteria() bool {
	return s.patternText != "" ||
		s.newest || s.oldest || s.olderSet || s.requireHandler ||
		s.runstates != "" || s.pidfileSet || s.nsRef != nil ||
		s.parents != nil || s.pgroups != nil || s.sessions != nil ||
		s.gids != nil || s.uids != nil || s.euids != nil ||
		s.terminals != nil || s.cgroups != nil || len(s.envs) > 0
}

// parsePidSet parses a comma separated pid list. When zero is given, a
// zero entry is replaced through it, used for the caller's own pgid or
// sid; otherwise zero entries are kept literally.
func parsePidSet(arg string, zero func() (uint64, error)) (map[uint64]struct{}, error) {
	if arg == "" {
		return nil, nil
	}
	set := make(map[uint64]struct{})
	for _, tok := range util.SplitList(arg) {
		id, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, err
		}
		if id == 0 && zero != nil {
			if id, err = zero(); err != nil {
				return nil, err
			}
		}
		set[id] = struct{}{}
	}
	return set, nil
}

func parseIDSet(arg string, lookup func(string) (uint64, error)) (map[uint64]struct{}, error) {
	if arg == "" {
		return nil, nil
	}
	ids, err := util.LookupIDs(arg, lookup)
	if err != nil {
		return nil, err
	}
	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
