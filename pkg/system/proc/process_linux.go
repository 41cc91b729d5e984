//go:build linux

package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ja7ad/procfind/pkg/system/cgroup"
	"github.com/ja7ad/procfind/pkg/system/ns"
)

// Open builds a Process record from a /proc/<pid> directory path. If
// the path is a symbolic link (such as /proc/self) it is resolved first
// so the record carries the real pid. The final path segment must parse
// as a positive integer. cmdline, status and stat are read exactly once.
func Open(path string) (*Process, error) {
	if fi, err := os.Lstat(path); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil, fmt.Errorf("proc: resolve %s: %w", path, err)
		}
		path = resolved
	}

	pid, err := strconv.Atoi(filepath.Base(path))
	if err != nil || pid <= 0 {
		return nil, fmt.Errorf("%w: %s is not a pid directory", ErrInvalidData, path)
	}

	cmdline, err := os.ReadFile(filepath.Join(path, "cmdline"))
	if err != nil {
		return nil, fmt.Errorf("proc: pid %d: %w", pid, err)
	}
	status, err := os.ReadFile(filepath.Join(path, "status"))
	if err != nil {
		return nil, fmt.Errorf("proc: pid %d: %w", pid, err)
	}
	stat, err := os.ReadFile(filepath.Join(path, "stat"))
	if err != nil {
		return nil, fmt.Errorf("proc: pid %d: %w", pid, err)
	}

	return newSnapshot(pid, string(cmdline), string(status), string(stat)), nil
}

// FromPid builds a record for one pid under the procfs root.
func FromPid(pid int) (*Process, error) {
	return Open(filepath.Join(Root(), strconv.Itoa(pid)))
}

// Current returns the record of the calling process.
func Current() (*Process, error) {
	return FromPid(os.Getpid())
}

// TTY resolves the controlling terminal by scanning the open-file
// symlinks under /proc/<pid>/fd. The first link target that parses as a
// known terminal shape wins; Unknown if none do. Falls back to decoding
// the tty_nr stat field when the fd directory is unreadable (other
// users' processes without privileges).
func (p *Process) TTY() Teletype {
	fdDir := filepath.Join(Root(), strconv.Itoa(p.Pid), "fd")
	entries, err := os.ReadDir(fdDir)
	if err != nil {
		if nr, err := p.numericStatField(6); err == nil {
			return TeletypeFromNr(nr)
		}
		return Unknown
	}

	for _, entry := range entries {
		target, err := os.Readlink(filepath.Join(fdDir, entry.Name()))
		if err != nil {
			continue
		}
		if tty, err := ParseTeletype(target); err == nil && tty != Unknown {
			return tty
		}
	}
	return Unknown
}

// ThreadIDs returns the task ids of the process, read from the
// directory names under /proc/<pid>/task. Cached after the first call.
func (p *Process) ThreadIDs() []int {
	if p.threadIDs == nil {
		dir := filepath.Join(Root(), strconv.Itoa(p.Pid), "task")
		entries, err := os.ReadDir(dir)
		if err != nil {
			p.threadIDs = []int{}
			return p.threadIDs
		}
		tids := make([]int, 0, len(entries))
		for _, entry := range entries {
			if tid, err := strconv.Atoi(entry.Name()); err == nil && tid > 0 {
				tids = append(tids, tid)
			}
		}
		p.threadIDs = tids
	}
	return p.threadIDs
}

// Environ reads /proc/<pid>/environ and returns one entry per
// NUL-separated KEY=VALUE pair. Entries without '=' are ignored.
func (p *Process) Environ() (map[string]string, error) {
	raw, err := os.ReadFile(filepath.Join(Root(), strconv.Itoa(p.Pid), "environ"))
	if err != nil {
		return nil, fmt.Errorf("proc: environ of pid %d: %w", p.Pid, err)
	}

	env := make(map[string]string)
	for _, entry := range strings.Split(string(raw), "\x00") {
		if key, value, ok := strings.Cut(entry, "="); ok {
			env[key] = value
		}
	}
	return env, nil
}

// Cgroups returns the cgroup memberships (both v1 and v2) of the
// process.
func (p *Process) Cgroups() ([]cgroup.Membership, error) {
	raw, err := os.ReadFile(filepath.Join(Root(), strconv.Itoa(p.Pid), "cgroup"))
	if err != nil {
		return nil, fmt.Errorf("proc: cgroup of pid %d: %w", p.Pid, err)
	}
	return cgroup.ParseMemberships(string(raw))
}

// CgroupV2Path returns the path of the process in the unified (v2)
// hierarchy, identified by hierarchy id 0.
func (p *Process) CgroupV2Path() (string, error) {
	memberships, err := p.Cgroups()
	if err != nil {
		return "", err
	}
	for _, m := range memberships {
		if m.HierarchyID == 0 {
			return m.Path, nil
		}
	}
	return "", fmt.Errorf("%w: pid %d has no v2 cgroup", ErrInvalidData, p.Pid)
}

// Namespaces reads the namespace identifiers of the process.
func (p *Process) Namespaces() (ns.Namespace, error) {
	return ns.FromPid(Root(), p.Pid)
}

// RootDir returns the root directory of the process, which can differ
// from / after chroot.
func (p *Process) RootDir() (string, error) {
	target, err := os.Readlink(filepath.Join(Root(), strconv.Itoa(p.Pid), "root"))
	if err != nil {
		return "", fmt.Errorf("proc: root of pid %d: %w", p.Pid, err)
	}
	return target, nil
}

// Cwd returns the current working directory of the process.
func (p *Process) Cwd() (string, error) {
	target, err := os.Readlink(filepath.Join(Root(), strconv.Itoa(p.Pid), "cwd"))
	if err != nil {
		return "", fmt.Errorf("proc: cwd of pid %d: %w", p.Pid, err)
	}
	return target, nil
}
