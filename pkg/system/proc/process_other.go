//go:build !linux

package proc

import (
	"fmt"

	"github.com/ja7ad/procfind/pkg/system/cgroup"
	"github.com/ja7ad/procfind/pkg/system/ns"
)

// The non-Linux hosts this package can run on (the BSDs via
// kinfo_proc/sysctl, macOS via libproc, Windows via NT system
// information queries) expose process tables through native calls
// rather than procfs. Until those backends land, every entry point
// reports ErrUnsupported instead of lying about field values.

func Open(path string) (*Process, error) {
	return nil, fmt.Errorf("%w: open %s", ErrUnsupported, path)
}

func FromPid(pid int) (*Process, error) {
	return nil, fmt.Errorf("%w: pid %d", ErrUnsupported, pid)
}

func Current() (*Process, error) {
	return nil, ErrUnsupported
}

func Walk() ([]*Process, error) {
	return nil, ErrUnsupported
}

func WalkThreads() ([]*Process, error) {
	return nil, ErrUnsupported
}

func (p *Process) TTY() Teletype { return Unknown }

func (p *Process) ThreadIDs() []int { return nil }

func (p *Process) Environ() (map[string]string, error) { return nil, ErrUnsupported }

func (p *Process) Cgroups() ([]cgroup.Membership, error) { return nil, ErrUnsupported }

func (p *Process) CgroupV2Path() (string, error) { return "", ErrUnsupported }

func (p *Process) Namespaces() (ns.Namespace, error) { return nil, ErrUnsupported }

func (p *Process) RootDir() (string, error) { return "", ErrUnsupported }

func (p *Process) Cwd() (string, error) { return "", ErrUnsupported }
