//go:build linux

package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Walk enumerates every live pid under the procfs root and returns one
// record per process. Ordering is not guaranteed. Pids that vanish
// between the directory listing and the snapshot read are skipped; an
// unreadable procfs root is fatal.
func Walk() ([]*Process, error) {
	root := Root()
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("proc: read %s: %w", root, err)
	}

	var out []*Process
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}
		p, err := Open(filepath.Join(root, entry.Name()))
		if err != nil {
			// process died mid-walk
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// WalkThreads enumerates every task of every live pid, yielding one
// record per /proc/<pid>/task/<tid> entry. Descent is bounded at the
// task directory level.
func WalkThreads() ([]*Process, error) {
	root := Root()
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("proc: read %s: %w", root, err)
	}

	var out []*Process
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}
		taskDir := filepath.Join(root, entry.Name(), "task")
		tasks, err := os.ReadDir(taskDir)
		if err != nil {
			continue
		}
		for _, task := range tasks {
			tid, err := strconv.Atoi(task.Name())
			if err != nil || tid <= 0 {
				continue
			}
			p, err := Open(filepath.Join(taskDir, task.Name()))
			if err != nil {
				continue
			}
			out = append(out, p)
		}
	}
	return out, nil
}
