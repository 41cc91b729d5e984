package ns

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Kinds lists the namespace kinds the matcher understands, in the order
// procps documents them.
var Kinds = []string{"ipc", "mnt", "net", "pid", "user", "uts"}

// IsKind reports whether s names a supported namespace kind.
func IsKind(s string) bool {
	for _, k := range Kinds {
		if k == s {
			return true
		}
	}
	return false
}

// Namespace holds one optional identifier per kind. Identifiers are the
// link targets of /proc/<pid>/ns/<kind>, e.g. "pid:[4026531836]".
type Namespace map[string]string

// FromPid reads the namespace links of one pid under the given procfs
// root. Kinds whose link cannot be read are left absent; an unreadable
// ns directory is an error.
func FromPid(procRoot string, pid int) (Namespace, error) {
	dir := filepath.Join(procRoot, strconv.Itoa(pid), "ns")
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("ns: pid %d: %w", pid, err)
	}

	n := make(Namespace, len(Kinds))
	for _, kind := range Kinds {
		target, err := os.Readlink(filepath.Join(dir, kind))
		if err != nil {
			continue
		}
		n[kind] = target
	}
	return n, nil
}

// Filter clears identifiers outside the kept kinds, in place.
func (n Namespace) Filter(kinds []string) {
	keep := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		keep[k] = struct{}{}
	}
	for kind := range n {
		if _, ok := keep[kind]; !ok {
			delete(n, kind)
		}
	}
}

// Matches reports whether for some kind both namespaces have an
// identifier and the identifiers are equal.
func (n Namespace) Matches(other Namespace) bool {
	for kind, id := range n {
		if oid, ok := other[kind]; ok && oid == id {
			return true
		}
	}
	return false
}
