package ns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeNsTree(t *testing.T, pid string, links map[string]string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, pid, "ns")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for kind, target := range links {
		require.NoError(t, os.Symlink(target, filepath.Join(dir, kind)))
	}
	return root
}

func TestFromPid(t *testing.T) {
	root := fakeNsTree(t, "123", map[string]string{
		"pid": "pid:[4026531836]",
		"net": "net:[4026531992]",
		"uts": "uts:[4026531838]",
	})

	n, err := FromPid(root, 123)
	require.NoError(t, err)
	assert.Equal(t, "pid:[4026531836]", n["pid"])
	assert.Equal(t, "net:[4026531992]", n["net"])
	assert.NotContains(t, n, "ipc")
}

func TestFromPidMissingDir(t *testing.T) {
	_, err := FromPid(t.TempDir(), 1)
	require.Error(t, err)
}

func TestFilter(t *testing.T) {
	n := Namespace{
		"ipc": "ipc:[1]", "mnt": "mnt:[2]", "net": "net:[3]",
		"pid": "pid:[4]", "user": "user:[5]", "uts": "uts:[6]",
	}

	n.Filter([]string{"ipc", "pid"})

	assert.Equal(t, Namespace{"ipc": "ipc:[1]", "pid": "pid:[4]"}, n)
}

func TestFilterEmpty(t *testing.T) {
	n := Namespace{"ipc": "ipc:[1]", "uts": "uts:[6]"}
	n.Filter(nil)
	assert.Empty(t, n)
}

func TestMatches(t *testing.T) {
	a := Namespace{"ipc": "ipc:[1]"}
	b := Namespace{"ipc": "ipc:[1]", "net": "net:[9]"}
	assert.True(t, a.Matches(b))
	assert.True(t, b.Matches(a))

	c := Namespace{"ipc": "ipc:[2]"}
	assert.False(t, a.Matches(c))

	// disjoint kinds never match
	d := Namespace{"net": "net:[9]"}
	assert.False(t, a.Matches(d))

	// empty namespaces never match anything
	assert.False(t, Namespace{}.Matches(b))
	assert.False(t, b.Matches(Namespace{}))
}

func TestIsKind(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, IsKind(k))
	}
	assert.False(t, IsKind("cgroup"))
	assert.False(t, IsKind(""))
}
