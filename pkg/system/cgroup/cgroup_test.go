package cgroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMembership(t *testing.T) {
	m, err := ParseMembership("1:cpu,cpuacct:/user.slice")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), m.HierarchyID)
	assert.Equal(t, []string{"cpu", "cpuacct"}, m.Controllers)
	assert.Equal(t, "/user.slice", m.Path)
}

func TestParseMembershipEmptyControllers(t *testing.T) {
	m, err := ParseMembership("0::/init.scope")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), m.HierarchyID)
	assert.Empty(t, m.Controllers)
	assert.Equal(t, "/init.scope", m.Path)
}

func TestParseMembershipInvalid(t *testing.T) {
	for _, in := range []string{"", "invalid", "1:cpu", "1:cpu:/a:/b", "abc:cpu:/path", "-1:cpu:/path"} {
		_, err := ParseMembership(in)
		require.Error(t, err, in)
	}
}

func TestParseMemberships(t *testing.T) {
	content := "2:cpu:/a\n1:memory:/b\n0::/c\n"
	all, err := ParseMemberships(content)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "/b", all[1].Path)
}

func TestParseMembershipsPropagatesError(t *testing.T) {
	_, err := ParseMemberships("2:cpu:/a\nnot-a-line\n")
	require.Error(t, err)
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "cgroup v1", V1.String())
	assert.Equal(t, "cgroup v2", V2.String())
	assert.Equal(t, "cgroup hybrid", Hybrid.String())
	assert.Equal(t, "unsupported", Unsupported.String())
}
