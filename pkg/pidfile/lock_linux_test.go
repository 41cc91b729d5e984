//go:build linux

package pidfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLockedUnheld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unheld.pid")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	err := CheckLocked(path)
	assert.ErrorIs(t, err, ErrNotLocked)
}

func TestCheckLockedMissingFile(t *testing.T) {
	err := CheckLocked(filepath.Join(t.TempDir(), "nope.pid"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotLocked)
}
