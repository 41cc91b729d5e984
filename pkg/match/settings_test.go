package match

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettingsTooManyPatterns(t *testing.T) {
	_, err := NewSettings(Options{Program: "pgrep", Patterns: []string{"a", "b"}})
	var ce *CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Code)
	assert.Contains(t, ce.Msg, "only one pattern can be provided")
}

func TestNewSettingsNoCriteria(t *testing.T) {
	_, err := NewSettings(Options{Program: "pgrep"})
	var ce *CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Code)
	assert.Contains(t, ce.Msg, "no matching criteria specified")

	// inverse alone is not a criterion
	_, err = NewSettings(Options{Program: "pgrep", Inverse: true})
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Code)
}

func TestNewSettingsInvalidRegex(t *testing.T) {
	_, err := NewSettings(Options{Program: "pgrep", Patterns: []string{"["}})
	var ce *CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Code)
}

func TestNewSettingsInvalidRunstate(t *testing.T) {
	_, err := NewSettings(Options{Program: "pgrep", Runstates: "Q"})
	var ce *CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Code)
}

func TestNewSettingsUnknownSignal(t *testing.T) {
	_, err := NewSettings(Options{Program: "pkill", Patterns: []string{"x"}, Signal: "NOPE"})
	var ce *CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Code)
	assert.Contains(t, ce.Msg, "Unknown signal")
}

func TestNewSettingsSignalDefaultsToTerm(t *testing.T) {
	s, err := NewSettings(Options{Program: "pkill", Patterns: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, 15, s.Signal())
}

func TestNewSettingsLogpidfileNeedsPidfile(t *testing.T) {
	_, err := NewSettings(Options{Program: "pgrep", Logpidfile: true})
	var ce *CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Code)
}

func TestNewSettingsPidfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte("1234\n"), 0o644))

	s, err := NewSettings(Options{Program: "pgrep", Pidfile: path})
	require.NoError(t, err)
	assert.Equal(t, 1234, s.pidfilePid)
	assert.True(t, s.pidfileSet)
}

func TestNewSettingsPidfileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte("0x42"), 0o644))

	_, err := NewSettings(Options{Program: "pgrep", Pidfile: path})
	var ce *CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Code)
	assert.Contains(t, ce.Msg, "pidfile not valid")
}

func TestNewSettingsParentList(t *testing.T) {
	s, err := NewSettings(Options{Program: "pgrep", Parent: "1,42"})
	require.NoError(t, err)
	assert.Contains(t, s.parents, uint64(1))
	assert.Contains(t, s.parents, uint64(42))

	_, err = NewSettings(Options{Program: "pgrep", Parent: "1,x"})
	var ce *CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Code)
}

func TestNewSettingsParentZeroIsLiteral(t *testing.T) {
	s, err := NewSettings(Options{Program: "pgrep", Parent: "0"})
	require.NoError(t, err)
	assert.Contains(t, s.parents, uint64(0))
}

func TestNewSettingsInvalidNamespaceKind(t *testing.T) {
	_, err := NewSettings(Options{Program: "pgrep", NsPid: 1, NsList: "netz"})
	var ce *CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Code)
	assert.Contains(t, ce.Msg, "invalid namespace")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 2, ExitCode(Usagef("bad")))
	assert.Equal(t, 1, ExitCode(Failf("bad")))
}
