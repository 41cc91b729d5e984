package proc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusFixture = "Name:\tbash\n" +
	"Umask:\t0022\n" +
	"State:\tS (sleeping)\n" +
	"Pid:\t1234\n" +
	"PPid:\t1000\n" +
	"Uid:\t1000\t1001\t1002\t1000\n" +
	"Gid:\t2000\t2001\t2002\t2000\n" +
	"SigPnd:\t0000000000000000\n" +
	"SigBlk:\t0000000000010000\n" +
	"SigIgn:\t0000000000384004\n" +
	"SigCgt:\t000000004b813efb\n"

const statFixture = "1234 (bash) S 1000 1234 1234 34816 5678 4194304 " +
	"6666 0 1 0 5 3 0 0 20 0 1 0 4242 8962048 821 18446744073709551615 " +
	"0 0 0 0 0 0 65536 4 65538 1 0 0 17 6 0 0 0 0 0 0 0 0 0 0 0 0 0"

func fixtureProcess() *Process {
	return newSnapshot(1234, "bash\x00-l\x00", statusFixture, statFixture)
}

func TestStatSplit(t *testing.T) {
	// comm with a slash
	fields := statSplit("32 (idle_inject/3) S 2 0 0 0 -1 69238848 0 0 0 0 0 0 0 0 -51 0 1 0 34 0 0")
	assert.Equal(t, "32", fields[0])
	assert.Equal(t, "idle_inject/3", fields[1])
	assert.Equal(t, "S", fields[2])
	assert.Equal(t, "2", fields[3])
	assert.Equal(t, "34", fields[21])

	// comm with spaces and nested parentheses
	fields = statSplit("83875 (sleep (2) .sh) S 75750 83875 75750 34824 83875 4194304 173 0 0 0 0 0 0 0 20 0 1 0 18366278")
	assert.Equal(t, "sleep (2) .sh", fields[1])
	assert.Equal(t, "S", fields[2])
	assert.Equal(t, "75750", fields[3])

	// comm with a space
	fields = statSplit("47246 (kworker /10:1-events) I 2 0 0 0 -1 69238880 0 0")
	assert.Equal(t, "kworker /10:1-events", fields[1])
	assert.Equal(t, "I", fields[2])

	// no parentheses at all
	fields = statSplit("12 comm R 1 1 1")
	assert.Equal(t, []string{"12", "comm", "R", "1", "1", "1"}, fields)
}

func TestCmdlineNormalization(t *testing.T) {
	p := newSnapshot(1, "nginx:\x00master\x00process\x00", "Name:\tnginx\n", "1 (nginx) S 0 1 1 0")
	assert.Equal(t, "nginx: master process", p.Cmdline)
	assert.NotContains(t, p.Cmdline, "\x00")

	// kernel threads have an empty cmdline but stay well-formed
	kt := newSnapshot(2, "", "Name:\tkthreadd\n", "2 (kthreadd) S 0 0 0 0")
	assert.Equal(t, "", kt.Cmdline)
	name, err := kt.Name()
	require.NoError(t, err)
	assert.Equal(t, "kthreadd", name)
}

func TestStatusView(t *testing.T) {
	p := fixtureProcess()
	status := p.Status()
	assert.Equal(t, "bash", status["Name"])
	assert.Equal(t, "1000\t1001\t1002\t1000", status["Uid"])

	// idempotence: same frozen view on every call
	again := p.Status()
	assert.Equal(t, fmt.Sprintf("%p", status), fmt.Sprintf("%p", again))
}

func TestStatView(t *testing.T) {
	p := fixtureProcess()
	fields := p.Stat()
	assert.Equal(t, "1234", fields[0])
	assert.Equal(t, "bash", fields[1])

	again := p.Stat()
	assert.Same(t, &fields[0], &again[0])
}

func TestSchedulingIDs(t *testing.T) {
	p := fixtureProcess()

	ppid, err := p.PPid()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), ppid)

	pgid, err := p.Pgid()
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), pgid)

	sid, err := p.Sid()
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), sid)
}

func TestStartTimeCached(t *testing.T) {
	p := fixtureProcess()
	st, err := p.StartTime()
	require.NoError(t, err)
	assert.Equal(t, uint64(4242), st)

	st2, err := p.StartTime()
	require.NoError(t, err)
	assert.Equal(t, st, st2)
}

func TestRunStateField(t *testing.T) {
	p := fixtureProcess()
	state, err := p.State()
	require.NoError(t, err)
	assert.Equal(t, Sleeping, state)
}

func TestCredentials(t *testing.T) {
	p := fixtureProcess()

	uid, err := p.UID()
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), uid)

	euid, err := p.EUID()
	require.NoError(t, err)
	assert.Equal(t, uint32(1001), euid)

	suid, err := p.SUID()
	require.NoError(t, err)
	assert.Equal(t, uint32(1002), suid)

	gid, err := p.GID()
	require.NoError(t, err)
	assert.Equal(t, uint32(2000), gid)

	egid, err := p.EGID()
	require.NoError(t, err)
	assert.Equal(t, uint32(2001), egid)

	sgid, err := p.SGID()
	require.NoError(t, err)
	assert.Equal(t, uint32(2002), sgid)
}

func TestSignalMasks(t *testing.T) {
	p := fixtureProcess()

	caught, err := p.SignalsCaughtMask()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x4b813efb), caught)

	pending, err := p.SignalsPendingMask()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), pending)

	blocked, err := p.SignalsBlockedMask()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x10000), blocked)

	ignored, err := p.SignalsIgnoredMask()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x384004), ignored)
}

func TestMissingFieldsError(t *testing.T) {
	p := newSnapshot(7, "", "Umask:\t0022\n", "7 (x)")

	_, err := p.Name()
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = p.PPid()
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = p.UID()
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = p.SignalsCaughtMask()
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = p.StartTime()
	assert.ErrorIs(t, err, ErrInvalidData)
}
