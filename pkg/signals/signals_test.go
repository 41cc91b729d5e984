package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByNameOrValue(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"HUP", 1},
		{"SIGHUP", 1},
		{"sigterm", 15},
		{"Kill", 9},
		{"9", 9},
		{"0", 0},
		{"31", 31},
		{"SYS", 31},
	}
	for _, c := range cases {
		got, err := ByNameOrValue(c.in)
		require.NoError(t, err, "%q", c.in)
		assert.Equal(t, c.want, got, "%q", c.in)
	}
}

func TestByNameOrValueUnknown(t *testing.T) {
	for _, in := range []string{"NOPE", "SIGNOPE", "-1", "32", "99"} {
		_, err := ByNameOrValue(in)
		assert.ErrorIs(t, err, ErrUnknown, "%q", in)
	}
}

func TestNameByValue(t *testing.T) {
	name, err := NameByValue(9)
	require.NoError(t, err)
	assert.Equal(t, "KILL", name)

	name, err = NameByValue(16)
	require.NoError(t, err)
	assert.Equal(t, "STKFLT", name)

	_, err = NameByValue(0)
	assert.ErrorIs(t, err, ErrUnknown)
	_, err = NameByValue(32)
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestRoundTrip(t *testing.T) {
	for i, want := range Names() {
		got, err := NameByValue(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		n, err := ByNameOrValue(want)
		require.NoError(t, err)
		assert.Equal(t, i+1, n)
	}
}

func TestFormatList(t *testing.T) {
	want := "HUP INT QUIT ILL TRAP ABRT BUS FPE KILL USR1 SEGV USR2 PIPE ALRM TERM STKFLT\n" +
		"CHLD CONT STOP TSTP TTIN TTOU URG XCPU XFSZ VTALRM PROF WINCH POLL PWR SYS\n"
	assert.Equal(t, want, FormatList())
}

func TestFormatTable(t *testing.T) {
	want := " 1 HUP      2 INT      3 QUIT     4 ILL      5 TRAP     6 ABRT     7 BUS\n" +
		" 8 FPE      9 KILL    10 USR1    11 SEGV    12 USR2    13 PIPE    14 ALRM\n" +
		"15 TERM    16 STKFLT  17 CHLD    18 CONT    19 STOP    20 TSTP    21 TTIN\n" +
		"22 TTOU    23 URG     24 XCPU    25 XFSZ    26 VTALRM  27 PROF    28 WINCH\n" +
		"29 POLL    30 PWR     31 SYS\n"
	assert.Equal(t, want, FormatTable())
}
