package priority

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
	}{
		{"+4", Priority{Increase, 4}},
		{"-4", Priority{Decrease, 4}},
		{"4", Priority{To, 4}},
		{"0", Priority{To, 0}},
		{"+0", Priority{Increase, 0}},
		{"19", Priority{To, 19}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, "%q", c.in)
		assert.Equal(t, c.want, got, "%q", c.in)
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "+", "-", "+4+", "4x", "--4", "+-4", " 4"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalid, "%q", in)
	}
}

func TestApply(t *testing.T) {
	assert.Equal(t, 6, Priority{Decrease, 4}.Apply(10))
	assert.Equal(t, 14, Priority{Increase, 4}.Apply(10))
	assert.Equal(t, 4, Priority{To, 4}.Apply(10))
	assert.Equal(t, 9, Default.Apply(5))
}

func TestString(t *testing.T) {
	assert.Equal(t, "+4", Priority{Increase, 4}.String())
	assert.Equal(t, "-3", Priority{Decrease, 3}.String())
	assert.Equal(t, "7", Priority{To, 7}.String())
}
