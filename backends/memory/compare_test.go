package memory

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesEqual(t *testing.T) {
	now := time.Now()
	n := 3

	assert.True(t, valuesEqual(nil, nil))
	assert.True(t, valuesEqual((*int)(nil), nil))
	assert.False(t, valuesEqual(nil, 0))
	assert.True(t, valuesEqual(3, 3.0))
	assert.True(t, valuesEqual(&n, uint8(3)))
	assert.True(t, valuesEqual(now, now.In(time.FixedZone("x", 3600))))
	assert.True(t, valuesEqual([]string{"a"}, []string{"a"}))
	assert.False(t, valuesEqual("3", 3))
}

func TestCompareValues(t *testing.T) {
	earlier := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	c, ok := compareValues(2, 10.5)
	require.True(t, ok)
	assert.Equal(t, -1, c)

	c, ok = compareValues(earlier.Add(time.Hour), earlier)
	require.True(t, ok)
	assert.Equal(t, 1, c)

	c, ok = compareValues("b", "b")
	require.True(t, ok)
	assert.Equal(t, 0, c)

	_, ok = compareValues(nil, 1)
	assert.False(t, ok)
}

func TestNumbersCompareExactly(t *testing.T) {
	const big = int64(1) << 53
	const huge = uint64(1) << 63

	tests := []struct {
		name  string
		left  any
		right any
		want  int
		ok    bool
	}{
		{name: "int64 above float precision", left: big + 1, right: big, want: 1, ok: true},
		{name: "uint64 above float precision", left: huge + 1, right: huge, want: 1, ok: true},
		{name: "uint64 against int64", left: huge, right: int64(math.MaxInt64), want: 1, ok: true},
		{name: "negative against unsigned", left: int8(-1), right: uint64(0), want: -1, ok: true},
		{name: "unsigned against negative", left: uint(0), right: -5, want: 1, ok: true},
		{name: "mixed widths", left: int32(7), right: uint16(7), want: 0, ok: true},
		{name: "float side", left: 2, right: 2.5, want: -1, ok: true},
		{name: "nan", left: math.NaN(), right: 1, ok: false},
		{name: "number against string", left: 9, right: "10", ok: false},
		{name: "string against bool", left: "true", right: true, ok: false},
		{name: "named strings", left: status("a"), right: "b", want: -1, ok: true},
		{name: "bools", left: true, right: false, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := compareValues(tt.left, tt.right)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, c)
			}
		})
	}

	assert.False(t, valuesEqual(big+1, big))
	assert.False(t, valuesEqual(huge+1, huge))
	assert.True(t, valuesEqual(uint64(big), big))
	assert.False(t, valuesEqual(math.NaN(), math.NaN()))
	assert.False(t, valuesEqual(9, "9"))
}

type status string

func TestLikePattern(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"abc", "abc", true},
		{"abc", "abcd", false},
		{"a%", "a\nb", true},
		{"a_c", "abc", true},
		{"a_c", "ac", false},
		{"a.c", "abc", false},
		{`100\%`, "100%", true},
		{`100\%`, "1000", false},
		{`a\\b`, `a\b`, true},
		{`trailing\`, `trailing\`, true},
		{"é_", "éa", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			re, err := likePattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, re.MatchString(tt.input))
		})
	}
}
