package cast_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wecisecode/rbtree/cast"
	"github.com/wecisecode/rbtree/merrs"
)

func TestToKeyE(t *testing.T) {
	for in, want := range map[any]int{
		"42":    42,
		" 7 ":   7,
		"+5":    5,
		"-12":   -12,
		"010":   10,
		"-007":  -7,
		"0":     0,
		int64(9): 9,
		3.0:     3,
	} {
		k, err := cast.ToKeyE(in)
		require.NoError(t, err, "%v", in)
		assert.Equal(t, want, k, "%v", in)
	}

	for _, in := range []any{"", "abc", "1.5", 2.5, "12x"} {
		_, err := cast.ToKeyE(in)
		require.Error(t, err, "%v", in)
		assert.True(t, merrs.ErrParam.Contains(err))
	}
}

func TestParseRangeE(t *testing.T) {
	from, to, err := cast.ParseRangeE("1..15")
	require.NoError(t, err)
	assert.Equal(t, 1, from)
	assert.Equal(t, 15, to)

	from, to, err = cast.ParseRangeE("-3..-5")
	require.NoError(t, err)
	keys, err := cast.RangeE(from, to)
	require.NoError(t, err)
	assert.Equal(t, []int{-3, -4, -5}, keys)

	_, _, err = cast.ParseRangeE("1-15")
	assert.True(t, merrs.ErrParam.Contains(err))
	_, _, err = cast.ParseRangeE("1..x")
	assert.True(t, merrs.ErrFormat.Contains(err))
}

func TestToKeysE(t *testing.T) {
	keys, err := cast.ToKeysE("10, 20 30;1..3")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30, 1, 2, 3}, keys)

	keys, err = cast.ToKeysE([]any{5, "6", "8..7"})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6, 8, 7}, keys)

	keys, err = cast.ToKeysE(9)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, keys)

	keys, err = cast.ToKeysE("")
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = cast.ToKeysE("1, two")
	assert.Error(t, err)
}

func TestRangeLimit(t *testing.T) {
	full := fmt.Sprintf("%d..%d", math.MinInt, math.MaxInt)
	_, _, err := cast.ParseRangeE(full)
	require.Error(t, err)
	assert.True(t, merrs.ErrParam.Contains(err))

	_, err = cast.ToKeysE(full)
	assert.True(t, merrs.ErrParam.Contains(err))
	_, err = cast.ToKeysE("0..3000000000")
	assert.True(t, merrs.ErrParam.Contains(err))

	assert.Equal(t, uint64(math.MaxUint64), cast.RangeSpan(math.MinInt, math.MaxInt))
	assert.Equal(t, uint64(math.MaxUint64), cast.RangeSpan(math.MaxInt, math.MinInt))
	_, err = cast.RangeE(math.MaxInt, math.MinInt)
	assert.True(t, merrs.ErrParam.Contains(err))

	keys, err := cast.RangeE(1, cast.MaxRangeKeys)
	require.NoError(t, err)
	assert.Len(t, keys, cast.MaxRangeKeys)
	_, err = cast.RangeE(0, cast.MaxRangeKeys)
	assert.True(t, merrs.ErrParam.Contains(err))

	keys, err = cast.RangeE(math.MaxInt-1, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, []int{math.MaxInt - 1, math.MaxInt}, keys)
}
