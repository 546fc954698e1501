package math_test

import (
	stdmath "math"
	"testing"

	"github.com/dospore/helios/math"
	"github.com/dospore/helios/testing/assert"
	"github.com/dospore/helios/testing/require"
)

func TestAdd64(t *testing.T) {
	sum, err := math.Add64(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sum)

	_, err = math.Add64(stdmath.MaxUint64, 1)
	assert.ErrorIs(t, err, math.ErrOverflow)
}

func TestSub64(t *testing.T) {
	diff, err := math.Sub64(5, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), diff)

	_, err = math.Sub64(2, 5)
	assert.ErrorIs(t, err, math.ErrUnderflow)
}

func TestMul64(t *testing.T) {
	prod, err := math.Mul64(1<<32, 1<<31)
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<63, prod)

	_, err = math.Mul64(1<<33, 1<<31)
	assert.ErrorIs(t, err, math.ErrOverflow)

	prod, err = math.Mul64(0, stdmath.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), prod)
}

func TestDiv64(t *testing.T) {
	q, err := math.Div64(7, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), q)

	_, err = math.Div64(7, 0)
	assert.ErrorIs(t, err, math.ErrDivByZero)
}

func TestIntegerSquareRoot(t *testing.T) {
	tests := map[uint64]uint64{
		0:           0,
		1:           1,
		3:           1,
		4:           2,
		16:          4,
		22500:       150,
		1 << 32:     1 << 16,
		927251:      962,
		20000000000: 141421,
	}
	for in, want := range tests {
		assert.Equal(t, want, math.IntegerSquareRoot(in))
	}
}

func TestPowerOf2(t *testing.T) {
	assert.Equal(t, uint64(1), math.PowerOf2(0))
	assert.Equal(t, uint64(32), math.PowerOf2(5))
	assert.Equal(t, uint64(1)<<63, math.PowerOf2(63))
}
