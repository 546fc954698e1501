// Package math includes important helpers for Ethereum consensus such as
// checked unsigned integer operations. Arithmetic in reward and balance
// computations must never silently wrap.
package math

import (
	stdmath "math"

	"github.com/pkg/errors"
)

var (
	// ErrOverflow is returned when an operation exceeds max uint64.
	ErrOverflow = errors.New("integer overflow")
	// ErrUnderflow is returned when an operation underflows below zero.
	ErrUnderflow = errors.New("integer underflow")
	// ErrDivByZero is returned on division or modulo by zero.
	ErrDivByZero = errors.New("integer divide by zero")
)

// Min returns the smaller of a and b.
func Min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// Add64 computes a + b with overflow checking.
func Add64(a, b uint64) (uint64, error) {
	res := a + b
	if res < a {
		return 0, ErrOverflow
	}
	return res, nil
}

// Sub64 computes a - b with underflow checking.
func Sub64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Mul64 computes a * b with overflow checking.
func Mul64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	res := a * b
	if res/b != a {
		return 0, ErrOverflow
	}
	return res, nil
}

// Div64 computes floor(a / b), erroring on a zero divisor.
func Div64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	return a / b, nil
}

// Mod64 computes a % b, erroring on a zero divisor.
func Mod64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivByZero
	}
	return a % b, nil
}

// PowerOf2 returns 2^n. n must be below 64 to not overflow.
func PowerOf2(n uint64) uint64 {
	if n >= 64 {
		panic("integer overflow")
	}
	return 1 << n
}

// IntegerSquareRoot returns the largest x such that x * x <= n.
func IntegerSquareRoot(n uint64) uint64 {
	if n >= stdmath.MaxUint32*stdmath.MaxUint32 {
		// Newton's method below assumes the initial float estimate is
		// within one of the true root, which fails near max uint64.
		return stdmath.MaxUint32 - 1
	}
	x := uint64(stdmath.Sqrt(float64(n)))
	for x*x > n {
		x--
	}
	for (x+1)*(x+1) <= n {
		x++
	}
	return x
}
