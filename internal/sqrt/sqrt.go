// Package sqrt computes the high-precision square root of 10005 that the
// Chudnovsky formula divides by. It never touches floating point: the
// whole computation is a single exact integer square root at full
// working precision, per the engine's design notes against limited-
// precision sqrt corrupting trailing digits.
package sqrt

import "math/big"

var (
	ten      = big.NewInt(10)
	tenThou5 = big.NewInt(10005)
)

// Scaled10005 computes S = floor(sqrt(10005 * 10^(2*workingDigits))),
// i.e. an integer representation of sqrt(10005) * 10^workingDigits.
// workingDigits must be >= 0.
func Scaled10005(workingDigits int) *big.Int {
	if workingDigits < 0 {
		workingDigits = 0
	}
	scale := new(big.Int).Exp(ten, big.NewInt(2*int64(workingDigits)), nil)
	radicand := new(big.Int).Mul(tenThou5, scale)
	return new(big.Int).Sqrt(radicand)
}
