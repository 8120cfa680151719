// Package bignum wraps math/big with the one performance-critical
// decision the Chudnovsky binary-splitting engine depends on: large
// multiplications must be asymptotically sub-quadratic. math/big already
// switches from schoolbook to Karatsuba and Toom-3 as operands grow, but
// at the digit counts this engine targets (millions to billions) an
// FFT-class multiply pulls further ahead. Mul picks whichever is faster
// for the given operand size.
package bignum

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// DefaultFFTThresholdWords is used when a caller doesn't have a
// config-derived threshold at hand (e.g. inside library code shared
// across configs).
const DefaultFFTThresholdWords = 1 << 12

// Mul returns x*y, computed via bigfft's FFT-based multiplication when
// both operands are at least thresholdWords 64-bit words long, and via
// big.Int.Mul otherwise. bigfft.Mul is itself only a net win once the
// operands are large enough to amortize the transform setup cost, so the
// threshold guards against regressing small leaf-level multiplications.
func Mul(x, y *big.Int, thresholdWords int) *big.Int {
	if thresholdWords <= 0 {
		thresholdWords = DefaultFFTThresholdWords
	}
	if words(x) >= thresholdWords && words(y) >= thresholdWords {
		return bigfft.Mul(x, y)
	}
	return new(big.Int).Mul(x, y)
}

// words reports the number of 64-bit words needed to represent the
// magnitude of n.
func words(n *big.Int) int {
	return (n.BitLen() + 63) / 64
}
