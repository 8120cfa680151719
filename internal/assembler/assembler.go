// Package assembler combines the root (P, Q, T) split tuple and the
// scaled square root of 10005 into the decimal expansion of π.
//
// The engine's binary-splitting convention (internal/calculator) folds
// the k=0 term directly into the leaf recursion, so T already carries
// the 13591409*Q(0,1) contribution; the Chudnovsky formula then reduces
// to pi ≈ (426880 * S * Q) / T, with no separate additive term.
package assembler

import (
	"fmt"
	"math/big"
)

var coeff = big.NewInt(426880)

// Assemble computes the scaled integer ratio for π, then truncates its
// decimal text to exactly digits fractional digits. S must already be
// sqrt(10005) scaled by 10^(digits+guard). guard must be >= 10; it is
// the number of extra digits carried through the division before
// truncation, protecting the last requested digit from truncation error.
//
// Assemble never rounds: the returned string is always a prefix of the
// true decimal expansion of π, matching reference tables.
func Assemble(q, t, s *big.Int, digits, guard int) (string, error) {
	if digits < 1 {
		return "", fmt.Errorf("assembler: digits must be >= 1, got %d", digits)
	}
	if guard < 10 {
		return "", fmt.Errorf("assembler: guard must be >= 10, got %d", guard)
	}
	if q.Sign() <= 0 {
		return "", fmt.Errorf("assembler: Q must be positive, got %s", q.String())
	}
	if t.Sign() <= 0 {
		return "", fmt.Errorf("assembler: T must be positive, got %s", t.String())
	}

	numerator := new(big.Int).Mul(coeff, s)
	numerator.Mul(numerator, q)

	scaledPi := new(big.Int).Quo(numerator, t)

	text := scaledPi.String()
	workingDigits := digits + guard
	// text is the decimal digits of pi*10^workingDigits with no point.
	// pi is between 3 and 4, so scaledPi must have exactly one leading
	// integer digit ("3") followed by workingDigits fractional digits.
	if len(text) != workingDigits+1 {
		return "", fmt.Errorf("assembler: unexpected precision: got %d digits, want %d", len(text), workingDigits+1)
	}

	leading := text[:1]
	fraction := text[1 : 1+digits]

	return leading + "." + fraction, nil
}
