package sqrt

import (
	"math/big"
	"strings"
	"testing"
)

func TestScaled10005Prefix(t *testing.T) {
	// sqrt(10005) = 100.02499687578...
	s := Scaled10005(10)
	want := "1000249968757"
	got := s.String()
	if !strings.HasPrefix(got, want) {
		t.Errorf("Scaled10005(10) = %s, want prefix %s", got, want)
	}
}

func TestScaled10005IsFloorOfExactSquareRoot(t *testing.T) {
	s := Scaled10005(50)

	square := new(big.Int).Mul(s, s)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(100), nil)
	radicand := new(big.Int).Mul(big.NewInt(10005), scale)

	if square.Cmp(radicand) > 0 {
		t.Error("s*s exceeds the radicand; s is not a valid floor(sqrt(...))")
	}

	next := new(big.Int).Add(s, big.NewInt(1))
	nextSquare := new(big.Int).Mul(next, next)
	if nextSquare.Cmp(radicand) <= 0 {
		t.Error("(s+1)^2 does not exceed the radicand; s is not the floor root")
	}
}

func TestScaled10005NegativeWorkingDigitsClampToZero(t *testing.T) {
	s := Scaled10005(-5)
	if s.Sign() <= 0 {
		t.Error("expected a positive result even for negative workingDigits")
	}
}
