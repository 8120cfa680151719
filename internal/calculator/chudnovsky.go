package calculator

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/kestrelpi/chudnovsky/internal/assembler"
	"github.com/kestrelpi/chudnovsky/internal/config"
	"github.com/kestrelpi/chudnovsky/internal/sqrt"
	"github.com/kestrelpi/chudnovsky/internal/verify"
)

// Calculator implements the Chudnovsky algorithm for computing π to
// arbitrary precision, using the fastest known converging series for
// the purpose, evaluated via binary splitting.
type Calculator struct {
	cfg  *config.Config
	pool PoolInterface
}

// New creates a calculator with the given configuration. pool may be
// nil, in which case every computation runs sequentially regardless of
// range size.
func New(cfg *config.Config, pool PoolInterface) *Calculator {
	return &Calculator{cfg: cfg, pool: pool}
}

var _ config.PiCalculator = (*Calculator)(nil)

// TermCount returns the number of Chudnovsky terms needed to produce at
// least digits decimal digits of precision, including the configured
// guard terms that absorb rounding of DigitsPerTerm.
func TermCount(digits int64, cfg *config.Config) int64 {
	terms := int64(math.Ceil(float64(digits)/cfg.DigitsPerTerm)) + cfg.TermGuard
	if terms < 1 {
		terms = 1
	}
	return terms
}

// ComputePi computes π to the given number of decimal digits. progress,
// if non-nil, receives (phase, fractionComplete) updates as the
// computation proceeds through its split, merge, sqrt, and assemble
// phases; a panicking progress callback is caught and ignored.
func (c *Calculator) ComputePi(ctx context.Context, digits int64, progress ProgressFunc) (string, error) {
	if digits < 1 {
		return "", &ComputeError{Kind: InvalidPrecision, Reason: fmt.Sprintf("digits must be >= 1, got %d", digits)}
	}
	if digits > c.cfg.MaxDigits {
		return "", &ComputeError{Kind: InvalidPrecision, Reason: fmt.Sprintf("digits exceeds maximum allowed (%d), got %d", c.cfg.MaxDigits, digits)}
	}

	terms := TermCount(digits, c.cfg)
	guard := c.cfg.GuardDigitsFor(terms)
	workingDigits := digits + int64(guard)

	_, q, t, err := ComputePQT(ctx, 0, terms, c.cfg, c.pool, progress)
	if err != nil {
		return "", fmt.Errorf("compute pi: split phase: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", &ComputeError{Kind: Cancelled, Err: ctx.Err()}
	default:
	}

	s := sqrt.Scaled10005(int(workingDigits))
	reportPhase(progress, PhaseSqrt, 1)

	piStr, err := assembler.Assemble(q, t, s, int(digits), guard)
	if err != nil {
		return "", &ComputeError{Kind: VerificationFailed, Reason: err.Error(), Err: err}
	}
	reportPhase(progress, PhaseAssemble, 1)

	if err := verify.Verify(piStr, digits); err != nil {
		return "", &ComputeError{Kind: VerificationFailed, Reason: err.Error(), Err: err}
	}

	return piStr, nil
}

// Compute implements config.PiCalculator for callers that don't need
// progress updates.
func (c *Calculator) Compute(ctx context.Context, digits int64) (string, error) {
	return c.ComputePi(ctx, digits, nil)
}

// GetNumCPU returns the number of CPU cores available, never less than 1.
func GetNumCPU() int {
	numCPU := runtime.NumCPU()
	if numCPU < 1 {
		return 1
	}
	return numCPU
}
