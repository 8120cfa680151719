package config

import (
	"context"
	"math/big"
)

// PiCalculator defines the interface for computing π.
// This interface allows for different implementations and better testability.
type PiCalculator interface {
	Compute(ctx context.Context, digits int64) (string, error)
}

// ProgressReporter defines the interface for reporting computation progress.
// Implementations can provide visual feedback during long-running calculations.
type ProgressReporter interface {
	Update(current, total int64)
	Finish()
	SetDescription(desc string)
}

// Result represents a PQT computation result from the Chudnovsky algorithm.
// P, Q, and T are the three values computed for a contiguous term range;
// see the split tuple invariants in the calculator package.
type Result struct {
	P, Q, T *big.Int
}

