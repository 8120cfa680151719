package calculator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/kestrelpi/chudnovsky/internal/config"
	"github.com/kestrelpi/chudnovsky/internal/workerpool"
)

func TestCalculator_ComputePi(t *testing.T) {
	cfg := config.Default()
	calc := New(cfg, nil)
	ctx := context.Background()

	piStr, err := calc.ComputePi(ctx, 10, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(piStr) < 10 {
		t.Errorf("Expected at least 10 characters, got %d", len(piStr))
	}
}

func TestCalculator_ComputePi_InvalidInput(t *testing.T) {
	cfg := config.Default()
	calc := New(cfg, nil)
	ctx := context.Background()

	if _, err := calc.ComputePi(ctx, -1, nil); err == nil {
		t.Error("Expected error for negative digits")
	}
	if _, err := calc.ComputePi(ctx, 0, nil); err == nil {
		t.Error("Expected error for zero digits")
	}
	if _, err := calc.ComputePi(ctx, cfg.MaxDigits+1, nil); err == nil {
		t.Error("Expected error for exceeding max digits")
	}
}

func TestCalculator_ComputePi_WithPool(t *testing.T) {
	cfg := config.Default()
	pool := workerpool.New(2)
	defer pool.Close()
	calc := New(cfg, pool)
	ctx := context.Background()

	piStr, err := calc.ComputePi(ctx, 1000, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(piStr) < 1000 {
		t.Errorf("Expected at least 1000 characters, got %d", len(piStr))
	}
}

func TestCalculator_ComputePi_ContextCancellation(t *testing.T) {
	cfg := config.Default()
	calc := New(cfg, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := calc.ComputePi(ctx, 100, nil)
	if err == nil {
		t.Error("Expected error due to context cancellation")
	}
}

func TestGetNumCPU(t *testing.T) {
	numCPU := GetNumCPU()
	if numCPU < 1 {
		t.Errorf("Expected at least 1 CPU, got %d", numCPU)
	}
}

// TestCalculator_ComputePi_KnownPrefixes checks the computed digits
// against the well known decimal expansion of pi at several precisions.
func TestCalculator_ComputePi_KnownPrefixes(t *testing.T) {
	const known100 = "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679"

	tests := []struct {
		digits int64
		want   string
	}{
		{1, "3.1"},
		{2, "3.14"},
		{10, "3.1415926535"},
		{15, "3.141592653589793"},
		{50, known100[:52]},
		{100, known100},
	}

	cfg := config.Default()
	calc := New(cfg, nil)
	ctx := context.Background()

	for _, tt := range tests {
		got, err := calc.ComputePi(ctx, tt.digits, nil)
		if err != nil {
			t.Fatalf("digits=%d: unexpected error: %v", tt.digits, err)
		}
		if got != tt.want {
			t.Errorf("digits=%d: got %q, want %q", tt.digits, got, tt.want)
		}
	}
}

// TestCalculator_ComputePi_ParallelMatchesSequential checks that the
// worker pool path produces byte-identical output to the sequential
// path at a precision large enough to trigger parallel splitting.
func TestCalculator_ComputePi_ParallelMatchesSequential(t *testing.T) {
	cfg := config.Default()
	cfg.MinRangeForWorkerPool = 10

	sequential := New(cfg, nil)

	pool := workerpool.New(8)
	defer pool.Close()
	parallel := New(cfg, pool)

	ctx := context.Background()

	seqStr, err := sequential.ComputePi(ctx, 2000, nil)
	if err != nil {
		t.Fatalf("sequential: unexpected error: %v", err)
	}

	parStr, err := parallel.ComputePi(ctx, 2000, nil)
	if err != nil {
		t.Fatalf("parallel: unexpected error: %v", err)
	}

	if seqStr != parStr {
		t.Errorf("sequential and parallel outputs differ:\nseq: %s\npar: %s", seqStr, parStr)
	}
}

// TestCalculator_ComputePi_ReportsAllPhases checks that every documented
// phase is reported at least once, each ending at fraction 1.
func TestCalculator_ComputePi_ReportsAllPhases(t *testing.T) {
	cfg := config.Default()
	calc := New(cfg, nil)
	ctx := context.Background()

	seen := map[Phase]float64{}
	progress := func(phase Phase, fraction float64) {
		seen[phase] = fraction
	}

	if _, err := calc.ComputePi(ctx, 50, progress); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, phase := range []Phase{PhaseSplit, PhaseMerge, PhaseSqrt, PhaseAssemble} {
		frac, ok := seen[phase]
		if !ok {
			t.Errorf("expected a progress report for phase %s", phase)
			continue
		}
		if frac != 1 {
			t.Errorf("phase %s: expected final fraction 1, got %v", phase, frac)
		}
	}
}

// TestCalculator_ComputePi_MillionDigitsHash is a long-running check of
// a million-digit computation: it logs the SHA-256 digest of the result
// and checks its length, but does not compare the digest against a
// reference value. It is skipped under `go test -short`.
func TestCalculator_ComputePi_MillionDigitsHash(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping million-digit computation in short mode")
	}

	cfg := config.Default()
	pool := workerpool.New(GetNumCPU())
	defer pool.Close()
	calc := New(cfg, pool)
	ctx := context.Background()

	piStr, err := calc.ComputePi(ctx, 1_000_000, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	sum := sha256.Sum256([]byte(piStr))
	got := hex.EncodeToString(sum[:])
	t.Logf("sha256(pi to 1,000,000 digits) = %s", got)

	if len(piStr) != 1_000_002 {
		t.Errorf("expected string length %d, got %d", 1_000_002, len(piStr))
	}
}
