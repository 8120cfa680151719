// Package config provides configuration management for the Chudnovsky engine.
// It centralizes all configurable parameters to avoid hard-coded values throughout the codebase.
package config

import (
	"fmt"
	"math"
)

// Config holds configuration for the Chudnovsky engine.
// All hard-coded values should be moved here for better maintainability.
type Config struct {
	// MaxDigits is the maximum number of digits allowed (prevents memory exhaustion)
	MaxDigits int64

	// WorkerPoolSize is the number of workers in the pool (0 = auto-detect from CPU count)
	WorkerPoolSize int

	// MaxChunkSize is the target number of terms per parallel chunk. A range
	// is split into rangeSize/MaxChunkSize chunks, capped at 64, so chunks
	// grow beyond MaxChunkSize for ranges above 64*MaxChunkSize terms.
	MaxChunkSize int64

	// MinRangeForWorkerPool is the range size above which the worker pool is used
	MinRangeForWorkerPool int64

	// DigitsPerTerm is the decimal digits contributed per Chudnovsky term
	DigitsPerTerm float64

	// TermGuard is the extra terms (Nguard in the spec) appended to the term
	// count to absorb rounding of DigitsPerTerm. Must be >= 1.
	TermGuard int64

	// BitsPerDigit is the conversion factor from decimal digits to bits
	BitsPerDigit float64

	// GuardDigits is the minimum number of extra decimal digits (G) carried
	// through the final division before truncation. Must be >= 10.
	GuardDigits int

	// FFTMultiplyThresholdWords is the operand size, in 64-bit words, above
	// which the bignum layer prefers an FFT-class multiply over
	// big.Int.Mul's built-in Karatsuba/Toom-3.
	FFTMultiplyThresholdWords int

	// ProgressBarEnabled controls whether to show progress bar
	ProgressBarEnabled bool
}

// Default returns the default configuration with sensible values.
// These defaults are optimized for most use cases but can be customized.
func Default() *Config {
	return &Config{
		MaxDigits:                 1_000_000_000, // 1 billion digits
		WorkerPoolSize:            0,             // Auto-detect
		MaxChunkSize:              500,
		MinRangeForWorkerPool:     1000,
		DigitsPerTerm:             14.1816474,
		TermGuard:                 2,
		BitsPerDigit:              3.3219280948873626, // log2(10)
		GuardDigits:               10,
		FFTMultiplyThresholdWords: 1 << 12,
		ProgressBarEnabled:        true,
	}
}

// Validate checks that every tunable is within a sane range. It does not
// validate a requested digit count against MaxDigits; that is a per-call
// precondition checked by the calculator, not a config defect.
func (c *Config) Validate() error {
	if c.MaxDigits < 1 {
		return fmt.Errorf("config: MaxDigits must be >= 1, got %d", c.MaxDigits)
	}
	if c.MaxChunkSize < 1 {
		return fmt.Errorf("config: MaxChunkSize must be >= 1, got %d", c.MaxChunkSize)
	}
	if c.MinRangeForWorkerPool < 1 {
		return fmt.Errorf("config: MinRangeForWorkerPool must be >= 1, got %d", c.MinRangeForWorkerPool)
	}
	if c.DigitsPerTerm <= 0 {
		return fmt.Errorf("config: DigitsPerTerm must be > 0, got %f", c.DigitsPerTerm)
	}
	if c.TermGuard < 1 {
		return fmt.Errorf("config: TermGuard must be >= 1, got %d", c.TermGuard)
	}
	if c.BitsPerDigit <= 0 {
		return fmt.Errorf("config: BitsPerDigit must be > 0, got %f", c.BitsPerDigit)
	}
	if c.GuardDigits < 10 {
		return fmt.Errorf("config: GuardDigits must be >= 10, got %d", c.GuardDigits)
	}
	if c.FFTMultiplyThresholdWords < 1 {
		return fmt.Errorf("config: FFTMultiplyThresholdWords must be >= 1, got %d", c.FFTMultiplyThresholdWords)
	}
	return nil
}

// GuardDigitsFor scales GuardDigits with log10(N) for large term counts,
// never going below the configured minimum.
func (c *Config) GuardDigitsFor(terms int64) int {
	scaled := c.GuardDigits
	if terms > 10 {
		log := int(math.Log10(float64(terms)))
		if 2+log > scaled {
			scaled = 2 + log
		}
	}
	return scaled
}
