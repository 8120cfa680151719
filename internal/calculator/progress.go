package calculator

import (
	"sync"
	"sync/atomic"
)

// Phase identifies which stage of the computation a progress update
// refers to, per the engine's external progress callback contract.
type Phase int

const (
	PhaseSplit Phase = iota
	PhaseMerge
	PhaseSqrt
	PhaseAssemble
)

func (p Phase) String() string {
	switch p {
	case PhaseSplit:
		return "split"
	case PhaseMerge:
		return "merge"
	case PhaseSqrt:
		return "sqrt"
	case PhaseAssemble:
		return "assemble"
	default:
		return "unknown"
	}
}

// ProgressFunc receives a (phase, fractionComplete) pair. fractionComplete
// is monotonically non-decreasing within a phase. PhaseSplit is reported
// as each leaf term completes and once more with fraction 1 when the split
// ends; PhaseMerge, PhaseSqrt and PhaseAssemble are each reported once, at
// completion, with fraction 1. No phase is reported at its start with
// fraction 0.
// ProgressFunc must not panic; a panicking callback is caught and treated
// as a nonfatal warning so computation continues.
type ProgressFunc func(phase Phase, fractionComplete float64)

// tracker counts completed leaves during the split phase and reports
// progress through a caller-supplied ProgressFunc. It is safe for
// concurrent use by multiple worker goroutines; leaf reports are
// serialized so their fractions reach fn in increasing order. A nil
// *tracker, or a nil fn, makes every method a no-op.
type tracker struct {
	fn      ProgressFunc
	total   int64
	mu      sync.Mutex
	counter atomic.Int64
}

func newTracker(fn ProgressFunc, total int64) *tracker {
	if fn == nil || total <= 0 {
		return nil
	}
	return &tracker{fn: fn, total: total}
}

// tickLeaf reports one more completed leaf in the split phase.
func (t *tracker) tickLeaf() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	done := t.counter.Add(1)
	frac := float64(done) / float64(t.total)
	if frac > 1 {
		frac = 1
	}
	t.report(PhaseSplit, frac)
}

// report invokes fn for an arbitrary phase, swallowing any panic per the
// ProgressFunc contract.
func (t *tracker) report(phase Phase, fraction float64) {
	if t == nil || t.fn == nil {
		return
	}
	defer func() { _ = recover() }()
	t.fn(phase, fraction)
}

// reportPhase is a package-level helper for reports made outside the leaf
// tracker: the final split and merge reports in ComputePQT and the sqrt
// and assemble reports in ComputePi.
func reportPhase(fn ProgressFunc, phase Phase, fraction float64) {
	if fn == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(phase, fraction)
}
