// Package calculator implements the Chudnovsky algorithm for computing π
// to arbitrary precision via binary splitting over contiguous term
// ranges, fanned out across a worker pool and reduced pairwise in
// ascending-index order.
package calculator

import (
	"context"
	"fmt"
	"math/big"

	"github.com/kestrelpi/chudnovsky/internal/bignum"
	"github.com/kestrelpi/chudnovsky/internal/config"
)

// Result represents a PQT split tuple: a partial evaluation of the
// Chudnovsky series over a contiguous term range.
type Result = config.Result

// CombineResults merges a sequence of split tuples in left-to-right
// order using a binary reduction tree. Order matters: the merge rule is
// not commutative in P_L and T_R.
//
//nolint:gocritic // P, Q, T are exported return values, capitalization is intentional
func CombineResults(results []Result, thresholdWords int) (P, Q, T *big.Int) {
	if len(results) == 1 {
		return results[0].P, results[0].Q, results[0].T
	}
	if len(results) == 2 {
		return merge(results[0], results[1], thresholdWords)
	}

	mid := len(results) / 2
	var left, right Result
	left.P, left.Q, left.T = CombineResults(results[:mid], thresholdWords)
	right.P, right.Q, right.T = CombineResults(results[mid:], thresholdWords)
	return merge(left, right, thresholdWords)
}

// merge combines two adjacent split tuples:
//
//	P = P_L · P_R
//	Q = Q_L · Q_R
//	T = T_L · Q_R + P_L · T_R
func merge(left, right Result, thresholdWords int) (p, q, t *big.Int) {
	p = bignum.Mul(left.P, right.P, thresholdWords)
	q = bignum.Mul(left.Q, right.Q, thresholdWords)
	t = new(big.Int).Add(
		bignum.Mul(left.T, right.Q, thresholdWords),
		bignum.Mul(left.P, right.T, thresholdWords),
	)
	return p, q, t
}

// ComputePQTSequential computes the split tuple for the half-open term
// range [a, b) by recursive binary splitting, with no worker fan-out.
//
//nolint:gocritic // P, Q, T are exported return values, capitalization is intentional
func ComputePQTSequential(a, b int64) (P, Q, T *big.Int) {
	return computePQTSequential(a, b, nil, 0)
}

func computePQTSequential(a, b int64, tr *tracker, thresholdWords int) (p, q, t *big.Int) {
	if a >= b {
		return big.NewInt(1), big.NewInt(1), big.NewInt(0)
	}
	if b-a == 1 {
		return leaf(a, tr)
	}

	mid := (a + b) / 2
	var left, right Result
	left.P, left.Q, left.T = computePQTSequential(a, mid, tr, thresholdWords)
	right.P, right.Q, right.T = computePQTSequential(mid, b, tr, thresholdWords)
	return merge(left, right, thresholdWords)
}

// leaf computes the split tuple for a single term index a:
//
//	leaf(0) = (1, 1, A)                       the k=0 term folds directly
//	                                           into the recursion; see
//	                                           internal/assembler.
//	p_k = (6k-5)(2k-1)(6k-1)                  for k > 0
//	q_k = k^3 · 640320^3 / 24                  for k > 0
//	T_k = (-1)^k · p_k · (A + B·k)
func leaf(a int64, tr *tracker) (p, q, t *big.Int) {
	tr.tickLeaf()

	if a == 0 {
		return big.NewInt(1), big.NewInt(1), new(big.Int).Set(A)
	}

	p1 := big.NewInt(6*a - 5)
	p2 := big.NewInt(2*a - 1)
	p3 := big.NewInt(6*a - 1)
	p = new(big.Int).Mul(p1, p2)
	p.Mul(p, p3)

	a3 := new(big.Int).Mul(big.NewInt(a*a), big.NewInt(a))
	q = new(big.Int).Mul(a3, C3Over24)

	coeff := new(big.Int).Mul(B, big.NewInt(a))
	coeff.Add(coeff, A)
	t = new(big.Int).Mul(p, coeff)
	if a%2 == 1 {
		t.Neg(t)
	}

	return p, q, t
}

// PoolInterface is the subset of workerpool.Pool the calculator depends
// on, kept as an interface so tests can substitute a fake pool.
type PoolInterface interface {
	Submit(start, end int64, computeFn func(a, b int64) Result) <-chan Result
	Wait() error
}

// ComputePQT computes the split tuple for [a, b), dispatching to the
// worker pool when the range is large enough to benefit from parallel
// leaf computation and falling back to sequential recursion otherwise.
//
//nolint:gocritic // P, Q, T are exported return values, capitalization is intentional
func ComputePQT(ctx context.Context, a, b int64, cfg *config.Config, pool PoolInterface, progress ProgressFunc) (P, Q, T *big.Int, err error) {
	select {
	case <-ctx.Done():
		return nil, nil, nil, &ComputeError{Kind: Cancelled, Err: ctx.Err()}
	default:
	}

	rangeSize := b - a
	tr := newTracker(progress, rangeSize)

	if rangeSize > cfg.MinRangeForWorkerPool && pool != nil {
		return computePQTParallel(ctx, a, b, rangeSize, cfg, pool, tr, progress)
	}

	P, Q, T = computePQTSequential(a, b, tr, cfg.FFTMultiplyThresholdWords)
	reportPhase(progress, PhaseSplit, 1)
	// The sequential path interleaves merging with splitting inside the
	// recursion rather than as a distinct pass, but the progress contract
	// still requires a completion report for PhaseMerge.
	reportPhase(progress, PhaseMerge, 1)
	return P, Q, T, nil
}

//nolint:gocritic // P, Q, T are return values, capitalization is intentional
func computePQTParallel(ctx context.Context, a, b, rangeSize int64, cfg *config.Config, pool PoolInterface, tr *tracker, progress ProgressFunc) (P, Q, T *big.Int, err error) {
	numChunks := int(rangeSize / cfg.MaxChunkSize)
	if numChunks < 1 {
		numChunks = 1
	}
	if numChunks > 64 {
		numChunks = 64
	}

	chunkSize := rangeSize / int64(numChunks)
	if chunkSize < 1 {
		chunkSize = 1
		numChunks = int(rangeSize)
	}

	thresholdWords := cfg.FFTMultiplyThresholdWords
	results := make([]Result, numChunks)
	resultChans := make([]<-chan Result, numChunks)

	for i := 0; i < numChunks; i++ {
		start := a + int64(i)*chunkSize
		end := start + chunkSize
		if i == numChunks-1 {
			end = b
		}
		if end > b {
			end = b
		}
		if start >= end {
			identity := make(chan Result, 1)
			identity <- Result{P: big.NewInt(1), Q: big.NewInt(1), T: big.NewInt(0)}
			close(identity)
			resultChans[i] = identity
			continue
		}
		resultChans[i] = pool.Submit(start, end, func(a, b int64) Result {
			p, q, t := computePQTSequential(a, b, tr, thresholdWords)
			return Result{P: p, Q: q, T: t}
		})
	}

	for i := 0; i < numChunks; i++ {
		select {
		case <-ctx.Done():
			return nil, nil, nil, &ComputeError{Kind: Cancelled, Err: ctx.Err()}
		case r, ok := <-resultChans[i]:
			if !ok {
				if waitErr := pool.Wait(); waitErr != nil {
					return nil, nil, nil, recoveredAsComputeError(waitErr)
				}
				return nil, nil, nil, &ComputeError{Kind: WorkerPanicked, Err: fmt.Errorf("worker channel closed without a result for chunk %d", i)}
			}
			results[i] = r
		}
	}

	if waitErr := pool.Wait(); waitErr != nil {
		return nil, nil, nil, recoveredAsComputeError(waitErr)
	}

	reportPhase(progress, PhaseSplit, 1)

	P, Q, T = CombineResults(results, thresholdWords)
	reportPhase(progress, PhaseMerge, 1)
	return P, Q, T, nil
}
