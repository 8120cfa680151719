// Package workerpool distributes Chudnovsky split-range computations
// across a bounded number of goroutines using golang.org/x/sync/errgroup,
// so callers get back a single aggregated error (including recovered
// panics) instead of having to fan errors in by hand.
package workerpool

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kestrelpi/chudnovsky/internal/config"
)

// Pool manages parallel computation using a bounded worker group. It is
// safe for concurrent Submit calls. A single Pool is meant to service
// one computation's worth of Submit calls between calls to Wait.
type Pool struct {
	workers int

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	closed bool
}

// New creates a worker pool with the given number of workers. If
// workers is 0 or negative, it defaults to the number of CPU cores.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	return &Pool{
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
		group:   group,
	}
}

// Submit schedules computeFn to run over [start, end) on the pool and
// returns a channel that receives its result. The channel is closed
// without a value if the pool has been closed, or if computeFn panics
// or the pool's context is cancelled before it runs. A panic or a
// cancellation is reported by the next call to Wait; a Submit on a
// closed pool schedules nothing and reports nothing further.
func (wp *Pool) Submit(start, end int64, computeFn func(a, b int64) config.Result) <-chan config.Result {
	resultChan := make(chan config.Result, 1)

	wp.mu.Lock()
	closed := wp.closed
	wp.mu.Unlock()

	if closed {
		close(resultChan)
		return resultChan
	}

	wp.group.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				close(resultChan)
				err = fmt.Errorf("workerpool: worker panicked computing range [%d, %d): %v", start, end, r)
			}
		}()

		select {
		case <-wp.ctx.Done():
			close(resultChan)
			return wp.ctx.Err()
		default:
		}

		resultChan <- computeFn(start, end)
		return nil
	})

	return resultChan
}

// Wait blocks until every Submit'd task since the last Wait call has
// finished, returning the first error (including any recovered panic)
// encountered, or nil if all tasks succeeded. Unless the pool is closed,
// it then starts a fresh group so the pool can take the next batch of
// Submit calls.
func (wp *Pool) Wait() error {
	err := wp.group.Wait()

	wp.mu.Lock()
	defer wp.mu.Unlock()
	if !wp.closed {
		wp.cancel()
		ctx, cancel := context.WithCancel(context.Background())
		group, ctx := errgroup.WithContext(ctx)
		group.SetLimit(wp.workers)
		wp.ctx, wp.cancel, wp.group = ctx, cancel, group
	}
	return err
}

// Close shuts down the worker pool (idempotent). It cancels the pool's
// context, so tasks that have not started return without running, and
// waits for running tasks to finish. Safe to call multiple
// times, and safe to call even if Wait has already been called.
func (wp *Pool) Close() {
	if wp == nil {
		return
	}
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.closed {
		return
	}
	wp.closed = true

	wp.cancel()
	_ = wp.group.Wait()
}
