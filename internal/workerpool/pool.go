// Package workerpool provides a small bounded worker pool used for bulk,
// independent HDF4 operations: concurrent per-variable cache regeneration
// and the subset cache's eviction sweep (spec.md §4.5, §5).
//
// Grounded on sixy6e-go-gsf's cmd/main.go use of github.com/alitto/pond
// (pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))) for its GSF batch
// conversion fan-out; generalized here into a small reusable type instead
// of a one-off pool built inline in main().
package workerpool

import (
	"context"
	"runtime"
	"sync"

	"github.com/alitto/pond"
)

// Pool runs independent tasks with a bounded number of concurrent workers.
// Each per-FileHandle task must still serialize its own HDF4 library calls
// through that handle's mutex (spec.md §5); the pool only bounds fan-out
// across independent handles/variables.
type Pool struct {
	pool *pond.WorkerPool
}

// New creates a pool with the given worker count. size <= 0 defaults to
// 2*NumCPU, matching go-gsf's convert_gsf_list sizing.
func New(ctx context.Context, size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU() * 2
	}
	return &Pool{pool: pond.New(size, 0, pond.MinWorkers(size), pond.Context(ctx))}
}

// Submit queues fn to run on a worker.
func (p *Pool) Submit(fn func()) {
	p.pool.Submit(fn)
}

// Go runs independent fallible tasks concurrently and returns every error,
// in the order the tasks were given (not completion order).
func (p *Pool) Go(tasks []func() error) []error {
	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		i, task := i, task
		p.pool.Submit(func() {
			defer wg.Done()
			errs[i] = task()
		})
	}
	wg.Wait()
	return errs
}

// StopAndWait drains queued tasks and releases workers.
func (p *Pool) StopAndWait() {
	p.pool.StopAndWait()
}
