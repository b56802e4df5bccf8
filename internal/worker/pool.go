// Package worker provides the concurrency layer for batch claim
// processing. Each document's extract+route pipeline is fully independent,
// so documents fan out across a fixed-size pool with no shared state
// beyond the result slice.
package worker

import (
	"context"
	"sync"
)

// Task is a unit of work executed by the pool
type Task func(ctx context.Context)

// Pool is a fixed-size worker pool draining a task queue
type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

// NewPool creates a pool with the given number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, workers*2),
	}
}

// Start launches the workers. They exit when the queue is closed by Wait
// or when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case task, ok := <-p.tasks:
					if !ok {
						return
					}
					task(ctx)
				}
			}
		}()
	}
}

// Submit queues a task. Blocks when the queue is full; returns without
// queueing once ctx is cancelled.
func (p *Pool) Submit(ctx context.Context, task Task) {
	select {
	case <-ctx.Done():
	case p.tasks <- task:
	}
}

// Wait closes the queue and blocks until every queued task has finished
func (p *Pool) Wait() {
	close(p.tasks)
	p.wg.Wait()
}
