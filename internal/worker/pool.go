// Package worker provides a bounded worker pool for independent rule
// evaluations, such as simulating candidate moves in parallel.
package worker

import (
	"slices"
	"sync"
	"sync/atomic"
)

// WorkItem is one unit of work.
type WorkItem[T any] struct {
	Value T
	Index int // Original index for tracking
}

// ProcessResult is the outcome of processing a work item.
type ProcessResult[R any] struct {
	Value R
	Index int
	OK    bool // false when the item produced nothing
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc[T, R any] func(item WorkItem[T]) ProcessResult[R]

// Pool manages a pool of workers.
type Pool[T, R any] struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem[T]
	resultChan  chan ProcessResult[R]
	processFunc ProcessFunc[T, R]
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

type settings struct {
	numWorkers int
	bufferSize int
}

// PoolOption configures a Pool.
type PoolOption func(*settings)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(s *settings) {
		if n >= 1 {
			s.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(s *settings) {
		if size >= 1 {
			s.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool.
// Default: 1 worker, buffer size of 10.
func NewPool[T, R any](processFunc ProcessFunc[T, R], opts ...PoolOption) *Pool[T, R] {
	s := settings{numWorkers: 1, bufferSize: 10}
	for _, opt := range opts {
		opt(&s)
	}
	return &Pool[T, R]{
		numWorkers:  s.numWorkers,
		bufferSize:  s.bufferSize,
		workChan:    make(chan WorkItem[T], s.bufferSize),
		resultChan:  make(chan ProcessResult[R], s.bufferSize),
		processFunc: processFunc,
	}
}

// Start starts the worker goroutines.
func (p *Pool[T, R]) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool[T, R]) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool[T, R]) Submit(item WorkItem[T]) {
	p.workChan <- item
}

// TrySubmit attempts to submit a work item without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool[T, R]) TrySubmit(item WorkItem[T]) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool[T, R]) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool[T, R]) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once all workers are done.
func (p *Pool[T, R]) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool[T, R]) Results() <-chan ProcessResult[R] {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool[T, R]) NumWorkers() int {
	return p.numWorkers
}

// Map runs fn over items on n workers and returns the values of results with
// OK set, in input order.
func Map[T, R any](items []T, n int, fn func(T) (R, bool)) []R {
	pool := NewPool(func(item WorkItem[T]) ProcessResult[R] {
		v, ok := fn(item.Value)
		return ProcessResult[R]{Value: v, Index: item.Index, OK: ok}
	}, WithWorkers(n), WithBufferSize(len(items)))
	pool.Start()

	go func() {
		for i, v := range items {
			pool.Submit(WorkItem[T]{Value: v, Index: i})
		}
		pool.Close()
	}()

	var collected []ProcessResult[R]
	for res := range pool.Results() {
		if res.OK {
			collected = append(collected, res)
		}
	}
	slices.SortFunc(collected, func(a, b ProcessResult[R]) int { return a.Index - b.Index })

	out := make([]R, 0, len(collected))
	for _, res := range collected {
		out = append(out, res.Value)
	}
	return out
}
