// Package parallel provides the worker pool the registry uses to project
// independent meshes concurrently.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines draining a shared work queue.
//
// Work items submitted through ExecuteAll must be independent: the pool
// gives no ordering guarantee between them, only that ExecuteAll returns
// after every item has finished.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// queue carries work items to the workers.
	queue chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// submitMu is held for reading while work is queued and for writing
	// by Close, so no item is queued after the workers stop.
	submitMu sync.RWMutex
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

// worker runs work items until the pool is closed.
func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			p.drain()
			return
		case work := <-p.queue:
			work()
		}
	}
}

// drain executes all remaining queued work.
func (p *WorkerPool) drain() {
	for {
		select {
		case work := <-p.queue:
			work()
		default:
			return
		}
	}
}

// ExecuteAll distributes work across workers and waits for all of it to
// complete. Nil items are skipped.
//
// If the pool is closed, the work runs on the calling goroutine instead,
// so callers never lose work to a shutdown race.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.submitMu.RLock()
	if !p.running.Load() {
		p.submitMu.RUnlock()
		runInline(work)
		return
	}

	var completion sync.WaitGroup
	for _, fn := range work {
		if fn == nil {
			continue
		}
		completion.Add(1)
		wrapped := func() {
			defer completion.Done()
			fn()
		}

		p.queue <- wrapped
	}
	p.submitMu.RUnlock()

	completion.Wait()
}

func runInline(work []func()) {
	for _, fn := range work {
		if fn != nil {
			fn()
		}
	}
}

// Close stops the workers once the queued work has run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.submitMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.submitMu.Unlock()
		return
	}
	close(p.done)
	p.submitMu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
