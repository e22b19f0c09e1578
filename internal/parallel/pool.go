// Package parallel provides the fan-out/join machinery behind column-parallel
// viewport painting: a fixed-size worker pool, the 32-pixel column partition
// and a dirty-block tracker for screen damage.
//
// Every batch submitted to the pool is joined before the caller continues.
// There is no streaming and no cancellation: a join always waits for the
// whole batch.
package parallel

import (
	"runtime"
	"sync"
)

// WorkerPool is a fixed set of goroutines pulling tasks from one shared
// queue. Any idle worker takes the next task, so a slow column holds up
// only the worker drawing it.
//
// Every ExecuteAll holds the pool open until its batch has joined; Close
// waits for those batches and then stops the workers. A task must not
// submit work to the pool that runs it. All methods may be called from
// any goroutine.
type WorkerPool struct {
	workers int
	queue   chan func()
	wg      sync.WaitGroup

	// life is read-held for the whole of a batch and write-held by Close.
	life   sync.RWMutex
	closed bool
}

// NewWorkerPool starts a pool with the given number of workers.
// A non-positive count means one worker per GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), max(workers*4, 8)),
	}
	p.wg.Add(workers)
	for range workers {
		go func() {
			defer p.wg.Done()
			for task := range p.queue {
				task()
			}
		}()
	}
	return p
}

// ExecuteAll runs every task on the pool and returns once all of them have
// finished. On a closed pool the tasks run inline on the caller.
func (p *WorkerPool) ExecuteAll(tasks []func()) {
	if len(tasks) == 0 {
		return
	}

	p.life.RLock()
	defer p.life.RUnlock()
	if p.closed {
		for _, task := range tasks {
			task()
		}
		return
	}

	var join sync.WaitGroup
	join.Add(len(tasks))
	for _, task := range tasks {
		p.queue <- func() {
			defer join.Done()
			task()
		}
	}
	join.Wait()
}

// Close waits for running batches, then stops the workers. Later calls
// return at once.
func (p *WorkerPool) Close() {
	p.life.Lock()
	if p.closed {
		p.life.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.life.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	p.life.RLock()
	defer p.life.RUnlock()
	return !p.closed
}

// Batch collects tasks for a single fan-out/join.
// A Batch over a nil pool runs each task inline as it is added.
type Batch struct {
	pool  *WorkerPool
	tasks []func()
}

// NewBatch returns a batch that dispatches to pool, or runs inline if pool
// is nil.
func NewBatch(pool *WorkerPool) *Batch {
	return &Batch{pool: pool}
}

// Add queues a task, or runs it immediately for an inline batch.
func (b *Batch) Add(task func()) {
	if b.pool == nil {
		task()
		return
	}
	b.tasks = append(b.tasks, task)
}

// Join runs the queued tasks and waits for all of them.
func (b *Batch) Join() {
	if b.pool == nil || len(b.tasks) == 0 {
		return
	}
	b.pool.ExecuteAll(b.tasks)
	b.tasks = b.tasks[:0]
}
