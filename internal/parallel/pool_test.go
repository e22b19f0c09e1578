package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_Create(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"single", 1, 1},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -3, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()

			if pool.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", pool.Workers(), tt.want)
			}
			if !pool.IsRunning() {
				t.Error("pool should be running after creation")
			}
		})
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	tasks := make([]func(), 100)
	for i := range tasks {
		tasks[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(tasks)

	if got := counter.Load(); got != 100 {
		t.Errorf("counter = %d, want 100", got)
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_DistinctSlots(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	results := make([]int, 64)
	tasks := make([]func(), len(results))
	for i := range tasks {
		tasks[i] = func() { results[i] = i * i }
	}
	pool.ExecuteAll(tasks)

	for i, v := range results {
		if v != i*i {
			t.Fatalf("results[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

func TestWorkerPool_ExecuteAfterCloseRunsInline(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var counter atomic.Int64
	pool.ExecuteAll([]func(){
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	})
	if got := counter.Load(); got != 2 {
		t.Errorf("counter = %d, want 2", got)
	}
}

func TestWorkerPool_SlowTaskDoesNotStall(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// One slow task occupies a single worker; the others take the rest.
	var fast atomic.Int64
	tasks := make([]func(), 40)
	for i := range tasks {
		if i == 0 {
			tasks[i] = func() { time.Sleep(20 * time.Millisecond) }
			continue
		}
		tasks[i] = func() { fast.Add(1) }
	}

	start := time.Now()
	pool.ExecuteAll(tasks)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("ExecuteAll took %v", elapsed)
	}
	if got := fast.Load(); got != 39 {
		t.Errorf("fast tasks = %d, want 39", got)
	}
}

// waitOrFail fails the test if ch is not closed within d.
func waitOrFail(t *testing.T, ch <-chan struct{}, d time.Duration, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(d):
		t.Fatalf("%s did not finish within %v", what, d)
	}
}

func TestWorkerPool_CloseWaitsForRunningBatch(t *testing.T) {
	pool := NewWorkerPool(2)

	started := make(chan struct{})
	release := make(chan struct{})
	var counter atomic.Int64
	tasks := []func(){
		func() {
			close(started)
			<-release
			counter.Add(1)
		},
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	}

	executed := make(chan struct{})
	go func() {
		defer close(executed)
		pool.ExecuteAll(tasks)
	}()
	<-started

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		pool.Close()
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a batch was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	waitOrFail(t, executed, time.Second, "ExecuteAll")
	waitOrFail(t, closed, time.Second, "Close")
	if got := counter.Load(); got != 3 {
		t.Errorf("counter = %d, want 3", got)
	}
	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

func TestWorkerPool_CloseRacingExecute(t *testing.T) {
	for range 200 {
		pool := NewWorkerPool(1)
		go pool.Close()

		var counter atomic.Int64
		executed := make(chan struct{})
		go func() {
			defer close(executed)
			pool.ExecuteAll([]func(){
				func() { counter.Add(1) },
				func() { counter.Add(1) },
			})
		}()
		waitOrFail(t, executed, time.Second, "ExecuteAll racing Close")
		if got := counter.Load(); got != 2 {
			t.Fatalf("counter = %d, want 2", got)
		}
		pool.Close()
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	before := runtime.NumGoroutine()

	for range 10 {
		pool := NewWorkerPool(4)
		pool.ExecuteAll([]func(){func() {}, func() {}})
		pool.Close()
	}

	// Give the runtime a moment to reap exited goroutines.
	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before+2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if after := runtime.NumGoroutine(); after > before+2 {
		t.Errorf("goroutines: before=%d after=%d", before, after)
	}
}

func TestBatch(t *testing.T) {
	tests := []struct {
		name   string
		pool   func() *WorkerPool
		inline bool
	}{
		{"inline", func() *WorkerPool { return nil }, true},
		{"pooled", func() *WorkerPool { return NewWorkerPool(3) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := tt.pool()
			if pool != nil {
				defer pool.Close()
			}

			var counter atomic.Int64
			b := NewBatch(pool)
			for range 10 {
				b.Add(func() { counter.Add(1) })
			}

			if tt.inline && counter.Load() != 10 {
				t.Errorf("inline batch ran %d tasks before Join, want 10", counter.Load())
			}
			b.Join()
			if got := counter.Load(); got != 10 {
				t.Errorf("after Join counter = %d, want 10", got)
			}

			// A joined batch can be reused.
			b.Add(func() { counter.Add(1) })
			b.Join()
			if got := counter.Load(); got != 11 {
				t.Errorf("after reuse counter = %d, want 11", got)
			}
		})
	}
}

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	tasks := make([]func(), 60)
	for i := range tasks {
		tasks[i] = func() {}
	}
	b.ResetTimer()
	for range b.N {
		pool.ExecuteAll(tasks)
	}
}
