package pool

import (
	"context"
	"sync"
)

// WorkerPool runs independent indexed tasks on a bounded number of
// goroutines. Callers own any output slice and write each slot from
// exactly one task, so no synchronization is needed on results.
type WorkerPool struct {
	workers int
}

func New(workers int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{workers: workers}
}

func (p *WorkerPool) Workers() int {
	return p.workers
}

// Map invokes fn(ctx, i) for every i in [0, n). It blocks until all
// started tasks return; remaining indexes are skipped once ctx is done.
func (p *WorkerPool) Map(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	if p == nil || n <= 0 || fn == nil {
		return
	}

	workers := p.workers
	if workers > n {
		workers = n
	}

	idx := make(chan int, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				fn(ctx, i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
		case idx <- i:
		}
	}
	close(idx)
	wg.Wait()
}
