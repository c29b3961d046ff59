package optim

import (
	"context"
	"sync"
)

// ParallelFor calls fn for every index in [0, n) on up to workers goroutines.
// Indices not yet started when ctx is cancelled are skipped.
func ParallelFor(ctx context.Context, n, workers int, fn func(i int)) {
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, n)

	next := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				fn(i)
			}
		}()
	}

	defer func() {
		close(next)
		wg.Wait()
	}()
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return
		case next <- i:
		}
	}
}
