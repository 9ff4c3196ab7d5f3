package bunkai

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunPool calls fn for every job index in [0, n) on at most workers
// goroutines. Each goroutine owns one Worker for as long as it runs, so jobs
// on the same goroutine share a Tokenizer and jobs on different goroutines
// never do. The first error cancels the remaining jobs and is returned.
func RunPool(ctx context.Context, d *Disambiguator, workers, n int, fn func(ctx context.Context, w *Worker, i int) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	eg, egctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	eg.Go(func() error {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case jobs <- i:
			case <-egctx.Done():
				return egctx.Err()
			}
		}
		return nil
	})

	for range workers {
		eg.Go(func() error {
			w := d.NewWorker()
			for i := range jobs {
				if err := fn(egctx, w, i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return eg.Wait()
}
