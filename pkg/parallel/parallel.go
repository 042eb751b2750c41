// Package parallel provides a bounded parallel map over independent work
// items. The simulation engine is pure CPU-bound computation with no shared
// mutable state, so concurrency lives here rather than inside the engine;
// callers choose the degree of parallelism.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item and returns the results in input order.
// At most workers goroutines run concurrently; workers <= 0 means
// GOMAXPROCS. The first error cancels the group's context and is returned;
// results computed before cancellation are discarded.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]R, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
