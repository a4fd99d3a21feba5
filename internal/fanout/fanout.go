// Package fanout provides a bounded-parallelism executor shared by the
// category crawl and the detail-attribute fetch.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map runs fn over every item with at most limit tasks in flight and returns
// one result per item, in input order, after all tasks have settled. Task
// outcomes are independent: fn is expected to fold its own failure into R, so
// one failing task never cancels its siblings.
func Map[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) R) []R {
	if limit <= 0 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]R, len(items))
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			results[i] = fn(ctx, item)
			return nil
		})
	}
	// Workers never return errors, so Wait is purely a join barrier.
	_ = g.Wait()

	return results
}
