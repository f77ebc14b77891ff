package lca

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds parallel scenario evaluation. Calculations
// are CPU-bound and cheap, so a small limit is plenty.
const DefaultBatchConcurrency = 4

// CalculateBatch evaluates many scenarios concurrently and returns results
// in input order. The first failing scenario cancels the rest and its error
// is returned. concurrency <= 0 selects DefaultBatchConcurrency.
func (e *Engine) CalculateBatch(ctx context.Context, scenarios []InputParams, concurrency int) ([]Result, error) {
	if len(scenarios) == 0 {
		return nil, nil
	}
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]Result, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, inputs := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.Calculate(ctx, inputs)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
