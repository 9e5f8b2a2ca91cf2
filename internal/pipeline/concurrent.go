package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"parafrase/internal/types"
)

// ProcessConcurrent rewrites independent units with a bounded worker
// pool, for service-style requests where no document ordering or
// progress persistence is involved. The shared rate limiter inside the
// refiner is the only cross-worker mutable state besides the stats
// counters. Results are returned in input order.
func (p *Pipeline) ProcessConcurrent(ctx context.Context, units []types.TextUnit, workers int) ([]types.RewriteResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]types.RewriteResult, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, unit := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.ProcessUnit(gctx, unit)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
