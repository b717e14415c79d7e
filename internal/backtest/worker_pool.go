package backtest

import (
	"context"
	"runtime"
	"sync"

	"github.com/haiphan2000/trendbot/pkg/types"
)

// gridJob is one optimizer cell. The index preserves lattice order so the
// parallel sweep can break ties exactly like the sequential one.
type gridJob struct {
	index int
	req   Request
}

type gridResult struct {
	index  int
	result *Result
	score  float64
}

// OptimizeParallel runs the grid sweep across a worker pool. Each cell
// simulates against its own state on the shared read-only candle slice, so
// workers never share mutable data. The returned result is identical to
// the sequential Optimize for the same inputs.
func (o *Optimizer) OptimizeParallel(ctx context.Context, candles []types.Candle, req Request, workers int) *Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	combos := o.grid.Combinations()
	jobs := make(chan gridJob, len(combos))
	results := make(chan gridResult, len(combos))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				result := Simulate(candles, job.req)
				results <- gridResult{index: job.index, result: result, score: Score(result)}
			}
		}()
	}

	for i, params := range combos {
		cellReq := req
		cellReq.Params = params
		jobs <- gridJob{index: i, req: cellReq}
	}
	close(jobs)

	wg.Wait()
	close(results)

	// Pick the max score; on ties the lowest lattice index wins, matching
	// the sequential first-seen rule.
	var best *gridResult
	for r := range results {
		r := r
		if best == nil || r.score > best.score || (r.score == best.score && r.index < best.index) {
			best = &r
		}
	}
	if best == nil {
		return nil
	}
	return best.result
}
