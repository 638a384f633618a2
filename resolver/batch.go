package resolver

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rksxox-coder/broken-link-resolver/result"
)

// memoryCheckEvery is how many resolutions a worker completes between
// memory pressure checks.
const memoryCheckEvery = 32

// ResolveAll resolves every URL in the input concurrently, bounded by
// cfg.Concurrency, and returns results in input order regardless of
// completion order. Per-URL failures are captured in their CheckResult;
// one bad URL never fails the others. Cancelling ctx marks the remaining
// URLs as errored rather than blocking.
func (r *Resolver) ResolveAll(ctx context.Context, urls []string) *result.BatchResult {
	start := time.Now()
	results := make([]result.CheckResult, len(urls))

	var checked, recovered, broken atomic.Int64
	guard := newMemoryGuard(r.cfg.MemoryLimitMB)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.Concurrency)

	for i, rawURL := range urls {
		i, rawURL := i, rawURL
		group.Go(func() error {
			if groupCtx.Err() != nil {
				results[i] = result.CheckResult{
					URL:           rawURL,
					Status:        result.StatusError,
					Reason:        result.ReasonNoneFound,
					ErrorCategory: result.CategoryBudgetExceeded,
					Note:          "batch cancelled before this URL was checked",
				}
			} else {
				results[i] = r.Resolve(groupCtx, rawURL)
			}

			n := checked.Add(1)
			res := results[i]
			switch {
			case res.Recovered():
				recovered.Add(1)
			case res.Status != result.StatusOK:
				broken.Add(1)
			}

			if r.progressCh != nil {
				r.progressCh <- Event{
					URL:         res.URL,
					Status:      res.Status,
					Reason:      res.Reason,
					Alternative: res.Alternative,
					HTTPStatus:  res.HTTPStatus,
					Checked:     int(n),
					Recovered:   int(recovered.Load()),
					Broken:      int(broken.Load()),
				}
			}

			if n%memoryCheckEvery == 0 {
				if _, level := guard.check(); level == pressureCritical {
					runtime.GC()
				}
			}
			return nil
		})
	}

	_ = group.Wait()

	if r.progressCh != nil {
		close(r.progressCh)
	}

	batch := &result.BatchResult{Results: results}
	batch.Stats.Duration = time.Since(start)
	batch.Summarize()
	return batch
}
