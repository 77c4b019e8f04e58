package evolve

import (
	"context"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// RunConcurrent drives several independent engines in parallel, one
// goroutine per engine, at most maxConcurrent at a time (0 or less
// means runtime.NumCPU). Engines are never shared between goroutines;
// each keeps its own population, archive, and random source, so the
// searches explore independently and results are read from each engine
// afterward via Best.
//
// opts is shared by all runs, including any Progress callback: the
// quiescence guarantee holds per engine, so a callback supplied here is
// invoked from several goroutines at once and must be safe for
// concurrent use.
//
// Every run is attempted even when another fails; the first error
// observed is returned.
func RunConcurrent[A comparable](ctx context.Context, engines []*Engine[A], opts RunOptions, maxConcurrent int) error {
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.NumCPU()
	}

	var (
		mu       sync.Mutex
		firstErr error
	)

	p := pool.New().WithMaxGoroutines(maxConcurrent)
	for _, engine := range engines {
		engine := engine
		p.Go(func() {
			if err := engine.Run(ctx, opts); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
	}
	p.Wait()

	return firstErr
}
