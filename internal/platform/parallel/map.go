package parallel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
)

const (
	DefaultMaxWorkers = 8
	releaseTimeout    = 5 * time.Second
)

// NormalizeWorkerCount clamps the requested worker count to [1, itemCount].
// A non-positive request falls back to DefaultMaxWorkers.
func NormalizeWorkerCount(requested, itemCount int) int {
	if itemCount <= 0 {
		return 1
	}
	if requested <= 0 {
		requested = DefaultMaxWorkers
	}
	if requested > itemCount {
		requested = itemCount
	}
	return requested
}

// Map applies fn to every item using a fixed number of workers that pull the
// next index from a shared cursor. Results keep the input order regardless of
// completion order. The first error or panic stops further pulls and is
// returned; items already running are allowed to finish.
func Map[T, R any](
	ctx context.Context,
	workers int,
	items []T,
	fn func(ctx context.Context, index int, item T) (R, error),
) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}
	workers = NormalizeWorkerCount(workers, len(items))

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, crerr.Wrap(err, "create worker pool")
	}
	defer func() {
		_ = pool.ReleaseTimeout(releaseTimeout)
	}()

	var (
		cursor   atomic.Int64
		failed   atomic.Bool
		errOnce  sync.Once
		firstErr error
		wg       sync.WaitGroup
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			failed.Store(true)
		})
	}

	worker := func() {
		defer wg.Done()
		for {
			if failed.Load() || ctx.Err() != nil {
				return
			}
			index := int(cursor.Add(1) - 1)
			if index >= len(items) {
				return
			}

			var catcher panics.Catcher
			catcher.Try(func() {
				out, err := fn(ctx, index, items[index])
				if err != nil {
					fail(crerr.Wrapf(err, "item %d", index))
					return
				}
				results[index] = out
			})
			if recovered := catcher.Recovered(); recovered != nil {
				fail(crerr.Wrapf(recovered.AsError(), "item %d panicked", index))
			}
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		if err := pool.Submit(worker); err != nil {
			wg.Done()
			fail(crerr.Wrap(err, "submit worker"))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
