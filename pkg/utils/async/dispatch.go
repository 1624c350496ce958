package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Result holds the outcome of one fan-out task
type Result[R any] struct {
	Value R
	Err   error
}

// Map runs fn concurrently for every item and collects one result per item,
// in input order. A failure or panic in one task never aborts the others;
// panics are recovered and reported as errors. Each task receives a context
// that preserves the caller's logger but not its cancellation, so a
// cancelled sibling cannot interrupt an in-flight mutation.
func Map[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	taskCtx := newBackgroundContext(ctx)

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					ctxlog.From(taskCtx).Error("panic in async task",
						"recover", r,
						"stack", string(stack),
					)
					results[i].Err = goerr.New("panic in async task", goerr.V("recover", r))
				}
			}()

			results[i].Value, results[i].Err = fn(taskCtx, item)
		}()
	}
	wg.Wait()

	return results
}

// newBackgroundContext creates a new background context preserving the
// ctxlog logger of the original context
func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
