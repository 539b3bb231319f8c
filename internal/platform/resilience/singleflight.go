package resilience

import (
	"context"
	"sync"
)

// SingleFlight deduplicates concurrent calls for the same key. Waiters can
// give up on their own context while the leading call keeps running.
type SingleFlight[V any] struct {
	mu    sync.Mutex
	calls map[string]*flightCall[V]
}

type flightCall[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Do returns the result of fn for key and whether it was shared with another
// caller. fn receives the leader's context.
func (g *SingleFlight[V]) Do(ctx context.Context, key string, fn func(context.Context) (V, error)) (V, error, bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flightCall[V])
	}

	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		select {
		case <-c.done:
			return c.val, c.err, true
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err(), true
		}
	}

	c := &flightCall[V]{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(c.done)
	}()

	c.val, c.err = fn(ctx)
	return c.val, c.err, false
}
