package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do(context.Background(), "PL:2024", func(context.Context) (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || v != "ok" {
				t.Errorf("singleflight call failed: %q, %v", v, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_WaiterHonoursContext(t *testing.T) {
	var g SingleFlight[int]
	release := make(chan struct{})
	leaderDone := make(chan struct{})
	started := make(chan struct{})

	go func() {
		defer close(leaderDone)
		_, _, _ = g.Do(context.Background(), "k", func(context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err, shared := g.Do(ctx, "k", func(context.Context) (int, error) {
		t.Fatal("waiter must not run fn")
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) || !shared {
		t.Fatalf("expected shared cancellation, got err=%v shared=%v", err, shared)
	}

	close(release)
	<-leaderDone
}
