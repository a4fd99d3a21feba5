package fanout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapPreservesInputOrder(t *testing.T) {
	items := []int{5, 3, 9, 1, 7}
	got := Map(context.Background(), 2, items, func(_ context.Context, n int) int {
		return n * 10
	})

	want := []int{50, 30, 90, 10, 70}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMapRespectsConcurrencyLimit(t *testing.T) {
	const limit = 3
	var inFlight, peak atomic.Int32

	items := make([]int, 20)
	Map(context.Background(), limit, items, func(_ context.Context, _ int) struct{} {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}
	})

	if p := peak.Load(); p > limit {
		t.Errorf("peak concurrency %d exceeded limit %d", p, limit)
	}
}

func TestMapIsolatesTaskFailures(t *testing.T) {
	type outcome struct {
		n   int
		err error
	}

	items := []int{1, 2, 3, 4}
	got := Map(context.Background(), 2, items, func(_ context.Context, n int) outcome {
		if n == 2 {
			return outcome{err: errors.New("task failed")}
		}
		return outcome{n: n}
	})

	var failed, succeeded int
	for _, o := range got {
		if o.err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 3 {
		t.Errorf("failed=%d succeeded=%d, want 1 and 3: one failure must not affect siblings", failed, succeeded)
	}
}

func TestMapSettlesBeforeReturning(t *testing.T) {
	var mu sync.Mutex
	done := 0

	items := make([]int, 10)
	Map(context.Background(), 4, items, func(_ context.Context, _ int) struct{} {
		time.Sleep(time.Millisecond)
		mu.Lock()
		done++
		mu.Unlock()
		return struct{}{}
	})

	mu.Lock()
	defer mu.Unlock()
	if done != len(items) {
		t.Errorf("Map returned with %d/%d tasks settled", done, len(items))
	}
}
