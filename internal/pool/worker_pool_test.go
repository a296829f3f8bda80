package pool

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestMapRunsEveryIndexOnce(t *testing.T) {
	p := New(4)
	hits := make([]int32, 100)

	p.Map(context.Background(), len(hits), func(_ context.Context, i int) {
		atomic.AddInt32(&hits[i], 1)
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d ran %d times, want exactly once", i, h)
		}
	}
}

func TestMapBoundsConcurrency(t *testing.T) {
	p := New(3)

	var active, peak int32
	p.Map(context.Background(), 50, func(_ context.Context, _ int) {
		cur := atomic.AddInt32(&active, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		atomic.AddInt32(&active, -1)
	})

	if p := atomic.LoadInt32(&peak); p > 3 {
		t.Fatalf("observed %d concurrent tasks, want at most 3", p)
	}
}

func TestMapStopsOnCancelledContext(t *testing.T) {
	p := New(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int32
	p.Map(ctx, 1000, func(_ context.Context, _ int) {
		atomic.AddInt32(&ran, 1)
	})

	if got := atomic.LoadInt32(&ran); got > 2 {
		t.Fatalf("%d tasks ran after cancellation, want at most the buffered few", got)
	}
}

func TestNewClampsWorkers(t *testing.T) {
	if got := New(0).Workers(); got != 1 {
		t.Fatalf("workers = %d, want 1", got)
	}
	if got := New(-5).Workers(); got != 1 {
		t.Fatalf("workers = %d, want 1", got)
	}
}
