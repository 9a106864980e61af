package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolConcurrencyLimit(t *testing.T) {
	pool := New(2)
	defer func() {
		_ = pool.Shutdown(context.Background())
	}()

	var current int32
	var peak int32

	work := func() {
		val := atomic.AddInt32(&current, 1)
		for {
			prev := atomic.LoadInt32(&peak)
			if val <= prev || atomic.CompareAndSwapInt32(&peak, prev, val) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&current, -1)
	}

	for i := 0; i < 4; i++ {
		if err := pool.Submit(work); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	_ = pool.Shutdown(context.Background())
	if peak > 2 {
		t.Fatalf("expected max concurrency <= 2, got %d", peak)
	}
}

func TestPoolSubmitAfterShutdown(t *testing.T) {
	pool := New(1)
	_ = pool.Shutdown(context.Background())
	if err := pool.Submit(func() {}); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPoolShutdownDrainsQueuedTasks(t *testing.T) {
	pool := New(1)

	var ran int32
	for i := 0; i < 4; i++ {
		if err := pool.Submit(func() { atomic.AddInt32(&ran, 1) }); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if got := atomic.LoadInt32(&ran); got != 4 {
		t.Fatalf("expected all queued tasks to run, got %d of 4", got)
	}
}

func TestPoolSubmitRacingShutdown(t *testing.T) {
	pool := New(2)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if err := pool.Submit(func() {}); err != nil {
					if !errors.Is(err, ErrPoolClosed) {
						t.Errorf("submit error = %v, want ErrPoolClosed", err)
					}
					return
				}
			}
		}()
	}

	time.Sleep(time.Millisecond)
	_ = pool.Shutdown(context.Background())
	wg.Wait()

	if err := pool.Submit(func() {}); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("submit after shutdown = %v, want ErrPoolClosed", err)
	}
}

func TestPoolSizeFloor(t *testing.T) {
	pool := New(0)
	defer func() {
		_ = pool.Shutdown(context.Background())
	}()
	if pool.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", pool.Size())
	}
}
