package app

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDynamicLimiter_DoBoundsConcurrency(t *testing.T) {
	l := NewDynamicLimiter(2)
	ctx := context.Background()

	var current, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Do(ctx, func() error {
				n := atomic.AddInt32(&current, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&current, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	if peak > 2 {
		t.Fatalf("peak in-flight: want <= 2, got %d", peak)
	}
	if l.InFlight() != 0 {
		t.Fatalf("in-flight after Do: want 0, got %d", l.InFlight())
	}
}

func TestDynamicLimiter_SetLimitWakesWaiters(t *testing.T) {
	l := NewDynamicLimiter(1)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	done := make(chan struct{})
	go func() {
		_ = l.Acquire(ctx)
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("acquire should block while limit=1")
	case <-time.After(50 * time.Millisecond):
	}

	l.SetLimit(2)
	select {
	case <-done:
	case <-time.After(250 * time.Millisecond):
		t.Fatalf("waiter should have been woken by SetLimit")
	}

	l.Release()
	l.Release()
}

func TestDynamicLimiter_AcquireHonorsContext(t *testing.T) {
	l := NewDynamicLimiter(1)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	called := false
	err := l.Do(ctx, func() error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatalf("expected context error")
	}
	if called {
		t.Fatalf("fn must not run without a slot")
	}
}

func TestDynamicLimiter_NilDoRunsInline(t *testing.T) {
	var l *DynamicLimiter
	ran := false
	if err := l.Do(context.Background(), func() error { ran = true; return nil }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ran {
		t.Fatalf("expected fn to run")
	}
}
