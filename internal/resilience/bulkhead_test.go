package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func occupySlot(t *testing.T, b *Bulkhead) (release func()) {
	t.Helper()
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		b.Execute(context.Background(), func() error {
			close(started)
			<-done
			return nil
		})
	}()
	<-started
	return func() { close(done) }
}

func TestBulkhead_AllowsCallsWithinLimit(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{
		Name:          "engine",
		MaxConcurrent: 3,
	})

	var calls int32
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := b.Execute(context.Background(), func() error {
				atomic.AddInt32(&calls, 1)
				time.Sleep(10 * time.Millisecond)
				return nil
			})
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if b.InUse() != 0 {
		t.Errorf("expected all slots released, got %d in use", b.InUse())
	}
}

func TestBulkhead_RejectsImmediatelyWithoutWait(t *testing.T) {
	var rejected int32
	b := NewBulkhead(BulkheadConfig{
		Name:          "engine",
		MaxConcurrent: 1,
		MaxWait:       0,
		OnReject: func(name string) {
			atomic.AddInt32(&rejected, 1)
		},
	})

	release := occupySlot(t, b)
	defer release()

	err := b.Execute(context.Background(), func() error { return nil })
	if !errors.Is(err, ErrBulkheadFull) {
		t.Errorf("expected ErrBulkheadFull, got %v", err)
	}
	if rejected != 1 {
		t.Errorf("expected reject callback once, got %d", rejected)
	}
}

func TestBulkhead_WaitsForSlot(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{
		Name:          "engine",
		MaxConcurrent: 1,
		MaxWait:       200 * time.Millisecond,
	})

	started := make(chan struct{})
	go func() {
		b.Execute(context.Background(), func() error {
			close(started)
			time.Sleep(20 * time.Millisecond)
			return nil
		})
	}()
	<-started

	err := b.Execute(context.Background(), func() error { return nil })
	if err != nil {
		t.Errorf("expected slot after wait, got %v", err)
	}
}

func TestBulkhead_TimesOutWaiting(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{
		Name:          "engine",
		MaxConcurrent: 1,
		MaxWait:       10 * time.Millisecond,
	})

	release := occupySlot(t, b)
	defer release()

	err := b.Execute(context.Background(), func() error { return nil })
	if !errors.Is(err, ErrBulkheadTimeout) {
		t.Errorf("expected ErrBulkheadTimeout, got %v", err)
	}
}

func TestBulkhead_RespectsContext(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{
		Name:          "engine",
		MaxConcurrent: 1,
		MaxWait:       1 * time.Second,
	})

	release := occupySlot(t, b)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := b.Execute(ctx, func() error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestBulkhead_DefaultsToSingleSlot(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "engine"})
	if b.Available() != 1 {
		t.Errorf("expected 1 slot by default, got %d", b.Available())
	}
}

func TestBulkhead_PropagatesFunctionError(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "engine", MaxConcurrent: 2})
	boom := errors.New("decode fault")
	if err := b.Execute(context.Background(), func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("expected function error, got %v", err)
	}
	if b.InUse() != 0 {
		t.Errorf("slot must be released after failure, got %d in use", b.InUse())
	}
}
