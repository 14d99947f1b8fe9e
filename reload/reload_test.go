package reload

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSlotPublishIsMonotonic(t *testing.T) {
	var s Slot[string]
	if s.Load() != nil || s.LastGood() != nil {
		t.Fatal("new slot is not empty")
	}
	if !s.Publish(&Snapshot[string]{Seq: 2, Result: "two"}) {
		t.Fatal("first publish rejected")
	}
	if s.Publish(&Snapshot[string]{Seq: 1, Result: "one"}) {
		t.Error("older snapshot replaced a newer one")
	}
	if s.Publish(&Snapshot[string]{Seq: 2, Result: "again"}) {
		t.Error("equal sequence replaced the installed snapshot")
	}
	if got := s.Load().Result; got != "two" {
		t.Errorf("latest = %q", got)
	}
}

func TestSlotKeepsLastGood(t *testing.T) {
	var s Slot[int]
	s.Publish(&Snapshot[int]{Seq: 1, Result: 10})
	old := s.Load()
	s.Publish(&Snapshot[int]{Seq: 2, Failure: errors.New("broken")})

	if s.Load().OK() {
		t.Error("failed snapshot reported OK")
	}
	if good := s.LastGood(); good != old || good.Result != 10 {
		t.Errorf("last good = %+v", good)
	}
	if old.Result != 10 {
		t.Error("old snapshot changed after replacement")
	}
}

func TestSlotConcurrentPublish(t *testing.T) {
	var s Slot[int]
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			s.Publish(&Snapshot[int]{Seq: seq})
		}(uint64(i))
	}
	wg.Wait()
	if got := s.Load().Seq; got != 50 {
		t.Errorf("seq = %d, want 50", got)
	}
}

func run[T any](t *testing.T, w *Worker[T]) (context.CancelFunc, chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, errc
}

func receive[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
	var zero T
	return zero
}

func TestWorkerPublishes(t *testing.T) {
	published := make(chan *Snapshot[string], 1)
	w := NewWorker[string](func(context.Context) (string, error) {
		return "doc", nil
	}, OnPublish(func(s *Snapshot[string]) { published <- s }))
	run(t, w)

	w.Trigger()
	snap := receive(t, published)
	if !snap.OK() || snap.Result != "doc" || snap.Seq != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Completed.IsZero() || snap.ID.String() == "" {
		t.Error("snapshot missing completion time or id")
	}
	if w.Slot().Load() != snap {
		t.Error("slot does not hold the published snapshot")
	}
}

func TestSupersededLoadDiscarded(t *testing.T) {
	started := make(chan int, 4)
	release := make(chan struct{})
	var calls atomic.Int32
	load := func(ctx context.Context) (int, error) {
		n := int(calls.Add(1))
		started <- n
		select {
		case <-release:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
		return n, nil
	}
	published := make(chan *Snapshot[int], 4)
	w := NewWorker[int](load, OnPublish(func(s *Snapshot[int]) { published <- s }))
	cancel, errc := run(t, w)

	w.Trigger()
	receive(t, started)
	w.Trigger()
	w.Trigger()
	release <- struct{}{}

	if n := receive(t, started); n != 2 {
		t.Fatalf("second load = %d", n)
	}
	release <- struct{}{}
	snap := receive(t, published)
	if snap.Seq != 3 || snap.Result != 2 {
		t.Errorf("published seq %d result %d, want seq 3 from the second load", snap.Seq, snap.Result)
	}

	cancel()
	if err := receive(t, errc); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v", err)
	}
	if len(published) != 0 {
		t.Error("superseded load was published")
	}
	if calls.Load() != 2 {
		t.Errorf("loads = %d, want 2", calls.Load())
	}
}

func TestWorkerPublishesFailures(t *testing.T) {
	fail := errors.New("corrupt")
	var attempt atomic.Int32
	published := make(chan *Snapshot[int], 2)
	w := NewWorker[int](func(context.Context) (int, error) {
		if attempt.Add(1) == 2 {
			return 0, fail
		}
		return 7, nil
	}, OnPublish(func(s *Snapshot[int]) { published <- s }))
	run(t, w)

	w.Trigger()
	receive(t, published)
	w.Trigger()
	snap := receive(t, published)

	if !errors.Is(snap.Failure, fail) || snap.Result != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
	if good := w.Slot().LastGood(); good == nil || good.Result != 7 || good.Seq != 1 {
		t.Errorf("last good = %+v", good)
	}
}

func TestCancelDuringLoad(t *testing.T) {
	started := make(chan struct{})
	w := NewWorker[int](func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 1, nil
	})
	cancel, errc := run(t, w)

	w.Trigger()
	receive(t, started)
	cancel()
	if err := receive(t, errc); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v", err)
	}
	if w.Slot().Load() != nil {
		t.Error("cancelled load was published")
	}
}

func TestRunTwice(t *testing.T) {
	w := NewWorker[int](func(context.Context) (int, error) { return 0, nil })
	run(t, w)
	for !w.running.Load() {
		time.Sleep(time.Millisecond)
	}
	if err := w.Run(context.Background()); !errors.Is(err, ErrRunning) {
		t.Errorf("second Run = %v, want ErrRunning", err)
	}
}

func TestTriggerNeverBlocks(t *testing.T) {
	w := NewWorker[int](func(context.Context) (int, error) { return 0, nil })
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			w.Trigger()
		}
		close(done)
	}()
	receive(t, done)
	if got := w.requested.Load(); got != 100 {
		t.Errorf("requested = %d", got)
	}
}

func TestSharedSlot(t *testing.T) {
	slot := &Slot[int]{}
	published := make(chan *Snapshot[int], 1)
	w := NewWorker[int](func(context.Context) (int, error) { return 3, nil },
		WithSlot(slot), OnPublish(func(s *Snapshot[int]) { published <- s }))
	run(t, w)
	w.Trigger()
	receive(t, published)
	if slot.Load() == nil || slot.Load().Result != 3 {
		t.Errorf("shared slot = %+v", slot.Load())
	}
}
