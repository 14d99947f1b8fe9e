package reload

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoadFunc produces one result. It should honour ctx cancellation.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Worker runs loads in the background and publishes their outcomes to a
// Slot. Only the load serving the most recent trigger is published.
type Worker[T any] struct {
	load      LoadFunc[T]
	slot      *Slot[T]
	log       *zap.Logger
	onPublish func(*Snapshot[T])

	trigger   chan struct{}
	requested atomic.Uint64
	running   atomic.Bool
}

// Option configures a Worker.
type Option[T any] func(*Worker[T])

// WithLogger sets the logger for load outcomes.
func WithLogger[T any](log *zap.Logger) Option[T] {
	return func(w *Worker[T]) {
		if log != nil {
			w.log = log
		}
	}
}

// WithSlot publishes into an existing slot instead of a new one.
func WithSlot[T any](s *Slot[T]) Option[T] {
	return func(w *Worker[T]) {
		if s != nil {
			w.slot = s
		}
	}
}

// OnPublish registers fn to be called on the worker goroutine after each
// snapshot is installed.
func OnPublish[T any](fn func(*Snapshot[T])) Option[T] {
	return func(w *Worker[T]) { w.onPublish = fn }
}

// NewWorker creates a worker around load. Call Run to start it.
func NewWorker[T any](load LoadFunc[T], opts ...Option[T]) *Worker[T] {
	w := &Worker[T]{
		load:    load,
		slot:    &Slot[T]{},
		log:     zap.NewNop(),
		trigger: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Slot returns the slot the worker publishes to.
func (w *Worker[T]) Slot() *Slot[T] { return w.slot }

// Trigger requests a load. It never blocks; triggers received while a
// request is pending coalesce into it.
func (w *Worker[T]) Trigger() {
	w.requested.Add(1)
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// ErrRunning is returned by Run when the worker is already running.
var ErrRunning = errors.New("reload: worker already running")

// Run processes triggers until ctx is done and returns ctx.Err(). A load
// in flight when ctx is cancelled is not published.
func (w *Worker[T]) Run(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer w.running.Store(false)

	var served uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.trigger:
		}

		seq := w.requested.Load()
		if seq == served {
			continue
		}
		served = seq
		start := time.Now()
		result, err := w.load(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if latest := w.requested.Load(); latest != seq {
			w.log.Debug("discarding superseded load",
				zap.Uint64("seq", seq),
				zap.Uint64("latest", latest))
			continue
		}

		snap := &Snapshot[T]{
			Seq:       seq,
			ID:        uuid.New(),
			Failure:   err,
			Completed: time.Now(),
		}
		if err == nil {
			snap.Result = result
		}
		if !w.slot.Publish(snap) {
			continue
		}
		if err != nil {
			w.log.Warn("load failed",
				zap.Uint64("seq", seq),
				zap.Error(err))
		} else {
			w.log.Info("load published",
				zap.Uint64("seq", seq),
				zap.String("id", snap.ID.String()),
				zap.Duration("elapsed", snap.Completed.Sub(start)))
		}
		if w.onPublish != nil {
			w.onPublish(snap)
		}
	}
}
