package reload

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one published load outcome. Snapshots are immutable once
// published.
type Snapshot[T any] struct {
	// Seq is the trigger generation the load served. Published
	// sequence numbers strictly increase.
	Seq uint64
	ID  uuid.UUID
	// Result is the zero value when Failure is set.
	Result    T
	Failure   error
	Completed time.Time
}

// OK reports whether the load succeeded.
func (s *Snapshot[T]) OK() bool { return s != nil && s.Failure == nil }

// Slot is the handoff point between a Worker and its readers.
type Slot[T any] struct {
	latest atomic.Pointer[Snapshot[T]]
	good   atomic.Pointer[Snapshot[T]]
}

// Load returns the latest snapshot, or nil before the first publish.
func (s *Slot[T]) Load() *Snapshot[T] { return s.latest.Load() }

// LastGood returns the latest successful snapshot, or nil if no load has
// succeeded yet.
func (s *Slot[T]) LastGood() *Snapshot[T] { return s.good.Load() }

// Publish installs snap unless a snapshot with the same or a higher Seq
// is already installed. It reports whether snap was installed.
func (s *Slot[T]) Publish(snap *Snapshot[T]) bool {
	if !advance(&s.latest, snap) {
		return false
	}
	if snap.Failure == nil {
		advance(&s.good, snap)
	}
	return true
}

func advance[T any](p *atomic.Pointer[Snapshot[T]], snap *Snapshot[T]) bool {
	for {
		cur := p.Load()
		if cur != nil && cur.Seq >= snap.Seq {
			return false
		}
		if p.CompareAndSwap(cur, snap) {
			return true
		}
	}
}
