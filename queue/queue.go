// Package queue provides a bounded FIFO of outbound engine events for
// consumers that drain notifications as values instead of registering
// callbacks. Delivery order matches emission order.
package queue

import (
	"errors"
	"sync"
	"time"

	"github.com/spektralhq/speech"
)

var (
	// ErrQueueFull is returned when the queue is at capacity.
	ErrQueueFull = errors.New("event queue is full")

	// ErrQueueClosed is returned when operations are attempted on a closed queue.
	ErrQueueClosed = errors.New("event queue is closed")
)

// Stats tracks queue activity.
type Stats struct {
	TotalEnqueued int64
	TotalDequeued int64
	TotalDropped  int64
	CurrentSize   int
	PeakSize      int
	LastEnqueue   time.Time
	LastDequeue   time.Time
}

// EventQueue is a thread-safe bounded FIFO of speech events.
type EventQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond

	events  []speech.Event
	maxSize int
	closed  bool
	stats   Stats
}

// New creates an event queue holding at most maxSize events.
func New(maxSize int) *EventQueue {
	q := &EventQueue{
		events:  make([]speech.Event, 0, maxSize),
		maxSize: maxSize,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Attach registers callbacks on e that push every notification into the
// queue. Events that do not fit are counted as dropped rather than
// blocking the engine.
func (q *EventQueue) Attach(e speech.Engine) {
	e.OnStateChange(func(s speech.State) {
		q.push(speech.StateEvent(s))
	})
	e.OnWordBoundary(func(b speech.Boundary) {
		q.push(speech.BoundaryEvent(b))
	})
	e.OnError(func(err *speech.EngineError) {
		q.push(speech.ErrorEvent(err))
	})
}

// Push appends an event. It fails with ErrQueueFull at capacity and
// ErrQueueClosed after Close.
func (q *EventQueue) Push(ev speech.Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if len(q.events) >= q.maxSize {
		q.stats.TotalDropped++
		return ErrQueueFull
	}

	q.events = append(q.events, ev)
	q.stats.TotalEnqueued++
	q.stats.LastEnqueue = time.Now()
	q.stats.CurrentSize = len(q.events)
	if len(q.events) > q.stats.PeakSize {
		q.stats.PeakSize = len(q.events)
	}

	q.notEmpty.Signal()
	return nil
}

// push is Push for callback use; overflow is recorded in stats only.
func (q *EventQueue) push(ev speech.Event) {
	_ = q.Push(ev)
}

// Next blocks until an event is available or the queue is closed.
func (q *EventQueue) Next() (speech.Event, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.events) == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if len(q.events) == 0 {
		return speech.Event{}, ErrQueueClosed
	}
	return q.popLocked(), nil
}

// TryNext returns the next event without blocking. The second return is
// false when the queue is empty.
func (q *EventQueue) TryNext() (speech.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return speech.Event{}, false
	}
	return q.popLocked(), true
}

// Drain removes and returns all queued events in order.
func (q *EventQueue) Drain() []speech.Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]speech.Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	q.stats.TotalDequeued += int64(len(out))
	q.stats.CurrentSize = 0
	if len(out) > 0 {
		q.stats.LastDequeue = time.Now()
	}
	return out
}

// popLocked removes the head event. Caller holds the lock.
func (q *EventQueue) popLocked() speech.Event {
	ev := q.events[0]
	q.events = q.events[1:]
	q.stats.TotalDequeued++
	q.stats.LastDequeue = time.Now()
	q.stats.CurrentSize = len(q.events)
	return ev
}

// Size returns the number of queued events.
func (q *EventQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// GetStats returns a snapshot of queue statistics.
func (q *EventQueue) GetStats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	stats := q.stats
	stats.CurrentSize = len(q.events)
	return stats
}

// Close shuts the queue down. Queued events remain drainable; blocked
// Next callers wake up once the queue empties.
func (q *EventQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	q.notEmpty.Broadcast()
	return nil
}
