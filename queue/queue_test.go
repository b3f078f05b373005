package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/spektralhq/speech"
	"github.com/spektralhq/speech/engines/mock"
)

// TestPushAndNext tests FIFO ordering.
func TestPushAndNext(t *testing.T) {
	q := New(10)

	q.Push(speech.StateEvent(speech.StateSpeaking))
	q.Push(speech.BoundaryEvent(speech.Boundary{Start: 0, Length: 5}))

	ev, err := q.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Kind != speech.EventStateChanged || ev.State != speech.StateSpeaking {
		t.Errorf("Expected speaking state event first, got %#v", ev)
	}

	ev, err = q.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Kind != speech.EventWordBoundary || ev.Boundary.Length != 5 {
		t.Errorf("Expected word boundary second, got %#v", ev)
	}
}

// TestPushFull tests overflow handling.
func TestPushFull(t *testing.T) {
	q := New(1)

	if err := q.Push(speech.StateEvent(speech.StateSpeaking)); err != nil {
		t.Fatalf("First push failed: %v", err)
	}
	err := q.Push(speech.StateEvent(speech.StateReady))
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("Expected ErrQueueFull, got %v", err)
	}

	stats := q.GetStats()
	if stats.TotalDropped != 1 {
		t.Errorf("Expected 1 dropped event, got %d", stats.TotalDropped)
	}
}

// TestTryNext tests the non-blocking accessor.
func TestTryNext(t *testing.T) {
	q := New(10)

	if _, ok := q.TryNext(); ok {
		t.Error("Expected no event from empty queue")
	}

	q.Push(speech.StateEvent(speech.StatePaused))
	ev, ok := q.TryNext()
	if !ok || ev.State != speech.StatePaused {
		t.Errorf("Expected paused state event, got %#v ok=%v", ev, ok)
	}
}

// TestDrain tests removing all events at once.
func TestDrain(t *testing.T) {
	q := New(10)
	q.Push(speech.StateEvent(speech.StateSpeaking))
	q.Push(speech.BoundaryEvent(speech.Boundary{Start: 0, Length: 3}))
	q.Push(speech.StateEvent(speech.StateReady))

	events := q.Drain()
	if len(events) != 3 {
		t.Fatalf("Expected 3 drained events, got %d", len(events))
	}
	if q.Size() != 0 {
		t.Errorf("Expected empty queue after drain, got size %d", q.Size())
	}
}

// TestCloseWakesBlockedNext tests that Close unblocks waiting consumers.
func TestCloseWakesBlockedNext(t *testing.T) {
	q := New(10)

	done := make(chan error, 1)
	go func() {
		_, err := q.Next()
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrQueueClosed) {
			t.Errorf("Expected ErrQueueClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Next did not return after Close")
	}
}

// TestCloseDrainsRemaining tests that queued events survive Close.
func TestCloseDrainsRemaining(t *testing.T) {
	q := New(10)
	q.Push(speech.StateEvent(speech.StateSpeaking))
	q.Close()

	if err := q.Push(speech.StateEvent(speech.StateReady)); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Expected ErrQueueClosed on push after close, got %v", err)
	}

	ev, err := q.Next()
	if err != nil {
		t.Fatalf("Expected queued event after close, got %v", err)
	}
	if ev.State != speech.StateSpeaking {
		t.Errorf("Expected speaking event, got %#v", ev)
	}
	if _, err := q.Next(); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Expected ErrQueueClosed once empty, got %v", err)
	}
}

// TestAttach tests capturing a full utterance through the queue.
func TestAttach(t *testing.T) {
	engine := mock.NewWithConfig(speech.MockConfig{
		WordTime:      2 * time.Millisecond,
		WordTimeFloor: time.Millisecond,
		RateSlope:     time.Millisecond,
	})
	q := New(32)
	q.Attach(engine)

	done := make(chan struct{})
	engine.OnStateChange(func(s speech.State) {
		if s == speech.StateReady {
			close(done)
		}
	})

	engine.Say("hi there")
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Utterance did not finish")
	}

	events := q.Drain()
	kinds := make([]string, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind.String()
	}
	want := []string{"state_changed", "word_boundary", "word_boundary", "state_changed"}
	if len(kinds) != len(want) {
		t.Fatalf("Expected %d events, got %v", len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Event %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
}

// TestStats tests enqueue/dequeue accounting.
func TestStats(t *testing.T) {
	q := New(10)
	q.Push(speech.StateEvent(speech.StateSpeaking))
	q.Push(speech.StateEvent(speech.StateReady))
	q.TryNext()

	stats := q.GetStats()
	if stats.TotalEnqueued != 2 {
		t.Errorf("Expected 2 enqueued, got %d", stats.TotalEnqueued)
	}
	if stats.TotalDequeued != 1 {
		t.Errorf("Expected 1 dequeued, got %d", stats.TotalDequeued)
	}
	if stats.CurrentSize != 1 {
		t.Errorf("Expected size 1, got %d", stats.CurrentSize)
	}
	if stats.PeakSize != 2 {
		t.Errorf("Expected peak 2, got %d", stats.PeakSize)
	}
}
