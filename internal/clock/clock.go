// Package clock provides a schedule-one-shot-wakeup primitive so that
// timer-driven engines can run against real time in production and against
// a manually advanced clock in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a single armed wakeup.
type Timer interface {
	// Stop disarms the timer. It reports whether the timer was still
	// armed; a false return means the callback already ran or is running.
	Stop() bool
}

// Clock schedules one-shot wakeups.
type Clock interface {
	// AfterFunc arms fn to run once after d.
	AfterFunc(d time.Duration, fn func()) Timer

	// Now returns the clock's current time.
	Now() time.Time
}

// New returns a Clock backed by real time.
func New() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (realClock) Now() time.Time {
	return time.Now()
}

// Manual is a Clock driven by explicit Advance calls. Timers fire
// synchronously, in deadline order, on the goroutine calling Advance.
// Callbacks may arm new timers; those fire too if they fall within the
// advanced window.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

type manualTimer struct {
	clk      *Manual
	deadline time.Time
	fn       func()
	stopped  bool
}

func (t *manualTimer) Stop() bool {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.clk.remove(t)
	return true
}

// AfterFunc arms fn to run when the clock is advanced past d.
func (c *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clk: c, deadline: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the manual clock's current time.
func (c *Manual) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Armed reports whether any timer is pending.
func (c *Manual) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers) > 0
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls within the window. Callbacks run outside the clock's lock, so they
// may arm or stop timers.
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		t.stopped = true
		c.remove(t)
		c.now = t.deadline
		c.mu.Unlock()
		t.fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// nextDue returns the earliest timer with deadline <= target, or nil.
// Caller holds the lock.
func (c *Manual) nextDue(target time.Time) *manualTimer {
	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].deadline.Before(c.timers[j].deadline)
	})
	if len(c.timers) == 0 || c.timers[0].deadline.After(target) {
		return nil
	}
	return c.timers[0]
}

// remove deletes t from the pending set. Caller holds the lock.
func (c *Manual) remove(t *manualTimer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}
