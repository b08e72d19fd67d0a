package notify

import (
	"sync"
	"time"
)

// ManualScheduler is a Scheduler whose timers only fire when told to.
// It is meant for tests.
type ManualScheduler struct {
	mu     sync.Mutex
	timers []*ManualTimer
}

// ManualTimer is a timer created by ManualScheduler.
type ManualTimer struct {
	mu       sync.Mutex
	Duration time.Duration
	fn       func()
	stopped  bool
	fired    bool
}

// AfterFunc records a timer without starting it.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &ManualTimer{Duration: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// Timers returns every timer scheduled so far, oldest first.
func (s *ManualScheduler) Timers() []*ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*ManualTimer(nil), s.timers...)
}

// Last returns the most recently scheduled timer, or nil.
func (s *ManualScheduler) Last() *ManualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

// Stop marks the timer stopped. It reports whether the call prevented the
// timer from firing.
func (t *ManualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Stopped reports whether Stop was called before the timer fired.
func (t *ManualTimer) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Fire runs the timer callback unless the timer was stopped.
func (t *ManualTimer) Fire() {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	t.mu.Unlock()
	t.fn()
}

// ForceFire runs the callback even if the timer was stopped, simulating a
// timer that had already started firing when Stop was called.
func (t *ManualTimer) ForceFire() {
	t.fn()
}
