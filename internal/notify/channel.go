// Package notify provides the single-slot transient notification channel
// (toast) shown by the dashboard. A notification expires after a fixed
// duration; a newer one replaces it and gets its own full window.
package notify

import (
	"sync"
	"time"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 3000 * time.Millisecond

// Kind is the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindSuccess, KindError, KindInfo:
		return true
	default:
		return false
	}
}

// Notification is a message with its severity.
type Notification struct {
	Message string
	Kind    Kind
}

// Timer is a handle to a scheduled task.
type Timer interface {
	Stop() bool
}

// Scheduler schedules f to run once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Channel holds at most one notification.
type Channel struct {
	mu        sync.Mutex
	current   *Notification
	timer     Timer
	gen       uint64
	duration  time.Duration
	scheduler Scheduler
	onChange  func()
	closed    bool
}

// Option configures a Channel.
type Option func(*Channel)

// WithDuration sets the visible duration. Non-positive values are ignored.
func WithDuration(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithScheduler replaces the timer factory.
func WithScheduler(s Scheduler) Option {
	return func(c *Channel) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithOnChange registers a callback run after every change of the current
// notification. It is called without the channel lock held.
func WithOnChange(fn func()) Option {
	return func(c *Channel) {
		c.onChange = fn
	}
}

// New creates an empty channel.
func New(opts ...Option) *Channel {
	c := &Channel{
		duration:  DefaultDuration,
		scheduler: realScheduler{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify replaces the current notification and restarts the expiry window.
// An unknown kind is shown as info.
func (c *Channel) Notify(message string, kind Kind) {
	if !kind.IsValid() {
		kind = KindInfo
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.stopTimerLocked()
	c.gen++
	gen := c.gen
	c.current = &Notification{Message: message, Kind: kind}
	c.timer = c.scheduler.AfterFunc(c.duration, func() { c.expire(gen) })
	c.mu.Unlock()

	c.changed()
}

// Dismiss clears the current notification and cancels its expiry.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	had := c.current != nil
	c.stopTimerLocked()
	c.gen++
	c.current = nil
	c.mu.Unlock()

	if had {
		c.changed()
	}
}

// Current returns the visible notification, if any.
func (c *Channel) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Notification{}, false
	}
	return *c.current, true
}

// Close cancels any pending expiry and ignores further notifications.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
	c.gen++
	c.closed = true
}

// expire clears the notification scheduled under gen. Stale generations are
// ignored so a late timer never clears a newer message.
func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.current == nil {
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.timer = nil
	c.mu.Unlock()

	c.changed()
}

func (c *Channel) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Channel) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
