// Package notify implements the single-slot notification channel shown to
// the user after an operation succeeds or fails.
//
// The channel is either hidden or shows exactly one message. Show replaces
// whatever is visible and restarts the auto-dismiss timer; a timer started
// for a replaced message never hides its successor.
package notify

import (
	"sync"
	"time"
)

// DefaultDelay is how long a message stays visible without a new Show.
const DefaultDelay = 4 * time.Second

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is the channel state. Visible is false when hidden.
type Notification struct {
	Message  string
	Severity Severity
	Visible  bool
}

// afterFunc is a test seam for time.AfterFunc.
var afterFunc = func(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

type stopper interface {
	Stop() bool
}

// Channel is safe for concurrent use.
type Channel struct {
	mu       sync.Mutex
	current  Notification
	delay    time.Duration
	gen      uint64
	timer    stopper
	onChange func(Notification)
}

// Option configures a Channel.
type Option func(*Channel)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithObserver registers fn to receive every state transition. fn runs
// with the channel locked and must not call back into it.
func WithObserver(fn func(Notification)) Option {
	return func(c *Channel) { c.onChange = fn }
}

func NewChannel(opts ...Option) *Channel {
	c := &Channel{delay: DefaultDelay}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Show makes msg the only visible notification.
func (c *Channel) Show(msg string, sev Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.set(Notification{Message: msg, Severity: sev, Visible: true})
	c.timer = afterFunc(c.delay, func() { c.expire(gen) })
}

// Success and Error are shorthands for Show.
func (c *Channel) Success(msg string) { c.Show(msg, SeveritySuccess) }
func (c *Channel) Error(msg string)   { c.Show(msg, SeverityError) }
func (c *Channel) Info(msg string)    { c.Show(msg, SeverityInfo) }

// Hide clears the channel immediately.
func (c *Channel) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	if c.current.Visible {
		c.set(Notification{})
	}
}

// Current returns the visible notification, if any.
func (c *Channel) Current() Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || !c.current.Visible {
		return
	}
	c.timer = nil
	c.set(Notification{})
}

func (c *Channel) set(n Notification) {
	c.current = n
	if c.onChange != nil {
		c.onChange(n)
	}
}
