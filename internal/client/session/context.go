package session

import (
	"sync"
	"sync/atomic"
	"time"
)

// Context is the shared authentication state handed to the gateway client.
type Context struct {
	Credentials *Store

	redirecting atomic.Bool

	mu      sync.Mutex
	pending *time.Timer
}

// NewContext wraps creds with a fresh, unset redirect guard.
func NewContext(creds *Store) *Context {
	return &Context{Credentials: creds}
}

// TryBeginRedirect flips the redirect guard. Exactly one caller gets true
// until ResetRedirect is called.
func (c *Context) TryBeginRedirect() bool {
	return c.redirecting.CompareAndSwap(false, true)
}

// Redirecting reports whether a login redirect has already been decided.
func (c *Context) Redirecting() bool {
	return c.redirecting.Load()
}

// ScheduleRedirect calls navigate after delay unless ResetRedirect runs
// first. A later schedule replaces an earlier one.
func (c *Context) ScheduleRedirect(delay time.Duration, navigate func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.pending.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		c.mu.Lock()
		current := c.pending == t
		if current {
			c.pending = nil
		}
		c.mu.Unlock()
		if current {
			navigate()
		}
	})
	c.pending = t
}

// ResetRedirect re-arms the guard and drops a navigation that has not fired
// yet. Only a fresh login should call it.
func (c *Context) ResetRedirect() {
	c.mu.Lock()
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.mu.Unlock()
	c.redirecting.Store(false)
}
