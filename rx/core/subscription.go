package core

import (
	"sync"
	"sync/atomic"
)

// Subscription is the live binding between one observable and one observer.
// Unsubscribe stops further delivery and releases the resources the binding
// holds. It is idempotent and may be called before any terminal event.
type Subscription interface {
	Unsubscribe()
	Closed() bool
}

// Composite is a Subscription that owns a list of teardown functions.
// Teardowns run once, in registration order, on the first Unsubscribe.
// It is safe for concurrent use.
type Composite struct {
	mu        sync.Mutex
	closed    atomic.Bool
	teardowns []func()
}

// NewComposite creates an open Composite.
func NewComposite() *Composite {
	return &Composite{}
}

// ClosedSubscription returns a Subscription that is already closed.
func ClosedSubscription() Subscription {
	c := NewComposite()
	c.Unsubscribe()
	return c
}

// Add registers a teardown. If the composite is already closed the
// teardown runs immediately.
func (c *Composite) Add(teardown func()) {
	if teardown == nil {
		return
	}
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		teardown()
		return
	}
	c.teardowns = append(c.teardowns, teardown)
	c.mu.Unlock()
}

// AddSubscription chains s so that it is unsubscribed together with c.
func (c *Composite) AddSubscription(s Subscription) {
	if s == nil {
		return
	}
	c.Add(s.Unsubscribe)
}

func (c *Composite) Unsubscribe() {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return
	}
	c.closed.Store(true)
	teardowns := c.teardowns
	c.teardowns = nil
	c.mu.Unlock()

	for _, teardown := range teardowns {
		teardown()
	}
}

func (c *Composite) Closed() bool {
	return c.closed.Load()
}
