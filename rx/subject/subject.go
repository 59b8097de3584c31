// Package subject provides a hot multicast source: values pushed into a
// Subject are forwarded to every observer subscribed at that moment.
//
// A Subject is a collaborator for operator pipelines. It satisfies the
// core.Observable contract and does nothing beyond plain fan-out.
package subject

import (
	"context"
	"slices"
	"sync"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Subject is a hot observable that can also be fed like an observer.
// Copies of a *Subject share the same observers.
//
// Once terminated, a Subject replays the terminal event to late
// subscribers.
//
// The observer list is locked in both modes: a cancelled subscription
// context removes its observer from another goroutine. The mode only
// decides whether delivery to each observer is serialized.
type Subject[T any] struct {
	mode core.Mode

	mu       sync.RWMutex // guards entries, nextID and terminal
	entries  []*entry[T]
	nextID   uint64
	terminal *core.Notification[T]
}

type entry[T any] struct {
	id       uint64
	observer core.Observer[T]
	sub      *core.Composite
}

// New creates a Local subject. It must be fed and subscribed from a single
// goroutine.
func New[T any]() *Subject[T] {
	return &Subject[T]{mode: core.Local}
}

// NewShared creates a Shared subject. It may be fed and subscribed from any
// goroutine; each observer receives one call at a time.
func NewShared[T any]() *Subject[T] {
	return &Subject[T]{mode: core.Shared}
}

func (s *Subject[T]) Mode() core.Mode {
	return s.mode
}

func (s *Subject[T]) Subscribe(ctx context.Context, o core.Observer[T]) core.Subscription {
	sub := core.NewComposite()
	o = core.Guard(s.mode, o, sub)

	s.mu.Lock()
	if s.terminal != nil {
		terminal := *s.terminal
		s.mu.Unlock()
		terminal.Accept(o)
		return sub
	}
	s.nextID++
	e := &entry[T]{id: s.nextID, observer: o, sub: sub}
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, e.sub.Unsubscribe)
	e.sub.Add(func() {
		stop()
		s.remove(e.id)
	})
	return e.sub
}

func (s *Subject[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = slices.DeleteFunc(s.entries, func(e *entry[T]) bool {
		return e.id == id
	})
}

// Len returns the number of subscribed observers.
func (s *Subject[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Next forwards v to every current observer. An observer that answers
// Stop is unsubscribed.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	if s.terminal != nil {
		s.mu.Unlock()
		return
	}
	entries := slices.Clone(s.entries)
	s.mu.Unlock()

	for _, e := range entries {
		if e.sub.Closed() {
			continue
		}
		if e.observer.Next(v) == core.Stop {
			e.sub.Unsubscribe()
		}
	}
}

// Error terminates the subject with err.
func (s *Subject[T]) Error(err error) {
	s.terminate(core.Err[T](err))
}

// Complete terminates the subject successfully.
func (s *Subject[T]) Complete() {
	s.terminate(core.Complete[T]())
}

func (s *Subject[T]) terminate(n core.Notification[T]) {
	s.mu.Lock()
	if s.terminal != nil {
		s.mu.Unlock()
		return
	}
	s.terminal = &n
	entries := s.entries
	s.entries = nil
	s.mu.Unlock()

	for _, e := range entries {
		if e.sub.Closed() {
			continue
		}
		n.Accept(e.observer)
	}
}
