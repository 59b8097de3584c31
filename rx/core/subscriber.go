package core

import "sync"

// subscriber guards a downstream observer: nothing is delivered after a
// terminal event or after the owning subscription closes. A terminal event
// closes the subscription, which releases upstream resources.
type subscriber[T any] struct {
	observer Observer[T]
	sub      *Composite
	done     bool
}

// Guard installs the protocol guard in front of o: after a terminal event,
// or once sub is closed, further events are dropped and Next answers Stop.
// A terminal event unsubscribes sub. In Shared mode the guard itself is
// serialized.
//
// Custom observables call Guard once per Subscribe; Create and Lift do it
// for their users.
func Guard[T any](mode Mode, o Observer[T], sub *Composite) Observer[T] {
	s := &subscriber[T]{observer: o, sub: sub}
	if mode == Shared {
		return Serialize[T](s)
	}
	return s
}

func (s *subscriber[T]) Next(v T) State {
	if s.done || s.sub.Closed() {
		return Stop
	}
	return s.observer.Next(v)
}

func (s *subscriber[T]) Error(err error) {
	if s.done || s.sub.Closed() {
		return
	}
	s.done = true
	defer s.sub.Unsubscribe()
	s.observer.Error(err)
}

func (s *subscriber[T]) Complete() {
	if s.done || s.sub.Closed() {
		return
	}
	s.done = true
	defer s.sub.Unsubscribe()
	s.observer.Complete()
}

// serialized funnels every call into the wrapped observer through a mutex.
type serialized[T any] struct {
	mu       sync.Mutex
	observer Observer[T]
}

// Serialize returns an Observer that delivers to o one call at a time.
// The wrapped observer must not re-enter itself from its own callbacks.
func Serialize[T any](o Observer[T]) Observer[T] {
	if s, ok := o.(*serialized[T]); ok {
		return s
	}
	return &serialized[T]{observer: o}
}

func (s *serialized[T]) Next(v T) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observer.Next(v)
}

func (s *serialized[T]) Error(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer.Error(err)
}

func (s *serialized[T]) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer.Complete()
}
