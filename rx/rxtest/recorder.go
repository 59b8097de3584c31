// Package rxtest provides helpers for testing observables and operators.
package rxtest

import (
	"sync"
	"time"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Recorder is an Observer that records every event it receives.
// It does not enforce the delivery protocol, so tests can assert on it.
//
// Recorder is safe under concurrent calls.
type Recorder[T any] struct {
	mu     sync.Mutex
	events []core.Notification[T]
	done   chan struct{}
	once   sync.Once

	// StopAfter makes Next answer Stop once this many values have been
	// recorded. Zero means never.
	StopAfter int
}

// NewRecorder constructs a Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{done: make(chan struct{})}
}

func (r *Recorder[T]) Next(v T) core.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, core.Next(v))
	if r.StopAfter > 0 && r.countValues() >= r.StopAfter {
		return core.Stop
	}
	return core.Continue
}

func (r *Recorder[T]) Error(err error) {
	r.mu.Lock()
	r.events = append(r.events, core.Err[T](err))
	r.mu.Unlock()
	r.once.Do(func() { close(r.done) })
}

func (r *Recorder[T]) Complete() {
	r.mu.Lock()
	r.events = append(r.events, core.Complete[T]())
	r.mu.Unlock()
	r.once.Do(func() { close(r.done) })
}

func (r *Recorder[T]) countValues() int {
	n := 0
	for _, e := range r.events {
		if e.IsNext() {
			n++
		}
	}
	return n
}

// Events returns a snapshot copy of recorded events.
func (r *Recorder[T]) Events() []core.Notification[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]core.Notification[T], len(r.events))
	copy(cp, r.events)
	return cp
}

// Values returns the recorded values in delivery order. It never returns
// nil, so it compares equal to an empty literal.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	values := make([]T, 0, len(r.events))
	for _, e := range r.events {
		if e.IsNext() {
			values = append(values, e.Value())
		}
	}
	return values
}

// Err returns the first recorded error, or nil.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.IsError() {
			return e.Error()
		}
	}
	return nil
}

// Completions returns how many times Complete was called.
func (r *Recorder[T]) Completions() int {
	return r.count(core.KindComplete)
}

// Errors returns how many times Error was called.
func (r *Recorder[T]) Errors() int {
	return r.count(core.KindError)
}

func (r *Recorder[T]) count(kind core.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

// Done is closed on the first terminal event.
func (r *Recorder[T]) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until a terminal event arrives or timeout elapses.
// It reports whether a terminal event arrived.
func (r *Recorder[T]) Wait(timeout time.Duration) bool {
	select {
	case <-r.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Reset clears the recorded events. A closed Done channel stays closed.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
