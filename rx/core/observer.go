// Package core defines the core abstractions for push-based reactive
// streams: observers, subscriptions, observables and the lift mechanism
// that lets operators decorate an observer without changing the delivery
// contract.
//
// NOTE: this package should have no dependencies on other rx packages.
package core

// State is the continuation signal an Observer returns from Next.
type State uint8

const (
	// Continue asks the source to keep delivering.
	Continue State = iota
	// Stop asks the source to stop delivering. Sources must not call Next
	// again after receiving Stop.
	Stop
)

func (s State) String() string {
	switch s {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Observer is a sink for the three stream events.
// At most one of Error or Complete is ever delivered to an Observer, and
// Next is never called after either of them.
type Observer[T any] interface {
	Next(T) State
	Error(error)
	Complete()
}

// ObserverFuncs adapts optional callbacks into an Observer.
// Nil callbacks are no-ops. Next always returns Continue.
type ObserverFuncs[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
}

func (f ObserverFuncs[T]) Next(v T) State {
	if f.OnNext != nil {
		f.OnNext(v)
	}
	return Continue
}

func (f ObserverFuncs[T]) Error(err error) {
	if f.OnError != nil {
		f.OnError(err)
	}
}

func (f ObserverFuncs[T]) Complete() {
	if f.OnComplete != nil {
		f.OnComplete()
	}
}

// NextFunc is an Observer that only cares about values.
type NextFunc[T any] func(T)

func (f NextFunc[T]) Next(v T) State {
	f(v)
	return Continue
}

func (NextFunc[T]) Error(error) {}

func (NextFunc[T]) Complete() {}
