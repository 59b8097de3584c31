package filter

import (
	"context"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Take creates an Operator that passes through only the first n values.
// After the nth value the stream completes and upstream is told to stop.
// If n <= 0, the stream completes on subscribe without touching upstream.
func Take[T any](n int) core.Operator[T, T] {
	if n <= 0 {
		return core.OperatorFunc[T, T](func(src core.Observable[T]) core.Observable[T] {
			return completed[T]{mode: src.Mode()}
		})
	}
	return core.Lift(func(down core.Observer[T]) core.Observer[T] {
		return &takeObserver[T]{down: down, remaining: n}
	})
}

type takeObserver[T any] struct {
	down      core.Observer[T]
	remaining int
}

func (o *takeObserver[T]) Next(v T) core.State {
	if o.remaining <= 0 {
		return core.Stop
	}
	o.remaining--
	state := o.down.Next(v)
	if o.remaining == 0 {
		o.down.Complete()
		return core.Stop
	}
	return state
}

func (o *takeObserver[T]) Error(err error) {
	o.down.Error(err)
}

func (o *takeObserver[T]) Complete() {
	o.down.Complete()
}

// completed is an observable that completes as soon as it is subscribed.
type completed[T any] struct {
	mode core.Mode
}

func (c completed[T]) Mode() core.Mode { return c.mode }

func (c completed[T]) Subscribe(_ context.Context, o core.Observer[T]) core.Subscription {
	o.Complete()
	return core.ClosedSubscription()
}

// First creates an Operator that only emits the first value from the stream.
// This is equivalent to Take(1).
func First[T any]() core.Operator[T, T] {
	return Take[T](1)
}

// FirstOr creates an Operator that emits the first value from the stream,
// or def if the stream completes without emitting anything.
// An error from upstream is forwarded as is and def is never delivered.
func FirstOr[T any](def T) core.Operator[T, T] {
	first := First[T]()
	pending := core.Lift(func(down core.Observer[T]) core.Observer[T] {
		return &firstOrObserver[T]{down: down, pending: core.NewCell(def)}
	})
	return core.OperatorFunc[T, T](func(src core.Observable[T]) core.Observable[T] {
		return pending.Apply(first.Apply(src))
	})
}

type firstOrObserver[T any] struct {
	down    core.Observer[T]
	pending *core.Cell[T]
}

func (o *firstOrObserver[T]) Next(v T) core.State {
	o.pending.Take()
	return o.down.Next(v)
}

func (o *firstOrObserver[T]) Error(err error) {
	o.down.Error(err)
}

func (o *firstOrObserver[T]) Complete() {
	if def, ok := o.pending.Take(); ok {
		o.down.Next(def)
	}
	o.down.Complete()
}

// TakeWhile creates an Operator that passes through values while the
// predicate returns true. The first value that fails the predicate
// completes the stream and is not emitted.
func TakeWhile[T any](predicate func(T) bool) core.Operator[T, T] {
	return core.Lift(func(down core.Observer[T]) core.Observer[T] {
		return &takeWhileObserver[T]{down: down, predicate: predicate}
	})
}

type takeWhileObserver[T any] struct {
	down      core.Observer[T]
	predicate func(T) bool
}

func (o *takeWhileObserver[T]) Next(v T) core.State {
	if !o.predicate(v) {
		o.down.Complete()
		return core.Stop
	}
	return o.down.Next(v)
}

func (o *takeWhileObserver[T]) Error(err error) { o.down.Error(err) }

func (o *takeWhileObserver[T]) Complete() { o.down.Complete() }
