// Package filter provides operators that select which values of a stream
// reach the downstream observer.
package filter

import (
	"github.com/lguimbarda/min-rx/rx/core"
)

// Filter creates an Operator that only passes values matching the predicate.
func Filter[T any](predicate func(T) bool) core.Operator[T, T] {
	return core.Lift(func(down core.Observer[T]) core.Observer[T] {
		return &filterObserver[T]{down: down, predicate: predicate}
	})
}

type filterObserver[T any] struct {
	down      core.Observer[T]
	predicate func(T) bool
}

func (o *filterObserver[T]) Next(v T) core.State {
	if !o.predicate(v) {
		return core.Continue
	}
	return o.down.Next(v)
}

func (o *filterObserver[T]) Error(err error) { o.down.Error(err) }

func (o *filterObserver[T]) Complete() { o.down.Complete() }
