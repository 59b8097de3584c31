// Package transform provides operators that change the values of a stream.
package transform

import (
	"github.com/lguimbarda/min-rx/rx/core"
)

// Map creates an Operator that applies fn to every value.
// If fn returns an error (or panics), that error terminates the stream
// and upstream is told to stop.
func Map[IN, OUT any](fn func(IN) (OUT, error)) core.Operator[IN, OUT] {
	return core.Lift(func(down core.Observer[OUT]) core.Observer[IN] {
		return &mapObserver[IN, OUT]{down: down, fn: fn}
	})
}

type mapObserver[IN, OUT any] struct {
	down   core.Observer[OUT]
	fn     func(IN) (OUT, error)
	failed bool
}

func (o *mapObserver[IN, OUT]) Next(v IN) core.State {
	if o.failed {
		return core.Stop
	}
	out, err := o.apply(v)
	if err != nil {
		o.failed = true
		o.down.Error(err)
		return core.Stop
	}
	return o.down.Next(out)
}

func (o *mapObserver[IN, OUT]) apply(v IN) (out OUT, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = core.NewPanicError(r)
		}
	}()
	return o.fn(v)
}

func (o *mapObserver[IN, OUT]) Error(err error) { o.down.Error(err) }

func (o *mapObserver[IN, OUT]) Complete() { o.down.Complete() }

// Tap creates an Operator that calls fn for every value without changing
// the stream.
func Tap[T any](fn func(T)) core.Operator[T, T] {
	return Map(func(v T) (T, error) {
		fn(v)
		return v, nil
	})
}
