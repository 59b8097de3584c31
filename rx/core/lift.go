package core

import (
	"context"
)

// Operator transforms an Observable of IN into an Observable of OUT.
// Operators can be composed to build pipelines; each Apply returns a new
// immutable observable and leaves its source untouched.
type Operator[IN, OUT any] interface {
	Apply(Observable[IN]) Observable[OUT]
}

// OperatorFunc adapts a plain function into an Operator.
type OperatorFunc[IN, OUT any] func(Observable[IN]) Observable[OUT]

func (f OperatorFunc[IN, OUT]) Apply(src Observable[IN]) Observable[OUT] {
	return f(src)
}

// Lifter decorates a downstream observer with per-subscription state and
// returns the observer handed to the upstream source. The decorator is
// called once per Subscribe, with that subscription's context, so the state
// it allocates is never shared between subscriptions.
type Lifter[IN, OUT any] func(ctx context.Context, down Observer[OUT]) Observer[IN]

// Lift creates a Lifter from a decorator that does not need the context.
func Lift[IN, OUT any](decorate func(down Observer[OUT]) Observer[IN]) Lifter[IN, OUT] {
	return func(_ context.Context, down Observer[OUT]) Observer[IN] {
		return decorate(down)
	}
}

// LiftContext creates a Lifter from a decorator that reads the subscription
// context, for example to pick up its logger or configuration.
func LiftContext[IN, OUT any](decorate func(ctx context.Context, down Observer[OUT]) Observer[IN]) Lifter[IN, OUT] {
	return decorate
}

// Apply wraps src. The result keeps the delivery mode of src: in Shared
// mode the decorated observer is serialized, in Local mode it is used as is.
func (l Lifter[IN, OUT]) Apply(src Observable[IN]) Observable[OUT] {
	return lifted[IN, OUT]{source: src, decorate: l}
}

type lifted[IN, OUT any] struct {
	source   Observable[IN]
	decorate Lifter[IN, OUT]
}

func (o lifted[IN, OUT]) Mode() Mode {
	return o.source.Mode()
}

func (o lifted[IN, OUT]) Subscribe(ctx context.Context, down Observer[OUT]) Subscription {
	mode := o.source.Mode()
	sub := NewComposite()

	up := o.decorate(ctx, Guard(mode, down, sub))
	if mode == Shared {
		up = Serialize(up)
	}

	sub.AddSubscription(o.source.Subscribe(ctx, up))
	return sub
}
