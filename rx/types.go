// Package rx provides a push-based reactive stream core: observables push
// values to observers, terminate with exactly one error or completion, and
// hand back a subscription that cancels delivery deterministically.
//
// This package is the primary user-facing API. Most users should only
// need to import this package and the operator packages (filter,
// transform). The rx/core subpackage contains the low-level abstractions
// operators are built from.
package rx

import (
	"context"

	"github.com/lguimbarda/min-rx/rx/core"
)

// Type aliases for core abstractions.
// These allow users to work with the library without importing core directly.
type (
	// Observable is a recipe for producing a subscription.
	Observable[T any] = core.Observable[T]

	// Observer is a sink for next, error and complete events.
	Observer[T any] = core.Observer[T]

	// ObserverFuncs adapts optional callbacks into an Observer.
	ObserverFuncs[T any] = core.ObserverFuncs[T]

	// Subscription cancels delivery to one observer.
	Subscription = core.Subscription

	// Operator transforms an Observable of IN into an Observable of OUT.
	Operator[IN, OUT any] = core.Operator[IN, OUT]

	// Notification is a materialized stream event.
	Notification[T any] = core.Notification[T]

	// Producer emits values into an observer.
	Producer[T any] = core.Producer[T]

	// Mode is the delivery mode of an Observable.
	Mode = core.Mode

	// State is the continuation signal returned from Observer.Next.
	State = core.State
)

const (
	Local  = core.Local
	Shared = core.Shared

	Continue = core.Continue
	Stop     = core.Stop
)

// Create builds a Local observable from a producer.
func Create[T any](produce Producer[T]) Observable[T] {
	return core.Create(produce)
}

// CreateShared builds a Shared observable from a producer.
func CreateShared[T any](produce Producer[T]) Observable[T] {
	return core.CreateShared(produce)
}

// ToShared converts a Local observable into a Shared one.
func ToShared[T any](o Observable[T]) Observable[T] {
	return core.ToShared(o)
}

// Terminal operations.

// Slice collects all values into a slice.
func Slice[T any](ctx context.Context, src Observable[T]) ([]T, error) {
	return core.Slice(ctx, src)
}

// First returns the first value of the stream.
func First[T any](ctx context.Context, src Observable[T]) (T, error) {
	return core.First(ctx, src)
}

// Run executes the stream for side effects only.
func Run[T any](ctx context.Context, src Observable[T]) error {
	return core.Run(ctx, src)
}

// Collect gathers all events, including the terminal one.
func Collect[T any](ctx context.Context, src Observable[T]) []Notification[T] {
	return core.Collect(ctx, src)
}

// Subscribe binds callbacks to src. Any callback may be nil.
func Subscribe[T any](ctx context.Context, src Observable[T], onNext func(T), onError func(error), onComplete func()) Subscription {
	return src.Subscribe(ctx, core.ObserverFuncs[T]{
		OnNext:     onNext,
		OnError:    onError,
		OnComplete: onComplete,
	})
}

// Notification constructors.

// Next materializes a value event.
func Next[T any](value T) Notification[T] { return core.Next(value) }

// Err materializes an error event.
func Err[T any](err error) Notification[T] { return core.Err[T](err) }

// Complete materializes a completion event.
func Complete[T any]() Notification[T] { return core.Complete[T]() }
