package core

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Observable is a recipe for producing a subscription. It is an immutable
// value: every Subscribe builds fresh delivery state, so a copy may be
// subscribed again without sharing anything with earlier subscriptions.
//
// Cancelling ctx unsubscribes. ctx also carries hooks, configuration and
// the logger for the subscription.
type Observable[T any] interface {
	Subscribe(ctx context.Context, o Observer[T]) Subscription
	Mode() Mode
}

// Producer emits into o. It may emit synchronously before returning or hand
// o to its own goroutine. It must stop emitting once Next returns Stop or
// ctx is done.
type Producer[T any] func(ctx context.Context, o Observer[T])

type source[T any] struct {
	mode    Mode
	produce Producer[T]
}

// Create builds a Local observable from a producer.
func Create[T any](produce Producer[T]) Observable[T] {
	return source[T]{mode: Local, produce: produce}
}

// CreateShared builds a Shared observable from a producer. Use it when the
// producer delivers from goroutines other than the subscriber's.
func CreateShared[T any](produce Producer[T]) Observable[T] {
	return source[T]{mode: Shared, produce: produce}
}

func (s source[T]) Mode() Mode {
	return s.mode
}

func (s source[T]) Subscribe(ctx context.Context, o Observer[T]) Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := NewComposite()
	logger := Logger(ctx).With(zap.Stringer("mode", s.mode))
	hooks := newHookInvoker[T](ctx)

	stop := context.AfterFunc(ctx, sub.Unsubscribe)
	sub.Add(func() {
		stop()
		cancel()
		hooks.invokeUnsubscribe()
		logger.Debug("unsubscribe")
	})

	logger.Debug("subscribe")
	hooks.invokeSubscribe()

	guarded := Guard(s.mode, hooks.observe(o), sub)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err := NewPanicError(r)
				logger.Debug("producer panicked", zap.Any("value", r))
				guarded.Error(err)
			}
		}()
		s.produce(ctx, guarded)
	}()
	return sub
}

// sharedSource is the explicit bridge from a Local observable to a Shared
// one. Subscribe calls on the wrapped source are serialized, and each
// observer is guarded and serialized. The wrapped source itself is not made
// safe: a hot Local source fed from several goroutines still races.
type sharedSource[T any] struct {
	mu     *sync.Mutex
	source Observable[T]
}

// ToShared converts o into a Shared observable. A Shared observable is
// returned unchanged. Subscribing to the result from several goroutines is
// safe for cold sources, whose producers run inside Subscribe: the
// underlying local source is entered by one subscriber at a time. Hot
// sources such as a Local subject keep their single-goroutine contract.
func ToShared[T any](o Observable[T]) Observable[T] {
	if o.Mode() == Shared {
		return o
	}
	return sharedSource[T]{mu: &sync.Mutex{}, source: o}
}

func (s sharedSource[T]) Mode() Mode {
	return Shared
}

func (s sharedSource[T]) Subscribe(ctx context.Context, o Observer[T]) Subscription {
	sub := NewComposite()
	guarded := Guard(Shared, o, sub)

	s.mu.Lock()
	inner := s.source.Subscribe(ctx, guarded)
	s.mu.Unlock()

	sub.AddSubscription(inner)
	return sub
}

// RequireShared returns ErrNotShared unless o delivers in Shared mode.
func RequireShared[T any](o Observable[T]) error {
	if o.Mode() != Shared {
		return fmt.Errorf("%w: mode is %s", ErrNotShared, o.Mode())
	}
	return nil
}
