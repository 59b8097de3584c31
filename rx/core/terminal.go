package core

import (
	"context"
	"sync"
)

// Terminal functions are sinks that subscribe to an observable and block
// until it terminates or ctx is done, producing a final result such as a
// slice of values, the first value, or just the terminal error.

// Slice collects every value. It returns the stream's error if it fails.
func Slice[T any](ctx context.Context, src Observable[T]) ([]T, error) {
	var (
		mu     sync.Mutex
		values []T
	)
	err := wait(ctx, src, func(v T) State {
		mu.Lock()
		values = append(values, v)
		mu.Unlock()
		return Continue
	})
	if err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()
	return values, nil
}

// First returns the first value and cancels the subscription.
// It returns ErrEmpty if the stream completes without a value.
func First[T any](ctx context.Context, src Observable[T]) (T, error) {
	var (
		mu    sync.Mutex
		first T
		found bool
	)
	err := wait(ctx, src, func(v T) State {
		mu.Lock()
		defer mu.Unlock()
		if !found {
			first, found = v, true
		}
		return Stop
	})

	mu.Lock()
	defer mu.Unlock()
	switch {
	case found:
		return first, nil
	case err != nil:
		return first, err
	default:
		return first, ErrEmpty
	}
}

// Run executes the stream for side effects only.
func Run[T any](ctx context.Context, src Observable[T]) error {
	return wait(ctx, src, func(T) State { return Continue })
}

// Collect gathers every event, including the terminal one, as Notifications.
// A stream cut short by ctx has no terminal notification.
func Collect[T any](ctx context.Context, src Observable[T]) []Notification[T] {
	var (
		mu     sync.Mutex
		events []Notification[T]
	)
	record := func(n Notification[T]) {
		mu.Lock()
		events = append(events, n)
		mu.Unlock()
	}
	err := wait(ctx, src, func(v T) State {
		record(Next(v))
		return Continue
	})
	switch {
	case err == nil:
		record(Complete[T]())
	case ctx.Err() == nil:
		record(Err[T](err))
	}

	mu.Lock()
	defer mu.Unlock()
	return events
}

// wait subscribes with next and blocks until the stream terminates, next
// returns Stop, or ctx is done.
func wait[T any](ctx context.Context, src Observable[T], next func(T) State) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	var (
		once sync.Once
		err  error
	)
	finish := func(e error) {
		once.Do(func() {
			err = e
			close(done)
		})
	}

	sub := src.Subscribe(ctx, &waiter[T]{next: next, finish: finish})
	defer sub.Unsubscribe()

	select {
	case <-done:
		return err
	case <-ctx.Done():
		finish(ctx.Err())
		<-done
		return err
	}
}

type waiter[T any] struct {
	next   func(T) State
	finish func(error)
}

func (w *waiter[T]) Next(v T) State {
	if w.next(v) == Stop {
		w.finish(nil)
		return Stop
	}
	return Continue
}

func (w *waiter[T]) Error(err error) { w.finish(err) }

func (w *waiter[T]) Complete() { w.finish(nil) }
