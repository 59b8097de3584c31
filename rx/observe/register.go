package observe

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lguimbarda/min-rx/rx/core"
)

// This file provides convenience functions for creating typed hooks-based observers.
// The hooks system is type-parameterized, so observers must be registered with
// the specific type they want to observe.
//
// Usage pattern:
//
//	ctx := observe.WithNextHook(ctx, func(v int) { fmt.Println("Value:", v) })
//	ctx = observe.WithErrorHook[int](ctx, func(err error) { log.Print(err) })
//
//	// Sources subscribed under ctx invoke the registered hooks.
//	values, err := rx.Slice(ctx, rx.Just(1, 2, 3))

// WithNextHook attaches a value observation hook for type T to the context.
func WithNextHook[T any](ctx context.Context, callback func(T)) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnNext: callback,
	})
}

// WithErrorHook attaches an error observation hook for type T to the context.
func WithErrorHook[T any](ctx context.Context, callback func(error)) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnError: callback,
	})
}

// WithCompleteHook attaches a completion hook for type T to the context.
func WithCompleteHook[T any](ctx context.Context, callback func()) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnComplete: callback,
	})
}

// WithSubscribeHook attaches a hook fired when a source of type T is subscribed.
func WithSubscribeHook[T any](ctx context.Context, callback func()) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnSubscribe: callback,
	})
}

// WithUnsubscribeHook attaches a hook fired when a subscription to a source
// of type T is released.
func WithUnsubscribeHook[T any](ctx context.Context, callback func()) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnUnsubscribe: callback,
	})
}

// Counter provides thread-safe counting of values and errors.
type Counter struct {
	values atomic.Int64
	errors atomic.Int64
}

// Values returns the count of values delivered.
func (c *Counter) Values() int64 { return c.values.Load() }

// Errors returns the count of errors delivered.
func (c *Counter) Errors() int64 { return c.errors.Load() }

// Total returns the total count of values and errors.
func (c *Counter) Total() int64 { return c.values.Load() + c.errors.Load() }

// WithCounter attaches counting hooks for type T and returns the counter for querying.
func WithCounter[T any](ctx context.Context) (context.Context, *Counter) {
	counter := &Counter{}
	ctx = core.WithHooks(ctx, core.Hooks[T]{
		OnNext:  func(T) { counter.values.Add(1) },
		OnError: func(error) { counter.errors.Add(1) },
	})
	return ctx, counter
}

// ErrorCollector collects all errors delivered by sources.
type ErrorCollector struct {
	mu     sync.Mutex
	errors []error
}

// Errors returns a copy of all collected errors.
func (c *ErrorCollector) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]error, len(c.errors))
	copy(result, c.errors)
	return result
}

// HasErrors returns true if any errors were collected.
func (c *ErrorCollector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors) > 0
}

// WithErrorCollector attaches an error collecting hook for type T and
// returns the collector.
func WithErrorCollector[T any](ctx context.Context) (context.Context, *ErrorCollector) {
	collector := &ErrorCollector{}
	ctx = core.WithHooks(ctx, core.Hooks[T]{
		OnError: func(err error) {
			collector.mu.Lock()
			collector.errors = append(collector.errors, err)
			collector.mu.Unlock()
		},
	})
	return ctx, collector
}
