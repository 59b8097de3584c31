package core

import (
	"context"
)

// Hooks holds typed observation callbacks for a stream.
// All fields are optional - nil means no observation for that event.
// Hooks are invoked synchronously during delivery, so they should be fast
// to avoid stalling the source.
//
// OnUnsubscribe runs on whichever goroutine releases the binding. When the
// subscription context is cancelled that is the context's AfterFunc
// goroutine, even for Local observables, so OnUnsubscribe must be safe to
// call concurrently with the other hooks.
type Hooks[T any] struct {
	OnSubscribe   func()      // Observer bound to a source
	OnNext        func(T)     // Value delivered
	OnError       func(error) // Terminal error delivered
	OnComplete    func()      // Terminal completion delivered
	OnUnsubscribe func()      // Binding released (after terminal events too)
}

// hooksKey is unexported to prevent collisions with user context keys.
type hooksKey[T any] struct{}

// hooksContainer holds multiple hook sets for FIFO invocation.
type hooksContainer[T any] struct {
	hookSets []*Hooks[T]
}

// WithHooks attaches typed hooks to the context.
// Multiple calls to WithHooks compose in FIFO order - hooks from earlier
// calls are invoked before hooks from later calls.
//
// Hooks fire at sources built with Create or CreateShared, for every
// subscription made under the returned context.
//
// Example:
//
//	ctx := core.WithHooks(ctx, core.Hooks[int]{
//	    OnNext: func(v int) { log.Printf("Value: %d", v) },
//	})
func WithHooks[T any](ctx context.Context, hooks Hooks[T]) context.Context {
	if ctx == nil {
		panic("nil context")
	}

	existing := getHooksContainer[T](ctx)
	if existing == nil {
		return context.WithValue(ctx, hooksKey[T]{}, &hooksContainer[T]{
			hookSets: []*Hooks[T]{&hooks},
		})
	}

	newContainer := &hooksContainer[T]{
		hookSets: make([]*Hooks[T], len(existing.hookSets)+1),
	}
	copy(newContainer.hookSets, existing.hookSets)
	newContainer.hookSets[len(existing.hookSets)] = &hooks

	return context.WithValue(ctx, hooksKey[T]{}, newContainer)
}

func getHooksContainer[T any](ctx context.Context) *hooksContainer[T] {
	if ctx == nil {
		return nil
	}
	if c, ok := ctx.Value(hooksKey[T]{}).(*hooksContainer[T]); ok {
		return c
	}
	return nil
}

// hookInvoker wraps a hooks container for efficient invocation.
// It caches whether specific hook types exist to avoid repeated nil checks.
type hookInvoker[T any] struct {
	container      *hooksContainer[T]
	hasSubscribe   bool
	hasNext        bool
	hasError       bool
	hasComplete    bool
	hasUnsubscribe bool
}

func newHookInvoker[T any](ctx context.Context) *hookInvoker[T] {
	container := getHooksContainer[T](ctx)
	if container == nil {
		return &hookInvoker[T]{}
	}

	invoker := &hookInvoker[T]{container: container}
	for _, h := range container.hookSets {
		invoker.hasSubscribe = invoker.hasSubscribe || h.OnSubscribe != nil
		invoker.hasNext = invoker.hasNext || h.OnNext != nil
		invoker.hasError = invoker.hasError || h.OnError != nil
		invoker.hasComplete = invoker.hasComplete || h.OnComplete != nil
		invoker.hasUnsubscribe = invoker.hasUnsubscribe || h.OnUnsubscribe != nil
	}
	return invoker
}

func (h *hookInvoker[T]) invokeSubscribe() {
	if !h.hasSubscribe {
		return
	}
	for _, hooks := range h.container.hookSets {
		if hooks.OnSubscribe != nil {
			hooks.OnSubscribe()
		}
	}
}

func (h *hookInvoker[T]) invokeNext(v T) {
	if !h.hasNext {
		return
	}
	for _, hooks := range h.container.hookSets {
		if hooks.OnNext != nil {
			hooks.OnNext(v)
		}
	}
}

func (h *hookInvoker[T]) invokeError(err error) {
	if !h.hasError {
		return
	}
	for _, hooks := range h.container.hookSets {
		if hooks.OnError != nil {
			hooks.OnError(err)
		}
	}
}

func (h *hookInvoker[T]) invokeComplete() {
	if !h.hasComplete {
		return
	}
	for _, hooks := range h.container.hookSets {
		if hooks.OnComplete != nil {
			hooks.OnComplete()
		}
	}
}

func (h *hookInvoker[T]) invokeUnsubscribe() {
	if !h.hasUnsubscribe {
		return
	}
	for _, hooks := range h.container.hookSets {
		if hooks.OnUnsubscribe != nil {
			hooks.OnUnsubscribe()
		}
	}
}

// hookedObserver reports delivered events to the hooks before forwarding.
type hookedObserver[T any] struct {
	observer Observer[T]
	hooks    *hookInvoker[T]
}

// observe returns o unchanged when no hooks are registered.
func (h *hookInvoker[T]) observe(o Observer[T]) Observer[T] {
	if !h.hasNext && !h.hasError && !h.hasComplete {
		return o
	}
	return &hookedObserver[T]{observer: o, hooks: h}
}

func (o *hookedObserver[T]) Next(v T) State {
	o.hooks.invokeNext(v)
	return o.observer.Next(v)
}

func (o *hookedObserver[T]) Error(err error) {
	o.hooks.invokeError(err)
	o.observer.Error(err)
}

func (o *hookedObserver[T]) Complete() {
	o.hooks.invokeComplete()
	o.observer.Complete()
}

// SafeHooks wraps Hooks[T] to recover from panics in hook functions.
// Use this when hooks are user-provided and panics should not reach the
// source.
type SafeHooks[T any] struct {
	Hooks[T]
	panicHandler func(any)
}

// NewSafeHooks creates SafeHooks from regular Hooks.
// If panicHandler is nil, panics are silently recovered.
func NewSafeHooks[T any](hooks Hooks[T], panicHandler func(any)) SafeHooks[T] {
	if panicHandler == nil {
		panicHandler = func(any) {}
	}

	safe := SafeHooks[T]{panicHandler: panicHandler}
	guard := func() {
		if r := recover(); r != nil {
			safe.panicHandler(r)
		}
	}

	if fn := hooks.OnSubscribe; fn != nil {
		safe.OnSubscribe = func() { defer guard(); fn() }
	}
	if fn := hooks.OnNext; fn != nil {
		safe.OnNext = func(v T) { defer guard(); fn(v) }
	}
	if fn := hooks.OnError; fn != nil {
		safe.OnError = func(err error) { defer guard(); fn(err) }
	}
	if fn := hooks.OnComplete; fn != nil {
		safe.OnComplete = func() { defer guard(); fn() }
	}
	if fn := hooks.OnUnsubscribe; fn != nil {
		safe.OnUnsubscribe = func() { defer guard(); fn() }
	}

	return safe
}

// WithSafeHooks is a convenience function that wraps hooks with panic recovery
// before attaching them to the context.
func WithSafeHooks[T any](ctx context.Context, hooks Hooks[T], panicHandler func(any)) context.Context {
	safe := NewSafeHooks(hooks, panicHandler)
	return WithHooks(ctx, safe.Hooks)
}
