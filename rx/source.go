package rx

import (
	"context"
	"iter"

	"github.com/lguimbarda/min-rx/rx/core"
)

// FromSlice creates a Local observable that emits each element of items
// synchronously on subscribe, then completes.
func FromSlice[T any](items []T) Observable[T] {
	return core.Create(func(ctx context.Context, o Observer[T]) {
		for _, item := range items {
			if ctx.Err() != nil {
				return
			}
			if o.Next(item) == core.Stop {
				return
			}
		}
		o.Complete()
	})
}

// Just creates a Local observable that emits the given values, then completes.
func Just[T any](values ...T) Observable[T] {
	return FromSlice(values)
}

// Range creates a Local observable that emits count consecutive integers
// starting at start. A non-positive count produces an empty stream.
func Range(start, count int) Observable[int] {
	return core.Create(func(ctx context.Context, o Observer[int]) {
		for n := 0; n < count; n++ {
			if ctx.Err() != nil {
				return
			}
			if o.Next(start+n) == core.Stop {
				return
			}
		}
		o.Complete()
	})
}

// FromIter creates a Local observable from an iterator sequence.
// The iterator is pulled lazily and abandoned as soon as the observer
// asks to stop.
func FromIter[T any](seq iter.Seq[T]) Observable[T] {
	return core.Create(func(ctx context.Context, o Observer[T]) {
		for item := range seq {
			if ctx.Err() != nil {
				return
			}
			if o.Next(item) == core.Stop {
				return
			}
		}
		o.Complete()
	})
}

// Empty creates an observable that completes immediately.
func Empty[T any]() Observable[T] {
	return core.Create(func(_ context.Context, o Observer[T]) {
		o.Complete()
	})
}

// Never creates an observable that never emits and never terminates.
// Its subscription only ends by unsubscribing.
func Never[T any]() Observable[T] {
	return core.Create(func(context.Context, Observer[T]) {})
}

// Throw creates an observable that fails immediately with err.
func Throw[T any](err error) Observable[T] {
	return core.Create(func(_ context.Context, o Observer[T]) {
		o.Error(err)
	})
}

// ChannelOption configures FromChannel.
type ChannelOption func(*channelConfig)

type channelConfig struct {
	errs <-chan error
}

// WithErrors terminates the stream with the first error received on errs.
func WithErrors(errs <-chan error) ChannelOption {
	return func(c *channelConfig) {
		c.errs = errs
	}
}

// FromChannel creates a Shared observable that forwards values received
// from ch on its own goroutine. It completes when ch is closed.
// Each subscription starts its own reader, so subscribers compete for
// values; use a subject to multicast.
func FromChannel[T any](ch <-chan T, opts ...ChannelOption) Observable[T] {
	var cfg channelConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return core.CreateShared(func(ctx context.Context, o Observer[T]) {
		errs := cfg.errs
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					if err != nil {
						o.Error(err)
						return
					}
				case item, ok := <-ch:
					if !ok {
						o.Complete()
						return
					}
					if o.Next(item) == core.Stop {
						return
					}
				}
			}
		}()
	})
}
