// Package observe provides operators and hooks for monitoring, metrics and
// debugging of observables. None of them change the values or the events
// that reach the downstream observer.
package observe

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lguimbarda/min-rx/rx/core"
)

// LiveMetrics holds real-time metrics that can be read concurrently.
type LiveMetrics struct {
	subscriptions atomic.Int64
	valueCount    atomic.Int64
	errorCount    atomic.Int64
	completeCount atomic.Int64
	lastItemTime  atomic.Int64 // Unix nano
}

// Subscriptions returns how many subscriptions have been made.
func (m *LiveMetrics) Subscriptions() int64 { return m.subscriptions.Load() }

// ValueCount returns the number of delivered values.
func (m *LiveMetrics) ValueCount() int64 { return m.valueCount.Load() }

// ErrorCount returns the number of terminal errors.
func (m *LiveMetrics) ErrorCount() int64 { return m.errorCount.Load() }

// CompleteCount returns the number of completions.
func (m *LiveMetrics) CompleteCount() int64 { return m.completeCount.Load() }

// LastItemTime returns when the last value was delivered.
func (m *LiveMetrics) LastItemTime() time.Time {
	return time.Unix(0, m.lastItemTime.Load())
}

// MeterLive creates an Operator that updates live metrics that can be
// read concurrently while the stream is running.
func MeterLive[T any](metrics *LiveMetrics) core.Operator[T, T] {
	return core.Lift(func(down core.Observer[T]) core.Observer[T] {
		metrics.subscriptions.Add(1)
		return &spyObserver[T]{
			down: down,
			onNext: func(T) {
				metrics.valueCount.Add(1)
				metrics.lastItemTime.Store(time.Now().UnixNano())
			},
			onError:    func(error) { metrics.errorCount.Add(1) },
			onComplete: func() { metrics.completeCount.Add(1) },
		}
	})
}

// Spy creates an Operator that allows inspection of every event without
// modification, materialized as a Notification.
func Spy[T any](inspector func(core.Notification[T])) core.Operator[T, T] {
	return core.Lift(func(down core.Observer[T]) core.Observer[T] {
		return &spyObserver[T]{
			down:       down,
			onNext:     func(v T) { inspector(core.Next(v)) },
			onError:    func(err error) { inspector(core.Err[T](err)) },
			onComplete: func() { inspector(core.Complete[T]()) },
		}
	})
}

// Log creates an Operator that logs every event at debug level with the
// logger attached to the subscription context (see core.WithLogger).
func Log[T any](name string) core.Operator[T, T] {
	return core.LiftContext(func(ctx context.Context, down core.Observer[T]) core.Observer[T] {
		logger := core.Logger(ctx).Named(name)
		logger.Debug("subscribe")
		var index int64
		return &spyObserver[T]{
			down: down,
			onNext: func(v T) {
				logger.Debug("next", zap.Int64("index", index), zap.Any("value", v))
				index++
			},
			onError: func(err error) {
				logger.Debug("error", zap.Int64("values", index), zap.Error(err))
			},
			onComplete: func() {
				logger.Debug("complete", zap.Int64("values", index))
			},
		}
	})
}

// spyObserver calls its callbacks before forwarding each event unchanged.
type spyObserver[T any] struct {
	down       core.Observer[T]
	onNext     func(T)
	onError    func(error)
	onComplete func()
}

func (o *spyObserver[T]) Next(v T) core.State {
	o.onNext(v)
	return o.down.Next(v)
}

func (o *spyObserver[T]) Error(err error) {
	o.onError(err)
	o.down.Error(err)
}

func (o *spyObserver[T]) Complete() {
	o.onComplete()
	o.down.Complete()
}
