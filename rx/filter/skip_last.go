package filter

import (
	"github.com/lguimbarda/min-rx/rx/core"
)

// SkipLast creates an Operator that drops the last count values of the
// stream.
//
// The final count values are unknowable until the stream completes, so every
// value is withheld until then and memory grows with the stream length.
// On completion all but the last count values are emitted in order. If
// fewer than count values arrived, only the completion is emitted. An
// upstream error is forwarded immediately and buffered values are dropped.
// A negative count is treated as zero.
func SkipLast[T any](count int) core.Operator[T, T] {
	count = max(count, 0)
	return core.Lift(func(down core.Observer[T]) core.Observer[T] {
		return &skipLastObserver[T]{down: down, count: count}
	})
}

type skipLastObserver[T any] struct {
	down  core.Observer[T]
	count int
	queue []T
}

func (o *skipLastObserver[T]) Next(v T) core.State {
	o.queue = append(o.queue, v)
	return core.Continue
}

func (o *skipLastObserver[T]) Error(err error) {
	o.queue = nil
	o.down.Error(err)
}

func (o *skipLastObserver[T]) Complete() {
	queue := o.queue
	o.queue = nil
	if o.count <= len(queue) {
		for _, v := range queue[:len(queue)-o.count] {
			if o.down.Next(v) == core.Stop {
				break
			}
		}
	}
	o.down.Complete()
}

// Skip creates an Operator that drops the first n values, then passes
// through the rest. If n <= 0, all values are passed through.
func Skip[T any](n int) core.Operator[T, T] {
	return core.Lift(func(down core.Observer[T]) core.Observer[T] {
		return &skipObserver[T]{down: down, remaining: n}
	})
}

type skipObserver[T any] struct {
	down      core.Observer[T]
	remaining int
}

func (o *skipObserver[T]) Next(v T) core.State {
	if o.remaining > 0 {
		o.remaining--
		return core.Continue
	}
	return o.down.Next(v)
}

func (o *skipObserver[T]) Error(err error) { o.down.Error(err) }

func (o *skipObserver[T]) Complete() { o.down.Complete() }

// TakeLast creates an Operator that only emits the last n values of the
// stream. At most n values are buffered; they are emitted on completion.
// If n <= 0, only the completion is emitted.
func TakeLast[T any](n int) core.Operator[T, T] {
	return core.Lift(func(down core.Observer[T]) core.Observer[T] {
		return &takeLastObserver[T]{down: down, n: n}
	})
}

type takeLastObserver[T any] struct {
	down   core.Observer[T]
	n      int
	buffer []T
}

func (o *takeLastObserver[T]) Next(v T) core.State {
	if o.n <= 0 {
		return core.Continue
	}
	if len(o.buffer) < o.n {
		o.buffer = append(o.buffer, v)
	} else {
		copy(o.buffer, o.buffer[1:])
		o.buffer[o.n-1] = v
	}
	return core.Continue
}

func (o *takeLastObserver[T]) Error(err error) {
	o.buffer = nil
	o.down.Error(err)
}

func (o *takeLastObserver[T]) Complete() {
	buffer := o.buffer
	o.buffer = nil
	for _, v := range buffer {
		if o.down.Next(v) == core.Stop {
			break
		}
	}
	o.down.Complete()
}
