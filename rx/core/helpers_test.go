package core

import (
	"context"
	"sync"
)

// record is a minimal recording observer for core tests.
type record[T any] struct {
	mu        sync.Mutex
	values    []T
	errs      []error
	completes int
}

func (r *record[T]) Next(v T) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
	return Continue
}

func (r *record[T]) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *record[T]) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes++
}

func (r *record[T]) snapshot() ([]T, []error, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...), append([]error(nil), r.errs...), r.completes
}

func fromSlice[T any](items []T) Observable[T] {
	return Create(func(ctx context.Context, o Observer[T]) {
		for _, item := range items {
			if o.Next(item) == Stop {
				return
			}
		}
		o.Complete()
	})
}

func count(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}
