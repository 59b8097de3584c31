package core

import "sync/atomic"

// Cell holds at most one value that can be taken exactly once.
// Take is atomic, so two callbacks racing on the same Cell never both
// observe the value.
type Cell[T any] struct {
	slot atomic.Pointer[T]
}

// NewCell creates a Cell holding v.
func NewCell[T any](v T) *Cell[T] {
	c := &Cell[T]{}
	c.slot.Store(&v)
	return c
}

// Take empties the cell and returns what it held.
func (c *Cell[T]) Take() (T, bool) {
	if p := c.slot.Swap(nil); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Pending reports whether the cell still holds a value.
func (c *Cell[T]) Pending() bool {
	return c.slot.Load() != nil
}
