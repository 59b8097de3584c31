package rx

import (
	"github.com/lguimbarda/min-rx/rx/core"
)

// Through chains two operators together, creating a new operator
// that first applies op1 and then op2.
func Through[IN, MID, OUT any](op1 Operator[IN, MID], op2 Operator[MID, OUT]) Operator[IN, OUT] {
	return core.OperatorFunc[IN, OUT](func(src Observable[IN]) Observable[OUT] {
		return op2.Apply(op1.Apply(src))
	})
}

// Chain composes multiple operators of the same type into a single operator.
// Operators are applied in order from left to right.
// If no operators are provided, returns an identity operator.
func Chain[T any](ops ...Operator[T, T]) Operator[T, T] {
	return core.OperatorFunc[T, T](func(src Observable[T]) Observable[T] {
		return Pipe(src, ops...)
	})
}

// Pipe applies a series of operators to an observable, returning the final
// observable. Nothing is subscribed until the result is.
func Pipe[T any](src Observable[T], ops ...Operator[T, T]) Observable[T] {
	result := src
	for _, op := range ops {
		result = op.Apply(result)
	}
	return result
}

// Apply is a helper to apply a single operator to an observable.
// Equivalent to op.Apply(src) but reads left-to-right.
func Apply[IN, OUT any](src Observable[IN], op Operator[IN, OUT]) Observable[OUT] {
	return op.Apply(src)
}
