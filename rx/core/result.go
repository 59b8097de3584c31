package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrEmpty is returned by First when the stream completes without a value.
	ErrEmpty = errors.New("stream is empty")

	// ErrNotShared is returned by RequireShared for Local observables.
	ErrNotShared = errors.New("observable is not shared")
)

// ErrPanic wraps a recovered panic value as an error.
// Sources deliver it when a producer panics. It includes a cleaned-up stack
// trace that excludes internal min-rx frames.
type ErrPanic struct {
	Value any
	Stack string
}

func (e ErrPanic) Error() string {
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// NewPanicError creates an ErrPanic from a recovered value with a cleaned stack trace.
func NewPanicError(recovered any) ErrPanic {
	return ErrPanic{
		Value: recovered,
		Stack: cleanStack(captureStack(4)), // skip: runtime.Callers, captureStack, NewPanicError, defer func
	}
}

func captureStack(skip int) string {
	const maxFrames = 32
	var pcs [maxFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}

// cleanStack removes internal min-rx frames from a stack trace.
func cleanStack(stack string) string {
	lines := strings.Split(stack, "\n")
	var result []string
	var skipNext bool

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.HasPrefix(line, "\t") {
			if strings.Contains(line, "github.com/lguimbarda/min-rx/rx/") {
				skipNext = true
				continue
			}
			skipNext = false
		} else if skipNext {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}

// Kind identifies which of the three events a Notification carries.
type Kind uint8

const (
	KindNext Kind = iota
	KindError
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Notification is a materialized stream event. It exists in one of three
// states:
//   - Next: a delivered value (IsNext() returns true)
//   - Error: a terminal failure (IsError() returns true)
//   - Complete: terminal success (IsComplete() returns true)
type Notification[T any] struct {
	kind  Kind
	value T
	err   error
}

// Next creates a Notification carrying a value.
func Next[T any](value T) Notification[T] {
	return Notification[T]{kind: KindNext, value: value}
}

// Err creates a terminal error Notification.
func Err[T any](err error) Notification[T] {
	return Notification[T]{kind: KindError, err: err}
}

// Complete creates a terminal completion Notification.
func Complete[T any]() Notification[T] {
	return Notification[T]{kind: KindComplete}
}

func (n Notification[T]) Kind() Kind { return n.kind }

func (n Notification[T]) IsNext() bool { return n.kind == KindNext }

func (n Notification[T]) IsError() bool { return n.kind == KindError }

func (n Notification[T]) IsComplete() bool { return n.kind == KindComplete }

// IsTerminal reports whether n ends the stream.
func (n Notification[T]) IsTerminal() bool { return n.kind != KindNext }

// Value returns the carried value. Only meaningful when IsNext() is true.
func (n Notification[T]) Value() T { return n.value }

// Error returns the terminal error, or nil.
func (n Notification[T]) Error() error { return n.err }

// Accept delivers n to o. Terminal notifications return Stop.
func (n Notification[T]) Accept(o Observer[T]) State {
	switch n.kind {
	case KindNext:
		return o.Next(n.value)
	case KindError:
		o.Error(n.err)
	default:
		o.Complete()
	}
	return Stop
}

func (n Notification[T]) String() string {
	switch n.kind {
	case KindNext:
		return fmt.Sprintf("next(%v)", n.value)
	case KindError:
		return fmt.Sprintf("error(%v)", n.err)
	default:
		return "complete"
	}
}
