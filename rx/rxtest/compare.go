package rxtest

import (
	"errors"

	"github.com/google/go-cmp/cmp"

	"github.com/lguimbarda/min-rx/rx/core"
)

// NotificationComparer is a cmp.Option that compares notifications by kind,
// value and error. Errors match with errors.Is against the wanted error.
func NotificationComparer[T any]() cmp.Option {
	return cmp.Comparer(func(a, b core.Notification[T]) bool {
		if a.Kind() != b.Kind() {
			return false
		}
		switch a.Kind() {
		case core.KindNext:
			return cmp.Equal(a.Value(), b.Value())
		case core.KindError:
			return errors.Is(a.Error(), b.Error()) || errors.Is(b.Error(), a.Error())
		default:
			return true
		}
	})
}
