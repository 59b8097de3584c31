package rxtest_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lguimbarda/min-rx/rx"
	"github.com/lguimbarda/min-rx/rx/rxtest"
)

func TestRecorder(t *testing.T) {
	rec := rxtest.NewRecorder[string]()
	if got := rec.Values(); got == nil || len(got) != 0 {
		t.Errorf("Values() = %#v, want empty non-nil", got)
	}

	rec.Next("a")
	rec.Next("b")
	boom := errors.New("boom")
	rec.Error(boom)

	if diff := cmp.Diff([]string{"a", "b"}, rec.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(rec.Err(), boom) || rec.Errors() != 1 || rec.Completions() != 0 {
		t.Errorf("err = %v, errors = %d, completions = %d", rec.Err(), rec.Errors(), rec.Completions())
	}
	if !rec.Wait(time.Second) {
		t.Error("Wait after terminal event returned false")
	}

	rec.Reset()
	if len(rec.Events()) != 0 {
		t.Errorf("events after reset: %v", rec.Events())
	}
	select {
	case <-rec.Done():
	default:
		t.Error("Done reopened by Reset")
	}
}

func TestRecorderStopAfter(t *testing.T) {
	rec := rxtest.NewRecorder[int]()
	rec.StopAfter = 2
	if rec.Next(1) != rx.Continue {
		t.Error("first value answered Stop")
	}
	if rec.Next(2) != rx.Stop {
		t.Error("second value answered Continue")
	}
}

func TestRecorderWaitTimeout(t *testing.T) {
	rec := rxtest.NewRecorder[int]()
	if rec.Wait(5 * time.Millisecond) {
		t.Error("Wait without terminal event returned true")
	}
}

func TestNotificationComparer(t *testing.T) {
	boom := errors.New("boom")
	wrapped := errors.Join(errors.New("context"), boom)
	opt := rxtest.NotificationComparer[int]()

	tests := []struct {
		name string
		a, b rx.Notification[int]
		want bool
	}{
		{"same value", rx.Next(1), rx.Next(1), true},
		{"different value", rx.Next(1), rx.Next(2), false},
		{"different kind", rx.Next(0), rx.Complete[int](), false},
		{"completions", rx.Complete[int](), rx.Complete[int](), true},
		{"wrapped error", rx.Err[int](boom), rx.Err[int](wrapped), true},
		{"unrelated error", rx.Err[int](boom), rx.Err[int](errors.New("boom")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmp.Equal(tt.a, tt.b, opt); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
