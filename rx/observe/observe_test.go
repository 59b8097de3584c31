package observe_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lguimbarda/min-rx/rx"
	"github.com/lguimbarda/min-rx/rx/core"
	"github.com/lguimbarda/min-rx/rx/filter"
	"github.com/lguimbarda/min-rx/rx/observe"
)

func TestMeterLive(t *testing.T) {
	var metrics observe.LiveMetrics
	op := observe.MeterLive[int](&metrics)

	before := time.Now()
	if err := rx.Run(context.Background(), op.Apply(rx.Range(0, 4))); err != nil {
		t.Fatal(err)
	}
	if err := rx.Run(context.Background(), op.Apply(rx.Throw[int](errors.New("boom")))); err == nil {
		t.Fatal("expected error")
	}

	if got := metrics.Subscriptions(); got != 2 {
		t.Errorf("subscriptions = %d, want 2", got)
	}
	if got := metrics.ValueCount(); got != 4 {
		t.Errorf("values = %d, want 4", got)
	}
	if metrics.ErrorCount() != 1 || metrics.CompleteCount() != 1 {
		t.Errorf("errors = %d, completes = %d", metrics.ErrorCount(), metrics.CompleteCount())
	}
	if metrics.LastItemTime().Before(before) {
		t.Errorf("last item time %v before start %v", metrics.LastItemTime(), before)
	}
}

func TestSpy(t *testing.T) {
	var seen []string
	spy := observe.Spy(func(n rx.Notification[int]) {
		seen = append(seen, n.String())
	})

	got, err := rx.Slice(context.Background(), spy.Apply(rx.Just(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("values changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"next(1)", "next(2)", "complete"}, seen); diff != "" {
		t.Errorf("spy mismatch (-want +got):\n%s", diff)
	}
}

func TestLog(t *testing.T) {
	zcore, logs := observer.New(zapcore.DebugLevel)
	ctx := core.WithLogger(context.Background(), zap.New(zcore))

	src := observe.Log[int]("numbers").Apply(rx.Just(10, 20))
	if err := rx.Run(ctx, src); err != nil {
		t.Fatal(err)
	}

	var (
		messages []string
		indexes  []int64
	)
	for _, entry := range logs.All() {
		if entry.LoggerName != "numbers" {
			continue
		}
		messages = append(messages, entry.Message)
		if entry.Message == "next" {
			indexes = append(indexes, entry.ContextMap()["index"].(int64))
		}
	}
	if diff := cmp.Diff([]string{"subscribe", "next", "next", "complete"}, messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{0, 1}, indexes); diff != "" {
		t.Errorf("indexes mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceLogging(t *testing.T) {
	zcore, logs := observer.New(zapcore.DebugLevel)
	ctx := core.WithLogger(context.Background(), zap.New(zcore))

	if err := rx.Run(ctx, rx.Just(1)); err != nil {
		t.Fatal(err)
	}

	subscribes := logs.FilterMessage("subscribe").All()
	if len(subscribes) != 1 {
		t.Fatalf("subscribe entries = %d, want 1", len(subscribes))
	}
	if mode := subscribes[0].ContextMap()["mode"]; mode != "local" {
		t.Errorf("mode field = %v, want local", mode)
	}
	if n := logs.FilterMessage("unsubscribe").Len(); n != 1 {
		t.Errorf("unsubscribe entries = %d, want 1", n)
	}
}

func TestHooks(t *testing.T) {
	var events []string
	ctx := context.Background()
	ctx = observe.WithSubscribeHook[int](ctx, func() { events = append(events, "subscribe") })
	ctx = observe.WithNextHook(ctx, func(v int) { events = append(events, "next") })
	ctx = observe.WithCompleteHook[int](ctx, func() { events = append(events, "complete") })
	ctx = observe.WithUnsubscribeHook[int](ctx, func() { events = append(events, "unsubscribe") })
	ctx = observe.WithNextHook(ctx, func(v string) { events = append(events, "wrong type") })

	if err := rx.Run(ctx, rx.Just(1, 2)); err != nil {
		t.Fatal(err)
	}
	want := []string{"subscribe", "next", "next", "complete", "unsubscribe"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("hook order mismatch (-want +got):\n%s", diff)
	}
}

func TestHooksSkipDroppedValues(t *testing.T) {
	ctx, counter := observe.WithCounter[int](context.Background())

	src := filter.Take[int](2).Apply(rx.Range(0, 100))
	if err := rx.Run(ctx, src); err != nil {
		t.Fatal(err)
	}
	if got := counter.Values(); got != 2 {
		t.Errorf("values = %d, want 2", got)
	}
	if counter.Errors() != 0 || counter.Total() != 2 {
		t.Errorf("errors = %d, total = %d", counter.Errors(), counter.Total())
	}
}

func TestErrorCollector(t *testing.T) {
	ctx, collector := observe.WithErrorCollector[int](context.Background())
	if collector.HasErrors() {
		t.Fatal("fresh collector has errors")
	}

	boom := errors.New("boom")
	_ = rx.Run(ctx, rx.Throw[int](boom))
	_ = rx.Run(ctx, rx.Just(1))

	got := collector.Errors()
	if len(got) != 1 || !errors.Is(got[0], boom) {
		t.Errorf("errors = %v, want [boom]", got)
	}
	ctx, errorCount := observe.WithCounter[int](ctx)
	_ = rx.Run(ctx, rx.Throw[int](boom))
	if errorCount.Errors() != 1 {
		t.Errorf("counter errors = %d, want 1", errorCount.Errors())
	}
}
