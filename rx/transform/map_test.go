package transform_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lguimbarda/min-rx/rx"
	"github.com/lguimbarda/min-rx/rx/core"
	"github.com/lguimbarda/min-rx/rx/rxtest"
	"github.com/lguimbarda/min-rx/rx/transform"
)

func TestMap(t *testing.T) {
	itoa := transform.Map(func(n int) (string, error) {
		return strconv.Itoa(n * 10), nil
	})

	got, err := rx.Slice(context.Background(), itoa.Apply(rx.Range(1, 3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"10", "20", "30"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMapError(t *testing.T) {
	boom := errors.New("boom")
	var seen []int
	failAt3 := transform.Map(func(n int) (int, error) {
		seen = append(seen, n)
		if n == 3 {
			return 0, boom
		}
		return n, nil
	})

	rec := rxtest.NewRecorder[int]()
	failAt3.Apply(rx.Range(1, 10)).Subscribe(context.Background(), rec)

	want := []rx.Notification[int]{rx.Next(1), rx.Next(2), rx.Err[int](boom)}
	if diff := cmp.Diff(want, rec.Events(), rxtest.NotificationComparer[int]()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, seen); diff != "" {
		t.Errorf("upstream not stopped after error (-want +got):\n%s", diff)
	}
}

func TestMapPanic(t *testing.T) {
	explode := transform.Map(func(n int) (int, error) {
		panic("kaboom")
	})

	_, err := rx.Slice(context.Background(), explode.Apply(rx.Just(1)))
	var perr core.ErrPanic
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ErrPanic", err)
	}
	if perr.Value != "kaboom" {
		t.Errorf("panic value = %v, want kaboom", perr.Value)
	}
}

func TestTap(t *testing.T) {
	var tapped []int
	src := transform.Tap(func(n int) { tapped = append(tapped, n) }).Apply(rx.Just(4, 5, 6))

	got, err := rx.Slice(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, tapped); diff != "" {
		t.Errorf("tap saw different values (-stream +tap):\n%s", diff)
	}
}
