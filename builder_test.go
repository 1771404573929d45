package mstream

import (
	"context"
	"strconv"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestCancelStopsAllRoutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := NewBuilder()

	intStream := StreamOf[int](b).From(make(chan int))
	strStream := StreamOf[string](b).From(make(chan string))

	merged := Map(intStream, func(_ context.Context, i int) string {
		return strconv.Itoa(i)
	}).Merge(strStream)
	merged.Pipe().Foreach(func(_ context.Context, _ string) {})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.BuildAndStart(ctx)
	}()

	time.Sleep(time.Millisecond)
	cancel()
	<-done
}

func TestBuildAndStartReturnsWhenSourcesDrain(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := NewBuilder()
	StreamOf[int](b).SliceSource([]int{1, 2, 3}).
		Foreach(func(_ context.Context, _ int) {})

	b.BuildAndStart(context.Background())
}
