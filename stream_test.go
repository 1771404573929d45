package mstream

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leandro-lucarella-frequenz/mstream/options/predicate"
)

func TestFilterChanged(t *testing.T) {
	b := NewBuilder()

	res := make([]int, 0)
	src := StreamOf[int](b).SliceSource([]int{1, 1, 2, 2, 3, 1})
	FilterChanged(src).Foreach(func(_ context.Context, i int) {
		res = append(res, i)
	})

	b.BuildAndStart(context.Background())

	assert.Equal(t, []int{1, 2, 3, 1}, res)
}

func TestFilterChanged_FirstResultFalse(t *testing.T) {
	b := NewBuilder()

	res := make([]int, 0)
	src := StreamOf[int](b).SliceSource([]int{1, 1, 2})
	FilterChanged(src, predicate.WithFirstResult(false)).
		Foreach(func(_ context.Context, i int) {
			res = append(res, i)
		})

	b.BuildAndStart(context.Background())

	assert.Equal(t, []int{2}, res)
}

func TestFilterWithPrevious(t *testing.T) {
	b := NewBuilder()

	res := make([]int, 0)
	src := StreamOf[int](b).SliceSource([]int{1, 2, 0, 0, 1, 2})
	src.FilterWithPrevious(func(prev, cur int) bool {
		return cur > prev
	}, predicate.WithFirstResult(false)).
		Foreach(func(_ context.Context, i int) {
			res = append(res, i)
		})

	b.BuildAndStart(context.Background())

	assert.Equal(t, []int{2, 1, 2}, res)
}

func TestFilterWithPrevious_IndependentBranches(t *testing.T) {
	b := NewBuilder()

	relation := func(prev, cur int) bool { return cur > prev }

	first := make([]int, 0)
	second := make([]int, 0)
	src := StreamOf[int](b).SliceSource([]int{1, 2, 1, 3})
	src.FilterWithPrevious(relation).Foreach(func(_ context.Context, i int) {
		first = append(first, i)
	})
	src.FilterWithPrevious(relation).Foreach(func(_ context.Context, i int) {
		second = append(second, i)
	})

	b.BuildAndStart(context.Background())

	// two filtering steps own separate predicate instances, so both
	// branches see the full pairwise history of the source.
	assert.Equal(t, first, second)
	assert.Equal(t, []int{1, 2, 3}, first)
}

func TestTakeWhile(t *testing.T) {
	b := NewBuilder()

	res := make([]int, 0)
	src := StreamOf[int](b).SliceSource([]int{2, 4, 5, 6, 8})
	src.TakeWhile(func(i int) bool { return i%2 == 0 }).
		Foreach(func(_ context.Context, i int) {
			res = append(res, i)
		})

	b.BuildAndStart(context.Background())

	assert.Equal(t, []int{2, 4}, res)
}

func TestDropWhile(t *testing.T) {
	b := NewBuilder()

	res := make([]int, 0)
	src := StreamOf[int](b).SliceSource([]int{2, 4, 5, 6, 8})
	src.DropWhile(func(i int) bool { return i%2 == 0 }).
		Foreach(func(_ context.Context, i int) {
			res = append(res, i)
		})

	b.BuildAndStart(context.Background())

	assert.Equal(t, []int{5, 6, 8}, res)
}

func TestMapErr(t *testing.T) {
	b := NewBuilder()

	res := make([]int, 0)
	failed := make([]error, 0)
	src := StreamOf[int](b).SliceSource([]int{1, 2, 3, 4, 5})
	mapped, fs := MapErr[int, int](src, func(_ context.Context, i int) (int, error) {
		if i == 3 {
			return 0, errors.New("mock error")
		}
		return i * i, nil
	})
	mapped.Foreach(func(_ context.Context, i int) {
		res = append(res, i)
	})
	fs.Foreach(func(_ context.Context, _ int, err error) {
		failed = append(failed, err)
	})

	b.BuildAndStart(context.Background())

	assert.Equal(t, []int{1, 4, 16, 25}, res)
	assert.Equal(t, 1, len(failed))
}

func TestFlatMapErr(t *testing.T) {
	b := NewBuilder()

	res := make([]int, 0)
	src := StreamOf[int](b).SliceSource([]int{1, 2, 3})
	flatMapped, fs := FlatMapErr[int, int](src, func(_ context.Context, i int) ([]int, error) {
		if i == 2 {
			return nil, errors.New("mock error")
		}
		return []int{i, i * 10}, nil
	})
	flatMapped.Foreach(func(_ context.Context, i int) {
		res = append(res, i)
	})
	recovered := make([]int, 0)
	fs.ToStream().Foreach(func(_ context.Context, i int) {
		recovered = append(recovered, i)
	})

	b.BuildAndStart(context.Background())

	assert.Equal(t, []int{1, 10, 3, 30}, res)
	assert.Equal(t, []int{2}, recovered)
}

func TestTo(t *testing.T) {
	b := NewBuilder()

	src := StreamOf[int](b).SliceSource([]int{1, 1, 2})
	out := FilterChanged(src).To()

	res := make([]int, 0)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range out {
			res = append(res, i)
		}
	}()

	b.BuildAndStart(context.Background())
	<-done

	assert.Equal(t, []int{1, 2}, res)
}

func TestMergeAcrossRoutines(t *testing.T) {
	b := NewBuilder()

	left := StreamOf[int](b).SliceSource([]int{1, 2, 3})
	right := StreamOf[int](b).SliceSource([]int{4, 5, 6})

	res := make([]int, 0)
	left.Merge(right).Foreach(func(_ context.Context, i int) {
		res = append(res, i)
	})

	b.BuildAndStart(context.Background())

	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6}, res)
}
