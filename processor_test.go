package mstream

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leandro-lucarella-frequenz/mstream/options/predicate"
)

func TestFallThroughProcessor(t *testing.T) {
	var shouldBeEqualToMsg int
	p := newFallThroughSupplier[int]().
		Processor(func(_ context.Context, msg int) {
			shouldBeEqualToMsg = msg
		})

	ctx := context.Background()
	p(ctx, 5)
	assert.Equal(t, 5, shouldBeEqualToMsg)
	p(ctx, -1234)
	assert.Equal(t, -1234, shouldBeEqualToMsg)
}

// -------------------------------

func TestFilterProcessor(t *testing.T) {
	var forwarded bool
	p := newFilterSupplier(func(i int) bool {
		return i > 10
	}).Processor(func(_ context.Context, msg int) {
		forwarded = true
	})

	ctx := context.Background()
	p(ctx, 11)
	assert.True(t, forwarded)

	forwarded = false
	p(ctx, 10)
	assert.False(t, forwarded)
}

// -------------------------------

func TestPairwiseFilterProcessor(t *testing.T) {
	supplier := newPairwiseFilterSupplier(func() *PairwisePredicate[int] {
		return NewPairwisePredicate(isGreater, predicate.WithFirstResult(false))
	})

	forwarded := make([]int, 0)
	p := supplier.Processor(func(_ context.Context, msg int) {
		forwarded = append(forwarded, msg)
	})

	ctx := context.Background()
	for _, msg := range []int{1, 2, 0, 0, 1, 2} {
		p(ctx, msg)
	}
	assert.Equal(t, []int{2, 1, 2}, forwarded)
}

func TestPairwiseFilterProcessor_FreshStatePerProcessor(t *testing.T) {
	supplier := newPairwiseFilterSupplier(func() *PairwisePredicate[int] {
		return NewChangedPredicate[int]()
	})

	first := make([]int, 0)
	p1 := supplier.Processor(func(_ context.Context, msg int) {
		first = append(first, msg)
	})
	second := make([]int, 0)
	p2 := supplier.Processor(func(_ context.Context, msg int) {
		second = append(second, msg)
	})

	ctx := context.Background()
	p1(ctx, 1)
	// a processor built later must not inherit the remembered message.
	p2(ctx, 1)
	p1(ctx, 1)
	p2(ctx, 2)

	assert.Equal(t, []int{1}, first)
	assert.Equal(t, []int{1, 2}, second)
}

// -------------------------------

func TestTakeWhileProcessor(t *testing.T) {
	forwarded := make([]int, 0)
	p := newTakeWhileSupplier(func(i int) bool {
		return i%2 == 0
	}).Processor(func(_ context.Context, msg int) {
		forwarded = append(forwarded, msg)
	})

	ctx := context.Background()
	for _, msg := range []int{2, 4, 5, 6} {
		p(ctx, msg)
	}
	assert.Equal(t, []int{2, 4}, forwarded)
}

func TestDropWhileProcessor(t *testing.T) {
	forwarded := make([]int, 0)
	p := newDropWhileSupplier(func(i int) bool {
		return i%2 == 0
	}).Processor(func(_ context.Context, msg int) {
		forwarded = append(forwarded, msg)
	})

	ctx := context.Background()
	for _, msg := range []int{2, 4, 1, 3, 6} {
		p(ctx, msg)
	}
	assert.Equal(t, []int{1, 3, 6}, forwarded)
}

// -------------------------------

func TestMapProcessor(t *testing.T) {
	var shouldBeItoa string
	p := newMapSupplier(func(_ context.Context, i int) string {
		return strconv.Itoa(i)
	}).Processor(func(_ context.Context, msg string) {
		shouldBeItoa = msg
	})

	ctx := context.Background()
	p(ctx, 10)
	assert.Equal(t, "10", shouldBeItoa)
	p(ctx, -1234)
	assert.Equal(t, "-1234", shouldBeItoa)
}

// -------------------------------

func TestFlatMapProcessor(t *testing.T) {
	forwarded := make([]int, 0)
	p := newFlatMapSupplier(func(_ context.Context, i int) []int {
		res := make([]int, 0, i)
		for n := 0; n < i; n++ {
			res = append(res, n)
		}
		return res
	}).Processor(func(_ context.Context, msg int) {
		forwarded = append(forwarded, msg)
	})

	p(context.Background(), 5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, forwarded)
}
