package mstream

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Processor[T any] func(ctx context.Context, msg T)

type ProcessorSupplier[T, TR any] interface {
	Processor(forwards ...Processor[TR]) Processor[T]
}

// -------------------------------

func newVoidSupplier[T, TR any]() *voidSupplier[T, TR] {
	return &voidSupplier[T, TR]{}
}

type voidSupplier[T, TR any] struct{}

var _ ProcessorSupplier[any, any] = &voidSupplier[any, any]{}

func (p *voidSupplier[T, TR]) Processor(_ ...Processor[TR]) Processor[T] {
	return func(ctx context.Context, msg T) {}
}

// -------------------------------

func newFallThroughSupplier[T any]() *fallThroughSupplier[T] {
	return &fallThroughSupplier[T]{}
}

type fallThroughSupplier[T any] struct{}

var _ ProcessorSupplier[any, any] = &fallThroughSupplier[any]{}

func (p *fallThroughSupplier[T]) Processor(forwards ...Processor[T]) Processor[T] {
	return func(ctx context.Context, msg T) {
		for _, forward := range forwards {
			forward(ctx, msg)
		}
	}
}

// -------------------------------

func newFilterSupplier[T any](filter func(T) bool) *filterSupplier[T] {
	return &filterSupplier[T]{
		filter: filter,
	}
}

type filterSupplier[T any] struct {
	filter func(T) bool
}

var _ ProcessorSupplier[any, any] = &filterSupplier[any]{}

func (p *filterSupplier[T]) Processor(forwards ...Processor[T]) Processor[T] {
	return func(ctx context.Context, msg T) {
		if p.filter(msg) {
			for _, forward := range forwards {
				forward(ctx, msg)
			}
		}
	}
}

// -------------------------------

func newPairwiseFilterSupplier[T any](newPredicate func() *PairwisePredicate[T]) *pairwiseFilterSupplier[T] {
	return &pairwiseFilterSupplier[T]{
		newPredicate: newPredicate,
	}
}

type pairwiseFilterSupplier[T any] struct {
	newPredicate func() *PairwisePredicate[T]
}

var _ ProcessorSupplier[any, any] = &pairwiseFilterSupplier[any]{}

// Processor builds a fresh predicate per processor so that each filtering
// step owns its remembered message exclusively.
func (p *pairwiseFilterSupplier[T]) Processor(forwards ...Processor[T]) Processor[T] {
	pred := p.newPredicate()
	return func(ctx context.Context, msg T) {
		if pred.Evaluate(msg) {
			for _, forward := range forwards {
				forward(ctx, msg)
			}
		}
	}
}

// -------------------------------

func newTakeWhileSupplier[T any](filter func(T) bool) *takeWhileSupplier[T] {
	return &takeWhileSupplier[T]{
		filter: filter,
	}
}

type takeWhileSupplier[T any] struct {
	filter func(T) bool
}

var _ ProcessorSupplier[any, any] = &takeWhileSupplier[any]{}

func (p *takeWhileSupplier[T]) Processor(forwards ...Processor[T]) Processor[T] {
	taking := true
	return func(ctx context.Context, msg T) {
		if !taking {
			return
		}
		if !p.filter(msg) {
			taking = false
			return
		}
		for _, forward := range forwards {
			forward(ctx, msg)
		}
	}
}

// -------------------------------

func newDropWhileSupplier[T any](filter func(T) bool) *dropWhileSupplier[T] {
	return &dropWhileSupplier[T]{
		filter: filter,
	}
}

type dropWhileSupplier[T any] struct {
	filter func(T) bool
}

var _ ProcessorSupplier[any, any] = &dropWhileSupplier[any]{}

func (p *dropWhileSupplier[T]) Processor(forwards ...Processor[T]) Processor[T] {
	dropping := true
	return func(ctx context.Context, msg T) {
		if dropping {
			if p.filter(msg) {
				return
			}
			dropping = false
		}
		for _, forward := range forwards {
			forward(ctx, msg)
		}
	}
}

// -------------------------------

func newForeachSupplier[T any](foreacher func(context.Context, T)) *foreachSupplier[T] {
	return &foreachSupplier[T]{
		foreacher: foreacher,
	}
}

type foreachSupplier[T any] struct {
	foreacher func(context.Context, T)
}

var _ ProcessorSupplier[any, any] = &foreachSupplier[any]{}

func (p *foreachSupplier[T]) Processor(_ ...Processor[T]) Processor[T] {
	return func(ctx context.Context, msg T) {
		p.foreacher(ctx, msg)
	}
}

// -------------------------------

func newMapSupplier[T, TR any](mapper func(context.Context, T) TR) *mapSupplier[T, TR] {
	return &mapSupplier[T, TR]{
		mapper: mapper,
	}
}

type mapSupplier[T, TR any] struct {
	mapper func(context.Context, T) TR
}

var _ ProcessorSupplier[any, any] = &mapSupplier[any, any]{}

func (p *mapSupplier[T, TR]) Processor(forwards ...Processor[TR]) Processor[T] {
	return func(ctx context.Context, msg T) {
		for _, forward := range forwards {
			forward(ctx, p.mapper(ctx, msg))
		}
	}
}

// -------------------------------

func newFlatMapSupplier[T, TR any](flatMapper func(context.Context, T) []TR) *flatMapSupplier[T, TR] {
	return &flatMapSupplier[T, TR]{
		flatMapper: flatMapper,
	}
}

type flatMapSupplier[T, TR any] struct {
	flatMapper func(context.Context, T) []TR
}

var _ ProcessorSupplier[any, any] = &flatMapSupplier[any, any]{}

func (p *flatMapSupplier[T, TR]) Processor(forwards ...Processor[TR]) Processor[T] {
	return func(ctx context.Context, msg T) {
		mapped := p.flatMapper(ctx, msg)
		for _, forward := range forwards {
			for _, m := range mapped {
				forward(ctx, m)
			}
		}
	}
}

// -------------------------------

func newSinkSupplier[T any](output chan T, timeout time.Duration, logger *zap.Logger) *sinkSupplier[T] {
	return &sinkSupplier[T]{
		output:  output,
		timeout: timeout,
		logger:  logger,
	}
}

type sinkSupplier[T any] struct {
	output  chan T
	timeout time.Duration
	logger  *zap.Logger
}

var _ ProcessorSupplier[any, any] = &sinkSupplier[any]{}

func (p *sinkSupplier[T]) Processor(_ ...Processor[T]) Processor[T] {
	if p.timeout < 0 {
		return func(ctx context.Context, msg T) {
			select {
			case p.output <- msg:
			case <-ctx.Done():
			}
		}
	}
	return func(ctx context.Context, msg T) {
		bomb := time.After(p.timeout)
		select {
		case p.output <- msg:
		case <-bomb:
			p.logger.Warn("output channel is busy, dropping message",
				zap.Any("message", msg))
		case <-ctx.Done():
		}
	}
}
