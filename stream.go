package mstream

import (
	"context"

	"go.uber.org/zap"

	"github.com/leandro-lucarella-frequenz/mstream/options/pipe"
	"github.com/leandro-lucarella-frequenz/mstream/options/predicate"
	"github.com/leandro-lucarella-frequenz/mstream/options/sink"
)

type Stream[T any] interface {
	Filter(func(T) bool) Stream[T]
	// FilterWithPrevious keeps a message only if relation(previous, current)
	// returns true. Each call creates a filtering step owning its own
	// pairwise state; see PairwisePredicate for the first-message policy.
	// The step advances its state on every message, so it must run in a
	// routine with a single worker (the default).
	FilterWithPrevious(relation func(prev, cur T) bool, opts ...predicate.Option) Stream[T]
	// TakeWhile forwards messages until the first one failing the filter,
	// dropping that message and every later one.
	TakeWhile(func(T) bool) Stream[T]
	// DropWhile drops the leading messages passing the filter and forwards
	// everything from the first failing one on.
	DropWhile(func(T) bool) Stream[T]
	Foreach(func(context.Context, T))
	Map(func(context.Context, T) T) Stream[T]
	MapErr(func(context.Context, T) (T, error)) (Stream[T], FailedStream[T])
	FlatMap(func(context.Context, T) []T) Stream[T]
	FlatMapErr(func(context.Context, T) ([]T, error)) (Stream[T], FailedStream[T])
	Merge(Stream[T], ...pipe.Option) Stream[T]
	Pipe(...pipe.Option) Stream[T]
	To(...sink.Option) <-chan T
}

type FailedStream[T any] interface {
	Filter(func(T, error) bool) FailedStream[T]
	Foreach(func(context.Context, T, error))
	ToStream() Stream[T]
}

// -------------------------------

type stream[T any] struct {
	builder  *builder
	rid      streamID
	addChild func(*processorNode[T, T])
}

var _ Stream[any] = &stream[any]{}

func (s *stream[T]) Filter(filter func(T) bool) Stream[T] {
	filterNode := newProcessorNode[T, T](newFilterSupplier(filter))
	s.addChild(filterNode)

	return &stream[T]{
		builder:  s.builder,
		rid:      s.rid,
		addChild: curryingAddChild[T, T, T](filterNode),
	}
}

func (s *stream[T]) FilterWithPrevious(relation func(prev, cur T) bool, opts ...predicate.Option) Stream[T] {
	supplier := newPairwiseFilterSupplier(func() *PairwisePredicate[T] {
		return NewPairwisePredicate(relation, opts...)
	})
	filterNode := newProcessorNode[T, T](supplier)
	s.addChild(filterNode)

	return &stream[T]{
		builder:  s.builder,
		rid:      s.rid,
		addChild: curryingAddChild[T, T, T](filterNode),
	}
}

func (s *stream[T]) TakeWhile(filter func(T) bool) Stream[T] {
	takeNode := newProcessorNode[T, T](newTakeWhileSupplier(filter))
	s.addChild(takeNode)

	return &stream[T]{
		builder:  s.builder,
		rid:      s.rid,
		addChild: curryingAddChild[T, T, T](takeNode),
	}
}

func (s *stream[T]) DropWhile(filter func(T) bool) Stream[T] {
	dropNode := newProcessorNode[T, T](newDropWhileSupplier(filter))
	s.addChild(dropNode)

	return &stream[T]{
		builder:  s.builder,
		rid:      s.rid,
		addChild: curryingAddChild[T, T, T](dropNode),
	}
}

func (s *stream[T]) Foreach(foreacher func(context.Context, T)) {
	foreachNode := newProcessorNode[T, T](newForeachSupplier(foreacher))
	s.addChild(foreachNode)
}

func (s *stream[T]) Map(mapper func(context.Context, T) T) Stream[T] {
	return Map[T, T](s, mapper)
}

func (s *stream[T]) MapErr(mapper func(context.Context, T) (T, error)) (Stream[T], FailedStream[T]) {
	return MapErr[T, T](s, mapper)
}

func (s *stream[T]) FlatMap(flatMapper func(context.Context, T) []T) Stream[T] {
	return FlatMap[T, T](s, flatMapper)
}

func (s *stream[T]) FlatMapErr(flatMapper func(context.Context, T) ([]T, error)) (Stream[T], FailedStream[T]) {
	return FlatMapErr[T, T](s, flatMapper)
}

func (s *stream[T]) Merge(ms Stream[T], opts ...pipe.Option) Stream[T] {
	msImpl := ms.(*stream[T])

	// streams in different routines meet through a shared pipe.
	if s.rid != msImpl.rid {
		opt := newPipeOption[T](opts...)
		p := opt.BuildPipe()
		pipeID := s.builder.newSinkID(s.rid)

		sinkNode := newProcessorNode[T, T](newSinkSupplier(p, -1, zap.NewNop()))
		s.addChild(sinkNode)
		s.builder.sctx.addCloseChan(s.rid, pipeID, func() { close(p) })
		msImpl.addChild(sinkNode)
		s.builder.sctx.addCloseChan(msImpl.rid, pipeID, func() { close(p) })

		srcNode := newSourceNode(s.builder.newRoutineID(), s.builder.sctx, p, opt.WorkerPool())
		addChild(sinkNode, srcNode)

		return &stream[T]{
			builder:  s.builder,
			rid:      srcNode.RoutineID(),
			addChild: curryingAddChild[T, T, T](srcNode),
		}
	}

	mergeNode := newFallThroughNode[T]()
	s.addChild(mergeNode)
	msImpl.addChild(mergeNode)

	return &stream[T]{
		builder:  s.builder,
		rid:      s.rid,
		addChild: curryingAddChild[T, T, T](mergeNode),
	}
}

func (s *stream[T]) Pipe(opts ...pipe.Option) Stream[T] {
	opt := newPipeOption[T](opts...)
	p := opt.BuildPipe()

	sinkNode := newProcessorNode[T, T](newSinkSupplier(p, -1, zap.NewNop()))
	s.addChild(sinkNode)
	s.builder.sctx.addCloseChan(s.rid, s.builder.newSinkID(s.rid), func() { close(p) })

	srcNode := newSourceNode(s.builder.newRoutineID(), s.builder.sctx, p, opt.WorkerPool())
	addChild(sinkNode, srcNode)

	return &stream[T]{
		builder:  s.builder,
		rid:      srcNode.RoutineID(),
		addChild: curryingAddChild[T, T, T](srcNode),
	}
}

func (s *stream[T]) To(opts ...sink.Option) <-chan T {
	opt := newSinkOption[T](opts...)
	p := opt.BuildPipe()
	s.builder.sctx.addCloseChan(s.rid, s.builder.newSinkID(s.rid), func() { close(p) })

	sinkNode := newProcessorNode[T, T](newSinkSupplier(p, opt.Timeout(), opt.Logger()))
	s.addChild(sinkNode)

	return p
}

// -------------------------------

// FilterChanged drops every message equal to its immediate predecessor,
// using Go's native == for T. The first message always passes unless
// predicate.WithFirstResult(false) is given.
func FilterChanged[T comparable](s Stream[T], opts ...predicate.Option) Stream[T] {
	sImpl := s.(*stream[T])
	supplier := newPairwiseFilterSupplier(func() *PairwisePredicate[T] {
		return NewChangedPredicate[T](opts...)
	})
	filterNode := newProcessorNode[T, T](supplier)
	sImpl.addChild(filterNode)

	return &stream[T]{
		builder:  sImpl.builder,
		rid:      sImpl.rid,
		addChild: curryingAddChild[T, T, T](filterNode),
	}
}

func Map[T, TR any](s Stream[T], mapper func(context.Context, T) TR) Stream[TR] {
	sImpl := s.(*stream[T])
	mapNode := newProcessorNode[T, TR](newMapSupplier(mapper))
	castAddChild[T, TR](sImpl.addChild)(mapNode)

	return &stream[TR]{
		builder:  sImpl.builder,
		rid:      sImpl.rid,
		addChild: curryingAddChild[T, TR, TR](mapNode),
	}
}

func MapErr[T, TR any](s Stream[T], mapper func(context.Context, T) (TR, error)) (ss Stream[TR], fs FailedStream[T]) {
	sImpl := s.(*stream[T])
	resultNode := newProcessorNode[T, result[T, TR]](newMapSupplier[T, result[T, TR]](func(ctx context.Context, msg T) result[T, TR] {
		r, err := mapper(ctx, msg)
		return result[T, TR]{msg, r, err}
	}))
	castAddChild[T, result[T, TR]](sImpl.addChild)(resultNode)

	successNode := newProcessorNode[result[T, TR], result[T, TR]](newFilterSupplier[result[T, TR]](func(r result[T, TR]) bool {
		return r.err == nil
	}))
	addChild(resultNode, successNode)
	mappedNode := newProcessorNode[result[T, TR], TR](newMapSupplier[result[T, TR], TR](func(_ context.Context, r result[T, TR]) TR {
		return r.success()
	}))
	addChild(successNode, mappedNode)

	failNode := newProcessorNode[result[T, TR], result[T, TR]](newFilterSupplier[result[T, TR]](func(r result[T, TR]) bool {
		return r.err != nil
	}))
	addChild(resultNode, failNode)
	failedNode := newProcessorNode[result[T, TR], Fail[T]](newMapSupplier[result[T, TR], Fail[T]](func(_ context.Context, r result[T, TR]) Fail[T] {
		return r.fail()
	}))
	addChild(failNode, failedNode)

	return &stream[TR]{
			builder:  sImpl.builder,
			rid:      sImpl.rid,
			addChild: curryingAddChild[result[T, TR], TR, TR](mappedNode),
		}, &failedStream[T]{
			builder:  sImpl.builder,
			rid:      sImpl.rid,
			addChild: curryingAddChild[result[T, TR], Fail[T], Fail[T]](failedNode),
		}
}

func FlatMap[T, TR any](s Stream[T], flatMapper func(context.Context, T) []TR) Stream[TR] {
	sImpl := s.(*stream[T])
	flatMapNode := newProcessorNode[T, TR](newFlatMapSupplier(flatMapper))
	castAddChild[T, TR](sImpl.addChild)(flatMapNode)

	return &stream[TR]{
		builder:  sImpl.builder,
		rid:      sImpl.rid,
		addChild: curryingAddChild[T, TR, TR](flatMapNode),
	}
}

func FlatMapErr[T, TR any](s Stream[T], flatMapper func(context.Context, T) ([]TR, error)) (ss Stream[TR], fs FailedStream[T]) {
	sImpl := s.(*stream[T])
	resultNode := newProcessorNode[T, result[T, []TR]](newMapSupplier[T, result[T, []TR]](func(ctx context.Context, msg T) result[T, []TR] {
		r, err := flatMapper(ctx, msg)
		return result[T, []TR]{msg, r, err}
	}))
	castAddChild[T, result[T, []TR]](sImpl.addChild)(resultNode)

	successNode := newProcessorNode[result[T, []TR], result[T, []TR]](newFilterSupplier[result[T, []TR]](func(r result[T, []TR]) bool {
		return r.err == nil
	}))
	addChild(resultNode, successNode)
	mappedNode := newProcessorNode[result[T, []TR], TR](newFlatMapSupplier[result[T, []TR], TR](func(_ context.Context, r result[T, []TR]) []TR {
		return r.success()
	}))
	addChild(successNode, mappedNode)

	failNode := newProcessorNode[result[T, []TR], result[T, []TR]](newFilterSupplier[result[T, []TR]](func(r result[T, []TR]) bool {
		return r.err != nil
	}))
	addChild(resultNode, failNode)
	failedNode := newProcessorNode[result[T, []TR], Fail[T]](newMapSupplier[result[T, []TR], Fail[T]](func(_ context.Context, r result[T, []TR]) Fail[T] {
		return r.fail()
	}))
	addChild(failNode, failedNode)

	return &stream[TR]{
			builder:  sImpl.builder,
			rid:      sImpl.rid,
			addChild: curryingAddChild[result[T, []TR], TR, TR](mappedNode),
		}, &failedStream[T]{
			builder:  sImpl.builder,
			rid:      sImpl.rid,
			addChild: curryingAddChild[result[T, []TR], Fail[T], Fail[T]](failedNode),
		}
}

// -------------------------------

type failedStream[T any] struct {
	builder  *builder
	rid      streamID
	addChild func(*processorNode[Fail[T], Fail[T]])
}

var _ FailedStream[any] = &failedStream[any]{}

func (fs *failedStream[T]) Filter(filter func(T, error) bool) FailedStream[T] {
	filterNode := newProcessorNode[Fail[T], Fail[T]](newFilterSupplier[Fail[T]](func(f Fail[T]) bool {
		return filter(f.Arg, f.Err)
	}))
	fs.addChild(filterNode)

	return &failedStream[T]{
		builder:  fs.builder,
		rid:      fs.rid,
		addChild: curryingAddChild[Fail[T], Fail[T], Fail[T]](filterNode),
	}
}

func (fs *failedStream[T]) Foreach(foreacher func(context.Context, T, error)) {
	foreachNode := newProcessorNode[Fail[T], Fail[T]](newForeachSupplier(func(ctx context.Context, f Fail[T]) {
		foreacher(ctx, f.Arg, f.Err)
	}))
	fs.addChild(foreachNode)
}

func (fs *failedStream[T]) ToStream() Stream[T] {
	mapNode := newProcessorNode[Fail[T], T](newMapSupplier[Fail[T], T](func(_ context.Context, f Fail[T]) T {
		return f.Arg
	}))
	castAddChild[Fail[T], T](fs.addChild)(mapNode)

	return &stream[T]{
		builder:  fs.builder,
		rid:      fs.rid,
		addChild: curryingAddChild[Fail[T], T, T](mapNode),
	}
}
