package mstream

import (
	"context"
	"fmt"

	"github.com/leandro-lucarella-frequenz/mstream/options/source"
)

type nextInt func() int

func newNextInt() nextInt {
	i := 0
	return func() int {
		i++
		return i
	}
}

type streamID string

type builder struct {
	nextInt nextInt
	sctx    *streamContext
	root    *processorNode[any, any]
}

func NewBuilder() *builder {
	return &builder{
		nextInt: newNextInt(),
		sctx:    newStreamContext(),
		root:    newProcessorNode[any, any](newVoidSupplier[any, any]()),
	}
}

func (b *builder) newRoutineID() streamID {
	return streamID(fmt.Sprintf("routine-%d", b.nextInt()))
}

func (b *builder) newSinkID(rid streamID) streamID {
	return streamID(fmt.Sprintf("%s-sink-%d", rid, b.nextInt()))
}

func StreamOf[T any](b *builder) *streamBuilder[T] {
	return &streamBuilder[T]{
		b: b,
	}
}

type streamBuilder[T any] struct {
	b *builder
}

// From attaches a source channel to the topology. The caller owns the
// channel; close it to drain the topology, or cancel the context passed to
// BuildAndStart to abandon it.
func (sb *streamBuilder[T]) From(source <-chan T, opts ...source.Option) Stream[T] {
	opt := newSourceOption(opts...)

	voidNode := newProcessorNode[any, T](newVoidSupplier[any, T]())
	addChild(sb.b.root, voidNode)
	sourceNode := newSourceNode(sb.b.newRoutineID(), sb.b.sctx, source, opt.WorkerPool())
	addChild(voidNode, sourceNode)

	return &stream[T]{
		builder:  sb.b,
		rid:      sourceNode.RoutineID(),
		addChild: curryingAddChild[T, T, T](sourceNode),
	}
}

// SliceSource feeds the slice through a buffered, already closed channel,
// so bounded inputs drain completely and BuildAndStart returns.
func (sb *streamBuilder[T]) SliceSource(slice []T) Stream[T] {
	source := make(chan T, len(slice))
	for _, msg := range slice {
		source <- msg
	}
	close(source)
	return sb.From(source)
}

// BuildAndStart builds the topology, starts its routines and blocks until
// every routine has finished, either because all sources were closed and
// drained or because ctx was canceled.
func (b *builder) BuildAndStart(ctx context.Context) {
	b.sctx.ctx = ctx
	buildNode(b.root)
	b.sctx.wait()
}
