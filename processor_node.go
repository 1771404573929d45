package mstream

type processorNode[T, TR any] struct {
	processor Processor[T]
	supplier  ProcessorSupplier[T, TR]
	forwards  func() []Processor[TR]

	rid streamID

	isSrc bool
	sctx  *streamContext
	pipe  <-chan T
	pool  int
}

func (p *processorNode[_, _]) RoutineID() streamID {
	return p.rid
}

func newProcessorNode[T, TR any](supplier ProcessorSupplier[T, TR]) *processorNode[T, TR] {
	return &processorNode[T, TR]{
		supplier: supplier,
		forwards: func() []Processor[TR] { return make([]Processor[TR], 0) },
	}
}

func newFallThroughNode[T any]() *processorNode[T, T] {
	return newProcessorNode[T, T](newFallThroughSupplier[T]())
}

func newSourceNode[T any](rid streamID, sctx *streamContext, pipe <-chan T, pool int) *processorNode[T, T] {
	node := newFallThroughNode[T]()
	node.rid = rid
	node.isSrc = true
	node.sctx = sctx
	node.pipe = pipe
	node.pool = pool
	return node
}

func addChild[T, TR, TRR any](parent *processorNode[T, TR], child *processorNode[TR, TRR]) {
	current := parent.forwards
	parent.forwards = func() []Processor[TR] {
		return append(current(), buildNode(child))
	}
	if !child.isSrc {
		child.rid = parent.rid
	}
}

func curryingAddChild[T, TR, TRR any](parent *processorNode[T, TR]) func(*processorNode[TR, TRR]) {
	return func(child *processorNode[TR, TRR]) {
		addChild(parent, child)
	}
}

func castAddChild[T, TR any](curriedAddChild func(*processorNode[T, T])) func(*processorNode[T, TR]) {
	return func(child *processorNode[T, TR]) {
		passNode := newFallThroughNode[T]()
		curriedAddChild(passNode)
		addChild(passNode, child)
	}
}

func buildNode[T, TR any](n *processorNode[T, TR]) Processor[T] {
	if n.processor == nil {
		n.processor = n.supplier.Processor(n.forwards()...)

		if n.isSrc {
			r := newRoutine(n.rid, n.pipe, n.pool, n.processor)
			r.run(n.sctx)
		}
	}

	return n.processor
}
