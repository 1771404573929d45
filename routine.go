package mstream

func newRoutine[T any](rid streamID, pipe <-chan T, poolSize int, processor Processor[T]) *routine[T] {
	return &routine[T]{
		rid:      rid,
		pipe:     pipe,
		poolSize: poolSize,
		process:  processor,
	}
}

type routine[T any] struct {
	rid      streamID
	pipe     <-chan T
	poolSize int
	process  Processor[T]
}

func (r *routine[T]) run(sctx *streamContext) {
	for i := 0; i < r.poolSize; i++ {
		sctx.startWorker(r.rid)
		go worker(r.rid, sctx, r.pipe, r.process)
	}
}

func worker[T any](rid streamID, sctx *streamContext, pipe <-chan T, process Processor[T]) {
	defer sctx.doneWorker(rid)

	ctx := sctx.ctx
	for {
		select {
		case msg, ok := <-pipe:
			if !ok {
				return
			}
			process(ctx, msg)
		case <-ctx.Done():
			return
		}
	}
}
