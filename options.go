package mstream

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/leandro-lucarella-frequenz/mstream/options/broadcast"
	"github.com/leandro-lucarella-frequenz/mstream/options/pipe"
	"github.com/leandro-lucarella-frequenz/mstream/options/predicate"
	"github.com/leandro-lucarella-frequenz/mstream/options/sink"
	"github.com/leandro-lucarella-frequenz/mstream/options/source"
)

type optionsImpl struct {
	workerPool   int
	isBuffer     bool
	buffer       int
	timeout      time.Duration
	resendLatest bool
	logger       *zap.Logger
}

func (o *optionsImpl) SetWorkerPool(pool int) {
	o.workerPool = pool
}

func (o *optionsImpl) SetBufferedChan(cap int) {
	o.isBuffer = true
	o.buffer = cap
}

func (o *optionsImpl) SetTimeout(t time.Duration) {
	o.timeout = t
}

func (o *optionsImpl) SetResendLatest() {
	o.resendLatest = true
}

func (o *optionsImpl) SetLogger(logger *zap.Logger) {
	o.logger = logger
}

// -------------------------------

type sourceOption struct {
	optionsImpl
}

func (o *sourceOption) WorkerPool() int {
	return o.workerPool
}

func newSourceOption(opts ...source.Option) *sourceOption {
	srcOpt := &sourceOption{
		optionsImpl: optionsImpl{
			workerPool: 1,
		},
	}
	for _, opt := range opts {
		opt(srcOpt)
	}
	return srcOpt
}

// -------------------------------

type pipeOption[T any] struct {
	optionsImpl
	once sync.Once
	pipe chan T
}

func (o *pipeOption[T]) WorkerPool() int {
	return o.workerPool
}

func (o *pipeOption[T]) BuildPipe() chan T {
	o.once.Do(func() {
		if o.isBuffer {
			o.pipe = make(chan T, o.buffer)
		} else {
			o.pipe = make(chan T)
		}
	})
	return o.pipe
}

func newPipeOption[T any](opts ...pipe.Option) *pipeOption[T] {
	pipeOpt := &pipeOption[T]{
		optionsImpl: optionsImpl{
			workerPool: 1,
			isBuffer:   false,
		},
	}
	for _, opt := range opts {
		opt(pipeOpt)
	}
	return pipeOpt
}

// -------------------------------

type sinkOption[T any] struct {
	optionsImpl
	once sync.Once
	pipe chan T
}

func (o *sinkOption[T]) BuildPipe() chan T {
	o.once.Do(func() {
		if o.isBuffer {
			o.pipe = make(chan T, o.buffer)
		} else {
			o.pipe = make(chan T)
		}
	})
	return o.pipe
}

func (o *sinkOption[T]) Timeout() time.Duration {
	return o.timeout
}

func (o *sinkOption[T]) Logger() *zap.Logger {
	return o.logger
}

func newSinkOption[T any](opts ...sink.Option) *sinkOption[T] {
	sinkOpt := &sinkOption[T]{
		optionsImpl: optionsImpl{
			isBuffer: false,
			timeout:  -1,
			logger:   zap.NewNop(),
		},
	}
	for _, opt := range opts {
		opt(sinkOpt)
	}
	return sinkOpt
}

// -------------------------------

type predicateOption struct {
	firstResult bool
	name        string
}

func (o *predicateOption) SetFirstResult(firstResult bool) {
	o.firstResult = firstResult
}

func (o *predicateOption) SetName(name string) {
	o.name = name
}

func (o *predicateOption) FirstResult() bool {
	return o.firstResult
}

func (o *predicateOption) Name() string {
	return o.name
}

func newPredicateOption(opts ...predicate.Option) *predicateOption {
	predOpt := &predicateOption{
		firstResult: true,
		name:        "pairwise",
	}
	for _, opt := range opts {
		opt(predOpt)
	}
	return predOpt
}

// -------------------------------

type broadcastOption struct {
	optionsImpl
}

func (o *broadcastOption) Buffer() int {
	return o.buffer
}

func (o *broadcastOption) ResendLatest() bool {
	return o.resendLatest
}

func (o *broadcastOption) Logger() *zap.Logger {
	return o.logger
}

func newBroadcastOption(opts ...broadcast.Option) *broadcastOption {
	bcOpt := &broadcastOption{
		optionsImpl: optionsImpl{
			buffer: 50,
			logger: zap.NewNop(),
		},
	}
	for _, opt := range opts {
		opt(bcOpt)
	}
	// receiver channels must buffer at least one message, or Send could
	// never hand anything off and resend-latest would block.
	if bcOpt.buffer < 1 {
		bcOpt.buffer = 1
	}
	return bcOpt
}
