package sink

import (
	"time"

	"go.uber.org/zap"
)

type options interface {
	SetBufferedChan(cap int)
	SetTimeout(t time.Duration)
	SetLogger(logger *zap.Logger)
}

type Option func(options)

func WithBufferedChan(cap int) Option {
	return func(o options) {
		o.SetBufferedChan(cap)
	}
}

// WithTimeout bounds how long a send to the sink channel may block.
// Messages that cannot be delivered within the timeout are dropped.
func WithTimeout(timeout time.Duration) Option {
	return func(o options) {
		o.SetTimeout(timeout)
	}
}

// WithLogger sets the logger used to report dropped messages.
func WithLogger(logger *zap.Logger) Option {
	return func(o options) {
		o.SetLogger(logger)
	}
}
