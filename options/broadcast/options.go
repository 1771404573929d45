package broadcast

import "go.uber.org/zap"

type options interface {
	SetBufferedChan(cap int)
	SetResendLatest()
	SetLogger(logger *zap.Logger)
}

type Option func(options)

// WithBufferedChan sets the buffer capacity of receiver channels.
// Capacities below 1 are raised to 1; an unbuffered receiver could
// never be handed a message.
func WithBufferedChan(cap int) Option {
	return func(o options) {
		o.SetBufferedChan(cap)
	}
}

// WithResendLatest makes new receivers immediately get the latest
// message sent on the channel, without waiting for the next send.
func WithResendLatest() Option {
	return func(o options) {
		o.SetResendLatest()
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o options) {
		o.SetLogger(logger)
	}
}
