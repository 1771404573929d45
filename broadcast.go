package mstream

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/leandro-lucarella-frequenz/mstream/options/broadcast"
	"github.com/leandro-lucarella-frequenz/mstream/state"
	"github.com/leandro-lucarella-frequenz/mstream/state/materialized"
)

// ErrChannelClosed is returned by Send after the channel was closed.
var ErrChannelClosed = errors.New("mstream: channel closed")

// Broadcast fans every sent message out to all of its receivers. Each
// receiver has its own buffered channel; when a receiver falls behind and
// its buffer fills up, the oldest message is dropped just for that receiver.
//
// Receiver channels plug directly into a topology via Stream[T](b).From.
type Broadcast[T any] struct {
	name string

	mu        sync.Mutex
	receivers []chan T
	closed    bool

	limit        int
	resendLatest bool
	latest       T
	hasLatest    bool

	store  state.KeyValueStore[string, T]
	logger *zap.Logger
}

func NewBroadcast[T any](name string, opts ...broadcast.Option) *Broadcast[T] {
	opt := newBroadcastOption(opts...)
	return &Broadcast[T]{
		name:         name,
		limit:        opt.Buffer(),
		resendLatest: opt.ResendLatest(),
		logger:       opt.Logger(),
	}
}

// NewPersistentBroadcast additionally records the latest message in the
// store described by mater, keyed by the channel name, and reloads it at
// construction. Combined with broadcast.WithResendLatest this lets new
// receivers observe the last message sent before a restart.
func NewPersistentBroadcast[T any](name string, mater materialized.Materialized[string, T], opts ...broadcast.Option) *Broadcast[T] {
	b := NewBroadcast[T](name, opts...)
	b.store = state.NewKeyValueStore(mater)
	if latest, err := b.store.Get(name); err == nil {
		b.latest = latest
		b.hasLatest = true
	}
	return b
}

func (b *Broadcast[T]) Name() string {
	return b.name
}

// Send delivers msg to every receiver and records it as the latest message.
func (b *Broadcast[T]) Send(msg T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrChannelClosed
	}

	b.latest = msg
	b.hasLatest = true
	if b.store != nil {
		b.store.Put(b.name, msg)
	}

	for _, ch := range b.receivers {
		select {
		case ch <- msg:
			continue
		default:
		}

		// receiver buffer is full, make room by dropping its oldest message.
		select {
		case dropped := <-ch:
			b.logger.Warn("receiver buffer full, dropping oldest message",
				zap.String("channel", b.name),
				zap.Any("message", dropped))
		default:
		}
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

// NewReceiver returns a channel receiving every message sent from now on.
// The channel is closed when the Broadcast is closed.
func (b *Broadcast[T]) NewReceiver() <-chan T {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan T, b.limit)
	if !b.closed {
		if b.resendLatest && b.hasLatest {
			ch <- b.latest
		}
		b.receivers = append(b.receivers, ch)
	} else {
		close(ch)
	}
	return ch
}

// Close closes all receiver channels and the backing store, if any.
// Receivers can still drain messages already buffered. Send returns
// ErrChannelClosed afterwards.
func (b *Broadcast[T]) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, ch := range b.receivers {
		close(ch)
	}
	b.receivers = nil

	if closer, ok := b.store.(Closer); ok {
		return closer.Close()
	}
	return nil
}
