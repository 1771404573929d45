package state

import (
	"errors"

	"github.com/leandro-lucarella-frequenz/mstream/state/materialized"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("state: key not found")

type ReadOnlyKeyValueStore[K, V any] interface {
	Get(key K) (V, error)
}

type KeyValueStore[K, V any] interface {
	ReadOnlyKeyValueStore[K, V]

	Put(key K, value V)
	Delete(key K)
}

func NewKeyValueStore[K, V any](m materialized.Materialized[K, V]) KeyValueStore[K, V] {
	switch m.StoreType() {
	case materialized.BoltDB:
		return newBoltDBKeyValueStore(m)
	default:
		return newMemKeyValueStore(m)
	}
}
