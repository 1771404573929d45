package mstream

import (
	"fmt"

	"github.com/leandro-lucarella-frequenz/mstream/options/predicate"
)

// PairwisePredicate decides whether a message should pass a filter based on
// its relationship with the message that immediately preceded it on the same
// stream.
//
// The relation is called with (previous, current) and its result is returned
// as the filter decision. The first message has no predecessor, so the
// predicate returns the configured first result instead (true unless
// overridden with predicate.WithFirstResult).
//
// Evaluate always remembers the message it was called with, whatever the
// relation returns. The Nth call therefore compares against exactly the
// (N-1)th message, and the result sequence depends only on the relation and
// the messages seen so far.
//
// An instance belongs to exactly one stream's filtering step. Sharing one
// instance between streams, or calling Evaluate concurrently, interleaves the
// remembered message of both callers and corrupts every subsequent decision.
type PairwisePredicate[T any] struct {
	relation    func(prev, cur T) bool
	name        string
	firstResult bool

	// prev is only meaningful while hasPrev is true. The pair acts as
	// a tagged optional so that no value of T, including the zero value,
	// can be mistaken for "no message seen yet".
	prev    T
	hasPrev bool
}

// NewPairwisePredicate returns a predicate evaluating relation against the
// previous and current message. relation must be pure; if it panics, the
// panic propagates to the caller of Evaluate.
func NewPairwisePredicate[T any](relation func(prev, cur T) bool, opts ...predicate.Option) *PairwisePredicate[T] {
	opt := newPredicateOption(opts...)
	return &PairwisePredicate[T]{
		relation:    relation,
		name:        opt.Name(),
		firstResult: opt.FirstResult(),
	}
}

// NewChangedPredicate returns a predicate that passes a message only if it
// differs from the previous one, using Go's native != for T. Values that
// compare equal across representations do so here too, and a value that is
// never equal to itself (such as a NaN) always passes. Callers needing
// identity or custom equality should use NewPairwisePredicate with their own
// relation.
func NewChangedPredicate[T comparable](opts ...predicate.Option) *PairwisePredicate[T] {
	opts = append([]predicate.Option{predicate.WithName("changed")}, opts...)
	return NewPairwisePredicate(func(prev, cur T) bool {
		return prev != cur
	}, opts...)
}

// Evaluate reports whether msg satisfies the relation with the previously
// evaluated message, remembering msg for the next call.
func (p *PairwisePredicate[T]) Evaluate(msg T) bool {
	prev, hasPrev := p.prev, p.hasPrev
	p.prev, p.hasPrev = msg, true

	if !hasPrev {
		return p.firstResult
	}
	return p.relation(prev, msg)
}

func (p *PairwisePredicate[T]) String() string {
	return fmt.Sprintf("%s(firstResult=%t)", p.name, p.firstResult)
}
