package mstream

import (
	"math/rand"
	"testing"
)

func benchMessages(n int) []int {
	msgs := make([]int, n)
	v := 0
	for i := range msgs {
		if rand.Intn(2) == 0 {
			v++
		}
		msgs[i] = v
	}
	return msgs
}

func BenchmarkPairwisePredicate(b *testing.B) {
	msgs := benchMessages(1024)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		p := NewPairwisePredicate(isGreater)
		for _, msg := range msgs {
			p.Evaluate(msg)
		}
	}
}

func BenchmarkChangedPredicate(b *testing.B) {
	msgs := benchMessages(1024)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		p := NewChangedPredicate[int]()
		for _, msg := range msgs {
			p.Evaluate(msg)
		}
	}
}
