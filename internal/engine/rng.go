// Package engine holds the randomness and arithmetic primitives shared by
// the sampler and the audit runner.
package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// Source yields uniform floats in [0, 1).
//
// Implementations are not required to be safe for concurrent use; the audit
// runner gives every worker its own Source.
type Source interface {
	Float64() float64
}

// SourceFactory builds an independent Source.
type SourceFactory func() Source

// NewSource returns a ChaCha8 generator seeded from crypto/rand.
// Sequences are not reproducible across calls.
func NewSource() Source {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand is unavailable; fall back to the clock so sampling still runs
		binary.LittleEndian.PutUint64(seed[:8], uint64(time.Now().UnixNano()))
	}
	return rand.New(rand.NewChaCha8(seed))
}

// NewPCGSource returns a PCG generator with a fixed seed pair.
func NewPCGSource(seed1, seed2 uint64) Source {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// NewSeededFactory returns a factory whose n-th Source is PCG(seed, n).
// A run that builds its sources in a fixed order replays exactly.
func NewSeededFactory(seed uint64) SourceFactory {
	var n atomic.Uint64
	return func() Source {
		return NewPCGSource(seed, n.Add(1))
	}
}

// SequenceSource replays a fixed list of values in a loop.
// It is meant for tests that need exact sampling outcomes.
type SequenceSource struct {
	values []float64
	pos    int
}

// NewSequenceSource creates a SequenceSource over values.
func NewSequenceSource(values ...float64) *SequenceSource {
	copied := make([]float64, len(values))
	copy(copied, values)
	return &SequenceSource{values: copied}
}

// Float64 returns the next value, wrapping around at the end.
func (s *SequenceSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}
