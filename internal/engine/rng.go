package engine

import "math/rand"

// RNG is the randomness source used for spawning.
// Games never call math/rand directly so tests can inject a fixed sequence.
type RNG interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

// NewRNG returns a seeded pseudo-random source.
func NewRNG(seed int64) RNG {
	return rand.New(rand.NewSource(seed))
}

// Sequence replays a fixed list of Float64 values, cycling when exhausted.
// Intn derives its result from the next Float64 value.
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence creates a deterministic RNG over values.
// An empty list always yields 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next value of the sequence.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Intn maps the next value to [0, n).
func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int {
	return s.pos
}

// Between returns a value in [lo, hi).
func Between(r RNG, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
