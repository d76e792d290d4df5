package qkernel

import (
	"iter"
	"math/rand/v2"
)

/*
Sample yields shots computational-basis outcomes (0 or 1) drawn from q with
probabilities |α|², |β|². Draws happen lazily as the sequence is ranged over,
and the sequence is single-use: once started, ranging over it again yields
nothing. A negative shot count or a state that is not unit-norm yields an
empty sequence; SampleCounts reports why.
*/
func Sample(q Qubit, shots int, rng *rand.Rand) iter.Seq[int] {
	if shots < 0 || q.validate("sample", defaultNormTolerance) != nil {
		return func(func(int) bool) {}
	}
	return draw(q, shots, rng)
}

// draw is Sample without the input checks. q is never renormalized.
func draw(q Qubit, shots int, rng *rand.Rand) iter.Seq[int] {
	p0 := q.Probabilities()[0]
	used := false

	return func(yield func(int) bool) {
		if used {
			return
		}
		used = true

		for i := 0; i < shots; i++ {
			outcome := 1
			if rng.Float64() < p0 {
				outcome = 0
			}
			if !yield(outcome) {
				return
			}
		}
	}
}

// SampleCounts tallies Sample into a histogram.
func SampleCounts(q Qubit, shots int, rng *rand.Rand) ([2]int, error) {
	return sampleCounts(q, shots, rng, defaultNormTolerance)
}

func sampleCounts(q Qubit, shots int, rng *rand.Rand, tol float64) ([2]int, error) {
	var counts [2]int
	if shots < 0 {
		return counts, newError("sample", ErrDomain, "negative shot count %d", shots)
	}
	if err := q.validate("sample", tol); err != nil {
		return counts, err
	}

	for outcome := range draw(q, shots, rng) {
		counts[outcome]++
	}
	return counts, nil
}

// NewRand returns a deterministic generator for the seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewEntropy returns a deterministic byte stream for the seed.
func NewEntropy(seed uint64) *rand.ChaCha8 {
	var key [32]byte
	for i := 0; i < 8; i++ {
		key[i] = byte(seed >> (8 * i))
	}
	return rand.NewChaCha8(key)
}
