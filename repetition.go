package qkernel

import (
	"math"
	"math/rand/v2"
)

func validateRepetition(p float64, distance int) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return newError("repetition code", ErrDomain, "flip probability %v outside [0, 1]", p)
	}
	if distance < 1 || distance%2 == 0 {
		return newError("repetition code", ErrDomain, "distance %d must be odd and positive", distance)
	}
	return nil
}

/*
LogicalErrorRate is the probability that majority voting decodes a
distance-d bit-flip repetition code wrongly when each physical bit flips
independently with probability p: Σ_{k>d/2} C(d,k)·p^k·(1−p)^(d−k).
*/
func LogicalErrorRate(p float64, distance int) (float64, error) {
	if err := validateRepetition(p, distance); err != nil {
		return 0, err
	}

	var rate float64
	for k := distance/2 + 1; k <= distance; k++ {
		rate += binomial(distance, k) * math.Pow(p, float64(k)) * math.Pow(1-p, float64(distance-k))
	}
	return rate, nil
}

// SimulateRepetition estimates LogicalErrorRate by Monte-Carlo majority votes.
func SimulateRepetition(p float64, distance, trials int, rng *rand.Rand) (float64, error) {
	if err := validateRepetition(p, distance); err != nil {
		return 0, err
	}
	if trials < 1 {
		return 0, newError("repetition code", ErrDomain, "trials %d must be positive", trials)
	}

	failures := 0
	for t := 0; t < trials; t++ {
		flips := 0
		for b := 0; b < distance; b++ {
			if rng.Float64() < p {
				flips++
			}
		}
		if flips > distance/2 {
			failures++
		}
	}
	return float64(failures) / float64(trials), nil
}

func binomial(n, k int) float64 {
	out := 1.0
	for i := 1; i <= k; i++ {
		out = out * float64(n-k+i) / float64(i)
	}
	return out
}
