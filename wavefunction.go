package qkernel

import (
	"math/rand/v2"
	"sort"
)

/*
WaveFunction is the outcome distribution of a register prior to measurement.
Collapse draws a single outcome with an explicit random source; Mode picks
the most probable outcome deterministically.
*/
type WaveFunction struct {
	States []State
}

func NewWaveFunction(states []State) *WaveFunction {
	return &WaveFunction{States: states}
}

/*
Mode returns the most probable outcome. Probabilities closer than 1e-12 are
treated as tied and the lower index wins, so symmetric distributions
resolve the same way on every platform.
*/
func (wf *WaveFunction) Mode() (State, bool) {
	if len(wf.States) == 0 {
		return State{}, false
	}

	best := wf.States[0]
	for _, s := range wf.States[1:] {
		if s.Probability > best.Probability+1e-12 {
			best = s
		}
	}
	return best, true
}

/*
Collapse samples one outcome by the Born rule. The probabilities are
normalized first so a register carrying rounding error still samples
correctly.
*/
func (wf *WaveFunction) Collapse(rng *rand.Rand) (State, bool) {
	if len(wf.States) == 0 {
		return State{}, false
	}

	var total float64
	for _, s := range wf.States {
		total += s.Probability
	}
	if total <= 0 {
		return State{}, false
	}

	r := rng.Float64() * total
	var cumulative float64
	for _, s := range wf.States {
		cumulative += s.Probability
		if r < cumulative {
			return s, true
		}
	}

	// Fallback for r landing on the rounding gap at the top.
	return wf.States[len(wf.States)-1], true
}

// Top returns the k most probable outcomes, most probable first. A
// non-positive k returns no outcomes.
func (wf *WaveFunction) Top(k int) []State {
	if k <= 0 {
		return []State{}
	}

	sorted := make([]State, len(wf.States))
	copy(sorted, wf.States)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Probability > sorted[j].Probability
	})

	if k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}
