package qkernel

import (
	"math"
	"math/rand/v2"
)

// MaxLayers bounds the QAOA depth p.
const MaxLayers = 5

type QAOAConfig struct {
	Layers      int     `yaml:"layers"`
	Iterations  int     `yaml:"iterations"`
	Starts      int     `yaml:"starts"`
	InitialStep float64 `yaml:"initial_step"`
}

func DefaultQAOAConfig() QAOAConfig {
	return QAOAConfig{
		Layers:      2,
		Iterations:  60,
		Starts:      8,
		InitialStep: math.Pi / 4,
	}
}

func (c QAOAConfig) Validate() error {
	if c.Layers < 1 || c.Layers > MaxLayers {
		return newError("qaoa", ErrDomain, "layers %d outside [1, %d]", c.Layers, MaxLayers)
	}
	if c.Iterations < 1 || c.Iterations > MaxIterations {
		return newError("qaoa", ErrDomain, "iterations %d outside [1, %d]", c.Iterations, MaxIterations)
	}
	if c.Starts < 1 {
		return newError("qaoa", ErrDomain, "starts %d must be positive", c.Starts)
	}
	if math.IsNaN(c.InitialStep) || c.InitialStep <= 0 {
		return newError("qaoa", ErrDomain, "initial step %v must be positive", c.InitialStep)
	}
	return nil
}

type QAOAResult struct {
	Gammas             []float64
	Betas              []float64
	ExpectedCut        float64
	BestBitstring      string
	BestCut            int
	OptimalCut         int
	ApproximationRatio float64
	Probabilities      []float64
	Trace              Trace
}

/*
QAOA runs the alternating cost/mixer ansatz for MaxCut on the full 2^n
register.

The cost layer is exp(−iγC) with C(b) the cut size of bitstring b, so each
amplitude picks up exp(−iγ·cut(b)). The mixer is exp(−iβX) on every site,
which is R_X(2β). Both are periodic in their ranges γ ∈ [0, 2π), β ∈ [0, π).

Parameters start at the best of Starts uniform samples. Each later step is
one compass-search poll: try ±step along every coordinate, take the best
improvement, and halve the step when nothing improves. The trace holds the
best expected cut so far, so it never decreases.
*/
type QAOA struct {
	machine
	cfg   QAOAConfig
	graph Graph
	rng   *rand.Rand

	cost   []float64
	params []float64
	value  float64
	step   float64
}

func NewQAOA(g Graph, cfg QAOAConfig, rng *rand.Rand) (*QAOA, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, newError("qaoa", ErrDomain, "missing random source")
	}

	cost := make([]float64, 1<<g.Nodes)
	for i := range cost {
		cost[i] = float64(g.Cut(i))
	}

	return &QAOA{
		machine: machine{op: "qaoa"},
		cfg:     cfg,
		graph:   g,
		rng:     rng,
		cost:    cost,
		step:    cfg.InitialStep,
	}, nil
}

// evolve prepares the ansatz state for params = (γ₁..γ_p, β₁..β_p).
func (q *QAOA) evolve(params []float64) (*Register, error) {
	reg, err := NewUniformRegister(q.graph.Nodes)
	if err != nil {
		return nil, err
	}

	p := q.cfg.Layers
	for layer := 0; layer < p; layer++ {
		reg.ApplyDiagonalPhase(params[layer], func(i int) float64 { return q.cost[i] })

		mixer, err := Rotation(AxisX, 2*params[p+layer])
		if err != nil {
			return nil, err
		}
		for site := 0; site < q.graph.Nodes; site++ {
			if err := reg.ApplySingle(mixer, site); err != nil {
				return nil, err
			}
		}
	}

	if !reg.finite() {
		return nil, newError("qaoa", ErrNumeric, "non-finite amplitude")
	}
	return reg, nil
}

// expectation is ⟨C⟩ for the given parameters.
func (q *QAOA) expectation(params []float64) (float64, error) {
	reg, err := q.evolve(params)
	if err != nil {
		return 0, err
	}
	return reg.Expectation(func(i int) float64 { return q.cost[i] }), nil
}

func (q *QAOA) randomParams() []float64 {
	p := q.cfg.Layers
	params := make([]float64, 2*p)
	for i := 0; i < p; i++ {
		params[i] = q.rng.Float64() * 2 * math.Pi
		params[p+i] = q.rng.Float64() * math.Pi
	}
	return params
}

func (q *QAOA) Step() error {
	if err := q.guard(); err != nil {
		return err
	}

	i := q.status.Iteration
	var err error
	if i == 0 {
		err = q.initialize()
	} else {
		err = q.poll()
	}
	if err != nil {
		return q.fail(err)
	}

	if err := q.record(i, q.value); err != nil {
		return err
	}
	if q.status.Iteration == q.cfg.Iterations {
		q.succeed()
	}
	return nil
}

func (q *QAOA) initialize() error {
	q.value = math.Inf(-1)
	for s := 0; s < q.cfg.Starts; s++ {
		candidate := q.randomParams()
		v, err := q.expectation(candidate)
		if err != nil {
			return err
		}
		if v > q.value {
			q.value, q.params = v, candidate
		}
	}
	return nil
}

func (q *QAOA) poll() error {
	bestValue, bestParams := q.value, q.params

	for d := range q.params {
		for _, sign := range []float64{1, -1} {
			trial := append([]float64(nil), q.params...)
			trial[d] += sign * q.step

			v, err := q.expectation(trial)
			if err != nil {
				return err
			}
			if v > bestValue+1e-12 {
				bestValue, bestParams = v, trial
			}
		}
	}

	if bestValue > q.value {
		q.value, q.params = bestValue, bestParams
	} else {
		q.step /= 2
	}
	return nil
}

// Result summarizes a succeeded run.
func (q *QAOA) Result() (QAOAResult, error) {
	if q.status.Phase != Succeeded {
		return QAOAResult{}, newError("qaoa", ErrDomain, "run is %s", q.status.Phase)
	}

	reg, err := q.evolve(q.params)
	if err != nil {
		return QAOAResult{}, err
	}

	mode, _ := reg.Distribution().Mode()
	optimal, _ := q.graph.MaxCut()

	p := q.cfg.Layers
	res := QAOAResult{
		Gammas:        wrapAngles(q.params[:p], 2*math.Pi),
		Betas:         wrapAngles(q.params[p:], math.Pi),
		ExpectedCut:   q.value,
		BestBitstring: mode.Bitstring,
		BestCut:       q.graph.Cut(mode.Index),
		OptimalCut:    optimal,
		Probabilities: reg.Probabilities(),
		Trace:         q.Trace(),
	}
	if optimal > 0 {
		res.ApproximationRatio = q.value / float64(optimal)
	}
	return res, nil
}

// RunQAOA drives a fresh QAOA run to completion.
func RunQAOA(g Graph, cfg QAOAConfig, rng *rand.Rand) (QAOAResult, error) {
	q, err := NewQAOA(g, cfg, rng)
	if err != nil {
		return QAOAResult{}, err
	}
	if err := Drive(q); err != nil {
		return QAOAResult{}, err
	}
	return q.Result()
}

func wrapAngles(angles []float64, period float64) []float64 {
	out := make([]float64, len(angles))
	for i, a := range angles {
		out[i] = math.Mod(math.Mod(a, period)+period, period)
	}
	return out
}
