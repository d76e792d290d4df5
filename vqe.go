package qkernel

import (
	"math"
	"math/rand/v2"
)

const (
	// H2GroundEnergy is the exact H₂ ground-state energy in STO-3G, Hartree.
	H2GroundEnergy = -1.137
	// ChemicalAccuracy is 1.6 mHa.
	ChemicalAccuracy = 1.6e-3

	vqeStartEnergy = 0.0
)

type VQEConfig struct {
	Iterations int     `yaml:"iterations"`
	ShotNoise  bool    `yaml:"shot_noise"`
	NoiseSigma float64 `yaml:"noise_sigma"`
}

func DefaultVQEConfig() VQEConfig {
	return VQEConfig{
		Iterations: 50,
		NoiseSigma: 0.02,
	}
}

func (c VQEConfig) Validate() error {
	if c.Iterations < 1 || c.Iterations > MaxIterations {
		return newError("vqe", ErrDomain, "iterations %d outside [1, %d]", c.Iterations, MaxIterations)
	}
	if math.IsNaN(c.NoiseSigma) || c.NoiseSigma < 0 {
		return newError("vqe", ErrDomain, "noise sigma %v is negative", c.NoiseSigma)
	}
	return nil
}

type VQEResult struct {
	FinalEnergy      float64
	ExactEnergy      float64
	AbsError         float64
	ChemicalAccuracy bool
	Trace            Trace
}

/*
VQE simulates the energy trajectory of a variational eigensolver on H₂. It is
a model of convergence, not an optimizer: the noiseless energy decays
exponentially with scale τ = N/4 from E₀ = 0 and is normalized to land on the
exact ground energy at the last iteration. With shot noise on, each point
gets Gaussian noise of standard deviation σ·exp(−i/N).
*/
type VQE struct {
	machine
	cfg VQEConfig
	rng *rand.Rand
}

func NewVQE(cfg VQEConfig, rng *rand.Rand) (*VQE, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ShotNoise && rng == nil {
		return nil, newError("vqe", ErrDomain, "shot noise needs a random source")
	}

	return &VQE{
		machine: machine{op: "vqe"},
		cfg:     cfg,
		rng:     rng,
	}, nil
}

// idealEnergy is the noiseless energy at iteration i.
func (v *VQE) idealEnergy(i int) float64 {
	n := v.cfg.Iterations
	if n == 1 {
		return H2GroundEnergy
	}

	tau := float64(n) / 4
	floor := math.Exp(-float64(n-1) / tau)
	remaining := (math.Exp(-float64(i)/tau) - floor) / (1 - floor)

	return H2GroundEnergy + (vqeStartEnergy-H2GroundEnergy)*remaining
}

func (v *VQE) Step() error {
	if err := v.guard(); err != nil {
		return err
	}

	i := v.status.Iteration
	energy := v.idealEnergy(i)
	if v.cfg.ShotNoise {
		energy += v.rng.NormFloat64() * v.cfg.NoiseSigma * math.Exp(-float64(i)/float64(v.cfg.Iterations))
	}

	if err := v.record(i, energy); err != nil {
		return err
	}
	if v.status.Iteration == v.cfg.Iterations {
		v.succeed()
	}
	return nil
}

// Result summarizes a succeeded run.
func (v *VQE) Result() (VQEResult, error) {
	if v.status.Phase != Succeeded {
		return VQEResult{}, newError("vqe", ErrDomain, "run is %s", v.status.Phase)
	}

	last, _ := v.trace.Last()
	absErr := math.Abs(last.Value - H2GroundEnergy)

	return VQEResult{
		FinalEnergy:      last.Value,
		ExactEnergy:      H2GroundEnergy,
		AbsError:         absErr,
		ChemicalAccuracy: absErr < ChemicalAccuracy,
		Trace:            v.Trace(),
	}, nil
}

// RunVQE drives a fresh VQE run to completion.
func RunVQE(cfg VQEConfig, rng *rand.Rand) (VQEResult, error) {
	v, err := NewVQE(cfg, rng)
	if err != nil {
		return VQEResult{}, err
	}
	if err := Drive(v); err != nil {
		return VQEResult{}, err
	}
	return v.Result()
}
