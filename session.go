package qkernel

import (
	"math/rand/v2"
	"time"

	"github.com/theapemachine/errnie"
)

/*
Session is the per-user scope of the kernel. It owns the random source, the
experiment log and the metrics registry, and records an experiment for every
successful operation it runs. Nothing in a session is shared with another
session, and a session must not be used from more than one goroutine.
*/
type Session struct {
	config  *Config
	rng     *rand.Rand
	log     *Log
	metrics *Metrics
}

/*
NewSession seeds a session. The same seed, config and clock reproduce every
trace, sample and record id bit for bit.
*/
func NewSession(config *Config, seed uint64, clock func() time.Time) (*Session, error) {
	if config == nil {
		config = NewConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	errnie.Info("NewSession - seed %v, platform %v", seed, config.Platform)

	return &Session{
		config:  config,
		rng:     NewRand(seed),
		log:     NewLog(config.Platform, clock, NewEntropy(seed)),
		metrics: NewMetrics(),
	}, nil
}

func (s *Session) Config() *Config   { return s.config }
func (s *Session) Log() *Log         { return s.log }
func (s *Session) Metrics() *Metrics { return s.metrics }

// Export serializes the session's experiment log.
func (s *Session) Export() ([]byte, error) {
	data, err := s.log.SerializeAll()
	s.metrics.observeOperation("export", err)
	return data, err
}

func (s *Session) record(module ModuleTag, params, results Values) error {
	if _, err := s.log.Append(module, params, results); err != nil {
		return err
	}
	s.metrics.observeExperiment(module)
	return nil
}

// EvolutionReport is what the Bloch-sphere page renders.
type EvolutionReport struct {
	State         Qubit
	Probabilities [2]float64
	Bloch         BlochVector
	Phase         float64
	PhaseDefined  bool
}

// Evolve prepares (θ, φ) and applies gates in order.
func (s *Session) Evolve(theta, phi float64, gates []Gate) (EvolutionReport, error) {
	report, err := s.evolve(theta, phi, gates)
	s.metrics.observeOperation("evolve", err)
	return report, err
}

func (s *Session) evolve(theta, phi float64, gates []Gate) (EvolutionReport, error) {
	start, err := Prepare(theta, phi)
	if err != nil {
		return EvolutionReport{}, err
	}

	circuit := NewCircuit(gates...)
	circuit.Tolerance = s.config.NormTolerance

	state, err := circuit.Apply(start)
	if err != nil {
		return EvolutionReport{}, err
	}

	report := EvolutionReport{
		State:         state,
		Probabilities: state.Probabilities(),
		Bloch:         state.BlochCoordinates(),
	}
	report.Phase, report.PhaseDefined = state.RelativePhase()

	results := Values{
		"state":         state,
		"probabilities": report.Probabilities,
		"bloch":         report.Bloch,
	}
	if report.PhaseDefined {
		results["relative_phase_deg"] = Degrees(report.Phase)
	} else {
		results["relative_phase_deg"] = "undefined"
	}

	err = s.record(ModuleBloch, Values{
		"theta": theta,
		"phi":   phi,
		"gates": gates,
	}, results)
	return report, err
}

// Measure samples shots outcomes from q with the session's random source.
func (s *Session) Measure(q Qubit, shots int) ([2]int, error) {
	counts, err := sampleCounts(q, shots, s.rng, s.config.NormTolerance)
	if err == nil {
		err = s.record(ModuleInterference, Values{
			"state": q,
			"shots": shots,
		}, Values{
			"counts": counts,
		})
	}
	s.metrics.observeOperation("measure", err)
	return counts, err
}

// NoiseReport is what the noise-channel page renders.
type NoiseReport struct {
	Output DensityMatrix
	Purity float64
	Bloch  BlochVector
}

// ApplyNoise sends |q⟩⟨q| through the channels in order.
func (s *Session) ApplyNoise(q Qubit, channels ...Channel) (NoiseReport, error) {
	report, err := s.applyNoise(q, channels)
	s.metrics.observeOperation("noise", err)
	return report, err
}

func (s *Session) applyNoise(q Qubit, channels []Channel) (NoiseReport, error) {
	if err := q.validate("noise", s.config.NormTolerance); err != nil {
		return NoiseReport{}, err
	}

	rho := Pure(q)
	names := make([]any, len(channels))
	for i, c := range channels {
		var err error
		if rho, err = c.apply(rho, s.config.StateTolerance); err != nil {
			return NoiseReport{}, err
		}
		names[i] = Values{"kind": c.Kind.String(), "strength": c.Strength}
	}

	report := NoiseReport{
		Output: rho,
		Purity: rho.Purity(),
		Bloch:  rho.Bloch(),
	}

	err := s.record(ModuleNoise, Values{
		"state":    q,
		"channels": names,
	}, Values{
		"rho":          rho,
		"purity":       report.Purity,
		"bloch":        report.Bloch,
		"bloch_length": report.Bloch.Length(),
	})
	return report, err
}

// EntanglementReport is what the entanglement page renders.
type EntanglementReport struct {
	State       TwoQubit
	Reduced     DensityMatrix
	Entropy     float64
	Concurrence float64
	CHSH        CHSHResult
}

// Entangle analyses a Bell state and evaluates CHSH at angles (a0, a1, b0, b1).
func (s *Session) Entangle(sel BellState, a0, a1, b0, b1 float64) (EntanglementReport, error) {
	report, err := s.entangle(sel, a0, a1, b0, b1)
	s.metrics.observeOperation("entangle", err)
	return report, err
}

func (s *Session) entangle(sel BellState, a0, a1, b0, b1 float64) (EntanglementReport, error) {
	psi, err := Bell(sel)
	if err != nil {
		return EntanglementReport{}, err
	}

	chsh, err := psi.CHSH(a0, a1, b0, b1)
	if err != nil {
		return EntanglementReport{}, err
	}

	report := EntanglementReport{
		State:       psi,
		Reduced:     psi.ReducedFirst(),
		Entropy:     psi.EntanglementEntropy(),
		Concurrence: psi.Concurrence(),
		CHSH:        chsh,
	}

	err = s.record(ModuleEntanglement, Values{
		"bell_state": sel.String(),
		"angles":     []float64{a0, a1, b0, b1},
	}, Values{
		"reduced":     report.Reduced,
		"entropy":     report.Entropy,
		"concurrence": report.Concurrence,
		"chsh":        chsh.S,
		"violation":   chsh.Violation,
	})
	return report, err
}

// RunVQE runs the H₂ VQE model with cfg, using the session defaults when cfg
// is the zero value.
func (s *Session) RunVQE(cfg VQEConfig) (VQEResult, error) {
	if cfg == (VQEConfig{}) {
		cfg = s.config.VQE
	}

	errnie.Info("RunVQE - iterations %v, shot noise %v", cfg.Iterations, cfg.ShotNoise)

	res, err := RunVQE(cfg, s.rng)
	if err == nil {
		s.metrics.observeRun("vqe", len(res.Trace), res.AbsError)
		err = s.record(ModuleVQE, Values{
			"iterations": cfg.Iterations,
			"shot_noise": cfg.ShotNoise,
		}, Values{
			"final_energy":      res.FinalEnergy,
			"exact_energy":      res.ExactEnergy,
			"abs_error":         res.AbsError,
			"chemical_accuracy": res.ChemicalAccuracy,
			"trace":             res.Trace,
		})
	}
	s.metrics.observeOperation("vqe", err)
	return res, err
}

// RunQAOA solves MaxCut on g, using the session defaults when cfg is the
// zero value.
func (s *Session) RunQAOA(g Graph, cfg QAOAConfig) (QAOAResult, error) {
	if cfg == (QAOAConfig{}) {
		cfg = s.config.QAOA
	}

	errnie.Info("RunQAOA - nodes %v, edges %v, layers %v", g.Nodes, len(g.Edges), cfg.Layers)

	res, err := RunQAOA(g, cfg, s.rng)
	if err == nil {
		s.metrics.observeRun("qaoa", len(res.Trace), float64(res.OptimalCut)-res.ExpectedCut)
		err = s.record(ModuleQAOA, Values{
			"graph":  g,
			"layers": cfg.Layers,
		}, Values{
			"gammas":              res.Gammas,
			"betas":               res.Betas,
			"expected_cut":        res.ExpectedCut,
			"best_bitstring":      res.BestBitstring,
			"best_cut":            res.BestCut,
			"optimal_cut":         res.OptimalCut,
			"approximation_ratio": res.ApproximationRatio,
			"trace":               res.Trace,
		})
	}
	s.metrics.observeOperation("qaoa", err)
	return res, err
}

// RandomGraph draws a MaxCut instance from the session's random source.
func (s *Session) RandomGraph(n int, density float64) (Graph, error) {
	g, err := RandomGraph(n, density, s.rng)
	s.metrics.observeOperation("random_graph", err)
	return g, err
}

// Kernel computes the quantum-kernel Gram matrix of samples.
func (s *Session) Kernel(samples [][]float64) ([][]float64, error) {
	gram, err := KernelMatrix(samples)
	if err == nil {
		err = s.record(ModuleQML, Values{"samples": samples}, Values{"gram": gram})
	}
	s.metrics.observeOperation("kernel", err)
	return gram, err
}

// RepetitionReport compares the analytic and sampled logical error rates.
type RepetitionReport struct {
	Analytic  float64
	Simulated float64
}

// RepetitionCode evaluates a distance-d repetition code at flip rate p.
func (s *Session) RepetitionCode(p float64, distance, trials int) (RepetitionReport, error) {
	report, err := s.repetitionCode(p, distance, trials)
	s.metrics.observeOperation("repetition", err)
	return report, err
}

func (s *Session) repetitionCode(p float64, distance, trials int) (RepetitionReport, error) {
	analytic, err := LogicalErrorRate(p, distance)
	if err != nil {
		return RepetitionReport{}, err
	}
	simulated, err := SimulateRepetition(p, distance, trials, s.rng)
	if err != nil {
		return RepetitionReport{}, err
	}

	report := RepetitionReport{Analytic: analytic, Simulated: simulated}
	err = s.record(ModuleErrorCorrection, Values{
		"p":        p,
		"distance": distance,
		"trials":   trials,
	}, Values{
		"analytic":  analytic,
		"simulated": simulated,
	})
	return report, err
}
