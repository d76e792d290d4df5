package qkernel

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestVQE(t *testing.T) {
	Convey("Given a noiseless 50-iteration VQE run", t, func() {
		res, err := RunVQE(VQEConfig{Iterations: 50, NoiseSigma: 0.02}, NewRand(1))
		So(err, ShouldBeNil)

		Convey("It should land on the exact ground energy with chemical accuracy", func() {
			So(res.FinalEnergy, ShouldAlmostEqual, H2GroundEnergy, 1e-6)
			So(res.AbsError, ShouldBeLessThan, 1e-6)
			So(res.ChemicalAccuracy, ShouldBeTrue)
		})

		Convey("The trace should start at E₀ and decrease monotonically", func() {
			So(len(res.Trace), ShouldEqual, 50)
			So(res.Trace[0].Value, ShouldAlmostEqual, 0, 1e-12)
			for i := 1; i < len(res.Trace); i++ {
				So(res.Trace[i].Iteration, ShouldEqual, res.Trace[i-1].Iteration+1)
				So(res.Trace[i].Value, ShouldBeLessThan, res.Trace[i-1].Value)
			}
		})
	})

	Convey("Given a VQE run with shot noise", t, func() {
		cfg := VQEConfig{Iterations: 80, ShotNoise: true, NoiseSigma: 0.02}

		Convey("The same seed should reproduce the trace bit for bit", func() {
			a, err := RunVQE(cfg, NewRand(42))
			So(err, ShouldBeNil)
			b, err := RunVQE(cfg, NewRand(42))
			So(err, ShouldBeNil)
			So(a.Trace, ShouldResemble, b.Trace)

			c, err := RunVQE(cfg, NewRand(43))
			So(err, ShouldBeNil)
			So(a.Trace, ShouldNotResemble, c.Trace)
		})

		Convey("The final energy should stay near the ground energy", func() {
			res, err := RunVQE(cfg, NewRand(7))
			So(err, ShouldBeNil)
			// σ·e^{-1} ≈ 0.0074, so six sigma is well under 0.05.
			So(res.AbsError, ShouldBeLessThan, 0.05)
		})

		Convey("A missing random source should be rejected up front", func() {
			_, err := NewVQE(cfg, nil)
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})
	})

	Convey("Given the step-wise VQE interface", t, func() {
		v, err := NewVQE(VQEConfig{Iterations: 3}, nil)
		So(err, ShouldBeNil)

		Convey("It should walk NotStarted → Running → Succeeded", func() {
			So(v.Status().Phase, ShouldEqual, NotStarted)

			So(v.Step(), ShouldBeNil)
			So(v.Status().Phase, ShouldEqual, Running)
			So(v.Status().Iteration, ShouldEqual, 1)

			_, err := v.Result()
			So(errors.Is(err, ErrDomain), ShouldBeTrue)

			So(v.Step(), ShouldBeNil)
			So(v.Step(), ShouldBeNil)
			So(v.Status().Phase, ShouldEqual, Succeeded)
			So(v.Status().Done(), ShouldBeTrue)

			Convey("Stepping a finished run should fail without touching the trace", func() {
				So(errors.Is(v.Step(), ErrDomain), ShouldBeTrue)
				So(len(v.Trace()), ShouldEqual, 3)
			})
		})
	})

	Convey("Given invalid VQE settings", t, func() {
		for _, n := range []int{0, MaxIterations + 1} {
			_, err := RunVQE(VQEConfig{Iterations: n}, NewRand(1))
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		}

		_, err := RunVQE(VQEConfig{Iterations: 10, NoiseSigma: -1}, NewRand(1))
		So(errors.Is(err, ErrDomain), ShouldBeTrue)
	})

	Convey("Given a run that produces a non-finite energy", t, func() {
		v, err := NewVQE(VQEConfig{Iterations: 5, ShotNoise: true, NoiseSigma: math.Inf(1)}, NewRand(1))
		So(err, ShouldBeNil)

		Convey("It should fail as diverged and stay failed", func() {
			err := Drive(v)
			So(errors.Is(err, ErrDiverged), ShouldBeTrue)
			So(v.Status().Phase, ShouldEqual, Failed)
			So(errors.Is(v.Step(), ErrDiverged), ShouldBeTrue)
			So(len(v.Trace()), ShouldEqual, 0)
		})
	})
}

func TestQAOA(t *testing.T) {
	Convey("Given MaxCut on the 4-node cycle with p = 2", t, func() {
		g := ring(4)
		cfg := QAOAConfig{Layers: 2, Iterations: 60, Starts: 8, InitialStep: math.Pi / 4}

		res, err := RunQAOA(g, cfg, NewRand(2024))
		So(err, ShouldBeNil)

		Convey("The best bitstring should be an optimal cut of 4", func() {
			So(res.OptimalCut, ShouldEqual, 4)
			So(res.BestCut, ShouldEqual, 4)
			So(res.BestBitstring, ShouldBeIn, []string{"1010", "0101"})
		})

		Convey("The expected cut should beat the p = 1 optimum of 3", func() {
			So(res.ExpectedCut, ShouldBeGreaterThan, 3)
			So(res.ApproximationRatio, ShouldBeGreaterThan, 0.75)
			So(res.ApproximationRatio, ShouldBeLessThanOrEqualTo, 1+1e-9)
		})

		Convey("The trace should never get worse", func() {
			So(len(res.Trace), ShouldEqual, 60)
			for i := 1; i < len(res.Trace); i++ {
				So(res.Trace[i].Value, ShouldBeGreaterThanOrEqualTo, res.Trace[i-1].Value)
			}
		})

		Convey("The parameters should be reported in their natural ranges", func() {
			So(len(res.Gammas), ShouldEqual, 2)
			So(len(res.Betas), ShouldEqual, 2)
			for _, gamma := range res.Gammas {
				So(gamma, ShouldBeBetweenOrEqual, 0.0, 2*math.Pi)
			}
			for _, beta := range res.Betas {
				So(beta, ShouldBeBetweenOrEqual, 0.0, math.Pi)
			}
		})

		Convey("The final distribution should be normalized", func() {
			var total float64
			for _, p := range res.Probabilities {
				total += p
			}
			So(total, ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("The same seed should reproduce the trace", func() {
			again, err := RunQAOA(g, cfg, NewRand(2024))
			So(err, ShouldBeNil)
			So(again.Trace, ShouldResemble, res.Trace)
			So(again.Gammas, ShouldResemble, res.Gammas)
		})
	})

	Convey("Given the cost layer convention", t, func() {
		q, err := NewQAOA(ring(4), QAOAConfig{Layers: 1, Iterations: 1, Starts: 1, InitialStep: 1}, NewRand(1))
		So(err, ShouldBeNil)

		Convey("γ = 0 and β = 0 should leave the uniform superposition", func() {
			v, err := q.expectation([]float64{0, 0})
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 2, 1e-12)
		})

		Convey("The p = 1 optimum should be 3 at γ = π/4, β = π/8", func() {
			v, err := q.expectation([]float64{math.Pi / 4, math.Pi / 8})
			So(err, ShouldBeNil)
			So(math.Abs(v-3), ShouldBeLessThan, 1e-9)
		})
	})

	Convey("Given invalid QAOA input", t, func() {
		Convey("Graphs outside the register size should be domain errors", func() {
			big := Graph{Nodes: 7, Edges: []Edge{{0, 1}, {5, 6}}}
			_, err := RunQAOA(big, DefaultQAOAConfig(), NewRand(1))
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})

		Convey("Edges out of range or self loops should be domain errors", func() {
			_, err := RunQAOA(Graph{Nodes: 3, Edges: []Edge{{0, 3}}}, DefaultQAOAConfig(), NewRand(1))
			So(errors.Is(err, ErrDomain), ShouldBeTrue)

			_, err = RunQAOA(Graph{Nodes: 3, Edges: []Edge{{1, 1}}}, DefaultQAOAConfig(), NewRand(1))
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})

		Convey("Too many layers should be a domain error", func() {
			cfg := DefaultQAOAConfig()
			cfg.Layers = MaxLayers + 1
			_, err := RunQAOA(ring(4), cfg, NewRand(1))
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})
	})
}

func TestGraph(t *testing.T) {
	Convey("Given the 4-node cycle", t, func() {
		g := ring(4)

		Convey("Cuts should count edges across the partition", func() {
			So(g.Cut(0b0000), ShouldEqual, 0)
			So(g.Cut(0b0101), ShouldEqual, 4)
			So(g.Cut(0b0011), ShouldEqual, 2)
		})

		Convey("MaxCut should enumerate to the optimum", func() {
			best, arg := g.MaxCut()
			So(best, ShouldEqual, 4)
			So(arg, ShouldEqual, 0b0101)
		})
	})

	Convey("Given random graphs", t, func() {
		Convey("The same seed should give the same graph", func() {
			a, err := RandomGraph(6, 0.5, NewRand(3))
			So(err, ShouldBeNil)
			b, err := RandomGraph(6, 0.5, NewRand(3))
			So(err, ShouldBeNil)
			So(a, ShouldResemble, b)
			So(a.Validate(), ShouldBeNil)
		})

		Convey("An empty draw should still get one edge", func() {
			g, err := RandomGraph(3, 0, NewRand(3))
			So(err, ShouldBeNil)
			So(g.Edges, ShouldResemble, []Edge{{U: 0, V: 1}})
		})

		Convey("QAOA should stay within the enumerated optimum on small random graphs", func() {
			for seed := uint64(0); seed < 3; seed++ {
				g, err := RandomGraph(5, 0.6, NewRand(seed))
				So(err, ShouldBeNil)

				res, err := RunQAOA(g, QAOAConfig{Layers: 3, Iterations: 60, Starts: 8, InitialStep: math.Pi / 4}, NewRand(seed))
				So(err, ShouldBeNil)
				So(res.ApproximationRatio, ShouldBeGreaterThan, 0.5)
				So(res.ApproximationRatio, ShouldBeLessThanOrEqualTo, 1+1e-9)
				So(res.BestCut, ShouldBeLessThanOrEqualTo, res.OptimalCut)
			}
		})

		Convey("Sizes and densities out of range should be domain errors", func() {
			_, err := RandomGraph(1, 0.5, NewRand(1))
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
			_, err = RandomGraph(4, 1.5, NewRand(1))
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
			_, err = RandomGraph(4, math.NaN(), NewRand(1))
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})
	})

	Convey("Given ring sizes that do not form a simple cycle", t, func() {
		for _, n := range []int{-1, 0, 1, 2, MaxRegisterQubits + 1} {
			_, err := CycleGraph(n)
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		}

		Convey("The smallest ring should have three distinct edges", func() {
			g := ring(3)
			So(g.Edges, ShouldResemble, []Edge{{0, 1}, {1, 2}, {2, 0}})
			So(g.Validate(), ShouldBeNil)
		})
	})
}

func ring(n int) Graph {
	g, err := CycleGraph(n)
	So(err, ShouldBeNil)
	return g
}
