package qkernel

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDensityMatrix(t *testing.T) {
	Convey("Given pure states", t, func() {
		rng := NewRand(11)

		Convey("Purity should be 1 and the Bloch vector should match the amplitudes", func() {
			for i := 0; i < 100; i++ {
				q, err := Prepare(rng.Float64()*math.Pi, rng.Float64()*2*math.Pi)
				So(err, ShouldBeNil)

				rho := Pure(q)
				So(rho.Validate(1e-9), ShouldBeNil)
				So(rho.Purity(), ShouldAlmostEqual, 1, 1e-12)

				want, got := q.BlochCoordinates(), rho.Bloch()
				So(got.X, ShouldAlmostEqual, want.X, 1e-12)
				So(got.Y, ShouldAlmostEqual, want.Y, 1e-12)
				So(got.Z, ShouldAlmostEqual, want.Z, 1e-12)
				So(rho.Fidelity(q), ShouldAlmostEqual, 1, 1e-12)
			}
		})

		Convey("The eigenvalues should be 0 and 1", func() {
			ev := Pure(Plus).Eigenvalues()
			So(ev[0], ShouldAlmostEqual, 0, 1e-12)
			So(ev[1], ShouldAlmostEqual, 1, 1e-12)
		})
	})

	Convey("Given a Bloch vector", t, func() {
		Convey("Mixed should invert Bloch", func() {
			rho, err := Mixed(BlochVector{X: 0.3, Y: -0.2, Z: 0.5})
			So(err, ShouldBeNil)
			r := rho.Bloch()
			So(r.X, ShouldAlmostEqual, 0.3, 1e-12)
			So(r.Y, ShouldAlmostEqual, -0.2, 1e-12)
			So(r.Z, ShouldAlmostEqual, 0.5, 1e-12)
			So(rho.Purity(), ShouldAlmostEqual, (1+0.38)/2, 1e-12)
		})

		Convey("A vector outside the ball should be a domain error", func() {
			_, err := Mixed(BlochVector{X: 1, Z: 1})
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})
	})

	Convey("Given a matrix that is not a state", t, func() {
		Convey("Validate should reject a wrong trace", func() {
			err := DensityMatrix{Identity}.Validate(1e-9)
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})

		Convey("Validate should reject a negative eigenvalue", func() {
			err := DensityMatrix{Matrix{{1.2, 0}, {0, -0.2}}}.Validate(1e-9)
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})

		Convey("Validate should reject a non-Hermitian matrix", func() {
			err := DensityMatrix{Matrix{{0.5, 0.3}, {0.1, 0.5}}}.Validate(1e-9)
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})
	})
}

func TestChannels(t *testing.T) {
	Convey("Given |+⟩ through a full-strength depolarizing channel", t, func() {
		out, err := Channel{Kind: Depolarizing, Strength: 1}.Apply(Pure(Plus))
		So(err, ShouldBeNil)

		Convey("The output should be maximally mixed", func() {
			So(out.Purity(), ShouldAlmostEqual, 0.5, 1e-6)
			So(out.Bloch().Length(), ShouldAlmostEqual, 0, 1e-6)
			So(VonNeumannEntropy(out), ShouldAlmostEqual, 1, 1e-9)
		})
	})

	Convey("Given the depolarizing channel over a range of strengths", t, func() {
		rng := NewRand(21)

		Convey("Purity should follow the closed form", func() {
			for i := 0; i < 50; i++ {
				q, err := Prepare(rng.Float64()*math.Pi, rng.Float64()*2*math.Pi)
				So(err, ShouldBeNil)
				p := rng.Float64()

				out, err := Channel{Kind: Depolarizing, Strength: p}.Apply(Pure(q))
				So(err, ShouldBeNil)
				So(out.Purity(), ShouldAlmostEqual, (1+(1-p)*(1-p))/2, 1e-12)
				So(out.Purity(), ShouldAlmostEqual, DepolarizedPurity(q.BlochCoordinates(), p), 1e-12)
			}
		})

		Convey("The closed form should also hold for mixed inputs", func() {
			r := BlochVector{X: 0.1, Y: 0.4, Z: -0.3}
			rho, err := Mixed(r)
			So(err, ShouldBeNil)

			out, err := Channel{Kind: Depolarizing, Strength: 0.35}.Apply(rho)
			So(err, ShouldBeNil)
			So(out.Purity(), ShouldAlmostEqual, DepolarizedPurity(r, 0.35), 1e-12)
		})
	})

	Convey("Given the dephasing channel", t, func() {
		out, err := Channel{Kind: Dephasing, Strength: 0.4}.Apply(Pure(Plus))
		So(err, ShouldBeNil)

		Convey("Diagonal entries should be preserved and coherences scaled by 1-p", func() {
			So(real(out.Matrix[0][0]), ShouldAlmostEqual, 0.5, 1e-12)
			So(real(out.Matrix[1][1]), ShouldAlmostEqual, 0.5, 1e-12)
			So(real(out.Matrix[0][1]), ShouldAlmostEqual, 0.3, 1e-12)
			So(out.Bloch().X, ShouldAlmostEqual, 0.6, 1e-12)
		})
	})

	Convey("Given full-strength amplitude damping", t, func() {
		rng := NewRand(31)

		Convey("Every state should decay to |0⟩⟨0|", func() {
			for i := 0; i < 50; i++ {
				q, err := Prepare(rng.Float64()*math.Pi, rng.Float64()*2*math.Pi)
				So(err, ShouldBeNil)

				out, err := Channel{Kind: AmplitudeDamping, Strength: 1}.Apply(Pure(q))
				So(err, ShouldBeNil)
				So(out.Sub(Pure(Zero).Matrix).MaxAbs(), ShouldBeLessThan, 1e-12)
			}
		})
	})

	Convey("Given partial amplitude damping on |1⟩", t, func() {
		out, err := Channel{Kind: AmplitudeDamping, Strength: 0.25}.Apply(Pure(One))
		So(err, ShouldBeNil)

		Convey("A quarter of the population should move to |0⟩", func() {
			So(real(out.Matrix[0][0]), ShouldAlmostEqual, 0.25, 1e-12)
			So(real(out.Matrix[1][1]), ShouldAlmostEqual, 0.75, 1e-12)
		})
	})

	Convey("Given the bit-flip channel", t, func() {
		out, err := Channel{Kind: BitFlip, Strength: 0.1}.Apply(Pure(Zero))
		So(err, ShouldBeNil)

		Convey("It should move p of the population", func() {
			So(real(out.Matrix[1][1]), ShouldAlmostEqual, 0.1, 1e-12)
		})
	})

	Convey("Given channel parameters outside the domain", t, func() {
		Convey("Strengths outside [0, 1] should be channel-domain errors", func() {
			for _, kind := range []ChannelKind{Depolarizing, Dephasing, AmplitudeDamping, BitFlip} {
				for _, p := range []float64{-0.01, 1.01, math.NaN()} {
					_, err := Channel{Kind: kind, Strength: p}.Apply(Pure(Plus))
					So(errors.Is(err, ErrDomain), ShouldBeTrue)
				}
			}
		})

		Convey("An unknown channel kind should be a domain error", func() {
			_, err := Channel{Kind: ChannelKind(9), Strength: 0.1}.Apply(Pure(Plus))
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})

		Convey("An invalid input state should be caught on the output", func() {
			_, err := Channel{Kind: Dephasing, Strength: 0.1}.Apply(DensityMatrix{Identity})
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})

		Convey("The input matrix should never be modified", func() {
			rho := Pure(Plus)
			before := rho
			_, err := Channel{Kind: Dephasing, Strength: 0.9}.Apply(rho)
			So(err, ShouldBeNil)
			So(rho, ShouldResemble, before)
		})
	})

	Convey("Given a channel chain", t, func() {
		out, err := ApplyChannels(Pure(Plus),
			Channel{Kind: Dephasing, Strength: 0.5},
			Channel{Kind: Depolarizing, Strength: 0.5},
		)
		So(err, ShouldBeNil)

		Convey("The effects should compose in order", func() {
			So(out.Bloch().X, ShouldAlmostEqual, 0.25, 1e-12)
		})
	})

	Convey("Given presentation-layer channel labels", t, func() {
		Convey("Known labels should parse", func() {
			c, err := ParseChannel("Amplitude Damping", 0.2)
			So(err, ShouldBeNil)
			So(c, ShouldResemble, Channel{Kind: AmplitudeDamping, Strength: 0.2})

			c, err = ParseChannel("depolarizing", 0.1)
			So(err, ShouldBeNil)
			So(c.Kind, ShouldEqual, Depolarizing)
		})

		Convey("Unknown labels should be domain errors", func() {
			_, err := ParseChannel("thermal", 0.1)
			So(errors.Is(err, ErrDomain), ShouldBeTrue)
		})
	})
}
