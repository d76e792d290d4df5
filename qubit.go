package qkernel

import (
	"math"
	"math/cmplx"
)

// amplitudeFloor is the |α| below which the relative phase is undefined.
const amplitudeFloor = 1e-10

// Qubit is a pure single-qubit state α|0⟩ + β|1⟩.
type Qubit struct {
	Alpha complex128 // |0⟩ amplitude
	Beta  complex128 // |1⟩ amplitude
}

var (
	Zero = Qubit{Alpha: 1}
	One  = Qubit{Beta: 1}
	Plus = Qubit{Alpha: invSqrt2, Beta: invSqrt2}
)

// NewQubit builds a state from raw amplitudes, which must have unit norm.
func NewQubit(alpha, beta complex128) (Qubit, error) {
	q := Qubit{Alpha: alpha, Beta: beta}
	if err := q.validate("new qubit", defaultNormTolerance); err != nil {
		return Qubit{}, err
	}
	return q, nil
}

// validate rejects non-finite amplitudes and norm drift beyond tol.
func (q Qubit) validate(op string, tol float64) error {
	if !q.finite() {
		return newError(op, ErrNumeric, "non-finite amplitude")
	}
	if drift := math.Abs(q.Norm() - 1); drift > tol {
		return newError(op, ErrDomain, "input norm off by %g", drift)
	}
	return nil
}

/*
Prepare returns cos(θ/2)|0⟩ + e^{iφ}sin(θ/2)|1⟩, the point (θ, φ) on the
Bloch sphere. θ must lie in [0, π] and φ in [0, 2π), both radians.
*/
func Prepare(theta, phi float64) (Qubit, error) {
	if math.IsNaN(theta) || theta < 0 || theta > math.Pi {
		return Qubit{}, newError("prepare", ErrDomain, "theta %v outside [0, π]", theta)
	}
	if math.IsNaN(phi) || phi < 0 || phi >= 2*math.Pi {
		return Qubit{}, newError("prepare", ErrDomain, "phi %v outside [0, 2π)", phi)
	}

	return Qubit{
		Alpha: complex(math.Cos(theta/2), 0),
		Beta:  cmplx.Exp(complex(0, phi)) * complex(math.Sin(theta/2), 0),
	}, nil
}

func (q Qubit) Norm() float64 {
	return math.Sqrt(sqAbs(q.Alpha) + sqAbs(q.Beta))
}

// Probabilities returns (|α|², |β|²).
func (q Qubit) Probabilities() [2]float64 {
	return [2]float64{sqAbs(q.Alpha), sqAbs(q.Beta)}
}

/*
RelativePhase returns arg(β/α) in (-π, π]. The second result is false when
|α| is too small for the phase to mean anything.
*/
func (q Qubit) RelativePhase() (float64, bool) {
	if cmplx.Abs(q.Alpha) <= amplitudeFloor {
		return 0, false
	}
	return cmplx.Phase(q.Beta / q.Alpha), true
}

// BlochVector is a point inside or on the unit sphere.
type BlochVector struct {
	X, Y, Z float64
}

func (r BlochVector) Length() float64 {
	return math.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z)
}

/*
BlochCoordinates works on the amplitudes directly, (2Re(α*β), 2Im(α*β),
|α|²−|β|²), which equals (sinθcosφ, sinθsinφ, cosθ) without the inverse
trig and its branch cuts at the poles.
*/
func (q Qubit) BlochCoordinates() BlochVector {
	cross := cmplx.Conj(q.Alpha) * q.Beta
	return BlochVector{
		X: 2 * real(cross),
		Y: 2 * imag(cross),
		Z: sqAbs(q.Alpha) - sqAbs(q.Beta),
	}
}

// Inner returns ⟨q|o⟩.
func (q Qubit) Inner(o Qubit) complex128 {
	return cmplx.Conj(q.Alpha)*o.Alpha + cmplx.Conj(q.Beta)*o.Beta
}

// Amplitudes returns the state as a length-2 slice for boundary code.
func (q Qubit) Amplitudes() []complex128 {
	return []complex128{q.Alpha, q.Beta}
}

func (q Qubit) finite() bool {
	return finiteComplex(q.Alpha) && finiteComplex(q.Beta)
}

func sqAbs(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

func finiteComplex(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}
