package qkernel

import (
	"math"
	"math/cmplx"
)

/*
Matrix is a 2x2 complex operator acting on a single qubit, stored row-major.
All named operators below are unitary to within 1e-12.
*/
type Matrix [2][2]complex128

var invSqrt2 = complex(1/math.Sqrt2, 0)

var (
	Identity = Matrix{{1, 0}, {0, 1}}
	PauliX   = Matrix{{0, 1}, {1, 0}}
	PauliY   = Matrix{{0, -1i}, {1i, 0}}
	PauliZ   = Matrix{{1, 0}, {0, -1}}

	// H = 1/√2 * [1  1]
	//            [1 -1]
	Hadamard = Matrix{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}}
	PhaseS   = Matrix{{1, 0}, {0, 1i}}
	PhaseT   = Matrix{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
)

// Axis selects the Pauli generator of a rotation.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Pauli returns the Pauli matrix generating rotations about the axis.
func (a Axis) Pauli() (Matrix, error) {
	switch a {
	case AxisX:
		return PauliX, nil
	case AxisY:
		return PauliY, nil
	case AxisZ:
		return PauliZ, nil
	}
	return Matrix{}, newError("pauli", ErrDomain, "unknown axis %d", int(a))
}

/*
Rotation returns R_a(θ) = exp(-iθσ_a/2) = cos(θ/2)·I - i·sin(θ/2)·σ_a, with θ
in radians.
*/
func Rotation(axis Axis, theta float64) (Matrix, error) {
	sigma, err := axis.Pauli()
	if err != nil {
		return Matrix{}, newError("rotation", ErrDomain, "unknown axis %d", int(axis))
	}

	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return Matrix{}, newError("rotation", ErrDomain, "angle %v is not finite", theta)
	}

	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))

	return Identity.Scale(c).Add(sigma.Scale(s)), nil
}

// Mul returns m·n.
func (m Matrix) Mul(n Matrix) Matrix {
	var out Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return out
}

func (m Matrix) Add(n Matrix) Matrix {
	return Matrix{
		{m[0][0] + n[0][0], m[0][1] + n[0][1]},
		{m[1][0] + n[1][0], m[1][1] + n[1][1]},
	}
}

func (m Matrix) Scale(c complex128) Matrix {
	return Matrix{
		{c * m[0][0], c * m[0][1]},
		{c * m[1][0], c * m[1][1]},
	}
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

func (m Matrix) Trace() complex128 {
	return m[0][0] + m[1][1]
}

// Apply returns m|q⟩.
func (m Matrix) Apply(q Qubit) Qubit {
	return Qubit{
		Alpha: m[0][0]*q.Alpha + m[0][1]*q.Beta,
		Beta:  m[1][0]*q.Alpha + m[1][1]*q.Beta,
	}
}

// UnitarityError is ‖U†U − I‖∞, the largest entry-wise modulus.
func (m Matrix) UnitarityError() float64 {
	return m.Dagger().Mul(m).Sub(Identity).MaxAbs()
}

func (m Matrix) IsUnitary(tol float64) bool {
	return m.UnitarityError() <= tol
}

func (m Matrix) Sub(n Matrix) Matrix {
	return m.Add(n.Scale(-1))
}

// MaxAbs is the largest modulus over the four entries.
func (m Matrix) MaxAbs() float64 {
	var worst float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			worst = math.Max(worst, cmplx.Abs(m[i][j]))
		}
	}
	return worst
}

// Radians converts a degree-valued boundary input; do it once, at the edge.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
