package qkernel

import (
	"math"
	"math/cmplx"
)

/*
DensityMatrix is a single-qubit mixed state ρ. Values returned by the kernel
are Hermitian, unit-trace and positive semidefinite to within the state
tolerance.
*/
type DensityMatrix struct {
	Matrix
}

// Pure returns |ψ⟩⟨ψ|.
func Pure(q Qubit) DensityMatrix {
	return DensityMatrix{Matrix{
		{q.Alpha * cmplx.Conj(q.Alpha), q.Alpha * cmplx.Conj(q.Beta)},
		{q.Beta * cmplx.Conj(q.Alpha), q.Beta * cmplx.Conj(q.Beta)},
	}}
}

// Mixed returns (I + r·σ)/2 for a Bloch vector with ‖r‖ ≤ 1.
func Mixed(r BlochVector) (DensityMatrix, error) {
	if length := r.Length(); math.IsNaN(length) || length > 1+defaultNormTolerance {
		return DensityMatrix{}, newError("mixed state", ErrDomain, "bloch length %v exceeds 1", length)
	}

	m := Identity.
		Add(PauliX.Scale(complex(r.X, 0))).
		Add(PauliY.Scale(complex(r.Y, 0))).
		Add(PauliZ.Scale(complex(r.Z, 0))).
		Scale(0.5)

	return DensityMatrix{m}, nil
}

// MaximallyMixed is I/2.
func MaximallyMixed() DensityMatrix {
	return DensityMatrix{Identity.Scale(0.5)}
}

// Purity is Tr(ρ²), 1 for pure states and ½ for I/2.
func (d DensityMatrix) Purity() float64 {
	return real(d.Mul(d.Matrix).Trace())
}

// Bloch returns r_a = Tr(σ_a ρ).
func (d DensityMatrix) Bloch() BlochVector {
	return BlochVector{
		X: real(PauliX.Mul(d.Matrix).Trace()),
		Y: real(PauliY.Mul(d.Matrix).Trace()),
		Z: real(PauliZ.Mul(d.Matrix).Trace()),
	}
}

/*
Eigenvalues returns the spectrum of the Hermitian part in ascending order,
(a+d)/2 ∓ sqrt(((a−d)/2)² + |b|²).
*/
func (d DensityMatrix) Eigenvalues() [2]float64 {
	a, e := real(d.Matrix[0][0]), real(d.Matrix[1][1])
	b := (d.Matrix[0][1] + cmplx.Conj(d.Matrix[1][0])) / 2

	mean := (a + e) / 2
	spread := math.Hypot((a-e)/2, cmplx.Abs(b))

	return [2]float64{mean - spread, mean + spread}
}

// Fidelity returns ⟨ψ|ρ|ψ⟩ against a pure reference state.
func (d DensityMatrix) Fidelity(q Qubit) float64 {
	return real(q.Inner(d.Matrix.Apply(q)))
}

/*
Validate checks the density-matrix invariants within tol: Hermitian, unit
trace and eigenvalues in [0, 1].
*/
func (d DensityMatrix) Validate(tol float64) error {
	m := d.Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !finiteComplex(m[i][j]) {
				return newError("density", ErrNumeric, "non-finite entry at (%d,%d)", i, j)
			}
		}
	}

	if herm := d.Sub(d.Dagger()).MaxAbs(); herm > tol {
		return newError("density", ErrDomain, "not Hermitian (off by %g)", herm)
	}

	if tr := d.Trace(); cmplx.Abs(tr-1) > tol {
		return newError("density", ErrDomain, "trace %v is not 1", tr)
	}

	for _, lambda := range d.Eigenvalues() {
		if lambda < -tol || lambda > 1+tol {
			return newError("density", ErrDomain, "eigenvalue %g outside [0, 1]", lambda)
		}
	}

	return nil
}

// DepolarizedPurity is the closed form purity after a depolarizing channel
// of strength p acting on a state with Bloch vector r.
func DepolarizedPurity(r BlochVector, p float64) float64 {
	shrunk := (1 - p) * r.Length()
	return (1 + shrunk*shrunk) / 2
}
