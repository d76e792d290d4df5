package qkernel

import (
	"fmt"
	"math"
	"math/cmplx"
)

// eigenFloor is the smallest eigenvalue counted in the von Neumann entropy.
const eigenFloor = 1e-10

// BellState selects one of the four maximally entangled two-qubit states.
type BellState int

const (
	PhiPlus BellState = iota
	PhiMinus
	PsiPlus
	PsiMinus
)

func (b BellState) String() string {
	switch b {
	case PhiPlus:
		return "Φ+"
	case PhiMinus:
		return "Φ-"
	case PsiPlus:
		return "Ψ+"
	case PsiMinus:
		return "Ψ-"
	default:
		return fmt.Sprintf("BellState(%d)", int(b))
	}
}

/*
TwoQubit is a pure two-qubit state in the basis |00⟩, |01⟩, |10⟩, |11⟩, where
the left bit belongs to the first qubit.
*/
type TwoQubit [4]complex128

// NewTwoQubit validates that the amplitudes have unit norm.
func NewTwoQubit(amplitudes []complex128) (TwoQubit, error) {
	var psi TwoQubit
	if len(amplitudes) != 4 {
		return psi, newError("two-qubit state", ErrDimension, "need 4 amplitudes, got %d", len(amplitudes))
	}
	copy(psi[:], amplitudes)

	if drift := math.Abs(psi.Norm() - 1); math.IsNaN(drift) || drift > defaultNormTolerance {
		return TwoQubit{}, newError("two-qubit state", ErrDomain, "norm off by %g", drift)
	}
	return psi, nil
}

// Bell returns the selected Bell state.
func Bell(sel BellState) (TwoQubit, error) {
	switch sel {
	case PhiPlus:
		return TwoQubit{invSqrt2, 0, 0, invSqrt2}, nil
	case PhiMinus:
		return TwoQubit{invSqrt2, 0, 0, -invSqrt2}, nil
	case PsiPlus:
		return TwoQubit{0, invSqrt2, invSqrt2, 0}, nil
	case PsiMinus:
		return TwoQubit{0, invSqrt2, -invSqrt2, 0}, nil
	}
	return TwoQubit{}, newError("bell state", ErrDomain, "unknown selector %d", int(sel))
}

// Product returns |a⟩⊗|b⟩.
func Product(a, b Qubit) TwoQubit {
	return TwoQubit{
		a.Alpha * b.Alpha,
		a.Alpha * b.Beta,
		a.Beta * b.Alpha,
		a.Beta * b.Beta,
	}
}

func (psi TwoQubit) Norm() float64 {
	var sum float64
	for _, amp := range psi {
		sum += sqAbs(amp)
	}
	return math.Sqrt(sum)
}

// Probabilities returns the four outcome probabilities, |00⟩ first.
func (psi TwoQubit) Probabilities() [4]float64 {
	var out [4]float64
	for i, amp := range psi {
		out[i] = sqAbs(amp)
	}
	return out
}

/*
ReducedFirst traces out the second qubit:
ρ₁[i][j] = Σ_k ψ[2i+k]·conj(ψ[2j+k]).
*/
func (psi TwoQubit) ReducedFirst() DensityMatrix {
	var rho Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				rho[i][j] += psi[2*i+k] * cmplx.Conj(psi[2*j+k])
			}
		}
	}
	return DensityMatrix{rho}
}

// ReducedSecond traces out the first qubit.
func (psi TwoQubit) ReducedSecond() DensityMatrix {
	var rho Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				rho[i][j] += psi[2*k+i] * cmplx.Conj(psi[2*k+j])
			}
		}
	}
	return DensityMatrix{rho}
}

// VonNeumannEntropy is −Σ λ log₂ λ over the eigenvalues above 1e-10.
func VonNeumannEntropy(rho DensityMatrix) float64 {
	var entropy float64
	for _, lambda := range rho.Eigenvalues() {
		if lambda > eigenFloor {
			entropy -= lambda * math.Log2(lambda)
		}
	}
	return entropy
}

// EntanglementEntropy is the entropy of the first qubit's reduced state.
func (psi TwoQubit) EntanglementEntropy() float64 {
	return VonNeumannEntropy(psi.ReducedFirst())
}

/*
Concurrence is |⟨ψ|σy⊗σy|ψ*⟩|. σy⊗σy maps (a, b, c, d) to (−d, c, b, −a),
which reduces the inner product to 2|ad − bc|.
*/
func (psi TwoQubit) Concurrence() float64 {
	conj := TwoQubit{}
	for i, amp := range psi {
		conj[i] = cmplx.Conj(amp)
	}

	flipped := TwoQubit{-conj[3], conj[2], conj[1], -conj[0]}
	return cmplx.Abs(psi.inner(flipped))
}

func (psi TwoQubit) inner(other TwoQubit) complex128 {
	var sum complex128
	for i := range psi {
		sum += cmplx.Conj(psi[i]) * other[i]
	}
	return sum
}

// apply computes (a⊗b)|ψ⟩.
func (psi TwoQubit) apply(a, b Matrix) TwoQubit {
	var out TwoQubit
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					out[2*i+j] += a[i][k] * b[j][l] * psi[2*k+l]
				}
			}
		}
	}
	return out
}

// measurementAxis is cosθ·Z + sinθ·X, a spin observable in the X–Z plane.
func measurementAxis(theta float64) Matrix {
	return PauliZ.Scale(complex(math.Cos(theta), 0)).Add(PauliX.Scale(complex(math.Sin(theta), 0)))
}

// Correlator returns E(a, b) = ⟨ψ|A(a)⊗B(b)|ψ⟩.
func (psi TwoQubit) Correlator(a, b float64) float64 {
	return real(psi.inner(psi.apply(measurementAxis(a), measurementAxis(b))))
}

// CHSHResult is the outcome of a CHSH evaluation.
type CHSHResult struct {
	S            float64
	Violation    bool
	ClassicalMax float64
	QuantumBound float64
}

/*
CHSH evaluates S = E(a0,b0) + E(a0,b1) + E(a1,b0) − E(a1,b1). Any |S| > 2 is
a violation of local realism; quantum mechanics caps |S| at 2√2.
*/
func (psi TwoQubit) CHSH(a0, a1, b0, b1 float64) (CHSHResult, error) {
	for _, angle := range []float64{a0, a1, b0, b1} {
		if math.IsNaN(angle) || math.IsInf(angle, 0) {
			return CHSHResult{}, newError("chsh", ErrDomain, "angle %v is not finite", angle)
		}
	}

	s := psi.Correlator(a0, b0) + psi.Correlator(a0, b1) + psi.Correlator(a1, b0) - psi.Correlator(a1, b1)

	return CHSHResult{
		S:            s,
		Violation:    math.Abs(s) > 2+defaultNormTolerance,
		ClassicalMax: 2,
		QuantumBound: 2 * math.Sqrt2,
	}, nil
}
