package qkernel

import (
	"math"
	"math/cmplx"
)

// MaxRegisterQubits caps the dense register at 2^6 amplitudes.
const MaxRegisterQubits = 6

/*
Register is a small dense n-qubit state vector. Basis index bit q holds the
value of qubit q, so qubit 0 is the least significant bit.
*/
type Register struct {
	Qubits int
	Vector []complex128
}

// NewRegister returns |0…0⟩ on n qubits.
func NewRegister(n int) (*Register, error) {
	if n < 1 || n > MaxRegisterQubits {
		return nil, newError("register", ErrDomain, "qubit count %d outside [1, %d]", n, MaxRegisterQubits)
	}

	vector := make([]complex128, 1<<n)
	vector[0] = 1
	return &Register{Qubits: n, Vector: vector}, nil
}

// NewUniformRegister returns |+⟩^⊗n, the equal superposition.
func NewUniformRegister(n int) (*Register, error) {
	reg, err := NewRegister(n)
	if err != nil {
		return nil, err
	}

	amp := complex(1/math.Sqrt(float64(len(reg.Vector))), 0)
	for i := range reg.Vector {
		reg.Vector[i] = amp
	}
	return reg, nil
}

func (r *Register) Clone() *Register {
	vector := make([]complex128, len(r.Vector))
	copy(vector, r.Vector)
	return &Register{Qubits: r.Qubits, Vector: vector}
}

// ApplySingle applies a single-qubit operator to the target qubit in place.
func (r *Register) ApplySingle(u Matrix, target int) error {
	if len(r.Vector) != 1<<r.Qubits {
		return newError("register apply", ErrDimension, "vector length %d does not match %d qubits", len(r.Vector), r.Qubits)
	}
	if target < 0 || target >= r.Qubits {
		return newError("register apply", ErrDimension, "target %d outside register of %d qubits", target, r.Qubits)
	}

	mask := 1 << target
	for i := range r.Vector {
		if i&mask != 0 {
			continue
		}
		a0, a1 := r.Vector[i], r.Vector[i|mask]
		r.Vector[i] = u[0][0]*a0 + u[0][1]*a1
		r.Vector[i|mask] = u[1][0]*a0 + u[1][1]*a1
	}
	return nil
}

// ApplyDiagonalPhase multiplies each amplitude by exp(-i·angle·weight(index)).
func (r *Register) ApplyDiagonalPhase(angle float64, weight func(index int) float64) {
	for i := range r.Vector {
		r.Vector[i] *= cmplx.Exp(complex(0, -angle*weight(i)))
	}
}

func (r *Register) Norm() float64 {
	var sum float64
	for _, amp := range r.Vector {
		sum += sqAbs(amp)
	}
	return math.Sqrt(sum)
}

// Probabilities returns |amplitude|² per basis index.
func (r *Register) Probabilities() []float64 {
	probs := make([]float64, len(r.Vector))
	for i, amp := range r.Vector {
		probs[i] = sqAbs(amp)
	}
	return probs
}

// Expectation returns Σ_b p(b)·f(b) for a diagonal observable f.
func (r *Register) Expectation(f func(index int) float64) float64 {
	var sum float64
	for i, amp := range r.Vector {
		sum += sqAbs(amp) * f(i)
	}
	return sum
}

// Distribution exposes the register's outcomes as a WaveFunction.
func (r *Register) Distribution() *WaveFunction {
	states := make([]State, len(r.Vector))
	for i, amp := range r.Vector {
		states[i] = State{
			Index:       i,
			Bitstring:   Bitstring(i, r.Qubits),
			Amplitude:   amp,
			Probability: sqAbs(amp),
		}
	}
	return NewWaveFunction(states)
}

func (r *Register) finite() bool {
	for _, amp := range r.Vector {
		if !finiteComplex(amp) {
			return false
		}
	}
	return true
}
