package qkernel

import (
	"math"
	"math/cmplx"
)

/*
FeatureState encodes one real feature into a qubit with the circuit
H → RY(x) → RZ(x) acting on |0⟩.
*/
func FeatureState(x float64) (Qubit, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Qubit{}, newError("feature map", ErrDomain, "feature %v is not finite", x)
	}
	return NewCircuit(H(), RY(x), RZ(x)).Apply(Zero)
}

/*
QuantumKernel is the fidelity kernel |⟨φ(x)|φ(y)⟩|² of the product feature
map, which factorizes into one overlap per feature.
*/
func QuantumKernel(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, newError("quantum kernel", ErrDimension, "feature lengths %d and %d differ", len(x), len(y))
	}

	k := 1.0
	for j := range x {
		fx, err := FeatureState(x[j])
		if err != nil {
			return 0, err
		}
		fy, err := FeatureState(y[j])
		if err != nil {
			return 0, err
		}

		overlap := cmplx.Abs(fx.Inner(fy))
		k *= overlap * overlap
	}
	return k, nil
}

// KernelMatrix returns the Gram matrix K[i][j] = QuantumKernel(X[i], X[j]).
func KernelMatrix(samples [][]float64) ([][]float64, error) {
	n := len(samples)
	gram := make([][]float64, n)
	for i := range gram {
		gram[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			k, err := QuantumKernel(samples[i], samples[j])
			if err != nil {
				return nil, err
			}
			gram[i][j], gram[j][i] = k, k
		}
	}
	return gram, nil
}
