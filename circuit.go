package qkernel

import (
	"math"
	"strings"
)

/*
Circuit is an ordered gate sequence. The first gate appended is the first to
act on the state, so applying [A, B] computes B·A|ψ⟩.
*/
type Circuit struct {
	Gates []Gate

	// Tolerance bounds the norm drift allowed after each gate; zero means 1e-9.
	Tolerance float64
}

func NewCircuit(gates ...Gate) *Circuit {
	return &Circuit{Gates: append([]Gate(nil), gates...)}
}

// Append adds gates at the end of the sequence and returns the circuit.
func (c *Circuit) Append(gates ...Gate) *Circuit {
	c.Gates = append(c.Gates, gates...)
	return c
}

func (c *Circuit) Len() int {
	return len(c.Gates)
}

func (c *Circuit) String() string {
	names := make([]string, len(c.Gates))
	for i, g := range c.Gates {
		names[i] = g.String()
	}
	return strings.Join(names, " → ")
}

/*
Apply evolves q through every gate in order. Norm drift beyond the tolerance
after any single gate is an error, never silently renormalized.
*/
func (c *Circuit) Apply(q Qubit) (Qubit, error) {
	tol := c.Tolerance
	if tol == 0 {
		tol = defaultNormTolerance
	}

	if err := q.validate("apply sequence", tol); err != nil {
		return Qubit{}, err
	}

	state := q
	for i, g := range c.Gates {
		u, err := g.Matrix()
		if err != nil {
			return Qubit{}, err
		}

		state = u.Apply(state)

		if !state.finite() {
			return Qubit{}, newError("apply sequence", ErrNumeric, "gate %d (%s) produced a non-finite amplitude", i, g)
		}
		if drift := math.Abs(state.Norm() - 1); drift > tol {
			return Qubit{}, newError("apply sequence", ErrNumeric, "gate %d (%s) drifted norm by %g", i, g, drift)
		}
	}

	return state, nil
}

// ApplySequence is Circuit.Apply over an ad-hoc gate list.
func ApplySequence(q Qubit, gates ...Gate) (Qubit, error) {
	return NewCircuit(gates...).Apply(q)
}

/*
EvolveAmplitudes accepts raw amplitudes from the boundary, where the length
is not guaranteed by the type system.
*/
func EvolveAmplitudes(amplitudes []complex128, gates []Gate) ([]complex128, error) {
	if len(amplitudes) != 2 {
		return nil, newError("apply sequence", ErrDimension, "single-qubit gates need 2 amplitudes, got %d", len(amplitudes))
	}

	out, err := ApplySequence(Qubit{Alpha: amplitudes[0], Beta: amplitudes[1]}, gates...)
	if err != nil {
		return nil, err
	}
	return out.Amplitudes(), nil
}
