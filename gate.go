package qkernel

import (
	"fmt"
	"strings"
)

// GateKind tags one case of the Gate variant.
type GateKind int

const (
	GateI GateKind = iota
	GateX
	GateY
	GateZ
	GateH
	GateS
	GateT
	GateRX
	GateRY
	GateRZ
)

var gateNames = map[GateKind]string{
	GateI:  "I",
	GateX:  "X",
	GateY:  "Y",
	GateZ:  "Z",
	GateH:  "H",
	GateS:  "S",
	GateT:  "T",
	GateRX: "RX",
	GateRY: "RY",
	GateRZ: "RZ",
}

func (k GateKind) String() string {
	if name, ok := gateNames[k]; ok {
		return name
	}
	return fmt.Sprintf("GateKind(%d)", int(k))
}

// Parameterized reports whether the kind carries an angle.
func (k GateKind) Parameterized() bool {
	return k == GateRX || k == GateRY || k == GateRZ
}

/*
Gate is a single entry of a gate sequence. Theta is only meaningful for the
rotation kinds and is always in radians.
*/
type Gate struct {
	Kind  GateKind
	Theta float64
}

func X() Gate { return Gate{Kind: GateX} }
func Y() Gate { return Gate{Kind: GateY} }
func Z() Gate { return Gate{Kind: GateZ} }
func H() Gate { return Gate{Kind: GateH} }
func S() Gate { return Gate{Kind: GateS} }
func T() Gate { return Gate{Kind: GateT} }

func RX(theta float64) Gate { return Gate{Kind: GateRX, Theta: theta} }
func RY(theta float64) Gate { return Gate{Kind: GateRY, Theta: theta} }
func RZ(theta float64) Gate { return Gate{Kind: GateRZ, Theta: theta} }

func (g Gate) String() string {
	if g.Kind.Parameterized() {
		return fmt.Sprintf("%s(%.4f)", g.Kind, g.Theta)
	}
	return g.Kind.String()
}

// Matrix resolves the gate to its operator.
func (g Gate) Matrix() (Matrix, error) {
	switch g.Kind {
	case GateI:
		return Identity, nil
	case GateX:
		return PauliX, nil
	case GateY:
		return PauliY, nil
	case GateZ:
		return PauliZ, nil
	case GateH:
		return Hadamard, nil
	case GateS:
		return PhaseS, nil
	case GateT:
		return PhaseT, nil
	case GateRX:
		return Rotation(AxisX, g.Theta)
	case GateRY:
		return Rotation(AxisY, g.Theta)
	case GateRZ:
		return Rotation(AxisZ, g.Theta)
	}
	return Matrix{}, newError("gate", ErrDomain, "unknown gate kind %d", int(g.Kind))
}

/*
ParseGate turns a presentation-layer label into a Gate. Labels are matched
on the whole symbolic name, case-insensitively, with an optional trailing
argument list ("Rx", "RX(θ)", "hadamard"). The angle arrives in degrees and
is converted here exactly once.
*/
func ParseGate(label string, degrees float64) (Gate, error) {
	name := strings.ToUpper(strings.TrimSpace(label))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}

	switch name {
	case "I", "ID", "IDENTITY":
		return Gate{Kind: GateI}, nil
	case "X", "PAULI-X", "NOT":
		return X(), nil
	case "Y", "PAULI-Y":
		return Y(), nil
	case "Z", "PAULI-Z":
		return Z(), nil
	case "H", "HADAMARD":
		return H(), nil
	case "S", "PHASE":
		return S(), nil
	case "T":
		return T(), nil
	case "RX":
		return RX(Radians(degrees)), nil
	case "RY":
		return RY(Radians(degrees)), nil
	case "RZ":
		return RZ(Radians(degrees)), nil
	}

	return Gate{}, newError("parse gate", ErrDomain, "unknown gate label %q", label)
}
