package qkernel

import (
	"fmt"
	"math"
	"strings"
)

// ChannelKind tags one noise channel.
type ChannelKind int

const (
	Depolarizing ChannelKind = iota
	Dephasing
	AmplitudeDamping
	BitFlip
)

func (k ChannelKind) String() string {
	switch k {
	case Depolarizing:
		return "depolarizing"
	case Dephasing:
		return "dephasing"
	case AmplitudeDamping:
		return "amplitude_damping"
	case BitFlip:
		return "bit_flip"
	default:
		return fmt.Sprintf("ChannelKind(%d)", int(k))
	}
}

// Channel is a noise channel of the given kind with strength p ∈ [0, 1].
type Channel struct {
	Kind     ChannelKind
	Strength float64
}

/*
Apply maps ρ through the channel. The result is validated against the
density-matrix invariants; a violation means the channel parameter was
outside its domain and is reported as ErrDomain. ρ itself is never modified.
*/
func (c Channel) Apply(rho DensityMatrix) (DensityMatrix, error) {
	return c.apply(rho, defaultNormTolerance)
}

func (c Channel) apply(rho DensityMatrix, tol float64) (DensityMatrix, error) {
	p := c.Strength
	if math.IsNaN(p) || p < 0 || p > 1 {
		return DensityMatrix{}, newError("channel "+c.Kind.String(), ErrDomain, "strength %v outside [0, 1]", p)
	}

	var out DensityMatrix
	switch c.Kind {
	case Depolarizing:
		// (1−p)ρ + p·I/2
		out = DensityMatrix{rho.Scale(complex(1-p, 0)).Add(Identity.Scale(complex(p/2, 0)))}
	case Dephasing:
		out = rho
		out.Matrix[0][1] *= complex(1-p, 0)
		out.Matrix[1][0] *= complex(1-p, 0)
	case AmplitudeDamping:
		k0 := Matrix{{1, 0}, {0, complex(math.Sqrt(1-p), 0)}}
		k1 := Matrix{{0, complex(math.Sqrt(p), 0)}, {0, 0}}
		out = DensityMatrix{kraus(rho.Matrix, k0, k1)}
	case BitFlip:
		k0 := Identity.Scale(complex(math.Sqrt(1-p), 0))
		k1 := PauliX.Scale(complex(math.Sqrt(p), 0))
		out = DensityMatrix{kraus(rho.Matrix, k0, k1)}
	default:
		return DensityMatrix{}, newError("channel", ErrDomain, "unknown channel kind %d", int(c.Kind))
	}

	if err := out.Validate(tol); err != nil {
		return DensityMatrix{}, newError("channel "+c.Kind.String(), ErrDomain, "output violates density invariants: %v", err)
	}

	return out, nil
}

// kraus computes Σ K ρ K†.
func kraus(rho Matrix, ops ...Matrix) Matrix {
	var out Matrix
	for _, k := range ops {
		out = out.Add(k.Mul(rho).Mul(k.Dagger()))
	}
	return out
}

// ApplyChannels runs rho through each channel in order.
func ApplyChannels(rho DensityMatrix, channels ...Channel) (DensityMatrix, error) {
	out := rho
	for _, c := range channels {
		var err error
		if out, err = c.Apply(out); err != nil {
			return DensityMatrix{}, err
		}
	}
	return out, nil
}

// ParseChannel resolves a presentation-layer channel label.
func ParseChannel(label string, strength float64) (Channel, error) {
	name := strings.ToLower(strings.TrimSpace(label))
	name = strings.NewReplacer(" ", "_", "-", "_").Replace(name)

	var kind ChannelKind
	switch name {
	case "depolarizing", "depolarising":
		kind = Depolarizing
	case "dephasing", "phase_damping":
		kind = Dephasing
	case "amplitude_damping":
		kind = AmplitudeDamping
	case "bit_flip":
		kind = BitFlip
	default:
		return Channel{}, newError("parse channel", ErrDomain, "unknown channel %q", label)
	}

	return Channel{Kind: kind, Strength: strength}, nil
}
