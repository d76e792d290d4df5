package qkernel

import (
	"math"
	"math/rand/v2"
)

// Edge joins two graph nodes.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// Graph is a small undirected graph for MaxCut.
type Graph struct {
	Nodes int    `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// CycleGraph returns the n-node ring C_n. A ring needs at least 3 nodes.
func CycleGraph(n int) (Graph, error) {
	if n < 3 || n > MaxRegisterQubits {
		return Graph{}, newError("cycle graph", ErrDomain, "node count %d outside [3, %d]", n, MaxRegisterQubits)
	}

	g := Graph{Nodes: n}
	for i := 0; i < n; i++ {
		g.Edges = append(g.Edges, Edge{U: i, V: (i + 1) % n})
	}
	return g, nil
}

/*
RandomGraph includes each node pair independently with the given density.
A graph that comes out empty gets the edge (0, 1) so MaxCut is never trivial.
*/
func RandomGraph(n int, density float64, rng *rand.Rand) (Graph, error) {
	if n < 2 || n > MaxRegisterQubits {
		return Graph{}, newError("random graph", ErrDomain, "node count %d outside [2, %d]", n, MaxRegisterQubits)
	}
	if math.IsNaN(density) || density < 0 || density > 1 {
		return Graph{}, newError("random graph", ErrDomain, "density %v outside [0, 1]", density)
	}

	g := Graph{Nodes: n}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if rng.Float64() < density {
				g.Edges = append(g.Edges, Edge{U: u, V: v})
			}
		}
	}

	if len(g.Edges) == 0 {
		g.Edges = append(g.Edges, Edge{U: 0, V: 1})
	}
	return g, nil
}

func (g Graph) Validate() error {
	if g.Nodes < 2 || g.Nodes > MaxRegisterQubits {
		return newError("graph", ErrDomain, "node count %d outside [2, %d]", g.Nodes, MaxRegisterQubits)
	}
	for _, e := range g.Edges {
		if e.U < 0 || e.U >= g.Nodes || e.V < 0 || e.V >= g.Nodes {
			return newError("graph", ErrDomain, "edge (%d, %d) outside %d nodes", e.U, e.V, g.Nodes)
		}
		if e.U == e.V {
			return newError("graph", ErrDomain, "self loop on node %d", e.U)
		}
	}
	return nil
}

// Cut counts edges whose endpoints land on different sides of the bitstring
// index, where bit q is the side of node q.
func (g Graph) Cut(index int) int {
	cut := 0
	for _, e := range g.Edges {
		if (index>>e.U)&1 != (index>>e.V)&1 {
			cut++
		}
	}
	return cut
}

// MaxCut enumerates all 2^n assignments and returns the best cut and the
// lowest index achieving it.
func (g Graph) MaxCut() (int, int) {
	best, arg := -1, 0
	for index := 0; index < 1<<g.Nodes; index++ {
		if c := g.Cut(index); c > best {
			best, arg = c, index
		}
	}
	return best, arg
}
