package qkernel

/*
State is one computational-basis outcome of a register together with its
probability amplitude.
*/
type State struct {
	Index       int
	Bitstring   string
	Amplitude   complex128
	Probability float64
}

/*
Bitstring renders index over n qubits with qubit 0 as the leftmost
character, matching the node order of a graph.
*/
func Bitstring(index, n int) string {
	out := make([]byte, n)
	for q := 0; q < n; q++ {
		if index&(1<<q) != 0 {
			out[q] = '1'
		} else {
			out[q] = '0'
		}
	}
	return string(out)
}
