package solver

import "fmt"

// Stats records how much work a solve took.
type Stats struct {
	Nodes int
	Steps int
}

// Result maps every node of the solved graph to its converged IN and
// OUT facts.
type Result[N comparable, F any] struct {
	in    map[N]F
	out   map[N]F
	stats Stats
}

func newResult[N comparable, F any]() *Result[N, F] {
	return &Result[N, F]{
		in:  make(map[N]F),
		out: make(map[N]F),
	}
}

func (r *Result[N, F]) InOf(n N) F {
	f, found := r.in[n]
	if !found {
		panic(fmt.Sprintf("no IN fact recorded for node %v", n))
	}
	return f
}

func (r *Result[N, F]) OutOf(n N) F {
	f, found := r.out[n]
	if !found {
		panic(fmt.Sprintf("no OUT fact recorded for node %v", n))
	}
	return f
}

func (r *Result[N, F]) Stats() Stats { return r.stats }
