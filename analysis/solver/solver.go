// Package solver computes fixed points of monotone dataflow analyses
// over control flow graphs. Forward analyses run on a FIFO worklist;
// backward analyses iterate whole-graph sweeps until stabilization.
package solver

import (
	"github.com/cs-au-dk/kildall/utils/worklist"
)

// Solve runs analysis over g until the facts converge and returns the
// IN and OUT fact of every node. Termination follows from the finite
// height of the fact lattice and the monotonicity of the transfer
// functions.
func Solve[N comparable, F any](analysis Analysis[N, F], g Graph[N]) *Result[N, F] {
	res := newResult[N, F]()
	initialize(analysis, g, res)
	if analysis.IsForward() {
		solveForward(analysis, g, res)
	} else {
		solveBackward(analysis, g, res)
	}
	res.stats.Nodes = len(g.Nodes())
	return res
}

func initialize[N comparable, F any](analysis Analysis[N, F], g Graph[N], res *Result[N, F]) {
	for _, n := range g.Nodes() {
		res.in[n] = analysis.NewInitialFact()
		res.out[n] = analysis.NewInitialFact()
	}
	if analysis.IsForward() {
		res.out[g.Entry()] = analysis.NewBoundaryFact(g)
	} else {
		res.in[g.Exit()] = analysis.NewBoundaryFact(g)
	}
}

func solveForward[N comparable, F any](analysis Analysis[N, F], g Graph[N], res *Result[N, F]) {
	var pending []N
	for _, n := range g.Nodes() {
		if !g.IsEntry(n) {
			pending = append(pending, n)
		}
	}

	worklist.StartV(pending, func(n N, add func(el N)) {
		res.stats.Steps++
		in := res.in[n]
		for _, pred := range g.PredsOf(n) {
			analysis.MeetInto(res.out[pred], in)
		}
		if analysis.TransferNode(n, in, res.out[n]) {
			for _, succ := range g.SuccsOf(n) {
				add(succ)
			}
		}
	})
}

func solveBackward[N comparable, F any](analysis Analysis[N, F], g Graph[N], res *Result[N, F]) {
	for changed := true; changed; {
		changed = false
		for _, n := range g.Nodes() {
			if g.IsExit(n) {
				continue
			}
			res.stats.Steps++
			out := res.out[n]
			for _, succ := range g.SuccsOf(n) {
				analysis.MeetInto(res.in[succ], out)
			}
			if analysis.TransferNode(n, res.in[n], out) {
				changed = true
			}
		}
	}
}
