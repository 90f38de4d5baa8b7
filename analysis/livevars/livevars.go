// Package livevars implements intra-procedural live variable analysis,
// a backward may-analysis over sets of variables.
package livevars

import (
	"github.com/cs-au-dk/kildall/analysis/lattice"
	"github.com/cs-au-dk/kildall/analysis/solver"
	"github.com/cs-au-dk/kildall/ir"
)

const ID = "livevars"

type Analysis struct{}

func New() Analysis { return Analysis{} }

func (Analysis) IsForward() bool { return false }

// NewBoundaryFact is the empty set; nothing is live after the exit.
func (Analysis) NewBoundaryFact(solver.Graph[ir.Stmt]) *lattice.VarSet {
	return lattice.NewVarSet()
}

func (Analysis) NewInitialFact() *lattice.VarSet {
	return lattice.NewVarSet()
}

func (Analysis) MeetInto(fact, target *lattice.VarSet) {
	target.Union(fact)
}

// TransferNode computes IN = (OUT − def) ∪ use, reporting whether the
// IN fact changed.
func (Analysis) TransferNode(n ir.Stmt, in, out *lattice.VarSet) bool {
	tmp := out.Copy()
	if def, ok := n.Def(); ok {
		if v, ok := def.(*ir.Var); ok {
			tmp.Remove(v)
		}
	}
	for _, use := range n.Uses() {
		if v, ok := use.(*ir.Var); ok {
			tmp.Add(v)
		}
	}
	return in.CopyFrom(tmp)
}
