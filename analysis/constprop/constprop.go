// Package constprop implements intra-procedural constant propagation
// over the flat constant lattice.
package constprop

import (
	"github.com/cs-au-dk/kildall/analysis/lattice"
	"github.com/cs-au-dk/kildall/analysis/solver"
	"github.com/cs-au-dk/kildall/ir"
)

const ID = "constprop"

// procGraph is the slice of a control flow graph the boundary fact
// needs: the procedure whose parameters are unknowable.
type procGraph interface {
	Proc() *ir.Proc
}

// Analysis is the constant propagation dataflow problem. It plugs into
// the generic solver with per-statement variable-to-value facts.
type Analysis struct{}

func New() Analysis { return Analysis{} }

func (Analysis) IsForward() bool { return true }

// NewBoundaryFact binds every formal parameter to NAC: a caller may
// pass anything, but parameters are definitely defined and must never
// look like ⊥.
func (Analysis) NewBoundaryFact(g solver.Graph[ir.Stmt]) *lattice.Fact {
	fact := lattice.NewFact()
	if pg, ok := g.(procGraph); ok {
		for _, p := range pg.Proc().Params() {
			fact.Update(p, lattice.NAC())
		}
	}
	return fact
}

func (Analysis) NewInitialFact() *lattice.Fact {
	return lattice.NewFact()
}

func (Analysis) MeetInto(fact, target *lattice.Fact) {
	fact.ForEach(func(v *ir.Var, value lattice.Value) {
		target.Update(v, value.Meet(target.Get(v)))
	})
}

// TransferNode evaluates a defining statement against its IN fact and
// rebinds the defined variable, leaving every other binding untouched.
func (Analysis) TransferNode(n ir.Stmt, in, out *lattice.Fact) bool {
	tmp := in.Copy()
	if def, ok := n.Def(); ok {
		if v, ok := def.(*ir.Var); ok && CanHoldInt(v) {
			uses := n.Uses()
			tmp.Update(v, Evaluate(uses[len(uses)-1], in))
		}
	}
	return out.CopyFrom(tmp)
}

// CanHoldInt reports whether v is tracked by the analysis, the integral
// types an int value fits in.
func CanHoldInt(v *ir.Var) bool {
	return v.Type().IsIntegral()
}

// Evaluate computes the abstract value of exp under fact. Expressions
// the analysis cannot reason about evaluate to NAC.
func Evaluate(exp ir.Exp, fact *lattice.Fact) lattice.Value {
	switch exp := exp.(type) {
	case *ir.Var:
		if !CanHoldInt(exp) {
			return lattice.NAC()
		}
		return fact.Get(exp)
	case *ir.IntLiteral:
		return lattice.MakeConstant(exp.Value())
	case *ir.BinaryExp:
		return evaluateBinary(exp, fact)
	default:
		return lattice.NAC()
	}
}

func evaluateBinary(exp *ir.BinaryExp, fact *lattice.Fact) lattice.Value {
	x := Evaluate(exp.X(), fact)
	y := Evaluate(exp.Y(), fact)
	if !x.IsConstant() || !y.IsConstant() {
		return lattice.NAC()
	}

	a, b := x.Constant(), y.Constant()
	switch exp.Op() {
	case ir.Add:
		return lattice.MakeConstant(a + b)
	case ir.Sub:
		return lattice.MakeConstant(a - b)
	case ir.Mul:
		return lattice.MakeConstant(a * b)
	case ir.Div:
		if b == 0 {
			return lattice.Undef()
		}
		return lattice.MakeConstant(a / b)
	case ir.Rem:
		if b == 0 {
			return lattice.Undef()
		}
		return lattice.MakeConstant(a % b)
	case ir.Shl:
		return lattice.MakeConstant(a << uint(b&63))
	case ir.Shr:
		return lattice.MakeConstant(a >> uint(b&63))
	case ir.And:
		return lattice.MakeConstant(a & b)
	case ir.Or:
		return lattice.MakeConstant(a | b)
	case ir.Xor:
		return lattice.MakeConstant(a ^ b)
	case ir.Gt:
		return boolConstant(a > b)
	case ir.Lt:
		return boolConstant(a < b)
	case ir.Ge:
		return boolConstant(a >= b)
	case ir.Le:
		return boolConstant(a <= b)
	case ir.Eq:
		return boolConstant(a == b)
	case ir.Ne:
		return boolConstant(a != b)
	default:
		return lattice.NAC()
	}
}

func boolConstant(b bool) lattice.Value {
	if b {
		return lattice.MakeConstant(1)
	}
	return lattice.MakeConstant(0)
}
