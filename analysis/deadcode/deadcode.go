// Package deadcode reports statements that are unreachable from the
// procedure entry or whose effect is provably useless, combining
// constant propagation and liveness results.
package deadcode

import (
	"golang.org/x/tools/container/intsets"

	"github.com/cs-au-dk/kildall/analysis/cfg"
	"github.com/cs-au-dk/kildall/analysis/constprop"
	"github.com/cs-au-dk/kildall/analysis/lattice"
	"github.com/cs-au-dk/kildall/analysis/solver"
	"github.com/cs-au-dk/kildall/ir"
	"github.com/cs-au-dk/kildall/utils/worklist"
)

const ID = "deadcode"

// Detect traverses g breadth-first from the entry, pruning branch edges
// whose outcome constant propagation has decided, and returns the dead
// statements in ascending index order. A statement is dead when it is
// never marked reachable: either control cannot arrive at it, or it is
// an assignment whose target is not live afterwards and whose
// right-hand side has no side effect.
func Detect(
	g *cfg.Cfg,
	constants *solver.Result[ir.Stmt, *lattice.Fact],
	liveness *solver.Result[ir.Stmt, *lattice.VarSet],
) []ir.Stmt {
	var reachable, visited intsets.Sparse
	reachable.Insert(g.IndexOf(g.Entry()))
	reachable.Insert(g.IndexOf(g.Exit()))

	worklist.Start(g.Entry(), func(n ir.Stmt, add func(el ir.Stmt)) {
		id := g.IndexOf(n)
		if visited.Has(id) {
			return
		}
		visited.Insert(id)

		push := func(target ir.Stmt) {
			if !visited.Has(g.IndexOf(target)) {
				add(target)
			}
		}
		pushAll := func() {
			for _, succ := range g.SuccsOf(n) {
				push(succ)
			}
		}

		switch s := n.(type) {
		case *ir.AssignStmt:
			// A useless assignment still passes control along; it is
			// visited without ever becoming reachable.
			if !isUselessAssign(s, liveness.OutOf(n)) {
				reachable.Insert(id)
			}
			pushAll()
		case *ir.IfStmt:
			reachable.Insert(id)
			cond := constprop.Evaluate(s.Cond(), constants.InOf(n))
			if !cond.IsConstant() {
				pushAll()
				break
			}
			taken := cfg.EdgeIfFalse
			if cond.Constant() == 1 {
				taken = cfg.EdgeIfTrue
			}
			for _, e := range g.OutEdgesOf(n) {
				if e.Kind() == taken {
					push(e.Target())
				}
			}
		case *ir.SwitchStmt:
			reachable.Insert(id)
			sel := constprop.Evaluate(s.Var(), constants.InOf(n))
			if !sel.IsConstant() {
				pushAll()
				break
			}
			matched := false
			for _, e := range g.OutEdgesOf(n) {
				if e.Kind() == cfg.EdgeSwitchCase && e.CaseValue() == sel.Constant() {
					matched = true
					push(e.Target())
				}
			}
			if !matched {
				for _, e := range g.OutEdgesOf(n) {
					if e.Kind() == cfg.EdgeSwitchDefault {
						push(e.Target())
					}
				}
			}
		default:
			reachable.Insert(id)
			pushAll()
		}
	})

	var dead []ir.Stmt
	for _, s := range g.Proc().Stmts() {
		if !reachable.Has(g.IndexOf(s)) {
			dead = append(dead, s)
		}
	}
	return dead
}

func isUselessAssign(s *ir.AssignStmt, liveAfter *lattice.VarSet) bool {
	v, ok := s.LValue().(*ir.Var)
	if !ok {
		return false
	}
	return !liveAfter.Contains(v) && hasNoSideEffect(s.RValue())
}

// hasNoSideEffect reports whether discarding the expression's result
// discards the whole computation. Allocation, casts, field and array
// accesses and division or remainder can fault or trigger loads, so
// they must be preserved even when unused.
func hasNoSideEffect(e ir.RValue) bool {
	switch e := e.(type) {
	case *ir.NewExp, *ir.CastExp, *ir.FieldAccess, *ir.ArrayAccess, *ir.CallExp:
		return false
	case *ir.BinaryExp:
		return e.Op() != ir.Div && e.Op() != ir.Rem
	default:
		return true
	}
}
