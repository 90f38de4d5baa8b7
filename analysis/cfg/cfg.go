// Package cfg builds intra-procedural control flow graphs with
// artificial entry and exit nodes and kind-annotated edges.
package cfg

import (
	"fmt"

	"github.com/cs-au-dk/kildall/ir"
)

type EdgeKind int

const (
	EdgeEntry EdgeKind = iota
	EdgeFallthrough
	EdgeGoto
	EdgeIfTrue
	EdgeIfFalse
	EdgeSwitchCase
	EdgeSwitchDefault
	EdgeReturn
)

var edgeKindNames = [...]string{
	EdgeEntry:         "ENTRY",
	EdgeFallthrough:   "FALL_THROUGH",
	EdgeGoto:          "GOTO",
	EdgeIfTrue:        "IF_TRUE",
	EdgeIfFalse:       "IF_FALSE",
	EdgeSwitchCase:    "SWITCH_CASE",
	EdgeSwitchDefault: "SWITCH_DEFAULT",
	EdgeReturn:        "RETURN",
}

func (k EdgeKind) String() string { return edgeKindNames[k] }

// Edge is a directed control flow edge. Only switch-case edges carry a
// case value.
type Edge struct {
	kind      EdgeKind
	source    ir.Stmt
	target    ir.Stmt
	caseValue int
}

func (e Edge) Kind() EdgeKind  { return e.kind }
func (e Edge) Source() ir.Stmt { return e.source }
func (e Edge) Target() ir.Stmt { return e.target }

// CaseValue returns the matched constant of a switch-case edge and
// panics for every other edge kind.
func (e Edge) CaseValue() int {
	if e.kind != EdgeSwitchCase {
		panic(fmt.Sprintf("edge of kind %s has no case value", e.kind))
	}
	return e.caseValue
}

func (e Edge) String() string {
	if e.kind == EdgeSwitchCase {
		return fmt.Sprintf("%s(%d)", e.kind, e.caseValue)
	}
	return e.kind.String()
}

// Cfg is the control flow graph of a single procedure. The node set is
// the procedure's statements plus two nop sentinels for entry and exit.
type Cfg struct {
	proc     *ir.Proc
	entry    ir.Stmt
	exit     ir.Stmt
	nodes    []ir.Stmt
	idOf     map[ir.Stmt]int
	preds    map[ir.Stmt][]ir.Stmt
	succs    map[ir.Stmt][]ir.Stmt
	outEdges map[ir.Stmt][]Edge
}

// Build constructs the control flow graph of proc.
func Build(proc *ir.Proc) *Cfg {
	g := &Cfg{
		proc:     proc,
		entry:    ir.NewNop(),
		exit:     ir.NewNop(),
		preds:    make(map[ir.Stmt][]ir.Stmt),
		succs:    make(map[ir.Stmt][]ir.Stmt),
		outEdges: make(map[ir.Stmt][]Edge),
	}

	stmts := proc.Stmts()
	g.nodes = make([]ir.Stmt, 0, len(stmts)+2)
	g.nodes = append(g.nodes, g.entry)
	g.nodes = append(g.nodes, stmts...)
	g.nodes = append(g.nodes, g.exit)
	g.idOf = make(map[ir.Stmt]int, len(g.nodes))
	for i, n := range g.nodes {
		g.idOf[n] = i
	}

	// next maps a statement index to the node control falls through to.
	next := func(i int) ir.Stmt {
		if i+1 < len(stmts) {
			return stmts[i+1]
		}
		return g.exit
	}

	if len(stmts) > 0 {
		g.addEdge(Edge{kind: EdgeEntry, source: g.entry, target: stmts[0]})
	} else {
		g.addEdge(Edge{kind: EdgeEntry, source: g.entry, target: g.exit})
	}

	for i, s := range stmts {
		switch s := s.(type) {
		case *ir.GotoStmt:
			g.addEdge(Edge{kind: EdgeGoto, source: s, target: s.Target()})
		case *ir.IfStmt:
			g.addEdge(Edge{kind: EdgeIfTrue, source: s, target: s.Target()})
			g.addEdge(Edge{kind: EdgeIfFalse, source: s, target: next(i)})
		case *ir.SwitchStmt:
			for _, c := range s.Cases() {
				g.addEdge(Edge{kind: EdgeSwitchCase, source: s, target: c.Target, caseValue: c.Value})
			}
			def := s.DefaultTarget()
			if def == nil {
				def = next(i)
			}
			g.addEdge(Edge{kind: EdgeSwitchDefault, source: s, target: def})
		case *ir.ReturnStmt:
			g.addEdge(Edge{kind: EdgeReturn, source: s, target: g.exit})
		default:
			g.addEdge(Edge{kind: EdgeFallthrough, source: s, target: next(i)})
		}
	}

	return g
}

func (g *Cfg) addEdge(e Edge) {
	g.outEdges[e.source] = append(g.outEdges[e.source], e)
	g.succs[e.source] = append(g.succs[e.source], e.target)
	g.preds[e.target] = append(g.preds[e.target], e.source)
}

func (g *Cfg) Proc() *ir.Proc { return g.proc }

func (g *Cfg) Entry() ir.Stmt  { return g.entry }
func (g *Cfg) Exit() ir.Stmt   { return g.exit }
func (g *Cfg) Nodes() []ir.Stmt { return g.nodes }

func (g *Cfg) IsEntry(n ir.Stmt) bool { return n == g.entry }
func (g *Cfg) IsExit(n ir.Stmt) bool  { return n == g.exit }

func (g *Cfg) PredsOf(n ir.Stmt) []ir.Stmt { return g.preds[n] }
func (g *Cfg) SuccsOf(n ir.Stmt) []ir.Stmt { return g.succs[n] }

// OutEdgesOf returns the annotated outgoing edges of n.
func (g *Cfg) OutEdgesOf(n ir.Stmt) []Edge { return g.outEdges[n] }

// IndexOf returns the graph-local id of n, a dense index over Nodes.
// Unlike ir.Stmt.Index it also covers the entry and exit sentinels.
func (g *Cfg) IndexOf(n ir.Stmt) int {
	id, found := g.idOf[n]
	if !found {
		panic(fmt.Sprintf("statement %v is not a node of this graph", n))
	}
	return id
}

// NodeName renders n for reports, using [entry] and [exit] for the
// sentinels and the statement index otherwise.
func (g *Cfg) NodeName(n ir.Stmt) string {
	switch {
	case g.IsEntry(n):
		return "[entry]"
	case g.IsExit(n):
		return "[exit]"
	default:
		return fmt.Sprintf("[%d] %s", n.Index(), n)
	}
}
