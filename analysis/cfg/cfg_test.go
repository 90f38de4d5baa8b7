package cfg

import (
	"testing"

	"github.com/cs-au-dk/kildall/ir"
)

func buildBranchy(t *testing.T) (*ir.Proc, []ir.Stmt) {
	t.Helper()
	b := ir.NewProcBuilder("f")
	p := b.Param("p", ir.Int)
	x := b.Declare("x", ir.Int)
	y := b.Declare("y", ir.Int)

	b.Assign(x, ir.NewIntLiteral(1))                  // 0
	b.If(ir.NewBinaryExp(ir.Gt, x, p), "L")           // 1
	b.Assign(y, ir.NewIntLiteral(2))                  // 2
	b.Goto("E")                                       // 3
	b.Label("L")
	b.Assign(y, ir.NewIntLiteral(3))                  // 4
	b.Label("E")
	b.Return(y)                                       // 5

	proc, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	return proc, proc.Stmts()
}

func edgeTo(t *testing.T, g *Cfg, from ir.Stmt, kind EdgeKind) ir.Stmt {
	t.Helper()
	for _, e := range g.OutEdgesOf(from) {
		if e.Kind() == kind {
			return e.Target()
		}
	}
	t.Fatalf("no %s edge out of %s", kind, g.NodeName(from))
	return nil
}

func TestBuildBranches(t *testing.T) {
	proc, stmts := buildBranchy(t)
	g := Build(proc)

	if len(g.Nodes()) != len(stmts)+2 {
		t.Fatalf("got %d nodes, expected %d", len(g.Nodes()), len(stmts)+2)
	}
	if got := edgeTo(t, g, g.Entry(), EdgeEntry); got != stmts[0] {
		t.Errorf("entry edge targets %s", g.NodeName(got))
	}
	if got := edgeTo(t, g, stmts[1], EdgeIfTrue); got != stmts[4] {
		t.Errorf("true edge targets %s", g.NodeName(got))
	}
	if got := edgeTo(t, g, stmts[1], EdgeIfFalse); got != stmts[2] {
		t.Errorf("false edge targets %s", g.NodeName(got))
	}
	if got := edgeTo(t, g, stmts[3], EdgeGoto); got != stmts[5] {
		t.Errorf("goto edge targets %s", g.NodeName(got))
	}
	if got := edgeTo(t, g, stmts[4], EdgeFallthrough); got != stmts[5] {
		t.Errorf("fallthrough edge targets %s", g.NodeName(got))
	}
	if got := edgeTo(t, g, stmts[5], EdgeReturn); got != g.Exit() {
		t.Errorf("return edge targets %s", g.NodeName(got))
	}
	if preds := g.PredsOf(stmts[5]); len(preds) != 2 {
		t.Errorf("got %d preds of the join node, expected 2", len(preds))
	}
}

func TestBuildSwitch(t *testing.T) {
	b := ir.NewProcBuilder("g")
	v := b.Param("v", ir.Int)
	r := b.Declare("r", ir.Int)

	b.Switch(v, []int{1, 4}, []string{"A", "B"}, "D") // 0
	b.Label("A")
	b.Assign(r, ir.NewIntLiteral(10)) // 1
	b.Label("B")
	b.Assign(r, ir.NewIntLiteral(20)) // 2
	b.Label("D")
	b.Return(r) // 3

	proc, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	stmts := proc.Stmts()
	g := Build(proc)

	edges := g.OutEdgesOf(stmts[0])
	if len(edges) != 3 {
		t.Fatalf("got %d switch edges, expected 3", len(edges))
	}
	caseTargets := make(map[int]ir.Stmt)
	var defaultTarget ir.Stmt
	for _, e := range edges {
		switch e.Kind() {
		case EdgeSwitchCase:
			caseTargets[e.CaseValue()] = e.Target()
		case EdgeSwitchDefault:
			defaultTarget = e.Target()
		default:
			t.Errorf("unexpected %s edge out of a switch", e.Kind())
		}
	}
	if caseTargets[1] != stmts[1] || caseTargets[4] != stmts[2] {
		t.Error("case edges target the wrong statements")
	}
	if defaultTarget != stmts[3] {
		t.Errorf("default edge targets %s", g.NodeName(defaultTarget))
	}
}

func TestCaseValuePanicsOnOtherKinds(t *testing.T) {
	proc, stmts := buildBranchy(t)
	g := Build(proc)

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for CaseValue on a non-case edge")
		}
	}()
	g.OutEdgesOf(stmts[0])[0].CaseValue()
}

func TestBuildEmptyProc(t *testing.T) {
	b := ir.NewProcBuilder("empty")
	proc, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	g := Build(proc)

	if got := edgeTo(t, g, g.Entry(), EdgeEntry); got != g.Exit() {
		t.Errorf("entry edge of an empty procedure targets %s", g.NodeName(got))
	}
}

func TestIndexOfCoversSentinels(t *testing.T) {
	proc, stmts := buildBranchy(t)
	g := Build(proc)

	if g.IndexOf(g.Entry()) != 0 {
		t.Error("entry sentinel must be node 0")
	}
	if g.IndexOf(g.Exit()) != len(stmts)+1 {
		t.Error("exit sentinel must be the last node")
	}
	if g.IndexOf(stmts[2]) != 3 {
		t.Error("statement ids must be offset by the entry sentinel")
	}
}

func TestDotGraphClustersByBlock(t *testing.T) {
	proc, stmts := buildBranchy(t)
	g := Build(proc)

	dg := g.toDotGraph()
	if len(dg.Clusters) != len(g.Blocks()) {
		t.Fatalf("got %d clusters, expected one per block (%d)",
			len(dg.Clusters), len(g.Blocks()))
	}
	clustered := 0
	for _, cl := range dg.Clusters {
		clustered += len(cl.Nodes)
	}
	if clustered != len(stmts) {
		t.Errorf("clusters hold %d nodes, expected every statement (%d)", clustered, len(stmts))
	}
	// Only the sentinels float outside the clusters.
	if len(dg.Nodes) != 2 {
		t.Errorf("got %d top-level nodes, expected the two sentinels", len(dg.Nodes))
	}
	if len(dg.Edges) == 0 {
		t.Error("expected edges in the lowered graph")
	}
}

func TestBlocks(t *testing.T) {
	proc, stmts := buildBranchy(t)
	g := Build(proc)

	blocks := g.Blocks()
	// 0..1 | 2..3 | 4 | 5
	if len(blocks) != 4 {
		t.Fatalf("got %d blocks, expected 4: %v", len(blocks), blocks)
	}
	expect := [][]ir.Stmt{
		{stmts[0], stmts[1]},
		{stmts[2], stmts[3]},
		{stmts[4]},
		{stmts[5]},
	}
	for i, want := range expect {
		if len(blocks[i]) != len(want) {
			t.Errorf("block %d = %v", i, blocks[i])
			continue
		}
		for j, s := range want {
			if blocks[i][j] != s {
				t.Errorf("block %d statement %d = %s", i, j, blocks[i][j])
			}
		}
	}
}
