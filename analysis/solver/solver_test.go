package solver

import (
	"sort"
	"testing"
)

// testGraph is a small graph over int nodes with explicit edges. The
// first node is the entry and the last is the exit.
type testGraph struct {
	nodes []int
	succs map[int][]int
	preds map[int][]int
}

func newTestGraph(nodes []int, edges [][2]int) *testGraph {
	g := &testGraph{
		nodes: nodes,
		succs: make(map[int][]int),
		preds: make(map[int][]int),
	}
	for _, e := range edges {
		g.succs[e[0]] = append(g.succs[e[0]], e[1])
		g.preds[e[1]] = append(g.preds[e[1]], e[0])
	}
	return g
}

func (g *testGraph) Entry() int          { return g.nodes[0] }
func (g *testGraph) Exit() int           { return g.nodes[len(g.nodes)-1] }
func (g *testGraph) Nodes() []int        { return g.nodes }
func (g *testGraph) IsEntry(n int) bool  { return n == g.Entry() }
func (g *testGraph) IsExit(n int) bool   { return n == g.Exit() }
func (g *testGraph) PredsOf(n int) []int { return g.preds[n] }
func (g *testGraph) SuccsOf(n int) []int { return g.succs[n] }

// nodeSet is a mutable set fact for exercising the solver.
type nodeSet struct {
	members map[int]bool
}

func newNodeSet() *nodeSet { return &nodeSet{members: make(map[int]bool)} }

func (s *nodeSet) sorted() []int {
	var res []int
	for n := range s.members {
		res = append(res, n)
	}
	sort.Ints(res)
	return res
}

func (s *nodeSet) equalTo(ns ...int) bool {
	if len(s.members) != len(ns) {
		return false
	}
	for _, n := range ns {
		if !s.members[n] {
			return false
		}
	}
	return true
}

// collector labels every fact with the nodes it has flowed through.
// Forward it computes, for each node, the set of nodes on some path
// from the entry; backward, the set of nodes on some path to the exit.
type collector struct {
	forward bool
}

func (c collector) IsForward() bool                   { return c.forward }
func (c collector) NewBoundaryFact(Graph[int]) *nodeSet { return newNodeSet() }
func (c collector) NewInitialFact() *nodeSet          { return newNodeSet() }

func (c collector) MeetInto(fact, target *nodeSet) {
	for n := range fact.members {
		target.members[n] = true
	}
}

func (c collector) TransferNode(n int, in, out *nodeSet) bool {
	src, dst := in, out
	if !c.forward {
		src, dst = out, in
	}
	changed := false
	for m := range src.members {
		if !dst.members[m] {
			dst.members[m] = true
			changed = true
		}
	}
	if !dst.members[n] {
		dst.members[n] = true
		changed = true
	}
	return changed
}

func TestSolveForwardDiamond(t *testing.T) {
	//      0
	//     / \
	//    1   2
	//     \ /
	//      3
	g := newTestGraph([]int{0, 1, 2, 3}, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}})

	res := Solve[int, *nodeSet](collector{forward: true}, g)

	if got := res.OutOf(0); !got.equalTo() {
		t.Errorf("OutOf(entry) = %v, expected the boundary fact", got.sorted())
	}
	if got := res.OutOf(1); !got.equalTo(1) {
		t.Errorf("OutOf(1) = %v", got.sorted())
	}
	if got := res.InOf(3); !got.equalTo(1, 2) {
		t.Errorf("InOf(3) = %v, expected the meet over both branches", got.sorted())
	}
	if got := res.OutOf(3); !got.equalTo(1, 2, 3) {
		t.Errorf("OutOf(3) = %v", got.sorted())
	}
}

func TestSolveForwardLoop(t *testing.T) {
	// 0 -> 1 -> 2 -> 3 with a back edge 2 -> 1.
	g := newTestGraph([]int{0, 1, 2, 3}, [][2]int{{0, 1}, {1, 2}, {2, 1}, {2, 3}})

	res := Solve[int, *nodeSet](collector{forward: true}, g)

	if got := res.InOf(1); !got.equalTo(1, 2) {
		t.Errorf("InOf(1) = %v, expected the back edge's contribution", got.sorted())
	}
	if got := res.OutOf(3); !got.equalTo(1, 2, 3) {
		t.Errorf("OutOf(3) = %v", got.sorted())
	}
}

func TestSolveBackward(t *testing.T) {
	g := newTestGraph([]int{0, 1, 2, 3}, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}})

	res := Solve[int, *nodeSet](collector{forward: false}, g)

	if got := res.InOf(3); !got.equalTo() {
		t.Errorf("InOf(exit) = %v, expected the boundary fact", got.sorted())
	}
	if got := res.InOf(1); !got.equalTo(1) {
		t.Errorf("InOf(1) = %v", got.sorted())
	}
	if got := res.OutOf(0); !got.equalTo(1, 2) {
		t.Errorf("OutOf(0) = %v, expected the meet over both branches", got.sorted())
	}
	if got := res.InOf(0); !got.equalTo(0, 1, 2) {
		t.Errorf("InOf(0) = %v", got.sorted())
	}
}

func TestSolveStats(t *testing.T) {
	g := newTestGraph([]int{0, 1, 2}, [][2]int{{0, 1}, {1, 2}})

	res := Solve[int, *nodeSet](collector{forward: true}, g)

	if res.Stats().Nodes != 3 {
		t.Errorf("Stats().Nodes = %d", res.Stats().Nodes)
	}
	if res.Stats().Steps < 2 {
		t.Errorf("Stats().Steps = %d, expected at least one step per non-entry node", res.Stats().Steps)
	}
}

func TestResultPanicsOnUnknownNode(t *testing.T) {
	g := newTestGraph([]int{0, 1}, [][2]int{{0, 1}})
	res := Solve[int, *nodeSet](collector{forward: true}, g)

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a node outside the solved graph")
		}
	}()
	res.InOf(42)
}
