package cfg

import (
	"fmt"

	"github.com/cs-au-dk/kildall/ir"
	"github.com/cs-au-dk/kildall/utils/dot"
)

// toDotGraph lowers the graph to a renderable dot digraph. Statements
// are clustered by basic block; the sentinels float outside any
// cluster.
func (g *Cfg) toDotGraph() *dot.DotGraph {
	nodes := make(map[int]*dot.DotNode, len(g.nodes))
	dg := &dot.DotGraph{
		Title:   g.proc.Name(),
		Options: map[string]string{"rankdir": "TB"},
	}

	for _, n := range g.nodes {
		nodes[g.IndexOf(n)] = &dot.DotNode{
			ID:    fmt.Sprintf("%d: %s", g.IndexOf(n), g.NodeName(n)),
			Attrs: dot.DotAttrs{},
		}
	}

	for i, block := range g.Blocks() {
		cl := dot.NewDotCluster(fmt.Sprintf("b%d", i))
		cl.Attrs["label"] = fmt.Sprintf("block %d", i)
		for _, s := range block {
			cl.Nodes = append(cl.Nodes, nodes[g.IndexOf(s)])
		}
		dg.Clusters = append(dg.Clusters, cl)
	}
	for _, n := range []ir.Stmt{g.entry, g.exit} {
		dn := nodes[g.IndexOf(n)]
		dn.Attrs["style"] = "filled,dashed"
		dg.Nodes = append(dg.Nodes, dn)
	}

	for _, n := range g.nodes {
		for _, e := range g.OutEdgesOf(n) {
			dg.Edges = append(dg.Edges, &dot.DotEdge{
				From:  nodes[g.IndexOf(e.Source())],
				To:    nodes[g.IndexOf(e.Target())],
				Attrs: dot.DotAttrs{"label": e.String()},
			})
		}
	}
	return dg
}

// Visualize renders the graph into dir in the given graphviz format,
// returning the path of the produced file.
func (g *Cfg) Visualize(dir, format string) (string, error) {
	return dot.RenderGraph(g.toDotGraph(), dir, g.proc.Name(), format)
}
