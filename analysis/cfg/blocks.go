package cfg

import (
	"sort"

	"github.com/spakin/disjoint"

	"github.com/cs-au-dk/kildall/ir"
)

// Blocks partitions the procedure's statements into basic blocks,
// maximal straight-line runs entered only at the top and left only at
// the bottom. The entry and exit sentinels are not part of any block.
// Blocks and their statements come out in statement order.
func (g *Cfg) Blocks() [][]ir.Stmt {
	stmts := g.proc.Stmts()
	elems := make(map[ir.Stmt]*disjoint.Element, len(stmts))
	for _, s := range stmts {
		elems[s] = disjoint.NewElement()
	}

	// Merge a statement with its sole successor when that successor
	// has no other way of being reached.
	for _, s := range stmts {
		succs := g.SuccsOf(s)
		if len(succs) != 1 {
			continue
		}
		t := succs[0]
		if _, ok := elems[t]; !ok {
			continue
		}
		if len(g.PredsOf(t)) == 1 {
			disjoint.Union(elems[s], elems[t])
		}
	}

	groups := make(map[*disjoint.Element][]ir.Stmt)
	for _, s := range stmts {
		root := elems[s].Find()
		groups[root] = append(groups[root], s)
	}

	blocks := make([][]ir.Stmt, 0, len(groups))
	for _, b := range groups {
		sort.Slice(b, func(i, j int) bool { return b[i].Index() < b[j].Index() })
		blocks = append(blocks, b)
	}
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i][0].Index() < blocks[j][0].Index()
	})
	return blocks
}
