package cfg

import (
	"fmt"
	"io"
	"strings"

	"github.com/cs-au-dk/kildall/utils"

	"github.com/fatih/color"
)

var colorize = struct {
	Proc func(...interface{}) string
	Node func(...interface{}) string
	Kind func(...interface{}) string
}{
	Proc: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiWhite, color.Bold).SprintFunc())(is...)
	},
	Node: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Kind: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgYellow).SprintFunc())(is...)
	},
}

// PrintTo writes a textual rendition of the graph, one node per line
// followed by its outgoing edges.
func (g *Cfg) PrintTo(w io.Writer) {
	fmt.Fprintf(w, "cfg of %s:\n", colorize.Proc(g.proc.Name()))
	for _, n := range g.nodes {
		fmt.Fprintf(w, "  %s\n", colorize.Node(g.NodeName(n)))
		for _, e := range g.OutEdgesOf(n) {
			fmt.Fprintf(w, "    -%s-> %s\n", colorize.Kind(e), g.NodeName(e.Target()))
		}
	}
}

func (g *Cfg) String() string {
	var sb strings.Builder
	g.PrintTo(&sb)
	return sb.String()
}
