package dot

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/goccy/go-graphviz"
)

const tmplCluster = `{{define "cluster" -}}
	{{printf "subgraph %q {" .}}
		{{.Prefix}}
		{{printf "%s" .Attrs.Lines}}
		{{range .Nodes}}
		{{template "node" .}}
		{{- end}}
	{{println "}" }}
{{- end}}`

const tmplEdge = `{{define "edge" -}}
	{{printf "%q -> %q [ %s ]" .From .To .Attrs}}
{{- end}}`

const tmplNode = `{{define "node" -}}
	{{printf "%q [ %s ]" .ID .Attrs}}
{{- end}}`

const tmplGraph = `digraph ControlFlowGraph {
	label="{{.Title}}";
	labeljust="l";
	fontname="Arial";
	fontsize="14";
	rankdir="{{or .Options.rankdir "TB"}}";
	style="solid";
	penwidth="0.5";
	pad="0.0";

	node [shape="box" style="filled" fillcolor="honeydew" fontname="Verdana" penwidth="1.0" margin="0.05,0.0"];

	{{- range .Clusters}}
	{{template "cluster" .}}
	{{- end}}

	{{range .Nodes}}
	{{template "node" .}}
	{{- end}}

	{{- range .Edges}}
	{{template "edge" .}}
	{{- end}}
}
`

// DotCluster is a cluster of nodes rendered inside a common border.
type DotCluster struct {
	ID     string
	Nodes  []*DotNode
	Attrs  DotAttrs
	Prefix string
}

func NewDotCluster(id string) *DotCluster {
	return &DotCluster{
		ID:    id,
		Attrs: make(DotAttrs),
	}
}

func (c *DotCluster) String() string {
	return fmt.Sprintf("cluster_%s", c.ID)
}

// DotNode is a single graph node.
type DotNode struct {
	ID    string
	Attrs DotAttrs
}

func (n *DotNode) String() string {
	return n.ID
}

// DotEdge is a directed edge between two nodes.
type DotEdge struct {
	From  *DotNode
	To    *DotNode
	Attrs DotAttrs
}

// DotAttrs are rendering attributes of a node, edge or cluster.
type DotAttrs map[string]string

func (p DotAttrs) List() []string {
	l := []string{}
	for k, v := range p {
		l = append(l, fmt.Sprintf("%s=%q;", k, v))
	}
	return l
}

func (p DotAttrs) String() string {
	return strings.Join(p.List(), " ")
}

func (p DotAttrs) Lines() string {
	return strings.Join(p.List(), "\n")
}

// DotGraph is a dot digraph assembled programmatically and rendered through
// the templates above.
type DotGraph struct {
	Title    string
	Attrs    DotAttrs
	Clusters []*DotCluster
	Nodes    []*DotNode
	Edges    []*DotEdge
	Options  map[string]string
}

func (g *DotGraph) WriteDot(w io.Writer) error {
	t := template.New("dot")
	t.Option("missingkey=zero")
	for _, s := range []string{tmplCluster, tmplNode, tmplEdge, tmplGraph} {
		if _, err := t.Parse(s); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, g); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// DotToImage renders a dot graph to an image file next to outfname,
// returning the file path.
func DotToImage(outfname string, format string, dot []byte) (string, error) {
	g := graphviz.New()
	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := graph.Close(); err != nil {
			log.Fatal(err)
		}
		g.Close()
	}()
	img := fmt.Sprintf("%s.%s", outfname, format)
	if err := g.RenderFilename(graph, graphviz.Format(format), img); err != nil {
		return "", err
	}
	return img, nil
}

// RenderGraph writes the dot source and renders it in the requested format
// inside dir, using the graph title as file name.
func RenderGraph(g *DotGraph, dir, name, format string) (string, error) {
	var buf bytes.Buffer
	if err := g.WriteDot(&buf); err != nil {
		return "", err
	}
	return DotToImage(filepath.Join(dir, name), format, buf.Bytes())
}
