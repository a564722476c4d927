package bstviz

import (
	"strconv"

	"github.com/emicklei/dot"
)

// Dot renders the snapshot as a Graphviz digraph. Edges are labelled "l" and
// "r" so the side of every child survives layout.
func (s Snapshot) Dot() string {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("label", "size="+strconv.Itoa(s.Size)+" height="+strconv.Itoa(s.Height))

	var traverse func(n *NodeSnapshot, parent *dot.Node, direction string)
	traverse = func(n *NodeSnapshot, parent *dot.Node, direction string) {
		gn := graph.Node(strconv.Itoa(n.Value)).Attr("shape", "circle")
		if parent != nil {
			parent.Edge(gn, direction)
		}
		if n.Left != nil {
			traverse(n.Left, &gn, "l")
		}
		if n.Right != nil {
			traverse(n.Right, &gn, "r")
		}
	}
	if s.Root != nil {
		traverse(s.Root, nil, "")
	}
	return graph.String()
}
