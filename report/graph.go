package report

import (
	"errors"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/domino14/agentsearch/search"
)

type treeNode struct {
	id     int64
	label  string
	onPath bool
}

func (n treeNode) ID() int64     { return n.id }
func (n treeNode) DOTID() string { return n.label }
func (n treeNode) Attributes() []encoding.Attribute {
	if n.onPath {
		return []encoding.Attribute{{Key: "style", Value: "filled"}, {Key: "fillcolor", Value: "green"}}
	}
	return []encoding.Attribute{{Key: "style", Value: "filled"}, {Key: "fillcolor", Value: "lightblue"}}
}

type treeEdge struct {
	from, to treeNode
	onPath   bool
}

func (e treeEdge) From() graph.Node { return e.from }
func (e treeEdge) To() graph.Node   { return e.to }
func (e treeEdge) ReversedEdge() graph.Edge {
	return treeEdge{from: e.to, to: e.from, onPath: e.onPath}
}
func (e treeEdge) Attributes() []encoding.Attribute {
	if e.onPath {
		return []encoding.Attribute{{Key: "color", Value: "green"}, {Key: "penwidth", Value: "2"}}
	}
	return []encoding.Attribute{{Key: "color", Value: "gray"}}
}

type edgeKey[S comparable] struct {
	from, to S
}

// SearchGraph builds the directed graph of every parent->child generation in
// the result. Nodes are states, so repeated generations of one state share a
// vertex. Solution path vertices and edges are flagged.
func SearchGraph[S comparable](res search.Result[S]) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	onPath := make(map[S]bool)
	pathEdges := make(map[edgeKey[S]]bool)
	for _, n := range res.Path() {
		onPath[n.State()] = true
		if n.Parent() != nil {
			pathEdges[edgeKey[S]{n.Parent().State(), n.State()}] = true
		}
	}
	nodes := make(map[S]treeNode)
	vertex := func(s S) treeNode {
		if n, ok := nodes[s]; ok {
			return n
		}
		n := treeNode{id: int64(len(nodes)), label: stateString(s), onPath: onPath[s]}
		nodes[s] = n
		g.AddNode(n)
		return n
	}
	for _, n := range res.Visited {
		child := vertex(n.State())
		if n.Parent() == nil {
			continue
		}
		parent := vertex(n.Parent().State())
		// Rule 2 maps "M" onto itself; simple graphs reject self edges.
		if parent.id == child.id || g.HasEdgeFromTo(parent.id, child.id) {
			continue
		}
		key := edgeKey[S]{n.Parent().State(), n.State()}
		g.SetEdge(treeEdge{from: parent, to: child, onPath: pathEdges[key]})
	}
	return g
}

// DOT renders the search graph in Graphviz format.
func DOT[S comparable](name string, res search.Result[S]) ([]byte, error) {
	return dot.Marshal(SearchGraph(res), name, "", "  ")
}

var ErrBadBins = errors.New("bins must be positive")

// DepthHistogram prints a histogram of the depths of every generated node.
func DepthHistogram[S comparable](w io.Writer, res search.Result[S], bins int) error {
	if bins < 1 {
		return ErrBadBins
	}
	depths := make([]float64, len(res.Visited))
	for i, n := range res.Visited {
		depths[i] = float64(n.Depth())
	}
	hist := histogram.Hist(bins, depths)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
