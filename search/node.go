// Package search implements uninformed and informed tree search over any
// problem that can list successors of a state. It provides breadth-first,
// bounded depth-first and A* searches.
package search

// Node is an entry in the search tree. Two nodes are considered equal when
// their states are equal; the parent link is kept so the full path can be
// recovered from any node.
type Node[S comparable] struct {
	state    S
	parent   *Node[S]
	action   string
	pathCost float64
	depth    int
}

// NewRootNode creates the root of a search tree.
func NewRootNode[S comparable](state S) *Node[S] {
	return &Node[S]{state: state}
}

func newChildNode[S comparable](parent *Node[S], action string, state S, stepCost float64) *Node[S] {
	return &Node[S]{
		state:    state,
		parent:   parent,
		action:   action,
		pathCost: parent.pathCost + stepCost,
		depth:    parent.depth + 1,
	}
}

func (n *Node[S]) State() S          { return n.state }
func (n *Node[S]) Parent() *Node[S]  { return n.parent }
func (n *Node[S]) Action() string    { return n.action }
func (n *Node[S]) PathCost() float64 { return n.pathCost }
func (n *Node[S]) Depth() int        { return n.depth }

// Equal compares nodes by state only.
func (n *Node[S]) Equal(other *Node[S]) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.state == other.state
}

// Expand returns one child for every successor the problem reports, in the
// order the problem reports them.
func (n *Node[S]) Expand(p Problem[S]) []*Node[S] {
	successors := p.Successors(n.state)
	children := make([]*Node[S], len(successors))
	for i, succ := range successors {
		children[i] = newChildNode(n, succ.Action, succ.State,
			p.Cost(n.state, succ.Action, succ.State))
	}
	return children
}

// Path returns the nodes from the root to n, root first.
func (n *Node[S]) Path() []*Node[S] {
	path := make([]*Node[S], n.depth+1)
	for cur, i := n, n.depth; cur != nil; cur, i = cur.parent, i-1 {
		path[i] = cur
	}
	return path
}

// SolutionActions returns the actions that lead from the root to n.
func (n *Node[S]) SolutionActions() []string {
	path := n.Path()
	actions := make([]string, 0, len(path)-1)
	for _, node := range path[1:] {
		actions = append(actions, node.action)
	}
	return actions
}

// Steps is the number of transitions from the root to n.
func (n *Node[S]) Steps() int {
	return n.depth
}
