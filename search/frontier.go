package search

// nodeList is the frontier for the uninformed searches. It can be drained
// from either end, and tracks which states it currently holds so that
// duplicate checks do not need to scan it.
type nodeList[S comparable] struct {
	nodes   []*Node[S]
	head    int
	members map[S]int
}

func newNodeList[S comparable](root *Node[S]) *nodeList[S] {
	l := &nodeList[S]{members: make(map[S]int)}
	l.push(root)
	return l
}

func (l *nodeList[S]) len() int {
	return len(l.nodes) - l.head
}

func (l *nodeList[S]) contains(state S) bool {
	return l.members[state] > 0
}

func (l *nodeList[S]) push(n *Node[S]) {
	l.nodes = append(l.nodes, n)
	l.members[n.state]++
}

func (l *nodeList[S]) popFront() *Node[S] {
	n := l.nodes[l.head]
	l.nodes[l.head] = nil
	l.head++
	// Reclaim the consumed prefix once it dominates the slice.
	if l.head > 64 && l.head*2 > len(l.nodes) {
		l.nodes = append(l.nodes[:0], l.nodes[l.head:]...)
		l.head = 0
	}
	l.forget(n.state)
	return n
}

func (l *nodeList[S]) popBack() *Node[S] {
	last := len(l.nodes) - 1
	n := l.nodes[last]
	l.nodes[last] = nil
	l.nodes = l.nodes[:last]
	l.forget(n.state)
	return n
}

func (l *nodeList[S]) forget(state S) {
	if l.members[state] <= 1 {
		delete(l.members, state)
		return
	}
	l.members[state]--
}
