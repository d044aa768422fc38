package search

import "container/heap"

// AStar runs best-first search ordered by path cost plus the heuristic
// estimate. The goal test happens when a node is popped, not when it is
// generated. Explored states are never reopened, so the returned path is
// only guaranteed optimal for a consistent heuristic.
//
// When a child's state is already waiting in the frontier, the frontier entry
// is replaced only if the new key is strictly lower.
func AStar[S comparable](p Problem[S], h Heuristic[S], options ...Option) Result[S] {
	opts := buildOptions(options)
	if h == nil {
		h = Zero[S]()
	}
	goal, _ := p.Goal()
	root := NewRootNode(p.InitialState())
	res := Result[S]{
		Algorithm:     AStarSearch,
		Visited:       []*Node[S]{root},
		MaxIterations: opts.MaxIterations,
	}
	defer func() { logFinished(res) }()

	if p.IsGoal(root.state) {
		res.Solution = root
		return res
	}

	seq := 0
	openSet := make(priorityQueue[S], 0)
	openSetMap := make(map[S]*frontierItem[S])
	push := func(n *Node[S], f float64) {
		item := &frontierItem[S]{node: n, fCost: f, seq: seq}
		seq++
		heap.Push(&openSet, item)
		openSetMap[n.state] = item
	}
	push(root, h(root.state, goal))
	explored := make(map[S]struct{})

	for openSet.Len() > 0 && res.Iterations < opts.MaxIterations {
		res.Iterations++
		currentItem := heap.Pop(&openSet).(*frontierItem[S])
		node := currentItem.node
		delete(openSetMap, node.state)
		opts.report(progressFor(AStarSearch, res.Iterations, node, openSet.Len(), len(explored)))

		if p.IsGoal(node.state) {
			res.Solution = node
			return res
		}
		explored[node.state] = struct{}{}

		for _, child := range node.Expand(p) {
			res.Visited = append(res.Visited, child)
			if _, closed := explored[child.state]; closed {
				continue
			}
			f := child.pathCost + h(child.state, goal)
			item, inOpen := openSetMap[child.state]
			if !inOpen {
				push(child, f)
				continue
			}
			if f < item.fCost {
				item.node = child
				item.fCost = f
				item.seq = seq
				seq++
				heap.Fix(&openSet, item.indexInQueue)
			}
		}
	}
	return res
}
