package search

// BreadthFirst searches level by level. The goal test is applied when a node
// is generated, so the returned solution has the fewest transitions; it is
// not necessarily the cheapest when costs are not uniform.
func BreadthFirst[S comparable](p Problem[S], options ...Option) Result[S] {
	opts := buildOptions(options)
	root := NewRootNode(p.InitialState())
	res := Result[S]{
		Algorithm:     BFS,
		Visited:       []*Node[S]{root},
		MaxIterations: opts.MaxIterations,
	}
	defer func() { logFinished(res) }()

	if p.IsGoal(root.state) {
		res.Solution = root
		return res
	}

	frontier := newNodeList(root)
	explored := make(map[S]struct{})

	for frontier.len() > 0 && res.Iterations < opts.MaxIterations {
		res.Iterations++
		node := frontier.popFront()
		explored[node.state] = struct{}{}
		opts.report(progressFor(BFS, res.Iterations, node, frontier.len(), len(explored)))

		for _, child := range node.Expand(p) {
			res.Visited = append(res.Visited, child)
			if p.IsGoal(child.state) {
				res.Solution = child
				return res
			}
			if _, seen := explored[child.state]; seen || frontier.contains(child.state) {
				continue
			}
			frontier.push(child)
		}
	}
	return res
}
