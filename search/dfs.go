package search

// DepthFirst searches the most recently generated node first. A node whose
// depth has reached the configured maximum is popped but not expanded, so no
// generated node is ever deeper than MaxDepth. The goal test is applied on
// generation, as in BreadthFirst.
func DepthFirst[S comparable](p Problem[S], options ...Option) Result[S] {
	opts := buildOptions(options)
	root := NewRootNode(p.InitialState())
	res := Result[S]{
		Algorithm:     DFS,
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
		node := frontier.popBack()
		explored[node.state] = struct{}{}
		opts.report(progressFor(DFS, res.Iterations, node, frontier.len(), len(explored)))

		if node.depth >= opts.MaxDepth {
			continue
		}
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
