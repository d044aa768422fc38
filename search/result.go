package search

// Result is the outcome of a search. Solution is nil when no goal was found,
// either because the frontier ran dry or because the iteration cap was hit.
// Visited holds every node generated, in generation order, root first.
type Result[S comparable] struct {
	Algorithm     Algorithm
	Solution      *Node[S]
	Visited       []*Node[S]
	Iterations    int
	MaxIterations int
}

func (r Result[S]) Found() bool {
	return r.Solution != nil
}

// Exhausted reports whether the search stopped because it ran out of
// iterations rather than out of frontier.
func (r Result[S]) Exhausted() bool {
	return r.Solution == nil && r.Iterations >= r.MaxIterations
}

// Path returns the solution path, or nil if there is no solution.
func (r Result[S]) Path() []*Node[S] {
	if r.Solution == nil {
		return nil
	}
	return r.Solution.Path()
}

// PathStates returns the states along the solution path.
func (r Result[S]) PathStates() []S {
	path := r.Path()
	states := make([]S, len(path))
	for i, n := range path {
		states[i] = n.state
	}
	return states
}
