package search

// Heuristic estimates the remaining cost from state to goal. It must be a
// pure function and never return a negative value. A* only returns optimal
// paths when the heuristic is consistent.
type Heuristic[S comparable] func(state, goal S) float64

// Zero returns the heuristic that always estimates 0. A* with Zero behaves
// like uniform-cost search.
func Zero[S comparable]() Heuristic[S] {
	return func(S, S) float64 { return 0 }
}
