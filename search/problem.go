package search

// Successor is a single legal transition out of a state.
type Successor[S comparable] struct {
	Action string
	State  S
}

// Problem is what the search functions need to know about a domain.
// Successors must not have side effects and must return transitions in a
// fixed order. Costs must never be negative.
type Problem[S comparable] interface {
	InitialState() S
	// Goal returns the configured goal state, if there is one.
	Goal() (S, bool)
	Successors(state S) []Successor[S]
	IsGoal(state S) bool
	Cost(from S, action string, to S) float64
}

// BaseProblem holds an initial state and an optional goal. Embed it in a
// domain problem and supply Successors; IsGoal and Cost may be overridden.
type BaseProblem[S comparable] struct {
	initial S
	goal    S
	hasGoal bool
}

func NewBaseProblem[S comparable](initial, goal S) BaseProblem[S] {
	return BaseProblem[S]{initial: initial, goal: goal, hasGoal: true}
}

// NewOpenProblem creates a base problem with no goal state. IsGoal always
// returns false unless the embedding type overrides it.
func NewOpenProblem[S comparable](initial S) BaseProblem[S] {
	return BaseProblem[S]{initial: initial}
}

func (b BaseProblem[S]) InitialState() S { return b.initial }

func (b BaseProblem[S]) Goal() (S, bool) { return b.goal, b.hasGoal }

func (b BaseProblem[S]) IsGoal(state S) bool {
	return b.hasGoal && state == b.goal
}

// Cost is uniform: every step costs 1.
func (b BaseProblem[S]) Cost(from S, action string, to S) float64 {
	return 1
}
