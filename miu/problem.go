package miu

import (
	"fmt"
	"strings"

	"github.com/domino14/agentsearch/search"
)

// Problem is the search problem of deriving one MIU string from another.
type Problem struct {
	search.BaseProblem[string]
}

// NewProblem validates both strings and returns the search problem.
func NewProblem(initial, goal string) (*Problem, error) {
	if err := Validate(initial); err != nil {
		return nil, err
	}
	if err := Validate(goal); err != nil {
		return nil, err
	}
	return &Problem{BaseProblem: search.NewBaseProblem(initial, goal)}, nil
}

func actionFor(r rewrite) string {
	switch r.rule {
	case 1:
		return "Rule 1: Append U"
	case 2:
		return "Rule 2: Duplicate after M"
	case 3:
		return fmt.Sprintf("Rule 3: Replace III with U at position %d", r.position)
	default:
		return fmt.Sprintf("Rule 4: Remove UU at position %d", r.position)
	}
}

// Successors labels every distinct result of NextStates with the first rule
// application that produced it.
func (p *Problem) Successors(state string) []search.Successor[string] {
	seen := make(map[string]struct{})
	var out []search.Successor[string]
	for _, r := range rewrites(state) {
		if _, ok := seen[r.result]; ok {
			continue
		}
		seen[r.result] = struct{}{}
		out = append(out, search.Successor[string]{Action: actionFor(r), State: r.result})
	}
	return out
}

// Heuristic estimates distance by the length difference plus the per-letter
// count differences. It is not admissible (rule 2 can double the length in
// one step), so A* with it finds a path but not necessarily the shortest.
func Heuristic(state, goal string) float64 {
	if goal == "" {
		return 0
	}
	diff := abs(len(state) - len(goal))
	for _, c := range []string{"M", "I", "U"} {
		diff += abs(strings.Count(state, c) - strings.Count(goal, c))
	}
	return float64(diff)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
