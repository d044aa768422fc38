package miu

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/agentsearch/search"
)

func TestIsValid(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		s     string
		valid bool
	}{
		{"M", true},
		{"MI", true},
		{"MUIIU", true},
		{"", false},
		{"IM", false},
		{"MIX", false},
		{"mi", false},
	}
	for _, c := range cases {
		is.Equal(IsValid(c.s), c.valid)
	}
}

func TestNextStates(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		s    string
		next []string
	}{
		{"MI", []string{"MIU", "MII"}},
		{"MIU", []string{"MIUIU"}},
		{"MUI", []string{"MUIU", "MUIUI"}},
		{"MIIII", []string{"MIIIIU", "MIIIIIIII", "MUI", "MIU"}},
		{"MUUII", []string{"MUUIIU", "MUUIIUUII", "MII"}},
		// Rule 4 matches at positions 1 and 2 with the same result.
		{"MUUUI", []string{"MUUUIU", "MUUUIUUUI", "MUI"}},
	}
	for _, c := range cases {
		is.Equal(NextStates(c.s), c.next)
	}
}

func TestSuccessorsMIII(t *testing.T) {
	is := is.New(t)
	p, err := NewProblem("MIII", "MU")
	is.NoErr(err)
	succ := p.Successors("MIII")
	seen := map[string]string{}
	for _, s := range succ {
		_, dup := seen[s.State]
		is.True(!dup)
		seen[s.State] = s.Action
	}
	is.Equal(seen["MU"], "Rule 3: Replace III with U at position 1")
	is.Equal(seen["MIIIU"], "Rule 1: Append U")
	is.Equal(seen["MIIIIII"], "Rule 2: Duplicate after M")
	is.Equal(len(succ), 3)
}

func TestSuccessorsCollapseDuplicates(t *testing.T) {
	is := is.New(t)
	p, err := NewProblem("MUUUI", "MI")
	is.NoErr(err)
	succ := p.Successors("MUUUI")
	is.Equal(len(succ), len(NextStates("MUUUI")))
	is.Equal(succ[2].Action, "Rule 4: Remove UU at position 1")
	is.Equal(succ[2].State, "MUI")
}

func TestApplyRule(t *testing.T) {
	is := is.New(t)
	s, err := ApplyRule("MIIII", 3, 1)
	is.NoErr(err)
	is.Equal(s, "MIU")

	s, err = ApplyRule("MI", 2, 0)
	is.NoErr(err)
	is.Equal(s, "MII")

	_, err = ApplyRule("MU", 1, 0)
	is.True(errors.Is(err, ErrNotApplicable))

	_, err = ApplyRule("MIII", 3, 1)
	is.True(errors.Is(err, ErrNotApplicable))

	_, err = ApplyRule("MI", 5, 0)
	is.Equal(err, ErrInvalidRule)
}

func TestNewProblemRejectsInvalid(t *testing.T) {
	is := is.New(t)
	_, err := NewProblem("XI", "MU")
	is.True(errors.Is(err, ErrInvalidString))
	_, err = NewProblem("MI", "")
	is.True(errors.Is(err, ErrInvalidString))
}

func TestMUUnreachable(t *testing.T) {
	is := is.New(t)
	p, err := NewProblem("MI", "MU")
	is.NoErr(err)
	res := search.BreadthFirst[string](p, search.WithMaxIterations(1000))
	is.True(!res.Found())
	is.True(res.Exhausted())
	is.Equal(res.Iterations, 1000)
	is.True(!Derivable("MU"))
}

func TestICountInvariant(t *testing.T) {
	is := is.New(t)
	p, err := NewProblem("MI", "MU")
	is.NoErr(err)
	res := search.BreadthFirst[string](p, search.WithMaxIterations(300))
	is.True(len(res.Visited) > 300)
	for _, n := range res.Visited {
		is.True(CountI(n.State())%3 != 0)
		is.True(Derivable(n.State()))
	}
}

func TestSearchMIU(t *testing.T) {
	is := is.New(t)
	p, err := NewProblem("MI", "MIU")
	is.NoErr(err)
	res := search.BreadthFirst[string](p)
	is.True(res.Found())
	path := res.Solution.Path()
	is.Equal(path[0].State(), "MI")
	is.Equal(path[len(path)-1].State(), "MIU")
	first := path[1].State()
	is.True(contains(NextStates("MI"), first))
	is.Equal(res.Solution.SolutionActions(), []string{"Rule 1: Append U"})
	is.Equal(res.Iterations, 1)
}

func TestAllAlgorithmsProduceValidDerivations(t *testing.T) {
	is := is.New(t)
	p, err := NewProblem("MI", "MIUIU")
	is.NoErr(err)
	// The depth bound keeps DFS out of the ever-growing rule 2 branch.
	for _, alg := range search.Algorithms {
		res, err := search.Run[string](alg, p, Heuristic, search.WithMaxDepth(2))
		is.NoErr(err)
		is.True(res.Found())
		path := res.Solution.Path()
		for i := 1; i < len(path); i++ {
			is.True(contains(NextStates(path[i-1].State()), path[i].State()))
		}
		is.Equal(res.PathStates(), []string{"MI", "MIU", "MIUIU"})
	}
}

func TestDepthFirstOrder(t *testing.T) {
	is := is.New(t)
	p, err := NewProblem("MI", "MIUIU")
	is.NoErr(err)
	res := search.DepthFirst[string](p, search.WithMaxDepth(2))
	is.True(res.Found())
	// MI, then MII and its two depth-2 children, then MIU.
	is.Equal(res.Iterations, 5)
}

func TestHeuristic(t *testing.T) {
	is := is.New(t)
	is.Equal(Heuristic("MI", "MI"), 0.0)
	is.Equal(Heuristic("MI", ""), 0.0)
	is.Equal(Heuristic("MI", "MIU"), 2.0)
	is.Equal(Heuristic("MUU", "MI"), 4.0)
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
