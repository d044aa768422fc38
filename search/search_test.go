package search

import (
	"fmt"
	"testing"

	"github.com/matryer/is"
)

type cell struct{ x, y int }

type gridProblem struct {
	BaseProblem[cell]
	width, height int
	walls         map[cell]bool
}

func newGrid(w, h int, start, goal cell, walls ...cell) *gridProblem {
	g := &gridProblem{
		BaseProblem: NewBaseProblem(start, goal),
		width:       w,
		height:      h,
		walls:       map[cell]bool{},
	}
	for _, c := range walls {
		g.walls[c] = true
	}
	return g
}

func (g *gridProblem) Successors(c cell) []Successor[cell] {
	var out []Successor[cell]
	moves := []struct {
		name   string
		dx, dy int
	}{{"Down", 0, 1}, {"Right", 1, 0}, {"Up", 0, -1}, {"Left", -1, 0}}
	for _, m := range moves {
		n := cell{c.x + m.dx, c.y + m.dy}
		if n.x < 0 || n.y < 0 || n.x >= g.width || n.y >= g.height || g.walls[n] {
			continue
		}
		out = append(out, Successor[cell]{Action: m.name, State: n})
	}
	return out
}

func manhattan(a, b cell) float64 {
	dx, dy := a.x-b.x, a.y-b.y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// shortestSteps is a plain breadth-first distance used as a baseline.
func shortestSteps(g *gridProblem) int {
	goal, _ := g.Goal()
	dist := map[cell]int{g.InitialState(): 0}
	queue := []cell{g.InitialState()}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == goal {
			return dist[c]
		}
		for _, s := range g.Successors(c) {
			if _, ok := dist[s.State]; !ok {
				dist[s.State] = dist[c] + 1
				queue = append(queue, s.State)
			}
		}
	}
	return -1
}

// treeProblem is an infinite binary tree over the integers; node n has
// children 2n+1 and 2n+2.
type treeProblem struct {
	BaseProblem[int]
}

func (treeProblem) Successors(n int) []Successor[int] {
	return []Successor[int]{
		{Action: "left", State: 2*n + 1},
		{Action: "right", State: 2*n + 2},
	}
}

type edge struct {
	to   string
	cost float64
}

// weightedProblem is a small explicit graph with non-uniform costs.
type weightedProblem struct {
	BaseProblem[string]
	edges map[string][]edge
}

func (w *weightedProblem) Successors(s string) []Successor[string] {
	var out []Successor[string]
	for _, e := range w.edges[s] {
		out = append(out, Successor[string]{Action: s + "->" + e.to, State: e.to})
	}
	return out
}

func (w *weightedProblem) Cost(from, action, to string) float64 {
	for _, e := range w.edges[from] {
		if e.to == to {
			return e.cost
		}
	}
	panic(fmt.Sprintf("no edge %s->%s", from, to))
}

func states[S comparable](nodes []*Node[S]) []S {
	out := make([]S, len(nodes))
	for i, n := range nodes {
		out[i] = n.State()
	}
	return out
}

func TestInitialStateIsGoal(t *testing.T) {
	is := is.New(t)
	g := newGrid(3, 3, cell{1, 1}, cell{1, 1})
	for _, alg := range Algorithms {
		res, err := Run(alg, Problem[cell](g), manhattan)
		is.NoErr(err)
		is.True(res.Found())
		is.Equal(res.Solution.Depth(), 0)
		is.Equal(len(res.Solution.Path()), 1)
		is.Equal(res.Iterations, 0)
		is.Equal(len(res.Visited), 1)
		is.Equal(len(res.Solution.SolutionActions()), 0)
	}
}

func TestBreadthFirstShortest(t *testing.T) {
	is := is.New(t)
	g := newGrid(3, 3, cell{0, 0}, cell{2, 2}, cell{1, 1})
	res := BreadthFirst[cell](g)
	is.True(res.Found())
	is.Equal(res.Solution.Depth(), shortestSteps(g))
	is.Equal(res.Solution.Depth(), 4)
	is.Equal(res.Solution.PathCost(), 4.0)
	path := res.Solution.Path()
	is.Equal(path[0].State(), cell{0, 0})
	is.Equal(path[len(path)-1].State(), cell{2, 2})
	is.Equal(path[0].Action(), "")
	is.True(path[0].Parent() == nil)
}

func TestBreadthFirstIgnoresCost(t *testing.T) {
	is := is.New(t)
	w := &weightedProblem{
		BaseProblem: NewBaseProblem("A", "G"),
		edges: map[string][]edge{
			"A": {{"C", 5}, {"B", 1}},
			"B": {{"C", 1}},
			"C": {{"G", 1}},
		},
	}
	bfs := BreadthFirst[string](w)
	is.True(bfs.Found())
	is.Equal(states(bfs.Solution.Path()), []string{"A", "C", "G"})
	is.Equal(bfs.Solution.PathCost(), 6.0)

	astar := AStar[string](w, nil)
	is.True(astar.Found())
	is.Equal(states(astar.Solution.Path()), []string{"A", "B", "C", "G"})
	is.Equal(astar.Solution.PathCost(), 3.0)
	is.Equal(astar.Iterations, 4)
}

func TestAStarReplacesOnlyOnStrictlyLowerKey(t *testing.T) {
	is := is.New(t)
	w := &weightedProblem{
		BaseProblem: NewBaseProblem("A", "G"),
		edges: map[string][]edge{
			"A": {{"B", 1}, {"C", 2}},
			"B": {{"C", 1}},
			"C": {{"G", 1}},
		},
	}
	res := AStar[string](w, Zero[string]())
	is.True(res.Found())
	// C reached via B has the same key as the existing entry, so the
	// original parent is kept.
	is.Equal(states(res.Solution.Path()), []string{"A", "C", "G"})
	is.Equal(res.Solution.SolutionActions(), []string{"A->C", "C->G"})
	is.Equal(res.Solution.PathCost(), 3.0)
}

func TestAStarOptimal(t *testing.T) {
	is := is.New(t)
	g := newGrid(5, 4, cell{0, 0}, cell{4, 3}, cell{1, 0}, cell{1, 1}, cell{1, 2}, cell{3, 1}, cell{3, 2}, cell{3, 3})
	optimum := shortestSteps(g)

	zero := AStar[cell](g, Zero[cell]())
	bfs := BreadthFirst[cell](g)
	informed := AStar[cell](g, manhattan)

	is.True(zero.Found())
	is.True(bfs.Found())
	is.True(informed.Found())
	is.True(zero.Solution.PathCost() <= bfs.Solution.PathCost())
	is.Equal(informed.Solution.PathCost(), float64(optimum))
	is.Equal(optimum, 13)
}

func TestAStarOpenGrid(t *testing.T) {
	is := is.New(t)
	g := newGrid(3, 3, cell{0, 0}, cell{2, 2})
	res := AStar[cell](g, manhattan)
	is.True(res.Found())
	is.Equal(res.Solution.PathCost(), 4.0)
	is.Equal(res.Solution.Steps(), 4)
	is.Equal(len(res.Solution.SolutionActions()), 4)
}

func TestDepthFirstRespectsMaxDepth(t *testing.T) {
	is := is.New(t)
	p := treeProblem{NewBaseProblem(0, -1)}
	res := DepthFirst[int](p, WithMaxDepth(5), WithMaxIterations(100000))
	is.True(!res.Found())
	is.True(!res.Exhausted())
	maxDepth := 0
	for _, n := range res.Visited {
		if n.Depth() > maxDepth {
			maxDepth = n.Depth()
		}
	}
	is.Equal(maxDepth, 5)
	// A full binary tree of depth 5 has 63 nodes, every one of them popped.
	is.Equal(len(res.Visited), 63)
	is.Equal(res.Iterations, 63)
}

func TestDepthFirstFindsGoal(t *testing.T) {
	is := is.New(t)
	g := newGrid(4, 4, cell{0, 0}, cell{3, 3})
	res := DepthFirst[cell](g)
	is.True(res.Found())
	is.Equal(res.Solution.State(), cell{3, 3})
	is.True(res.Solution.Depth() >= 6)
	for i, n := range res.Solution.Path()[1:] {
		is.Equal(n.Depth(), i+1)
	}
}

func TestIterationCap(t *testing.T) {
	is := is.New(t)
	p := treeProblem{NewBaseProblem(0, -1)}
	for _, alg := range Algorithms {
		res, err := Run[int](alg, p, nil, WithMaxIterations(10))
		is.NoErr(err)
		is.True(!res.Found())
		is.Equal(res.Iterations, 10)
		is.True(res.Exhausted())
		is.Equal(res.MaxIterations, 10)
	}
}

func TestUnreachableGoal(t *testing.T) {
	is := is.New(t)
	g := newGrid(3, 3, cell{0, 0}, cell{2, 2}, cell{1, 2}, cell{2, 1})
	for _, alg := range Algorithms {
		res, err := Run[cell](alg, g, manhattan)
		is.NoErr(err)
		is.True(!res.Found())
		is.True(!res.Exhausted())
		is.True(res.Path() == nil)
		// Six cells are reachable and every one of them gets popped once.
		is.Equal(res.Iterations, 6)
	}
}

func TestDeterministic(t *testing.T) {
	is := is.New(t)
	g := newGrid(6, 6, cell{0, 0}, cell{5, 5}, cell{2, 2}, cell{2, 3}, cell{3, 2})
	for _, alg := range Algorithms {
		first, err := Run[cell](alg, g, manhattan)
		is.NoErr(err)
		second, err := Run[cell](alg, g, manhattan)
		is.NoErr(err)
		is.Equal(first.Iterations, second.Iterations)
		is.Equal(states(first.Path()), states(second.Path()))
		is.Equal(first.PathStates(), second.PathStates())
	}
}

func TestProgressCalledOncePerPop(t *testing.T) {
	is := is.New(t)
	g := newGrid(4, 4, cell{0, 0}, cell{3, 3})
	for _, alg := range Algorithms {
		calls := 0
		lastIteration := 0
		res, err := Run[cell](alg, g, manhattan, WithProgress(func(p Progress) {
			calls++
			is.Equal(p.Algorithm, alg)
			is.Equal(p.Iteration, lastIteration+1)
			lastIteration = p.Iteration
			_, ok := p.State.(cell)
			is.True(ok)
		}))
		is.NoErr(err)
		is.Equal(calls, res.Iterations)
	}
}

func TestVisitedIncludesGeneratedLeaves(t *testing.T) {
	is := is.New(t)
	g := newGrid(2, 1, cell{0, 0}, cell{1, 0})
	res := BreadthFirst[cell](g)
	is.True(res.Found())
	is.Equal(states(res.Visited), []cell{{0, 0}, {1, 0}})
	is.Equal(res.Iterations, 1)
}

func TestNodeEquality(t *testing.T) {
	is := is.New(t)
	w := &weightedProblem{
		BaseProblem: NewBaseProblem("A", "G"),
		edges:       map[string][]edge{"A": {{"B", 3}}, "C": {{"B", 1}}},
	}
	viaA := NewRootNode("A").Expand(w)[0]
	viaC := NewRootNode("C").Expand(w)[0]
	is.True(viaA.Equal(viaC))
	is.True(viaA.PathCost() != viaC.PathCost())
	is.True(!viaA.Equal(NewRootNode("A")))
}

func TestOpenProblemNeverReachesGoal(t *testing.T) {
	is := is.New(t)
	b := NewOpenProblem("A")
	_, hasGoal := b.Goal()
	is.True(!hasGoal)
	is.True(!b.IsGoal("A"))
	is.Equal(b.Cost("A", "x", "B"), 1.0)
}

func TestParseAlgorithm(t *testing.T) {
	is := is.New(t)
	for _, alg := range Algorithms {
		parsed, err := ParseAlgorithm(alg.String())
		is.NoErr(err)
		is.Equal(parsed, alg)
	}
	a, err := ParseAlgorithm("A*")
	is.NoErr(err)
	is.Equal(a, AStarSearch)
	_, err = ParseAlgorithm("greedy")
	is.True(err != nil)
}
