package maze

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/agentsearch/search"
)

func TestGenerateDeterministic(t *testing.T) {
	m1, err := Generate(10, 10, 0.3, 42)
	assert.Nil(t, err)
	m2, err := Generate(10, 10, 0.3, 42)
	assert.Nil(t, err)
	m3, err := Generate(10, 10, 0.3, 43)
	assert.Nil(t, err)

	assert.Equal(t, m1.String(), m2.String())
	assert.Equal(t, m1.Fingerprint(), m2.Fingerprint())
	assert.NotEqual(t, m1.String(), m3.String())
	assert.Equal(t, StartCell, m1.At(Point{0, 0}))
	assert.Equal(t, GoalCell, m1.At(Point{9, 9}))
}

func TestGenerateExtremes(t *testing.T) {
	open, err := Generate(4, 3, 0, 1)
	assert.Nil(t, err)
	assert.Equal(t, "S   \n    \n   G", open.String())

	closed, err := Generate(3, 2, 1, 1)
	assert.Nil(t, err)
	assert.Equal(t, "S##\n##G", closed.String())
	assert.Empty(t, closed.Neighbors(closed.Start))
}

func TestValidate(t *testing.T) {
	for _, c := range []struct {
		w, h int
		p    float64
	}{{0, 5, 0.3}, {5, -1, 0.3}, {5, 5, -0.1}, {5, 5, 1.5}} {
		_, err := Generate(c.w, c.h, c.p, 42)
		assert.True(t, errors.Is(err, ErrInvalidParams))
	}
	assert.Nil(t, Validate(1, 1, 1))
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([]string{
		"#S.",
		"...",
		"G.#",
	})
	assert.Nil(t, err)
	assert.Equal(t, Point{1, 0}, m.Start)
	assert.Equal(t, Point{0, 2}, m.Goal)
	assert.Equal(t, "#S \n   \nG #", m.String())
	assert.Equal(t, []Point{{1, 1}, {2, 0}}, m.Neighbors(m.Start))

	_, err = FromRows([]string{"...", ".."})
	assert.True(t, errors.Is(err, ErrInvalidGrid))
	_, err = FromRows(nil)
	assert.True(t, errors.Is(err, ErrInvalidGrid))
	_, err = FromRows([]string{"#..", "..."})
	assert.True(t, errors.Is(err, ErrBlockedCell))
	_, err = FromRows([]string{"S·", "..G"})
	assert.True(t, errors.Is(err, ErrInvalidGrid))
	assert.Contains(t, err.Error(), "non-ASCII")
	_, err = FromRows([]string{"S.é", "..G"})
	assert.True(t, errors.Is(err, ErrInvalidGrid))
}

func TestSetWall(t *testing.T) {
	m, err := New(3, 3)
	assert.Nil(t, err)
	assert.Nil(t, m.SetWall(Point{1, 1}))
	assert.False(t, m.IsOpen(Point{1, 1}))
	assert.NotNil(t, m.SetWall(m.Start))
	assert.NotNil(t, m.SetWall(Point{3, 0}))
	assert.False(t, m.IsOpen(Point{-1, 0}))
}

func TestSuccessors(t *testing.T) {
	m, err := New(3, 3)
	assert.Nil(t, err)
	p := NewProblem(m)
	succ := p.Successors(Point{1, 1})
	actions := make([]string, len(succ))
	for i, s := range succ {
		actions[i] = s.Action
	}
	assert.Equal(t, []string{"Down", "Right", "Up", "Left"}, actions)
	assert.Equal(t, Point{1, 2}, succ[0].State)
	assert.Equal(t, Point{0, 1}, succ[3].State)
	assert.Equal(t, 1.0, p.Cost(Point{1, 1}, "Down", Point{1, 2}))
}

func TestAStarOpenMaze(t *testing.T) {
	m, err := New(3, 3)
	assert.Nil(t, err)
	res := search.AStar[Point](NewProblem(m), Manhattan)
	assert.True(t, res.Found())
	assert.Equal(t, 4.0, res.Solution.PathCost())
	assert.Equal(t, 4, len(res.Solution.Path())-1)
	assert.Equal(t, Point{2, 2}, res.Solution.State())
}

func TestBreadthFirstAroundWall(t *testing.T) {
	m, err := New(3, 3)
	assert.Nil(t, err)
	assert.Nil(t, m.SetWall(Point{1, 1}))
	res := search.BreadthFirst[Point](NewProblem(m))
	assert.True(t, res.Found())
	assert.Equal(t, 4, res.Solution.Depth())
	for _, pt := range Points(res.Solution.Path()) {
		assert.NotEqual(t, Point{1, 1}, pt)
	}
}

func TestSearchesAgreeOnGeneratedMaze(t *testing.T) {
	m, err := Generate(12, 12, 0.2, 7)
	assert.Nil(t, err)
	p := NewProblem(m)
	bfs := search.BreadthFirst[Point](p, search.WithMaxIterations(10000))
	astar := search.AStar[Point](p, Manhattan, search.WithMaxIterations(10000))
	assert.Equal(t, bfs.Found(), astar.Found())
	if bfs.Found() {
		assert.Equal(t, bfs.Solution.PathCost(), astar.Solution.PathCost())
		assert.LessOrEqual(t, astar.Iterations, 10000)
	}
}

func TestNewProblemBetween(t *testing.T) {
	m, err := FromRows([]string{"S#", ".G"})
	assert.Nil(t, err)
	_, err = NewProblemBetween(m, Point{0, 0}, Point{1, 0})
	assert.True(t, errors.Is(err, ErrBlockedCell))
	var blocked *BlockedError
	assert.True(t, errors.As(err, &blocked))
	assert.Equal(t, Point{1, 0}, blocked.Point)

	p, err := NewProblemBetween(m, Point{1, 1}, Point{0, 0})
	assert.Nil(t, err)
	res := search.BreadthFirst[Point](p)
	assert.True(t, res.Found())
	assert.Equal(t, []string{"Left", "Up"}, res.Solution.SolutionActions())
}

func TestOverlay(t *testing.T) {
	m, err := FromRows([]string{
		"S..",
		"##.",
		"..G",
	})
	assert.Nil(t, err)
	res := search.BreadthFirst[Point](NewProblem(m))
	assert.True(t, res.Found())
	out := Overlay(m, Points(res.Solution.Path()), Points(res.Visited))
	assert.Equal(t, strings.Join([]string{"S**", "##*", "  G"}, "\n"), out)
}

func TestPointString(t *testing.T) {
	assert.Equal(t, "(3, 4)", Point{3, 4}.String())
}
