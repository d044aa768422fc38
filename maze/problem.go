package maze

import "github.com/domino14/agentsearch/search"

// Problem is pathfinding from the maze's start to its goal with unit step
// costs.
type Problem struct {
	search.BaseProblem[Point]
	maze *Maze
}

func NewProblem(m *Maze) *Problem {
	return &Problem{BaseProblem: search.NewBaseProblem(m.Start, m.Goal), maze: m}
}

// NewProblemBetween searches between arbitrary open cells of m.
func NewProblemBetween(m *Maze, start, goal Point) (*Problem, error) {
	for _, p := range []Point{start, goal} {
		if !m.IsOpen(p) {
			return nil, &BlockedError{Point: p}
		}
	}
	return &Problem{BaseProblem: search.NewBaseProblem(start, goal), maze: m}, nil
}

func (p *Problem) Maze() *Maze { return p.maze }

func (p *Problem) Successors(state Point) []search.Successor[Point] {
	out := make([]search.Successor[Point], 0, 4)
	for _, d := range directions {
		n := Point{state.X + d.dx, state.Y + d.dy}
		if p.maze.IsOpen(n) {
			out = append(out, search.Successor[Point]{Action: d.name, State: n})
		}
	}
	return out
}

// Manhattan is an admissible and consistent heuristic for unit-cost grid
// moves.
func Manhattan(a, b Point) float64 {
	return float64(abs(a.X-b.X) + abs(a.Y-b.Y))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// BlockedError is returned when an endpoint is a wall or outside the maze.
type BlockedError struct {
	Point Point
}

func (e *BlockedError) Error() string {
	return ErrBlockedCell.Error() + ": " + e.Point.String()
}

func (e *BlockedError) Unwrap() error {
	return ErrBlockedCell
}

// Points extracts the states of a list of nodes.
func Points(nodes []*search.Node[Point]) []Point {
	out := make([]Point, len(nodes))
	for i, n := range nodes {
		out[i] = n.State()
	}
	return out
}
