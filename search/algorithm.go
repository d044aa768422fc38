package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrUnknownAlgorithm = errors.New("unknown search algorithm")

type Algorithm int

const (
	BFS Algorithm = iota
	DFS
	AStarSearch
)

var Algorithms = []Algorithm{BFS, DFS, AStarSearch}

func (a Algorithm) String() string {
	switch a {
	case BFS:
		return "bfs"
	case DFS:
		return "dfs"
	case AStarSearch:
		return "astar"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// DisplayName is the long form used in user-facing output.
func (a Algorithm) DisplayName() string {
	switch a {
	case BFS:
		return "Breadth-First Search (BFS)"
	case DFS:
		return "Depth-First Search (DFS)"
	case AStarSearch:
		return "A* Search"
	}
	return a.String()
}

func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bfs", "breadth-first":
		return BFS, nil
	case "dfs", "depth-first":
		return DFS, nil
	case "astar", "a*", "a-star":
		return AStarSearch, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Run dispatches to the search function for alg. The heuristic is only used
// by A*; a nil heuristic means Zero.
func Run[S comparable](alg Algorithm, p Problem[S], h Heuristic[S], options ...Option) (Result[S], error) {
	switch alg {
	case BFS:
		return BreadthFirst(p, options...), nil
	case DFS:
		return DepthFirst(p, options...), nil
	case AStarSearch:
		return AStar(p, h, options...), nil
	}
	return Result[S]{}, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, alg)
}

func progressFor[S comparable](alg Algorithm, iteration int, n *Node[S], frontier, explored int) Progress {
	return Progress{
		Algorithm:    alg,
		Iteration:    iteration,
		State:        n.state,
		Depth:        n.depth,
		PathCost:     n.pathCost,
		FrontierSize: frontier,
		ExploredSize: explored,
	}
}

func logFinished[S comparable](res Result[S]) {
	log.Debug().
		Str("algorithm", res.Algorithm.String()).
		Bool("found", res.Found()).
		Int("iterations", res.Iterations).
		Int("visited", len(res.Visited)).
		Bool("exhausted", res.Exhausted()).
		Msg("search-finished")
}
