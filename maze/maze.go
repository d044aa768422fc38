// Package maze is a rectangular grid with walls. Paths move one cell up,
// down, left or right at a time.
package maze

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

var (
	ErrInvalidParams = errors.New("invalid maze parameters")
	ErrInvalidGrid   = errors.New("invalid maze grid")
	ErrBlockedCell   = errors.New("cell is a wall or out of bounds")
)

type Cell byte

const (
	Open      Cell = ' '
	Wall      Cell = '#'
	StartCell Cell = 'S'
	GoalCell  Cell = 'G'
)

// Point is an (x, y) coordinate; y grows downward.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + ", " + strconv.Itoa(p.Y) + ")"
}

type Maze struct {
	Width  int
	Height int
	Start  Point
	Goal   Point
	grid   [][]Cell
}

// Validate checks the parameters accepted by Generate.
func Validate(width, height int, wallProbability float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidParams, width, height)
	}
	if wallProbability < 0 || wallProbability > 1 {
		return fmt.Errorf("%w: wall probability must be in [0, 1], got %v", ErrInvalidParams, wallProbability)
	}
	return nil
}

// New creates a maze with no walls, start at the top-left corner and goal at
// the bottom-right corner.
func New(width, height int) (*Maze, error) {
	if err := Validate(width, height, 0); err != nil {
		return nil, err
	}
	m := &Maze{
		Width:  width,
		Height: height,
		Start:  Point{0, 0},
		Goal:   Point{width - 1, height - 1},
		grid:   make([][]Cell, height),
	}
	for y := range m.grid {
		m.grid[y] = make([]Cell, width)
		for x := range m.grid[y] {
			m.grid[y][x] = Open
		}
	}
	m.grid[m.Start.Y][m.Start.X] = StartCell
	m.grid[m.Goal.Y][m.Goal.X] = GoalCell
	return m, nil
}

func seededRNG(seed int64) *frand.RNG {
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, uint64(seed))
	return frand.NewCustom(key, 1024, 12)
}

// Generate creates a maze where each cell is a wall with the given
// probability. The same seed always yields the same maze. The start and goal
// cells are never walls.
func Generate(width, height int, wallProbability float64, seed int64) (*Maze, error) {
	if err := Validate(width, height, wallProbability); err != nil {
		return nil, err
	}
	m, err := New(width, height)
	if err != nil {
		return nil, err
	}
	rng := seededRNG(seed)
	walls := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rng.Float64() < wallProbability {
				m.grid[y][x] = Wall
				walls++
			}
		}
	}
	m.grid[m.Start.Y][m.Start.X] = StartCell
	m.grid[m.Goal.Y][m.Goal.X] = GoalCell
	log.Debug().Int("width", width).Int("height", height).Int64("seed", seed).
		Int("walls", walls).Msg("maze-generated")
	return m, nil
}

// FromRows parses a text grid, one string per row. '#' is a wall, 'S' and
// 'G' mark the start and goal, anything else is open. Without an 'S' or 'G'
// the corners are used.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func FromRows(rows []string) (*Maze, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidGrid)
	}
	width := len(rows[0])
	m, err := New(width, len(rows))
	if err != nil {
		return nil, err
	}
	var start, goal *Point
	for y, row := range rows {
		if !isASCII(row) {
			return nil, fmt.Errorf("%w: row %d has non-ASCII characters", ErrInvalidGrid, y)
		}
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has length %d, expected %d", ErrInvalidGrid, y, len(row), width)
		}
		for x := 0; x < width; x++ {
			switch Cell(row[x]) {
			case Wall:
				m.grid[y][x] = Wall
			case StartCell:
				start = &Point{x, y}
				m.grid[y][x] = Open
			case GoalCell:
				goal = &Point{x, y}
				m.grid[y][x] = Open
			default:
				m.grid[y][x] = Open
			}
		}
	}
	if start == nil {
		start = &Point{0, 0}
	}
	if goal == nil {
		goal = &Point{width - 1, len(rows) - 1}
	}
	if err := m.SetEndpoints(*start, *goal); err != nil {
		return nil, err
	}
	return m, nil
}

// SetEndpoints moves the start and goal markers.
func (m *Maze) SetEndpoints(start, goal Point) error {
	if !m.InBounds(start) || m.grid[start.Y][start.X] == Wall {
		return fmt.Errorf("%w: start %v", ErrBlockedCell, start)
	}
	if !m.InBounds(goal) || m.grid[goal.Y][goal.X] == Wall {
		return fmt.Errorf("%w: goal %v", ErrBlockedCell, goal)
	}
	m.clearMarker(m.Start)
	m.clearMarker(m.Goal)
	m.Start, m.Goal = start, goal
	m.grid[start.Y][start.X] = StartCell
	m.grid[goal.Y][goal.X] = GoalCell
	return nil
}

func (m *Maze) clearMarker(p Point) {
	if m.InBounds(p) && m.grid[p.Y][p.X] != Wall {
		m.grid[p.Y][p.X] = Open
	}
}

func (m *Maze) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// IsOpen returns true if p is inside the maze and not a wall.
func (m *Maze) IsOpen(p Point) bool {
	return m.InBounds(p) && m.grid[p.Y][p.X] != Wall
}

func (m *Maze) At(p Point) Cell {
	return m.grid[p.Y][p.X]
}

// SetWall places a wall at p. The start and goal cannot be walled.
func (m *Maze) SetWall(p Point) error {
	if !m.InBounds(p) || p == m.Start || p == m.Goal {
		return fmt.Errorf("%w: cannot wall %v", ErrBlockedCell, p)
	}
	m.grid[p.Y][p.X] = Wall
	return nil
}

type direction struct {
	name   string
	dx, dy int
}

// Neighbor order is down, right, up, left.
var directions = []direction{
	{"Down", 0, 1},
	{"Right", 1, 0},
	{"Up", 0, -1},
	{"Left", -1, 0},
}

// Neighbors returns the open cells adjacent to p.
func (m *Maze) Neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range directions {
		n := Point{p.X + d.dx, p.Y + d.dy}
		if m.IsOpen(n) {
			out = append(out, n)
		}
	}
	return out
}

// Rows returns the grid as strings, one per row.
func (m *Maze) Rows() []string {
	rows := make([]string, m.Height)
	for y, row := range m.grid {
		b := make([]byte, len(row))
		for x, c := range row {
			b[x] = byte(c)
		}
		rows[y] = string(b)
	}
	return rows
}

func (m *Maze) String() string {
	return strings.Join(m.Rows(), "\n")
}

// Fingerprint hashes the layout, start and goal. Equal mazes have equal
// fingerprints.
func (m *Maze) Fingerprint() string {
	h := xxhash.Sum64String(fmt.Sprintf("%dx%d|%s", m.Width, m.Height, strings.Join(m.Rows(), "|")))
	return strconv.FormatUint(h, 16)
}

// Overlay renders the maze with the visited cells marked '.' and the path
// marked '*'. The start and goal keep their markers.
func Overlay(m *Maze, path, visited []Point) string {
	grid := make([][]byte, m.Height)
	for y, row := range m.Rows() {
		grid[y] = []byte(row)
	}
	mark := func(points []Point, c byte) {
		for _, p := range points {
			if !m.InBounds(p) || p == m.Start || p == m.Goal {
				continue
			}
			grid[p.Y][p.X] = c
		}
	}
	mark(visited, '.')
	mark(path, '*')
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
