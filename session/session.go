// Package session keeps generated mazes between requests so a caller can
// generate once and search many times. A Store is owned by whoever creates
// it (the shell, the HTTP server) and is passed in explicitly.
package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/agentsearch/maze"
)

var ErrNoMaze = errors.New("no maze generated")

type loadFunc func(id string) (*maze.Maze, error)

type Store struct {
	sync.Mutex
	mazes   map[string]*maze.Maze
	current string
}

func NewStore() *Store {
	return &Store{mazes: make(map[string]*maze.Maze)}
}

// Put stores m under its fingerprint, makes it current, and returns the id.
func (s *Store) Put(m *maze.Maze) string {
	id := m.Fingerprint()
	s.Lock()
	defer s.Unlock()
	s.mazes[id] = m
	s.current = id
	log.Debug().Str("id", id).Msg("stored maze")
	return id
}

func (s *Store) Get(id string) (*maze.Maze, error) {
	s.Lock()
	defer s.Unlock()
	m, ok := s.mazes[id]
	if !ok {
		return nil, ErrNoMaze
	}
	return m, nil
}

// Load returns the maze stored under id, calling load to build it on a miss.
func (s *Store) Load(id string, load loadFunc) (*maze.Maze, error) {
	s.Lock()
	defer s.Unlock()
	if m, ok := s.mazes[id]; ok {
		log.Debug().Str("id", id).Msg("getting maze from session")
		return m, nil
	}
	log.Debug().Str("id", id).Msg("loading maze into session")
	m, err := load(id)
	if err != nil {
		return nil, err
	}
	s.mazes[id] = m
	return m, nil
}

// Current returns the most recently stored or selected maze.
func (s *Store) Current() (*maze.Maze, string, error) {
	s.Lock()
	defer s.Unlock()
	if s.current == "" {
		return nil, "", ErrNoMaze
	}
	return s.mazes[s.current], s.current, nil
}

func (s *Store) SetCurrent(id string) error {
	s.Lock()
	defer s.Unlock()
	if _, ok := s.mazes[id]; !ok {
		return ErrNoMaze
	}
	s.current = id
	return nil
}

func (s *Store) Len() int {
	s.Lock()
	defer s.Unlock()
	return len(s.mazes)
}

// IDs lists the stored maze ids in sorted order.
func (s *Store) IDs() []string {
	s.Lock()
	defer s.Unlock()
	ids := make([]string, 0, len(s.mazes))
	for id := range s.mazes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
