// Package server exposes the MIU and maze searches as a JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/agentsearch/config"
	"github.com/domino14/agentsearch/maze"
	"github.com/domino14/agentsearch/miu"
	"github.com/domino14/agentsearch/report"
	"github.com/domino14/agentsearch/search"
	"github.com/domino14/agentsearch/session"
)

const GracefulShutdownTimeout = 20 * time.Second

var (
	errInvalidJSON  = errors.New("invalid JSON")
	errTooManyIters = errors.New("max_iterations exceeds the server limit")
	errMazeTooLarge = errors.New("maze exceeds the server size limit")
)

type Server struct {
	cfg      *config.Config
	sessions *session.Store
	mux      *http.ServeMux
}

func New(cfg *config.Config, sessions *session.Store) *Server {
	s := &Server{cfg: cfg, sessions: sessions, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST /api/miu/next_states", s.handleMiuNextStates)
	s.mux.HandleFunc("POST /api/miu/search", s.handleMiuSearch)
	s.mux.HandleFunc("POST /api/maze/generate", s.handleMazeGenerate)
	s.mux.HandleFunc("POST /api/maze/search", s.handleMazeSearch)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	log.Debug().Str("method", r.Method).Str("path", r.URL.Path).
		Dur("elapsed", time.Since(start)).Msg("http-request")
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http-server-starting")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Msgf("HTTP server Shutdown: %v", err)
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// defaults is the subset of configuration a request falls back on.
type defaults struct {
	maxIterations   int
	maxDepth        int
	miuInitial      string
	miuGoal         string
	mazeWidth       int
	mazeHeight      int
	wallProbability float64
	mazeSeed        int64
	iterationLimit  int
	mazeCellLimit   int
}

func (s *Server) defaults() defaults {
	s.cfg.Lock()
	defer s.cfg.Unlock()
	return defaults{
		maxIterations:   s.cfg.GetInt(config.ConfigMaxIterations),
		maxDepth:        s.cfg.GetInt(config.ConfigMaxDepth),
		miuInitial:      s.cfg.GetString(config.ConfigMiuInitial),
		miuGoal:         s.cfg.GetString(config.ConfigMiuGoal),
		mazeWidth:       s.cfg.GetInt(config.ConfigMazeWidth),
		mazeHeight:      s.cfg.GetInt(config.ConfigMazeHeight),
		wallProbability: s.cfg.GetFloat64(config.ConfigMazeWallProbability),
		mazeSeed:        s.cfg.GetInt64(config.ConfigMazeSeed),
		iterationLimit:  s.cfg.GetInt(config.ConfigAPIMaxIterations),
		mazeCellLimit:   s.cfg.GetInt(config.ConfigAPIMaxMazeCells),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("could-not-encode-response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func decode(r *http.Request, v any) error {
	if r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return nil
}

// searchParams are shared by both search endpoints.
type searchParams struct {
	Algorithm     string `json:"algorithm"`
	MaxIterations int    `json:"max_iterations"`
	MaxDepth      int    `json:"max_depth"`
}

func (p searchParams) options(d defaults) (search.Algorithm, []search.Option, error) {
	if p.MaxIterations > d.iterationLimit {
		return 0, nil, fmt.Errorf("%w: %d > %d", errTooManyIters, p.MaxIterations, d.iterationLimit)
	}
	alg, err := search.ParseAlgorithm(p.Algorithm)
	if err != nil {
		return 0, nil, err
	}
	return alg, []search.Option{
		search.WithMaxIterations(p.MaxIterations),
		search.WithMaxDepth(p.MaxDepth),
	}, nil
}

type searchResponse struct {
	report.Summary
	Path    []report.Step `json:"path,omitempty"`
	ID      string        `json:"id,omitempty"`
	Overlay string        `json:"overlay,omitempty"`
}

type nextStatesRequest struct {
	State string `json:"state"`
}

func (s *Server) handleMiuNextStates(w http.ResponseWriter, r *http.Request) {
	req := nextStatesRequest{State: s.defaults().miuInitial}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := miu.Validate(req.State); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"next_states": miu.NextStates(req.State)})
}

type miuSearchRequest struct {
	searchParams
	InitialState string `json:"initial_state"`
	GoalState    string `json:"goal_state"`
}

func (s *Server) handleMiuSearch(w http.ResponseWriter, r *http.Request) {
	d := s.defaults()
	req := miuSearchRequest{
		searchParams: searchParams{Algorithm: "bfs", MaxIterations: d.maxIterations, MaxDepth: d.maxDepth},
		InitialState: d.miuInitial,
		GoalState:    d.miuGoal,
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	alg, opts, err := req.options(d)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := miu.NewProblem(req.InitialState, req.GoalState)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := search.Run[string](alg, p, miu.Heuristic, opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Summary: report.Summarize(res),
		Path:    report.Steps(res),
	})
}

type mazeGenerateRequest struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	WallProbability float64 `json:"wall_prob"`
	Seed            int64   `json:"seed"`
}

type mazeResponse struct {
	ID     string     `json:"id"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Grid   []string   `json:"grid"`
	Start  maze.Point `json:"start"`
	Goal   maze.Point `json:"goal"`
}

func (s *Server) handleMazeGenerate(w http.ResponseWriter, r *http.Request) {
	d := s.defaults()
	req := mazeGenerateRequest{
		Width:           d.mazeWidth,
		Height:          d.mazeHeight,
		WallProbability: d.wallProbability,
		Seed:            d.mazeSeed,
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := checkMazeSize(req.Width, req.Height, d.mazeCellLimit); err != nil {
		writeError(w, err)
		return
	}
	m, err := maze.Generate(req.Width, req.Height, req.WallProbability, req.Seed)
	if err != nil {
		writeError(w, err)
		return
	}
	id := s.sessions.Put(m)
	writeJSON(w, http.StatusOK, mazeResponse{
		ID:     id,
		Width:  m.Width,
		Height: m.Height,
		Grid:   m.Rows(),
		Start:  m.Start,
		Goal:   m.Goal,
	})
}

// checkMazeSize rejects dimensions whose cell count exceeds limit. Each side
// is checked first so the product cannot overflow.
func checkMazeSize(width, height, limit int) error {
	if width > limit || height > limit || (width > 0 && height > limit/width) {
		return fmt.Errorf("%w: %dx%d > %d cells", errMazeTooLarge, width, height, limit)
	}
	return nil
}

type mazeSearchRequest struct {
	searchParams
	ID    string      `json:"id"`
	Grid  []string    `json:"grid"`
	Start *maze.Point `json:"start"`
	Goal  *maze.Point `json:"goal"`
}

// mazeFor resolves the maze a search request refers to: an inline grid, a
// stored id, or else the most recent maze.
func (s *Server) mazeFor(req mazeSearchRequest, cellLimit int) (*maze.Maze, string, error) {
	switch {
	case len(req.Grid) > 0:
		if err := checkMazeSize(len(req.Grid[0]), len(req.Grid), cellLimit); err != nil {
			return nil, "", err
		}
		m, err := maze.FromRows(req.Grid)
		if err != nil {
			return nil, "", err
		}
		return m, s.sessions.Put(m), nil
	case req.ID != "":
		m, err := s.sessions.Get(req.ID)
		return m, req.ID, err
	}
	return s.sessions.Current()
}

func (s *Server) handleMazeSearch(w http.ResponseWriter, r *http.Request) {
	d := s.defaults()
	req := mazeSearchRequest{
		searchParams: searchParams{Algorithm: "astar", MaxIterations: d.maxIterations, MaxDepth: d.maxDepth},
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	alg, opts, err := req.options(d)
	if err != nil {
		writeError(w, err)
		return
	}
	m, id, err := s.mazeFor(req, d.mazeCellLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	start, goal := m.Start, m.Goal
	if req.Start != nil {
		start = *req.Start
	}
	if req.Goal != nil {
		goal = *req.Goal
	}
	p, err := maze.NewProblemBetween(m, start, goal)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := search.Run[maze.Point](alg, p, maze.Manhattan, opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Summary: report.Summarize(res),
		Path:    report.Steps(res),
		ID:      id,
		Overlay: maze.Overlay(m, maze.Points(res.Path()), maze.Points(res.Visited)),
	})
}
