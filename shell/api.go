package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/agentsearch/config"
	"github.com/domino14/agentsearch/maze"
	"github.com/domino14/agentsearch/miu"
	"github.com/domino14/agentsearch/report"
	"github.com/domino14/agentsearch/runner"
	"github.com/domino14/agentsearch/search"
)

const defaultHistogramBins = 10

type Response struct {
	message string
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) StringDefault(key, defaultS string) string {
	if v, ok := c[key]; ok {
		return v
	}
	return defaultS
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) Int64Default(key string, defaultI int64) (int64, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func (c CmdOptions) FloatDefault(key string, defaultF float64) (float64, error) {
	v, ok := c[key]
	if !ok {
		return defaultF, nil
	}
	return strconv.ParseFloat(v, 64)
}

func (c CmdOptions) Bool(key string) bool {
	return strings.ToLower(c[key]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

// settable lists the config keys the set command may change.
var settable = []string{
	config.ConfigDebug,
	config.ConfigMaxIterations,
	config.ConfigMaxDepth,
	config.ConfigMazeWidth,
	config.ConfigMazeHeight,
	config.ConfigMazeWallProbability,
	config.ConfigMazeSeed,
	config.ConfigMiuInitial,
	config.ConfigMiuGoal,
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	sc.config.Lock()
	defer sc.config.Unlock()
	if len(cmd.args) == 0 {
		lines := lo.Map(settable, func(k string, _ int) string {
			return fmt.Sprintf("%-24s%v", k, sc.config.Get(k))
		})
		return msg(strings.Join(lines, "\n")), nil
	}
	key := cmd.args[0]
	if !lo.Contains(settable, key) {
		return nil, fmt.Errorf("%v is not a setting; try one of %v", key, strings.Join(settable, ", "))
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprint(sc.config.Get(key))), nil
	}
	value := strings.Join(cmd.args[1:], " ")
	switch key {
	case config.ConfigMiuInitial, config.ConfigMiuGoal:
		if err := miu.Validate(value); err != nil {
			return nil, err
		}
	case config.ConfigDebug:
		debug, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	case config.ConfigMazeWallProbability:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return nil, err
		}
	default:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return nil, err
		}
	}
	sc.config.Set(key, value)
	return msg("set " + key + " to " + value), nil
}

func (sc *ShellController) searchOptions(cmd *shellcmd) ([]search.Option, error) {
	maxIterations, err := cmd.options.IntDefault("max", sc.config.GetInt(config.ConfigMaxIterations))
	if err != nil {
		return nil, err
	}
	maxDepth, err := cmd.options.IntDefault("depth", sc.config.GetInt(config.ConfigMaxDepth))
	if err != nil {
		return nil, err
	}
	opts := []search.Option{search.WithMaxIterations(maxIterations), search.WithMaxDepth(maxDepth)}
	if cmd.options.Bool("verbose") {
		opts = append(opts, search.WithProgress(func(p search.Progress) {
			fmt.Fprintf(sc.out, "[%v] iteration %d: %v (depth %d, frontier %d, explored %d)\n",
				p.Algorithm, p.Iteration, p.State, p.Depth, p.FrontierSize, p.ExploredSize)
		}))
	}
	return opts, nil
}

// remember keeps the result for path, hist, export and dot.
func remember[S comparable](sc *ShellController, problem string, initial, goal S,
	res search.Result[S]) report.Run {

	run := report.NewRun(problem, initial, goal, res)
	sc.last = &lastSearch{
		run: run,
		dot: func(name string) ([]byte, error) {
			return report.DOT(name, res)
		},
		hist: func(w io.Writer, bins int) error {
			return report.DepthHistogram(w, res, bins)
		},
	}
	return run
}

func describeRun(run report.Run) string {
	var sb strings.Builder
	sb.WriteString(report.SummaryText(run.Summary))
	if run.Summary.Found {
		sb.WriteString("Path:\n")
		sb.WriteString(report.PathText(run.Path))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) miu(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: miu next <string> | miu search [options]")
	}
	switch cmd.args[0] {
	case "next":
		if len(cmd.args) != 2 {
			return nil, errors.New("usage: miu next <string>")
		}
		s := cmd.args[1]
		if err := miu.Validate(s); err != nil {
			return nil, err
		}
		return msg(fmt.Sprintf("next_states(%q) -> [%s]", s, strings.Join(miu.NextStates(s), ", "))), nil
	case "search":
		return sc.miuSearch(cmd)
	}
	return nil, fmt.Errorf("unknown miu subcommand %v", cmd.args[0])
}

func (sc *ShellController) miuSearch(cmd *shellcmd) (*Response, error) {
	from := cmd.options.StringDefault("from", sc.config.GetString(config.ConfigMiuInitial))
	to := cmd.options.StringDefault("to", sc.config.GetString(config.ConfigMiuGoal))
	alg, err := search.ParseAlgorithm(cmd.options.StringDefault("algo", "bfs"))
	if err != nil {
		return nil, err
	}
	opts, err := sc.searchOptions(cmd)
	if err != nil {
		return nil, err
	}
	p, err := miu.NewProblem(from, to)
	if err != nil {
		return nil, err
	}
	res, err := search.Run[string](alg, p, miu.Heuristic, opts...)
	if err != nil {
		return nil, err
	}
	run := remember(sc, "miu", from, to, res)
	header := fmt.Sprintf("Searching from %s to %s using %s:\n", from, to, alg.DisplayName())
	if from == "MI" && !miu.Derivable(to) {
		header += fmt.Sprintf("Note: %s has an I count divisible by 3 and cannot be derived from MI.\n", to)
	}
	return msg(header + describeRun(run)), nil
}

func (sc *ShellController) maze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: maze gen|show|use|search [options]")
	}
	switch cmd.args[0] {
	case "gen":
		return sc.mazeGen(cmd)
	case "show":
		m, id, err := sc.sessions.Current()
		if err != nil {
			return nil, err
		}
		return msg(fmt.Sprintf("Maze %s (%dx%d), start %v, goal %v:\n%v",
			id, m.Width, m.Height, m.Start, m.Goal, m)), nil
	case "use":
		if len(cmd.args) != 2 {
			return nil, errors.New("usage: maze use <id>")
		}
		if err := sc.sessions.SetCurrent(cmd.args[1]); err != nil {
			return nil, err
		}
		return msg("using maze " + cmd.args[1]), nil
	case "search":
		return sc.mazeSearch(cmd)
	}
	return nil, fmt.Errorf("unknown maze subcommand %v", cmd.args[0])
}

func (sc *ShellController) mazeGen(cmd *shellcmd) (*Response, error) {
	width, err := cmd.options.IntDefault("width", sc.config.GetInt(config.ConfigMazeWidth))
	if err != nil {
		return nil, err
	}
	height, err := cmd.options.IntDefault("height", sc.config.GetInt(config.ConfigMazeHeight))
	if err != nil {
		return nil, err
	}
	walls, err := cmd.options.FloatDefault("walls", sc.config.GetFloat64(config.ConfigMazeWallProbability))
	if err != nil {
		return nil, err
	}
	seed, err := cmd.options.Int64Default("seed", sc.config.GetInt64(config.ConfigMazeSeed))
	if err != nil {
		return nil, err
	}
	m, err := maze.Generate(width, height, walls, seed)
	if err != nil {
		return nil, err
	}
	id := sc.sessions.Put(m)
	return msg(fmt.Sprintf("Generated maze %s (%dx%d, wall probability %v, seed %d):\n%v",
		id, width, height, walls, seed, m)), nil
}

func (sc *ShellController) mazeSearch(cmd *shellcmd) (*Response, error) {
	m, id, err := sc.sessions.Current()
	if err != nil {
		return nil, err
	}
	alg, err := search.ParseAlgorithm(cmd.options.StringDefault("algo", "astar"))
	if err != nil {
		return nil, err
	}
	opts, err := sc.searchOptions(cmd)
	if err != nil {
		return nil, err
	}
	res, err := search.Run[maze.Point](alg, maze.NewProblem(m), maze.Manhattan, opts...)
	if err != nil {
		return nil, err
	}
	run := remember(sc, "maze "+id, m.Start, m.Goal, res)
	overlay := maze.Overlay(m, maze.Points(res.Path()), maze.Points(res.Visited))
	return msg(fmt.Sprintf("Searching maze %s from %v to %v using %s:\n%s\n%s",
		id, m.Start, m.Goal, alg.DisplayName(), describeRun(run), overlay)), nil
}

func (sc *ShellController) compare(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: compare miu|maze [options]")
	}
	opts, err := sc.searchOptions(cmd)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	var summaries []report.Summary
	switch cmd.args[0] {
	case "miu":
		from := cmd.options.StringDefault("from", sc.config.GetString(config.ConfigMiuInitial))
		to := cmd.options.StringDefault("to", sc.config.GetString(config.ConfigMiuGoal))
		outcomes, err := runner.Compare(ctx, func() (search.Problem[string], error) {
			return miu.NewProblem(from, to)
		}, miu.Heuristic, opts...)
		if err != nil {
			return nil, err
		}
		summaries = runner.Summaries(outcomes)
	case "maze":
		m, _, err := sc.sessions.Current()
		if err != nil {
			return nil, err
		}
		outcomes, err := runner.Compare(ctx, func() (search.Problem[maze.Point], error) {
			return maze.NewProblem(m), nil
		}, maze.Manhattan, opts...)
		if err != nil {
			return nil, err
		}
		summaries = runner.Summaries(outcomes)
	default:
		return nil, fmt.Errorf("cannot compare %v; use miu or maze", cmd.args[0])
	}
	return msg(strings.TrimRight(report.SummaryTable(summaries), "\n")), nil
}

func (sc *ShellController) path(cmd *shellcmd) (*Response, error) {
	if sc.last == nil {
		return nil, errNoRun
	}
	if !sc.last.run.Summary.Found {
		return msg("No solution in the last search."), nil
	}
	return msg(strings.TrimRight(report.PathText(sc.last.run.Path), "\n")), nil
}

func (sc *ShellController) hist(cmd *shellcmd) (*Response, error) {
	if sc.last == nil {
		return nil, errNoRun
	}
	bins, err := cmd.options.IntDefault("bins", defaultHistogramBins)
	if err != nil {
		return nil, err
	}
	if bins < 1 {
		return nil, errBadBins
	}
	var buf bytes.Buffer
	if err := sc.last.hist(&buf, bins); err != nil {
		return nil, err
	}
	return msg("Depth of generated nodes:\n" + strings.TrimRight(buf.String(), "\n")), nil
}

func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if sc.last == nil {
		return nil, errNoRun
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: export <file.yaml>")
	}
	f, err := os.Create(cmd.args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := report.WriteYAML(f, sc.last.run); err != nil {
		return nil, err
	}
	log.Info().Str("file", cmd.args[0]).Msg("exported-run")
	return msg("exported to " + cmd.args[0]), nil
}

func (sc *ShellController) dot(cmd *shellcmd) (*Response, error) {
	if sc.last == nil {
		return nil, errNoRun
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: dot <file.dot>")
	}
	filename := cmd.args[0]
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	bts, err := sc.last.dot(name)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filename, bts, 0o644); err != nil {
		return nil, err
	}
	return msg("wrote search tree to " + filename), nil
}

// demo walks through both problems with fixed inputs.
func (sc *ShellController) demo(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	banner := func(title string) {
		sb.WriteString("\n" + strings.Repeat("=", 50) + "\n")
		sb.WriteString(title + "\n")
		sb.WriteString(strings.Repeat("=", 50) + "\n")
	}

	banner("MIU System Demonstration")
	for _, s := range []string{"MI", "MIU", "MUI", "MIIII", "MUUII", "MUUUI"} {
		fmt.Fprintf(&sb, "next_states(%q) -> [%s]\n", s, strings.Join(miu.NextStates(s), ", "))
	}
	miuRuns := []struct {
		goal string
		alg  search.Algorithm
	}{
		{"MIU", search.BFS},
		{"MIUIU", search.AStarSearch},
	}
	for _, r := range miuRuns {
		p, err := miu.NewProblem("MI", r.goal)
		if err != nil {
			return nil, err
		}
		res, err := search.Run[string](r.alg, p, miu.Heuristic)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "\nSearching from MI to %s using %s:\n", r.goal, r.alg.DisplayName())
		sb.WriteString(describeRun(report.NewRun("miu", "MI", r.goal, res)) + "\n")
	}

	banner("Maze Environment Demonstration")
	m, err := maze.Generate(5, 5, 0.2, 42)
	if err != nil {
		return nil, err
	}
	sb.WriteString(m.String() + "\n")
	for _, alg := range search.Algorithms {
		res, err := search.Run[maze.Point](alg, maze.NewProblem(m), maze.Manhattan)
		if err != nil {
			return nil, err
		}
		run := report.NewRun("maze", m.Start, m.Goal, res)
		fmt.Fprintf(&sb, "\nUsing %s:\n", alg.DisplayName())
		sb.WriteString(report.SummaryText(run.Summary))
		if run.Summary.Found {
			sb.WriteString("First few steps:\n")
			sb.WriteString(report.PathText(run.Path[:min(5, len(run.Path))]))
		}
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage()), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}
