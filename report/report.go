// Package report turns search results into things people look at: step
// tables, summaries, YAML exports, Graphviz search trees and depth
// histograms.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/domino14/agentsearch/search"
)

const StartLabel = "Start"

var printer = message.NewPrinter(language.English)

// Step is one line of a solution path. The root step is labelled Start.
type Step struct {
	Index  int    `json:"step" yaml:"step"`
	Action string `json:"action" yaml:"action"`
	State  string `json:"state" yaml:"state"`
}

type Summary struct {
	Algorithm     string  `json:"algorithm" yaml:"algorithm"`
	Found         bool    `json:"solution_found" yaml:"solution_found"`
	Iterations    int     `json:"iterations" yaml:"iterations"`
	MaxIterations int     `json:"max_iterations" yaml:"max_iterations"`
	Visited       int     `json:"visited_nodes_count" yaml:"visited_nodes_count"`
	PathLength    int     `json:"path_length" yaml:"path_length"`
	PathCost      float64 `json:"path_cost" yaml:"path_cost"`
	Exhausted     bool    `json:"exhausted" yaml:"exhausted"`
}

// Run is everything worth keeping about one search.
type Run struct {
	Problem string  `json:"problem" yaml:"problem"`
	Initial string  `json:"initial" yaml:"initial"`
	Goal    string  `json:"goal" yaml:"goal"`
	Summary Summary `json:"summary" yaml:"summary"`
	Path    []Step  `json:"path,omitempty" yaml:"path,omitempty"`
}

func stateString(s any) string {
	return fmt.Sprint(s)
}

// Steps lists the solution path, root first. It is empty if nothing was
// found.
func Steps[S comparable](res search.Result[S]) []Step {
	return lo.Map(res.Path(), func(n *search.Node[S], i int) Step {
		action := n.Action()
		if i == 0 {
			action = StartLabel
		}
		return Step{Index: i, Action: action, State: stateString(n.State())}
	})
}

func Summarize[S comparable](res search.Result[S]) Summary {
	s := Summary{
		Algorithm:     res.Algorithm.String(),
		Found:         res.Found(),
		Iterations:    res.Iterations,
		MaxIterations: res.MaxIterations,
		Visited:       len(res.Visited),
		Exhausted:     res.Exhausted(),
	}
	if res.Found() {
		s.PathLength = res.Solution.Steps()
		s.PathCost = res.Solution.PathCost()
	}
	return s
}

func NewRun[S comparable](problem string, initial, goal S, res search.Result[S]) Run {
	return Run{
		Problem: problem,
		Initial: stateString(initial),
		Goal:    stateString(goal),
		Summary: Summarize(res),
		Path:    Steps(res),
	}
}

// PathText renders steps one per line, e.g. "  1. Rule 1: Append U -> MIU".
func PathText(steps []Step) string {
	var sb strings.Builder
	for _, st := range steps {
		if st.Index == 0 {
			fmt.Fprintf(&sb, "  %d. %s: %s\n", st.Index, StartLabel, st.State)
			continue
		}
		fmt.Fprintf(&sb, "  %d. %s -> %s\n", st.Index, st.Action, st.State)
	}
	return sb.String()
}

func SummaryText(s Summary) string {
	var sb strings.Builder
	if s.Found {
		sb.WriteString(printer.Sprintf("Solution found in %d iterations!\n", s.Iterations))
		sb.WriteString(printer.Sprintf("Path length: %d steps, cost %v\n", s.PathLength, s.PathCost))
	} else {
		sb.WriteString(printer.Sprintf("No solution found after %d iterations.\n", s.Iterations))
		if s.Exhausted {
			sb.WriteString(printer.Sprintf("The iteration cap of %d was reached.\n", s.MaxIterations))
		}
	}
	sb.WriteString(printer.Sprintf("Nodes generated: %d\n", s.Visited))
	return sb.String()
}

// SummaryTable lays out several summaries side by side.
func SummaryTable(summaries []Summary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-8s%-7s%12s%12s%8s%8s\n", "algo", "found", "iterations", "generated", "steps", "cost"))
	for _, s := range summaries {
		steps, cost := "-", "-"
		if s.Found {
			steps = fmt.Sprint(s.PathLength)
			cost = fmt.Sprint(s.PathCost)
		}
		sb.WriteString(fmt.Sprintf("%-8s%-7v%12s%12s%8s%8s\n", s.Algorithm, s.Found,
			printer.Sprintf("%d", s.Iterations), printer.Sprintf("%d", s.Visited), steps, cost))
	}
	return sb.String()
}

func WriteYAML(w io.Writer, run Run) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(run); err != nil {
		return err
	}
	return enc.Close()
}
