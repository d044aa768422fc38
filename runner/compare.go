// Package runner runs several searches over the same problem definition and
// collects their summaries.
package runner

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/agentsearch/report"
	"github.com/domino14/agentsearch/search"
)

// ProblemFactory builds a fresh problem. Each search gets its own instance,
// so nothing is shared between goroutines.
type ProblemFactory[S comparable] func() (search.Problem[S], error)

// Outcome pairs a result with its summary.
type Outcome[S comparable] struct {
	Result  search.Result[S]
	Summary report.Summary
}

// Compare runs every algorithm in search.Algorithms side by side. Each search
// is itself single-threaded; only independent searches run concurrently.
// Outcomes are returned in algorithm order.
func Compare[S comparable](ctx context.Context, factory ProblemFactory[S], h search.Heuristic[S],
	options ...search.Option) ([]Outcome[S], error) {

	outcomes := make([]Outcome[S], len(search.Algorithms))
	g, ctx := errgroup.WithContext(ctx)
	for idx, alg := range search.Algorithms {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := factory()
			if err != nil {
				return err
			}
			res, err := search.Run(alg, p, h, options...)
			if err != nil {
				return err
			}
			outcomes[idx] = Outcome[S]{Result: res, Summary: report.Summarize(res)}
			log.Debug().Str("algorithm", alg.String()).Int("iterations", res.Iterations).
				Msg("compare-finished-one")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Summaries extracts the summaries from outcomes.
func Summaries[S comparable](outcomes []Outcome[S]) []report.Summary {
	out := make([]report.Summary, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Summary
	}
	return out
}
