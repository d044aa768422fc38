package search

const (
	DefaultMaxIterations = 1000
	DefaultMaxDepth      = 50
)

// Progress describes the node just popped from the frontier.
type Progress struct {
	Algorithm    Algorithm
	Iteration    int
	State        any
	Depth        int
	PathCost     float64
	FrontierSize int
	ExploredSize int
}

// ProgressFunc is called synchronously once per frontier pop.
type ProgressFunc func(Progress)

// Options defines parameters for a search.
type Options struct {
	MaxIterations int
	// MaxDepth only applies to depth-first search.
	MaxDepth int
	Progress ProgressFunc
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMaxIterations caps the number of frontier pops. Non-positive values
// leave the default in place.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxIterations = n
		}
	}
}

// WithMaxDepth sets the depth ceiling for depth-first search. Nodes at this
// depth are never expanded.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d > 0 {
			o.MaxDepth = d
		}
	}
}

// WithProgress registers a callback invoked once per frontier pop.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) { o.Progress = fn }
}

func buildOptions(options []Option) Options {
	opts := Options{
		MaxIterations: DefaultMaxIterations,
		MaxDepth:      DefaultMaxDepth,
	}
	for _, option := range options {
		option(&opts)
	}
	return opts
}

func (o Options) report(p Progress) {
	if o.Progress != nil {
		o.Progress(p)
	}
}
