// Package gridlock exposes the public solving API: validate an 81-cell
// puzzle, run the propagation-plus-search engine, and collect every
// solution up to the caller's cap and budgets.
package gridlock

import (
	"context"
	"errors"
	"time"

	"github.com/mesh-intelligence/gridlock/internal/engine"
	"github.com/mesh-intelligence/gridlock/pkg/types"
)

// Options validation errors.
var (
	ErrMaxSolutionsNegative = errors.New("max solutions must not be negative")
	ErrMaxNodesNegative     = errors.New("max nodes must not be negative")
	ErrTimeoutNegative      = errors.New("timeout must not be negative")
	ErrWorkersNegative      = errors.New("workers must not be negative")
)

// Options controls a solve. The zero value enumerates every solution
// serially with no budget.
type Options struct {
	// MaxSolutions caps how many solutions are collected; 0 = all.
	MaxSolutions int
	// MaxNodes caps how many branch nodes the search may expand; 0 = unbounded.
	// Exceeding it yields a truncated result, not an error.
	MaxNodes int64
	// Timeout bounds wall-clock time; 0 = none. Exceeding it yields a
	// truncated result, not an error.
	Timeout time.Duration
	// Workers > 1 spreads the top-level branch candidates across that
	// many goroutines, each on its own grid copy.
	Workers int
}

// Validate checks that the Options are well-formed. It returns a
// sentinel error from this package on failure.
func (o Options) Validate() error {
	if o.MaxSolutions < 0 {
		return ErrMaxSolutionsNegative
	}
	if o.MaxNodes < 0 {
		return ErrMaxNodesNegative
	}
	if o.Timeout < 0 {
		return ErrTimeoutNegative
	}
	if o.Workers < 0 {
		return ErrWorkersNegative
	}
	return nil
}

// Stats captures performance characteristics of a solve.
type Stats struct {
	Nodes    int64         `json:"nodes"`
	Duration time.Duration `json:"duration"`
}

// Result holds the outcome of a solve. An empty Solutions with
// Truncated false means the puzzle is confirmed unsolvable; with
// Truncated true the search ran out of budget before confirming
// anything.
type Result struct {
	Solutions [][]int `json:"solutions"`
	Truncated bool    `json:"truncated"`
	Stats     Stats   `json:"stats"`
}

// Solve solves the 81-cell row-major puzzle (0 = empty). It returns an
// error wrapping types.ErrInvalidInput for malformed or
// self-contradicting input; every other condition, including "no
// solution exists", is a normal Result.
func Solve(ctx context.Context, values []int, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g, err := types.New(values)
	if err != nil {
		return nil, err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	collector := engine.NewCollector(opts.MaxSolutions)
	searcher := &engine.Searcher{
		Collector: collector,
		MaxNodes:  opts.MaxNodes,
		Workers:   opts.Workers,
	}

	start := time.Now()
	if err := searcher.Run(ctx, g); err != nil {
		return nil, err
	}

	return &Result{
		Solutions: collector.Results(),
		Truncated: searcher.Truncated(),
		Stats: Stats{
			Nodes:    searcher.Nodes(),
			Duration: time.Since(start),
		},
	}, nil
}
