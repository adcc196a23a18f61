package engine

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/gridlock/pkg/types"
)

var log = logrus.StandardLogger()

// errBudgetExhausted stops the search when the node budget or the
// caller's context runs out. Run converts it into the Truncated flag.
var errBudgetExhausted = errors.New("search budget exhausted")

// Searcher explores all completions of a grid depth-first, propagating
// after every placement and branching only when propagation stalls.
// Dead ends and constraint violations stay internal; the only outcomes
// a caller sees are the solutions fed to the Collector and the
// Truncated flag.
type Searcher struct {
	Collector *Collector
	MaxNodes  int64 // branch budget; 0 = unbounded
	Workers   int   // <=1 serial; otherwise top-level branches fan out

	nodes     atomic.Int64
	truncated atomic.Bool
}

// Nodes returns the number of branch nodes expanded.
func (s *Searcher) Nodes() int64 { return s.nodes.Load() }

// Truncated reports whether the search stopped on a budget or
// cancellation rather than exhausting the tree.
func (s *Searcher) Truncated() bool { return s.truncated.Load() }

// Run searches every completion of g, feeding solutions to the
// collector. The input grid is not modified. Cap and budget stops are
// normal terminations; budget stops are recorded on Truncated.
func (s *Searcher) Run(ctx context.Context, g *types.Grid) error {
	root := g.Clone()

	var err error
	if s.Workers > 1 {
		err = s.runParallel(ctx, root)
	} else {
		err = s.search(ctx, root)
	}
	if err != nil && !errors.Is(err, errCapReached) && !errors.Is(err, errBudgetExhausted) {
		return err
	}

	log.WithFields(logrus.Fields{
		"nodes":     s.Nodes(),
		"solutions": s.Collector.Len(),
		"truncated": s.Truncated(),
	}).Debug("search finished")
	return nil
}

// search is the serial depth-first loop: propagate to a fixed point,
// emit or prune, otherwise branch on the most constrained cell.
func (s *Searcher) search(ctx context.Context, g *types.Grid) error {
	if err := propagate(g); err != nil {
		if errors.Is(err, errContradiction) {
			return nil
		}
		return err
	}
	if g.Complete() {
		return s.Collector.Add(g.Values())
	}
	if g.DeadEnd() {
		return nil
	}

	// Budget checks happen at branch points only, so an unwind never
	// leaves a half-propagated grid behind. Full runs before the
	// context check: a cancellation caused by the cap is a clean stop,
	// not a truncation.
	if s.Collector.Full() {
		return errCapReached
	}
	if s.MaxNodes > 0 && s.nodes.Load() >= s.MaxNodes {
		s.truncated.Store(true)
		return errBudgetExhausted
	}
	if ctx.Err() != nil {
		s.truncated.Store(true)
		return errBudgetExhausted
	}

	idx := branchCell(g)
	for _, v := range g.Candidates(idx).Values() {
		s.nodes.Add(1)
		child := g.Clone()
		if err := child.Place(idx, v); err != nil {
			continue
		}
		if err := s.search(ctx, child); err != nil {
			return err
		}
	}
	return nil
}

// runParallel propagates the root once, then distributes the branch
// candidates of the first chosen cell across workers. Each worker owns
// its grid copy; the collector is the only shared resource.
func (s *Searcher) runParallel(ctx context.Context, g *types.Grid) error {
	if err := propagate(g); err != nil {
		if errors.Is(err, errContradiction) {
			return nil
		}
		return err
	}
	if g.Complete() {
		return s.Collector.Add(g.Values())
	}
	if g.DeadEnd() {
		return nil
	}

	cell := branchCell(g)
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(s.Workers)
	for _, v := range g.Candidates(cell).Values() {
		child := g.Clone()
		if err := child.Place(cell, v); err != nil {
			continue
		}
		grp.Go(func() error {
			s.nodes.Add(1)
			return s.search(gctx, child)
		})
	}
	return grp.Wait()
}

// branchCell picks the unset cell with the fewest remaining candidates,
// ties broken by lowest row-major index. Called only after propagation
// stalled short of completion, so every unset cell has at least two
// candidates; two is the minimum and ends the scan early.
func branchCell(g *types.Grid) int {
	best, bestCount := -1, 10
	for i := 0; i < types.NumCells; i++ {
		if g.Value(i) != 0 {
			continue
		}
		if n := g.Candidates(i).Count(); n < bestCount {
			best, bestCount = i, n
			if n == 2 {
				break
			}
		}
	}
	return best
}
