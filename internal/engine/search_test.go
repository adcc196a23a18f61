package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gridlock/pkg/types"
)

// assertValidSolution checks that every unit of sol is a permutation of 1..9.
func assertValidSolution(t *testing.T, sol []int) {
	t.Helper()
	require.Len(t, sol, types.NumCells)
	for u := 0; u < types.NumUnits; u++ {
		var seen types.Candidates
		for _, i := range types.Units[u] {
			v := sol[i]
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, 9)
			require.False(t, seen.Has(v), "%s repeats %d", types.UnitName(u), v)
			seen = seen.Add(v)
		}
	}
}

// runSearch solves g with the given cap and returns the collected solutions.
func runSearch(t *testing.T, g *types.Grid, maxSolutions, workers int) ([][]int, *Searcher) {
	t.Helper()
	c := NewCollector(maxSolutions)
	s := &Searcher{Collector: c, Workers: workers}
	require.NoError(t, s.Run(context.Background(), g))
	return c.Results(), s
}

func TestSearchClassicPuzzleIsProper(t *testing.T) {
	sols, s := runSearch(t, mustGrid(t, easyPuzzle), 0, 1)
	require.Len(t, sols, 1, "the classic example has exactly one solution")
	assert.Equal(t, easySolution, solutionKey(sols[0]))
	assert.False(t, s.Truncated())
}

func TestSearchHardPuzzle(t *testing.T) {
	sols, s := runSearch(t, mustGrid(t, hardPuzzle), 0, 1)
	require.Len(t, sols, 1)
	assertValidSolution(t, sols[0])
	assert.False(t, s.Truncated())
	assert.Greater(t, s.Nodes(), int64(0), "the hard puzzle needs branching")
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	g := mustGrid(t, easyPuzzle)
	before := g.String()
	runSearch(t, g, 0, 1)
	assert.Equal(t, before, g.String())
}

func TestSearchUnsolvable(t *testing.T) {
	g := emptyGrid(t)
	// Valid givens with no completion: row 0 can never take a 5.
	vals := []int{1, 2, 3, 4, 6, 7, 8}
	for i, v := range vals {
		require.NoError(t, g.Place(cell(0, 2+i), v))
	}
	require.NoError(t, g.Place(cell(3, 0), 5))
	require.NoError(t, g.Place(cell(6, 1), 5))

	sols, s := runSearch(t, g, 0, 1)
	assert.Empty(t, sols)
	assert.False(t, s.Truncated(), "a refuted puzzle is a confirmed result, not a truncation")
}

func TestSearchEmptyGridIsImproper(t *testing.T) {
	one, _ := runSearch(t, emptyGrid(t), 1, 1)
	require.Len(t, one, 1)
	assertValidSolution(t, one[0])

	two, _ := runSearch(t, emptyGrid(t), 2, 1)
	require.Len(t, two, 2, "the empty grid has more than one solution")
	assertValidSolution(t, two[0])
	assertValidSolution(t, two[1])
	assert.NotEqual(t, solutionKey(two[0]), solutionKey(two[1]))
}

func TestSearchNodeBudget(t *testing.T) {
	c := NewCollector(0)
	s := &Searcher{Collector: c, MaxNodes: 5}
	require.NoError(t, s.Run(context.Background(), emptyGrid(t)))

	assert.True(t, s.Truncated(), "an exhausted node budget must be reported")
	assert.LessOrEqual(t, s.Nodes(), int64(6))
}

func TestSearchContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCollector(0)
	s := &Searcher{Collector: c}
	require.NoError(t, s.Run(ctx, emptyGrid(t)))
	assert.True(t, s.Truncated())
}

func TestSearchParallelMatchesSerial(t *testing.T) {
	// Dropping the first given of a proper puzzle keeps the reference
	// solution and may admit more; serial and parallel runs must agree
	// on the full set.
	relaxed := "0" + easyPuzzle[1:]

	serial, _ := runSearch(t, mustGrid(t, relaxed), 0, 1)
	parallel, _ := runSearch(t, mustGrid(t, relaxed), 0, 4)

	serialKeys := make([]string, 0, len(serial))
	for _, sol := range serial {
		assertValidSolution(t, sol)
		serialKeys = append(serialKeys, solutionKey(sol))
	}
	parallelKeys := make([]string, 0, len(parallel))
	for _, sol := range parallel {
		parallelKeys = append(parallelKeys, solutionKey(sol))
	}

	assert.ElementsMatch(t, serialKeys, parallelKeys)
	assert.Contains(t, serialKeys, easySolution)
}

func TestSearchParallelCapStopsCleanly(t *testing.T) {
	c := NewCollector(1)
	s := &Searcher{Collector: c, Workers: 4}
	require.NoError(t, s.Run(context.Background(), emptyGrid(t)))

	require.Equal(t, 1, c.Len())
	assertValidSolution(t, c.Results()[0])
	assert.False(t, s.Truncated(), "a cap stop is not a truncation")
}

func TestBranchCellPicksMostConstrained(t *testing.T) {
	g := emptyGrid(t)
	// Column 0 takes 1..7, pinching (0,0) and (8,0) down to {8,9};
	// the lowest index wins the tie.
	for r := 1; r <= 7; r++ {
		require.NoError(t, g.Place(cell(r, 0), r))
	}
	assert.Equal(t, 0, branchCell(g))
}
