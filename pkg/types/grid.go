package types

import (
	"errors"
	"fmt"
	"strings"
)

// Grid errors.
var (
	// ErrInvalidInput reports a malformed or self-contradicting 81-cell
	// input. Solving never starts on such input.
	ErrInvalidInput = errors.New("invalid puzzle input")

	// ErrConflict reports a placement that duplicates a value within a
	// row, column, or box. The engine consumes it as a backtrack
	// signal; it is never surfaced to API callers.
	ErrConflict = errors.New("constraint violation")
)

// Grid is a 9x9 Sudoku position: 81 cell values (0 = unset), a
// candidate set per unset cell, and a placed-value bitset per unit.
// Grid is a value type; assignment produces an independent snapshot,
// which is how the search engine restores state on backtrack.
type Grid struct {
	vals  [NumCells]uint8
	cands [NumCells]Candidates
	used  [NumUnits]Candidates
	unset int
}

// New builds a Grid from 81 row-major values in [0,9], 0 meaning empty.
// Returns an error wrapping ErrInvalidInput if the input has the wrong
// length, an out-of-range value, or givens that already violate a
// row/column/box uniqueness constraint.
func New(values []int) (*Grid, error) {
	if len(values) != NumCells {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidInput, len(values), NumCells)
	}

	g := &Grid{unset: NumCells}
	for i := range g.cands {
		g.cands[i] = AllCandidates
	}

	for i, v := range values {
		if v < 0 || v > 9 {
			return nil, fmt.Errorf("%w: cell %d holds %d, want 0..9", ErrInvalidInput, i, v)
		}
		if v == 0 {
			continue
		}
		if err := g.Place(i, v); err != nil {
			return nil, fmt.Errorf("%w: given at cell %d: %v", ErrInvalidInput, i, err)
		}
	}
	return g, nil
}

// Place sets cell idx to value v. Returns ErrConflict (wrapped with the
// offending unit) if v is already placed in the cell's row, column, or
// box, or if the cell is already set. On success the value is removed
// from the candidate sets of all 20 peer cells.
func (g *Grid) Place(idx, v int) error {
	if g.vals[idx] != 0 {
		return fmt.Errorf("%w: cell %d already set", ErrConflict, idx)
	}
	for _, u := range CellUnits[idx] {
		if g.used[u].Has(v) {
			return fmt.Errorf("%w: %d already in %s", ErrConflict, v, UnitName(u))
		}
	}

	g.vals[idx] = uint8(v)
	g.cands[idx] = 0
	g.unset--
	for _, u := range CellUnits[idx] {
		g.used[u] = g.used[u].Add(v)
	}
	for _, p := range peers[idx] {
		g.cands[p] = g.cands[p].Remove(v)
	}
	return nil
}

// RemoveCandidate strips v from the candidate set of an unset cell and
// reports whether the set changed.
func (g *Grid) RemoveCandidate(idx, v int) bool {
	if g.vals[idx] != 0 || !g.cands[idx].Has(v) {
		return false
	}
	g.cands[idx] = g.cands[idx].Remove(v)
	return true
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	g2 := *g
	return &g2
}

// Value returns the placed value at idx, 0 if unset.
func (g *Grid) Value(idx int) int { return int(g.vals[idx]) }

// Candidates returns the candidate set of cell idx. Empty for set cells.
func (g *Grid) Candidates(idx int) Candidates { return g.cands[idx] }

// Used returns the values already placed in unit u as a bitset.
func (g *Grid) Used(u int) Candidates { return g.used[u] }

// Unset returns the number of empty cells.
func (g *Grid) Unset() int { return g.unset }

// Complete reports whether every cell is set.
func (g *Grid) Complete() bool { return g.unset == 0 }

// DeadEnd reports whether the position is unsolvable without further
// search: an unset cell has run out of candidates, or some unit has a
// missing value that no remaining cell of the unit can take. The
// second check subsumes the first only partially, so both run.
func (g *Grid) DeadEnd() bool {
	for i := 0; i < NumCells; i++ {
		if g.vals[i] == 0 && g.cands[i] == 0 {
			return true
		}
	}
	for u := 0; u < NumUnits; u++ {
		missing := AllCandidates &^ g.used[u]
		if missing == 0 {
			continue
		}
		open := Candidates(0)
		for _, i := range Units[u] {
			if g.vals[i] == 0 {
				open |= g.cands[i]
			}
		}
		if missing&^open != 0 {
			return true
		}
	}
	return false
}

// Values returns the 81 cell values in row-major order.
func (g *Grid) Values() []int {
	out := make([]int, NumCells)
	for i, v := range g.vals {
		out[i] = int(v)
	}
	return out
}

// String renders the grid as 81 digits in row-major order, 0 for unset.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(NumCells)
	for _, v := range g.vals {
		b.WriteByte('0' + v)
	}
	return b.String()
}
