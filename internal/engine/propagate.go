// Package engine implements the gridlock solving core: Crook-style
// constraint propagation run to a fixed point, interleaved with a
// backtracking search that branches only when propagation stalls.
package engine

import (
	"errors"
	"math/bits"

	"github.com/mesh-intelligence/gridlock/pkg/types"
)

// errContradiction marks a position refuted during propagation. It is a
// local backtrack signal and never escapes the engine.
var errContradiction = errors.New("contradiction")

// propagate runs the deduction rules on g until none of them changes a
// candidate set or places a value. Cheaper rules restart the pass; the
// box-line and preemptive-set searches only run once the singles are
// exhausted. The fixed point does not depend on rule order, only the
// work spent reaching it does.
func propagate(g *types.Grid) error {
	for {
		changed, err := nakedSingles(g)
		if err != nil {
			return err
		}
		if changed {
			continue
		}
		if changed, err = hiddenSingles(g); err != nil {
			return err
		}
		if changed {
			continue
		}
		if changed, err = lockedCandidates(g); err != nil {
			return err
		}
		if changed {
			continue
		}
		if changed, err = preemptiveSets(g); err != nil {
			return err
		}
		if !changed {
			return nil
		}
	}
}

// nakedSingles places every unset cell whose candidate set has shrunk
// to a single value. A cell with no candidates refutes the position.
func nakedSingles(g *types.Grid) (bool, error) {
	changed := false
	for i := 0; i < types.NumCells; i++ {
		if g.Value(i) != 0 {
			continue
		}
		c := g.Candidates(i)
		if c == 0 {
			return changed, errContradiction
		}
		if v := c.Sole(); v != 0 {
			if err := g.Place(i, v); err != nil {
				return changed, errContradiction
			}
			changed = true
		}
	}
	return changed, nil
}

// hiddenSingles places, per unit, every missing value that only one of
// the unit's unset cells can still take. A missing value with no home
// left refutes the position.
func hiddenSingles(g *types.Grid) (bool, error) {
	changed := false
	for u := 0; u < types.NumUnits; u++ {
		for v := 1; v <= 9; v++ {
			if g.Used(u).Has(v) {
				continue
			}
			home, count := -1, 0
			for _, i := range types.Units[u] {
				if g.Value(i) == 0 && g.Candidates(i).Has(v) {
					home = i
					count++
				}
			}
			switch count {
			case 0:
				return changed, errContradiction
			case 1:
				if err := g.Place(home, v); err != nil {
					return changed, errContradiction
				}
				changed = true
			}
		}
	}
	return changed, nil
}

// lockedCandidates applies the box-line interactions. Pointing: a value
// confined to a single row or column within a box cannot appear in that
// line outside the box. Claiming: a value confined to a single box
// within a line cannot appear elsewhere in that box.
func lockedCandidates(g *types.Grid) (bool, error) {
	changed := false

	for b := 0; b < 9; b++ {
		u := types.BoxUnit(b)
		for v := 1; v <= 9; v++ {
			if g.Used(u).Has(v) {
				continue
			}
			count := 0
			row, col := -1, -1
			sameRow, sameCol := true, true
			for _, i := range types.Units[u] {
				if g.Value(i) != 0 || !g.Candidates(i).Has(v) {
					continue
				}
				if count == 0 {
					row, col = types.RowOf(i), types.ColOf(i)
				} else {
					sameRow = sameRow && types.RowOf(i) == row
					sameCol = sameCol && types.ColOf(i) == col
				}
				count++
			}
			if count == 0 {
				continue // hiddenSingles reports the contradiction
			}
			if sameRow {
				for _, i := range types.Units[types.RowUnit(row)] {
					if types.BoxOf(i) != b && g.RemoveCandidate(i, v) {
						changed = true
					}
				}
			}
			if sameCol {
				for _, i := range types.Units[types.ColUnit(col)] {
					if types.BoxOf(i) != b && g.RemoveCandidate(i, v) {
						changed = true
					}
				}
			}
		}
	}

	for u := 0; u < types.NumUnits && types.IsLineUnit(u); u++ {
		for v := 1; v <= 9; v++ {
			if g.Used(u).Has(v) {
				continue
			}
			box := -1
			confined := true
			for _, i := range types.Units[u] {
				if g.Value(i) != 0 || !g.Candidates(i).Has(v) {
					continue
				}
				if box == -1 {
					box = types.BoxOf(i)
				} else if types.BoxOf(i) != box {
					confined = false
					break
				}
			}
			if box == -1 || !confined {
				continue
			}
			for _, i := range types.Units[types.BoxUnit(box)] {
				if types.CellUnits[i][0] != u && types.CellUnits[i][1] != u && g.RemoveCandidate(i, v) {
					changed = true
				}
			}
		}
	}

	return changed, nil
}

// preemptiveSets applies Crook's rule: within a unit, a k-cell subset
// of the unset cells whose candidates union to exactly k values locks
// those values to the subset, so every other cell of the unit drops
// them. A subset with fewer union values than cells refutes the
// position by pigeonhole. Subsets are enumerated as bitmasks over the
// unit's unset cells, at most 2^9 per unit.
func preemptiveSets(g *types.Grid) (bool, error) {
	changed := false
	for u := 0; u < types.NumUnits; u++ {
		var open []int
		for _, i := range types.Units[u] {
			if g.Value(i) == 0 {
				open = append(open, i)
			}
		}
		n := len(open)
		if n < 3 {
			continue
		}
		for mask := 1; mask < 1<<n; mask++ {
			k := bits.OnesCount(uint(mask))
			if k < 2 || k >= n {
				continue
			}
			var union types.Candidates
			for b := 0; b < n; b++ {
				if mask&(1<<b) != 0 {
					union |= g.Candidates(open[b])
				}
			}
			if union.Count() < k {
				return changed, errContradiction
			}
			if union.Count() != k {
				continue
			}
			for b := 0; b < n; b++ {
				if mask&(1<<b) != 0 {
					continue
				}
				for _, v := range union.Values() {
					if g.RemoveCandidate(open[b], v) {
						changed = true
					}
				}
			}
		}
	}
	return changed, nil
}
