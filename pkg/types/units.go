package types

import "fmt"

// Unit index layout: units 0..8 are rows, 9..17 are columns, 18..26 are
// 3x3 boxes. Every cell belongs to exactly one unit of each kind.
const (
	NumCells = 81
	NumUnits = 27

	firstRowUnit = 0
	firstColUnit = 9
	firstBoxUnit = 18
)

// Units maps each unit to the nine cell indices it contains.
var Units [NumUnits][9]int

// CellUnits maps each cell to its row, column, and box unit.
var CellUnits [NumCells][3]int

// peers maps each cell to the 20 distinct cells sharing a unit with it.
var peers [NumCells][]int

func init() {
	for i := 0; i < NumCells; i++ {
		r, c := i/9, i%9
		b := (r/3)*3 + c/3
		row := firstRowUnit + r
		col := firstColUnit + c
		box := firstBoxUnit + b
		CellUnits[i] = [3]int{row, col, box}

		Units[row][c] = i
		Units[col][r] = i
		boxSlot := (r%3)*3 + c%3
		Units[box][boxSlot] = i
	}

	for i := 0; i < NumCells; i++ {
		seen := make(map[int]bool, 20)
		for _, u := range CellUnits[i] {
			for _, j := range Units[u] {
				if j != i && !seen[j] {
					seen[j] = true
					peers[i] = append(peers[i], j)
				}
			}
		}
	}
}

// RowUnit returns the unit index of row r.
func RowUnit(r int) int { return firstRowUnit + r }

// ColUnit returns the unit index of column c.
func ColUnit(c int) int { return firstColUnit + c }

// BoxUnit returns the unit index of box b.
func BoxUnit(b int) int { return firstBoxUnit + b }

// IsLineUnit reports whether u is a row or column unit.
func IsLineUnit(u int) bool { return u < firstBoxUnit }

// RowOf returns the row of a cell index.
func RowOf(idx int) int { return idx / 9 }

// ColOf returns the column of a cell index.
func ColOf(idx int) int { return idx % 9 }

// BoxOf returns the 3x3 box of a cell index.
func BoxOf(idx int) int { return (idx/9/3)*3 + idx%9/3 }

// UnitName returns a human-readable unit label ("row 3", "col 5",
// "box 7"), used in log and error messages.
func UnitName(u int) string {
	switch {
	case u < firstColUnit:
		return fmt.Sprintf("row %d", u-firstRowUnit)
	case u < firstBoxUnit:
		return fmt.Sprintf("col %d", u-firstColUnit)
	default:
		return fmt.Sprintf("box %d", u-firstBoxUnit)
	}
}
