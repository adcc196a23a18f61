// Grid rendering for the gridlock CLI.
package main

import (
	"fmt"
	"strings"
)

const boxBorder = "+-------+-------+-------+"

// formatGrid renders a board with 3x3 box borders. Empty cells show as
// dots, so partial boards print sensibly too.
func formatGrid(values []int) string {
	var b strings.Builder
	for r := 0; r < 9; r++ {
		if r%3 == 0 {
			b.WriteString(boxBorder)
			b.WriteByte('\n')
		}
		for c := 0; c < 9; c++ {
			if c%3 == 0 {
				b.WriteString("| ")
			}
			v := values[r*9+c]
			if v == 0 {
				b.WriteString(". ")
			} else {
				fmt.Fprintf(&b, "%d ", v)
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString(boxBorder)
	return b.String()
}
