package types

import (
	"math/bits"
	"strconv"
	"strings"
)

// Candidates is a bitset over the values 1..9 still available to an
// unset cell. Bit v-1 is set when value v is a candidate.
type Candidates uint16

// AllCandidates has every value 1..9 set.
const AllCandidates Candidates = 0x1ff

// Has reports whether v is a candidate. v must be in 1..9.
func (c Candidates) Has(v int) bool {
	return c&(1<<(v-1)) != 0
}

// Add returns c with v added.
func (c Candidates) Add(v int) Candidates {
	return c | 1<<(v-1)
}

// Remove returns c with v removed.
func (c Candidates) Remove(v int) Candidates {
	return c &^ (1 << (v - 1))
}

// Count returns the number of candidate values.
func (c Candidates) Count() int {
	return bits.OnesCount16(uint16(c))
}

// Sole returns the single remaining candidate value, or 0 if the set
// does not contain exactly one value.
func (c Candidates) Sole() int {
	if c.Count() != 1 {
		return 0
	}
	return bits.TrailingZeros16(uint16(c)) + 1
}

// Values returns the candidate values in ascending order.
func (c Candidates) Values() []int {
	vals := make([]int, 0, c.Count())
	for v := 1; v <= 9; v++ {
		if c.Has(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// String renders the set as "{1 4 9}".
func (c Candidates) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range c.Values() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte('}')
	return b.String()
}
